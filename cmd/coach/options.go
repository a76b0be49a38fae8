package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/document"
	"alfredoptarigan/interview-coach/internal/session"
)

// selectionFlags are the interview options settable on the command line.
type selectionFlags struct {
	preset      string
	savePreset  string
	field       string
	customField string
	kind        string
	difficulty  int
	rounds      int
	resumeFile  string
	jdFile      string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	def := config.DefaultPreset().Selection

	fs.StringVar(&f.preset, "preset", "", "YAML file with saved interview options")
	fs.StringVar(&f.savePreset, "save-preset", "", "write the resulting options to this YAML file")
	fs.StringVar(&f.field, "field", def.Field, fmt.Sprintf("interview field, one of %q", session.FieldChoices()))
	fs.StringVar(&f.customField, "custom-field", "", "field text when --field is custom")
	fs.StringVar(&f.kind, "type", def.InterviewType, fmt.Sprintf("interview type, one of %q", session.InterviewTypes()))
	fs.IntVar(&f.difficulty, "difficulty", def.Difficulty, "starting difficulty")
	fs.IntVar(&f.rounds, "rounds", def.Rounds, "number of rounds")
	fs.StringVar(&f.resumeFile, "resume-file", "", "resume as a text or PDF file")
	fs.StringVar(&f.jdFile, "jd-file", "", "job description as a text or PDF file")
}

// buildSelection layers explicitly set flags over the preset (or the
// defaults) and loads the resume and job description files.
func (f *selectionFlags) buildSelection(fs *pflag.FlagSet) (session.RawSelection, error) {
	preset := config.DefaultPreset()
	if f.preset != "" {
		p, err := config.ReadPreset(f.preset)
		if err != nil {
			return session.RawSelection{}, err
		}
		preset = p
	}

	sel := &preset.Selection
	if fs.Changed("field") {
		sel.Field = f.field
	}
	if fs.Changed("custom-field") {
		sel.CustomField = f.customField
	}
	if fs.Changed("type") {
		sel.InterviewType = f.kind
	}
	if fs.Changed("difficulty") {
		sel.Difficulty = f.difficulty
	}
	if fs.Changed("rounds") {
		sel.Rounds = f.rounds
	}
	if fs.Changed("resume-file") {
		preset.ResumeFile = f.resumeFile
	}
	if fs.Changed("jd-file") {
		preset.JobDescriptionFile = f.jdFile
	}

	if f.savePreset != "" {
		if err := config.WritePreset(f.savePreset, preset); err != nil {
			return session.RawSelection{}, err
		}
	}

	resume, err := document.LoadText(preset.ResumeFile)
	if err != nil {
		return session.RawSelection{}, fmt.Errorf("loading resume: %w", err)
	}
	if resume != "" {
		sel.Resume = resume
	}

	jd, err := document.LoadText(preset.JobDescriptionFile)
	if err != nil {
		return session.RawSelection{}, fmt.Errorf("loading job description: %w", err)
	}
	if jd != "" {
		sel.JobDescription = jd
	}

	return *sel, nil
}
