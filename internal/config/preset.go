package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/interview-coach/internal/session"
)

// Preset is a saved set of interview options, read from a YAML file.
// ResumeFile and JobDescriptionFile are loaded by the caller when set.
type Preset struct {
	Selection          session.RawSelection `yaml:",inline"`
	ResumeFile         string               `yaml:"resume_file"`
	JobDescriptionFile string               `yaml:"job_description_file"`
}

// DefaultPreset is what the front end shows before the user picks anything.
func DefaultPreset() *Preset {
	return &Preset{
		Selection: session.RawSelection{
			Field:         "Software Engineering",
			InterviewType: string(session.InterviewTechnical),
			Difficulty:    5,
			Rounds:        3,
		},
	}
}

// ReadPreset reads a preset file. Fields missing from the file keep their
// DefaultPreset values.
func ReadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}

	preset := DefaultPreset()
	if err := yaml.Unmarshal(data, preset); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}

	return preset, nil
}

// WritePreset stores p at path.
func WritePreset(path string, p *Preset) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing preset: %w", err)
	}

	return nil
}

// Limits converts the interview bounds for the option resolver.
func (c *Config) Limits() session.Limits {
	return session.Limits{
		MinDifficulty: c.Interview.MinDifficulty,
		MaxDifficulty: c.Interview.MaxDifficulty,
		MaxRounds:     c.Interview.MaxRounds,
	}
}
