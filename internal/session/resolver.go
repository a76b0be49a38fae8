package session

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the interview fields offered by the front end.
// FieldCustom carries free text instead of a fixed label.
type FieldKind int

const (
	FieldSoftwareEngineering FieldKind = iota
	FieldDataScience
	FieldMachineLearning
	FieldProductManagement
	FieldDevOps
	FieldCybersecurity
	FieldCustom
)

// CustomChoice is the selection value that switches to free-text entry.
const CustomChoice = "custom"

var fieldLabels = map[FieldKind]string{
	FieldSoftwareEngineering: "Software Engineering",
	FieldDataScience:         "Data Science",
	FieldMachineLearning:     "Machine Learning",
	FieldProductManagement:   "Product Management",
	FieldDevOps:              "DevOps",
	FieldCybersecurity:       "Cybersecurity",
}

// Field is either one of the fixed choices or a custom, non-empty label.
type Field struct {
	kind   FieldKind
	custom string
}

// KnownField returns the field for a fixed choice.
func KnownField(kind FieldKind) (Field, error) {
	if _, ok := fieldLabels[kind]; !ok {
		return Field{}, &ValidationError{Reason: fmt.Sprintf("unknown field kind %d", kind)}
	}
	return Field{kind: kind}, nil
}

// CustomField returns a free-text field. Blank text is rejected.
func CustomField(text string) (Field, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Field{}, ErrEmptyField
	}
	return Field{kind: FieldCustom, custom: text}, nil
}

func (f Field) Kind() FieldKind { return f.kind }

func (f Field) String() string {
	if f.kind == FieldCustom {
		return f.custom
	}
	return fieldLabels[f.kind]
}

// FieldChoices lists the fixed field labels in display order, followed by the custom choice.
func FieldChoices() []string {
	choices := make([]string, 0, len(fieldLabels)+1)
	for k := FieldSoftwareEngineering; k < FieldCustom; k++ {
		choices = append(choices, fieldLabels[k])
	}
	return append(choices, CustomChoice)
}

// InterviewType is the style of interview requested from the server.
type InterviewType string

const (
	InterviewTechnical    InterviewType = "Technical"
	InterviewBehavioral   InterviewType = "Behavioral"
	InterviewHR           InterviewType = "HR"
	InterviewSystemDesign InterviewType = "System Design"
	InterviewMixed        InterviewType = "Mixed"
)

// InterviewTypes lists every accepted interview type.
func InterviewTypes() []InterviewType {
	return []InterviewType{
		InterviewTechnical,
		InterviewBehavioral,
		InterviewHR,
		InterviewSystemDesign,
		InterviewMixed,
	}
}

// ParseInterviewType matches s case-insensitively against the known types.
func ParseInterviewType(s string) (InterviewType, error) {
	s = strings.TrimSpace(s)
	for _, t := range InterviewTypes() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", &ValidationError{Reason: fmt.Sprintf("unknown interview type %q", s)}
}

// StartConfig is the validated input for starting a session. It is consumed once.
type StartConfig struct {
	Field          Field
	InterviewType  InterviewType
	Difficulty     int
	TotalRounds    int
	Resume         string
	JobDescription string
}

// RawSelection holds the options exactly as the user picked or typed them.
type RawSelection struct {
	Field          string `yaml:"field"`
	CustomField    string `yaml:"custom_field"`
	InterviewType  string `yaml:"interview_type"`
	Difficulty     int    `yaml:"difficulty"`
	Rounds         int    `yaml:"rounds"`
	Resume         string `yaml:"resume"`
	JobDescription string `yaml:"job_description"`
}

// Limits bounds the numeric options.
type Limits struct {
	MinDifficulty int
	MaxDifficulty int
	MaxRounds     int
}

// DefaultLimits mirrors the 1-10 difficulty scale the scoring service uses.
func DefaultLimits() Limits {
	return Limits{
		MinDifficulty: 1,
		MaxDifficulty: 10,
		MaxRounds:     20,
	}
}

// Resolver turns a RawSelection into a StartConfig.
type Resolver struct {
	limits Limits
}

func NewResolver(limits Limits) *Resolver {
	return &Resolver{limits: limits}
}

// Resolve validates raw and assembles a StartConfig. It touches neither the
// network nor session state.
func (r *Resolver) Resolve(raw RawSelection) (StartConfig, error) {
	field, err := resolveField(raw.Field, raw.CustomField)
	if err != nil {
		return StartConfig{}, err
	}

	interviewType, err := ParseInterviewType(raw.InterviewType)
	if err != nil {
		return StartConfig{}, err
	}

	if raw.Difficulty < r.limits.MinDifficulty || raw.Difficulty > r.limits.MaxDifficulty {
		return StartConfig{}, &ValidationError{Reason: fmt.Sprintf(
			"difficulty must be between %d and %d", r.limits.MinDifficulty, r.limits.MaxDifficulty)}
	}

	if raw.Rounds < 1 {
		return StartConfig{}, &ValidationError{Reason: "rounds must be a positive number"}
	}
	if r.limits.MaxRounds > 0 && raw.Rounds > r.limits.MaxRounds {
		return StartConfig{}, &ValidationError{Reason: fmt.Sprintf("rounds must be at most %d", r.limits.MaxRounds)}
	}

	return StartConfig{
		Field:          field,
		InterviewType:  interviewType,
		Difficulty:     raw.Difficulty,
		TotalRounds:    raw.Rounds,
		Resume:         strings.TrimSpace(raw.Resume),
		JobDescription: strings.TrimSpace(raw.JobDescription),
	}, nil
}

func resolveField(choice, custom string) (Field, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" || strings.EqualFold(choice, CustomChoice) {
		return CustomField(custom)
	}
	for kind, label := range fieldLabels {
		if strings.EqualFold(label, choice) {
			return Field{kind: kind}, nil
		}
	}
	return Field{}, &ValidationError{Reason: fmt.Sprintf("unknown field %q; use %q with a custom value", choice, CustomChoice)}
}
