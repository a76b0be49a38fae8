package session

import (
	"bytes"
	"context"
	"encoding/json"
)

// Gateway performs the remote interview operations. Implementations hold no
// session state and never retry.
type Gateway interface {
	StartInterview(ctx context.Context, cfg StartConfig) (StartResult, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (SubmitResult, error)
	SessionSummary(ctx context.Context, sessionID string) (Summary, error)
}

type StartResult struct {
	SessionID string
	Question  string
}

// SubmitResult is one round's outcome. Optional server fields are nil when absent.
type SubmitResult struct {
	Feedback          *Feedback
	AverageScore      *float64
	InterviewComplete bool
	NextQuestion      string
	CurrentRound      *int
	FinalReport       string
}

// Feedback is displayed as received. Text is set instead of the scores when the
// server answered with a plain string.
type Feedback struct {
	Score              float64
	CommunicationScore float64
	TechnicalScore     float64
	ConfidenceScore    float64
	Strengths          string
	Weaknesses         string
	Text               string
}

// Summary is the server's summary exactly as it was received. It may be any
// JSON value; nil means no summary has been loaded.
type Summary json.RawMessage

// AverageScore extracts average_score when the summary is an object and the
// field is numeric.
func (s Summary) AverageScore() (float64, bool) {
	var obj struct {
		AverageScore *float64 `json:"average_score"`
	}
	if err := json.Unmarshal(s, &obj); err != nil || obj.AverageScore == nil {
		return 0, false
	}
	return *obj.AverageScore, true
}

// Indent returns the summary as indented JSON.
func (s Summary) Indent() string {
	if len(s) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, s, "", "  "); err != nil {
		return string(s)
	}
	return buf.String()
}

func (s Summary) clone() Summary {
	if s == nil {
		return nil
	}
	return bytes.Clone(s)
}
