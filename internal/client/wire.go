package client

import (
	"encoding/json"
	"strings"

	"alfredoptarigan/interview-coach/internal/session"
)

// The envelopes below decode leniently: optional fields are pointers so a
// missing value is distinguishable from zero, and feedback may be an object or
// a plain string.

type startEnvelope struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type submitEnvelope struct {
	Feedback          json.RawMessage `json:"feedback"`
	AverageScore      *float64        `json:"average_score"`
	InterviewComplete bool            `json:"interview_complete"`
	NextQuestion      string          `json:"next_question"`
	CurrentRound      *int            `json:"current_round"`
	FinalReport       string          `json:"final_report"`
}

type feedbackObject struct {
	Score              float64 `json:"score"`
	CommunicationScore float64 `json:"communication_score"`
	TechnicalScore     float64 `json:"technical_score"`
	ConfidenceScore    float64 `json:"confidence_score"`
	Strengths          string  `json:"strengths"`
	Weaknesses         string  `json:"weaknesses"`
}

func (e submitEnvelope) feedback() *session.Feedback {
	raw := strings.TrimSpace(string(e.Feedback))
	if raw == "" || raw == "null" {
		return nil
	}

	var obj feedbackObject
	if err := json.Unmarshal(e.Feedback, &obj); err == nil {
		return &session.Feedback{
			Score:              obj.Score,
			CommunicationScore: obj.CommunicationScore,
			TechnicalScore:     obj.TechnicalScore,
			ConfidenceScore:    obj.ConfidenceScore,
			Strengths:          obj.Strengths,
			Weaknesses:         obj.Weaknesses,
		}
	}

	var text string
	if err := json.Unmarshal(e.Feedback, &text); err == nil {
		return &session.Feedback{Text: text}
	}
	return &session.Feedback{Text: raw}
}

type errorEnvelope struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// detail returns the detail field when it is a string. Validation errors from
// some servers send a list here; those fall back to the status text.
func (e errorEnvelope) detail() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil {
		return ""
	}
	return s
}
