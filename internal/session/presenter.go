package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Panels says which parts of the screen are shown. They are independent.
type Panels struct {
	Interview bool
	Feedback  bool
	Final     bool
	Summary   bool
}

// ViewModel is everything a front end needs to draw the session.
type ViewModel struct {
	Panels Panels

	SessionPill string
	RoundPill   string
	AvgPill     string

	Question    string
	Feedback    string
	FinalReport string
	Summary     string

	CanStart       bool
	CanSubmit      bool
	CanLoadSummary bool
	Busy           bool
}

// Project maps a State onto a ViewModel. It does not modify s.
func Project(s State) ViewModel {
	vm := ViewModel{
		Panels: Panels{
			Interview: s.Phase == PhaseActive,
			Feedback:  s.Feedback != nil,
			Final:     s.Phase == PhaseCompleted,
			Summary:   s.Summary != nil,
		},
		SessionPill:    "No Session",
		RoundPill:      roundPill(s),
		AvgPill:        "Avg: " + strconv.FormatFloat(s.AverageScore, 'f', -1, 64),
		Question:       s.Question,
		Feedback:       FormatFeedback(s.Feedback),
		FinalReport:    s.FinalReport,
		Summary:        s.Summary.Indent(),
		CanStart:       s.Phase == PhaseIdle && !s.Pending,
		CanSubmit:      s.Phase == PhaseActive && !s.Pending,
		CanLoadSummary: s.HasSession(),
		Busy:           s.Pending,
	}
	if s.HasSession() {
		vm.SessionPill = "Session: " + s.SessionID
	}
	return vm
}

func roundPill(s State) string {
	if s.TotalRounds == 0 {
		return fmt.Sprintf("Round: %d/-", s.CurrentRound)
	}
	current := s.CurrentRound
	if current > s.TotalRounds {
		current = s.TotalRounds
	}
	return fmt.Sprintf("Round: %d/%d", current, s.TotalRounds)
}

// FormatFeedback renders one round's feedback as plain text.
func FormatFeedback(fb *Feedback) string {
	if fb == nil {
		return ""
	}
	if fb.Text != "" {
		return fb.Text
	}
	return strings.Join([]string{
		"Score: " + formatScore(fb.Score),
		"Communication: " + formatScore(fb.CommunicationScore),
		"Technical: " + formatScore(fb.TechnicalScore),
		"Confidence: " + formatScore(fb.ConfidenceScore),
		"",
		"Strengths: " + fb.Strengths,
		"",
		"Weaknesses: " + fb.Weaknesses,
	}, "\n")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
