package session

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is everything the Controller knows about the current session.
// SessionID is empty exactly when Phase is PhaseIdle.
type State struct {
	Phase        Phase
	SessionID    string
	TotalRounds  int
	CurrentRound int
	AverageScore float64
	Pending      bool

	Question    string
	Feedback    *Feedback
	FinalReport string
	Summary     Summary
}

func newState() State {
	return State{
		Phase:        PhaseIdle,
		CurrentRound: 1,
	}
}

// HasSession reports whether a session id is held.
func (s State) HasSession() bool {
	return s.SessionID != ""
}

func (s State) clone() State {
	out := s
	if s.Feedback != nil {
		fb := *s.Feedback
		out.Feedback = &fb
	}
	out.Summary = s.Summary.clone()
	return out
}
