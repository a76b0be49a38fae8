package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  ViewModel
	}{
		{
			name:  "idle",
			state: newState(),
			want: ViewModel{
				SessionPill: "No Session",
				RoundPill:   "Round: 1/-",
				AvgPill:     "Avg: 0",
				CanStart:    true,
			},
		},
		{
			name: "starting",
			state: State{
				Phase:        PhaseIdle,
				CurrentRound: 1,
				Pending:      true,
			},
			want: ViewModel{
				SessionPill: "No Session",
				RoundPill:   "Round: 1/-",
				AvgPill:     "Avg: 0",
				Busy:        true,
			},
		},
		{
			name: "active after one round",
			state: State{
				Phase:        PhaseActive,
				SessionID:    "abc",
				TotalRounds:  3,
				CurrentRound: 2,
				AverageScore: 7.5,
				Question:     "Q2",
				Feedback: &Feedback{
					Score:              8,
					CommunicationScore: 7,
					TechnicalScore:     9,
					ConfidenceScore:    6,
					Strengths:          "clear",
					Weaknesses:         "brief",
				},
			},
			want: ViewModel{
				Panels:      Panels{Interview: true, Feedback: true},
				SessionPill: "Session: abc",
				RoundPill:   "Round: 2/3",
				AvgPill:     "Avg: 7.5",
				Question:    "Q2",
				Feedback: "Score: 8\nCommunication: 7\nTechnical: 9\nConfidence: 6\n\n" +
					"Strengths: clear\n\nWeaknesses: brief",
				CanSubmit:      true,
				CanLoadSummary: true,
			},
		},
		{
			name: "completed with summary",
			state: State{
				Phase:        PhaseCompleted,
				SessionID:    "abc",
				TotalRounds:  3,
				CurrentRound: 4,
				AverageScore: 6,
				Feedback:     &Feedback{Text: "good"},
				FinalReport:  "hire",
				Summary:      Summary(`{"average_score":6,"total_rounds":3}`),
			},
			want: ViewModel{
				Panels:         Panels{Feedback: true, Final: true, Summary: true},
				SessionPill:    "Session: abc",
				RoundPill:      "Round: 3/3",
				AvgPill:        "Avg: 6",
				Feedback:       "good",
				FinalReport:    "hire",
				Summary:        "{\n  \"average_score\": 6,\n  \"total_rounds\": 3\n}",
				CanLoadSummary: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.state)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Project() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProject_DoesNotMutate(t *testing.T) {
	st := State{
		Phase:        PhaseActive,
		SessionID:    "abc",
		TotalRounds:  2,
		CurrentRound: 1,
		Summary:      Summary(`{"average_score":1}`),
	}
	before := st.clone()

	first := Project(st)
	second := Project(st)

	assert.Equal(t, before, st)
	assert.Equal(t, first, second)
}

func TestFormatFeedback_Nil(t *testing.T) {
	assert.Empty(t, FormatFeedback(nil))
}
