package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestParseFeedback(t *testing.T) {
	full := models.Feedback{
		Score: 7, CommunicationScore: 8, TechnicalScore: 6, ConfidenceScore: 7,
		Strengths: "structured", Weaknesses: "no metrics",
	}
	body := `{"score": 7, "communication_score": 8, "technical_score": 6,
		"confidence_score": 7, "strengths": "structured", "weaknesses": "no metrics"}`

	tests := []struct {
		name string
		raw  string
		want models.Feedback
		ok   bool
	}{
		{"plain object", body, full, true},
		{"fenced block", "Here you go:\n```json\n" + body + "\n```\nGood luck!", full, true},
		{"fence without language", "```\n" + body + "\n```", full, true},
		{"object inside prose", "Evaluation follows. " + body + " End.", full, true},
		{
			"scores clamped and truncated",
			`{"score": 14, "communication_score": -3, "technical_score": 6.9, "confidence_score": "9"}`,
			models.Feedback{Score: 10, CommunicationScore: 1, TechnicalScore: 6, ConfidenceScore: 9},
			true,
		},
		{
			"overall derived when score is not numeric",
			`{"score": null, "communication_score": 6, "technical_score": 9, "confidence_score": 8, "strengths": "depth"}`,
			models.Feedback{Score: 8, CommunicationScore: 6, TechnicalScore: 9, ConfidenceScore: 8, Strengths: "depth"},
			true,
		},
		{
			"derived score rounds half to even",
			`{"score": "n/a", "communication_score": 6, "technical_score": 7, "confidence_score": null}`,
			models.Feedback{Score: 6, CommunicationScore: 6, TechnicalScore: 7},
			true,
		},
		{
			"missing keys clamp to the minimum",
			`{"communication_score": 8, "technical_score": 6, "confidence_score": 7}`,
			models.Feedback{Score: 1, CommunicationScore: 8, TechnicalScore: 6, ConfidenceScore: 7},
			true,
		},
		{
			"text only",
			`{"strengths": "nice", "weaknesses": "short"}`,
			models.Feedback{Score: 1, CommunicationScore: 1, TechnicalScore: 1, ConfidenceScore: 1, Strengths: "nice", Weaknesses: "short"},
			true,
		},
		{
			"non-string text fields kept as JSON",
			`{"score": 5, "communication_score": 5, "technical_score": 5, "confidence_score": 5, "strengths": ["clear", "calm"]}`,
			models.Feedback{Score: 5, CommunicationScore: 5, TechnicalScore: 5, ConfidenceScore: 5, Strengths: `["clear","calm"]`},
			true,
		},
		{
			"no usable scores",
			`{"strengths": "nice", "score": "n/a", "communication_score": null, "technical_score": "high", "confidence_score": [7]}`,
			models.Feedback{},
			false,
		},
		{"not JSON", "The candidate did well.", models.Feedback{}, false},
		{"JSON array", `[1, 2, 3]`, models.Feedback{}, false},
		{"empty", "   ", models.Feedback{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFeedback(tt.raw)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateAverage(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAverage(nil))
	assert.Equal(t, 7.0, CalculateAverage([]int{7}))
	assert.Equal(t, 6.67, CalculateAverage([]int{6, 7, 7}))
	assert.Equal(t, 7.5, CalculateAverage([]int{8, 7}))
}

func TestAdjustDifficulty(t *testing.T) {
	tests := []struct {
		current, score, want int
	}{
		{5, 8, 7},
		{5, 10, 7},
		{9, 9, 10},
		{5, 4, 4},
		{1, 2, 1},
		{5, 5, 6},
		{5, 7, 6},
		{10, 6, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AdjustDifficulty(tt.current, tt.score, 1, 10),
			"difficulty %d after score %d", tt.current, tt.score)
	}
}
