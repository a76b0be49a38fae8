package services

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

var fencedJSON = regexp.MustCompile("(?i)```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")

// ParseFeedback extracts an evaluation from model output. It tries the whole
// text, then a fenced code block, then the outermost braces. ok is false when
// no object parses or every score in it is unusable.
func ParseFeedback(raw string) (models.Feedback, bool) {
	text := strings.TrimSpace(raw)

	candidates := []string{text}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start != -1 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, c := range candidates {
		var payload map[string]any
		if err := json.Unmarshal([]byte(c), &payload); err != nil || payload == nil {
			continue
		}
		if fb, ok := normalizeFeedback(payload); ok {
			return fb, true
		}
	}

	return models.Feedback{}, false
}

func normalizeFeedback(payload map[string]any) (models.Feedback, bool) {
	fb := models.Feedback{
		Score:              scoreField(payload, "score"),
		CommunicationScore: scoreField(payload, "communication_score"),
		TechnicalScore:     scoreField(payload, "technical_score"),
		ConfidenceScore:    scoreField(payload, "confidence_score"),
		Strengths:          textValue(payload["strengths"]),
		Weaknesses:         textValue(payload["weaknesses"]),
	}

	if fb.Score == 0 {
		var sum, n int
		for _, v := range []int{fb.CommunicationScore, fb.TechnicalScore, fb.ConfidenceScore} {
			if v > 0 {
				sum += v
				n++
			}
		}
		if n > 0 {
			fb.Score = int(math.RoundToEven(float64(sum) / float64(n)))
		}
	}

	if fb.Score == 0 && fb.CommunicationScore == 0 && fb.TechnicalScore == 0 && fb.ConfidenceScore == 0 {
		return models.Feedback{}, false
	}

	return fb, true
}

// scoreField reads a score key. An absent key counts as 0, which clamps to
// the minimum score; a present null or non-numeric value yields 0.
func scoreField(payload map[string]any, key string) int {
	v, ok := payload[key]
	if !ok {
		v = 0.0
	}
	return clampScore(v)
}

// clampScore truncates a numeric value into 1-10. Non-numeric values yield 0.
func clampScore(v any) int {
	var n int
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		n = int(x)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		n = i
	case bool:
		if x {
			n = 1
		}
	default:
		return 0
	}

	return min(10, max(1, n))
}

func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// CalculateAverage is the mean of scores rounded to two decimals, or 0 for
// no scores.
func CalculateAverage(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum int
	for _, s := range scores {
		sum += s
	}
	return math.Round(float64(sum)/float64(len(scores))*100) / 100
}

// AdjustDifficulty moves the difficulty after an answer: up two for a strong
// score, down one for a weak one, otherwise up one, kept within [lo, hi].
func AdjustDifficulty(current, score, lo, hi int) int {
	switch {
	case score >= 8:
		current += 2
	case score <= 4:
		current--
	default:
		current++
	}
	return min(hi, max(lo, current))
}
