package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt asks for the next question at the session's current
// difficulty. Earlier questions are listed so the model does not repeat them.
func (pb *PromptBuilder) BuildQuestionPrompt(s *models.InterviewSession, reference string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are conducting a %s interview.\n\n", s.InterviewType)
	fmt.Fprintf(&b, "Field: %s\n", s.Field)
	fmt.Fprintf(&b, "Difficulty Level: %d/10\n", s.Difficulty)
	fmt.Fprintf(&b, "Round: %d of %d\n\n", s.CurrentRound, s.TotalRounds)

	fmt.Fprintf(&b, "Resume:\n%s\n\n", orNone(s.Resume))
	fmt.Fprintf(&b, "Job Description:\n%s\n\n", orNone(s.JobDescription))

	if reference != "" {
		fmt.Fprintf(&b, "Reference Material:\n%s\n\n", reference)
	}

	if len(s.History) > 0 {
		b.WriteString("Questions already asked:\n")
		for i, r := range s.History {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(r.Question))
		}
		b.WriteString("\n")
	}

	b.WriteString("Ask a challenging interview question appropriate to the difficulty level.\n")
	b.WriteString("Return ONLY the question text.")

	return b.String()
}

// BuildEvaluationPrompt asks for a strict JSON evaluation of one answer.
func (pb *PromptBuilder) BuildEvaluationPrompt(s *models.InterviewSession, question, answer string) string {
	return fmt.Sprintf(`You are evaluating a candidate's interview response.

Field: %s
Interview Type: %s
Difficulty: %d/10

Question:
%s

Candidate Answer:
%s

Return your evaluation STRICTLY in this JSON format:

{
  "score": integer (1-10),
  "communication_score": integer (1-10),
  "technical_score": integer (1-10),
  "confidence_score": integer (1-10),
  "strengths": "string",
  "weaknesses": "string"
}

Rules:
- Return ONLY valid JSON.
- Do not include markdown/code fences.
- Do not include any text before or after JSON.`,
		s.Field, s.InterviewType, s.Difficulty, question, answer)
}

// BuildFinalReportPrompt summarises the whole interview.
func (pb *PromptBuilder) BuildFinalReportPrompt(s *models.InterviewSession) string {
	return fmt.Sprintf(`You conducted a full %s interview.

Field: %s

Interview History:
%s

Average Score: %.2f

Generate a final structured report with these sections:

Overall Summary
Strengths
Weaknesses
Hiring Recommendation (Strong Hire / Hire / Maybe / No Hire)`,
		s.InterviewType, s.Field, formatHistory(s.History), s.AverageScore)
}

// BuildRetrievalQuery is the text embedded to look up reference material.
func (pb *PromptBuilder) BuildRetrievalQuery(s *models.InterviewSession) string {
	return fmt.Sprintf("%s interview questions for %s at difficulty %d/10",
		s.InterviewType, s.Field, s.Difficulty)
}

func formatHistory(history []models.RoundRecord) string {
	if len(history) == 0 {
		return "(no answers recorded)"
	}

	var b strings.Builder
	for i, r := range history {
		fmt.Fprintf(&b, "Round %d\n", i+1)
		fmt.Fprintf(&b, "Question: %s\n", strings.TrimSpace(r.Question))
		fmt.Fprintf(&b, "Answer: %s\n", strings.TrimSpace(r.Answer))
		fmt.Fprintf(&b, "Score: %d (communication %d, technical %d, confidence %d)\n",
			r.Evaluation.Score, r.Evaluation.CommunicationScore,
			r.Evaluation.TechnicalScore, r.Evaluation.ConfidenceScore)
		fmt.Fprintf(&b, "Strengths: %s\n", r.Evaluation.Strengths)
		fmt.Fprintf(&b, "Weaknesses: %s\n\n", r.Evaluation.Weaknesses)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not provided)"
	}
	return s
}

// FormatReferenceContext joins retrieved chunks for a prompt. It returns an
// empty string when nothing was found.
func FormatReferenceContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Reference %d (%s, score %.2f) ---\n%s",
			i+1, result.DocType, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
