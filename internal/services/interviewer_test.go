package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

const (
	strongEval = `{"score": 8, "communication_score": 8, "technical_score": 9, "confidence_score": 7, "strengths": "depth", "weaknesses": "pace"}`
	weakEval   = "```json\n{\"score\": 3, \"communication_score\": 4, \"technical_score\": 2, \"confidence_score\": 3, \"strengths\": \"honest\", \"weaknesses\": \"gaps\"}\n```"
)

var testLimits = InterviewLimits{MinDifficulty: 1, MaxDifficulty: 10, MaxRounds: 20, MaxRetries: 1}

func newTestInterviewer(gemini *fakeGemini, retriever ContextRetriever) (InterviewService, *memorySessions) {
	repo := newMemorySessions()
	return NewInterviewService(repo, gemini, retriever, testLimits), repo
}

func startRequest(rounds int) models.StartInterviewRequest {
	return models.StartInterviewRequest{
		Field:          "Data Science",
		InterviewType:  "Technical",
		Difficulty:     5,
		TotalRounds:    rounds,
		Resume:         "  pandas, sklearn  ",
		JobDescription: "",
	}
}

func TestInterviewService_StartInterview(t *testing.T) {
	gemini := &fakeGemini{}
	svc, repo := newTestInterviewer(gemini, nil)

	resp, err := svc.StartInterview(context.Background(), startRequest(3))

	require.NoError(t, err)
	assert.Equal(t, "Question 1", resp.Question)
	_, err = uuid.Parse(resp.SessionID)
	require.NoError(t, err)

	stored := repo.get(t, resp.SessionID)
	assert.Equal(t, "Data Science", stored.Field)
	assert.Equal(t, 1, stored.CurrentRound)
	assert.Equal(t, "pandas, sklearn", stored.Resume)
	assert.Equal(t, "Question 1", stored.CurrentQuestion)
	assert.Empty(t, stored.ScoreHistory)

	prompt := gemini.lastPrompt()
	assert.Contains(t, prompt, "You are conducting a Technical interview.")
	assert.Contains(t, prompt, "Difficulty Level: 5/10")
	assert.Contains(t, prompt, "Job Description:\n(not provided)")
	assert.NotContains(t, prompt, "Reference Material")
}

func TestInterviewService_StartInterview_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.StartInterviewRequest)
		msg    string
	}{
		{"blank field", func(r *models.StartInterviewRequest) { r.Field = "  " }, "field is required"},
		{"blank type", func(r *models.StartInterviewRequest) { r.InterviewType = "" }, "interview_type is required"},
		{"difficulty too high", func(r *models.StartInterviewRequest) { r.Difficulty = 11 }, "difficulty must be between 1 and 10"},
		{"zero rounds", func(r *models.StartInterviewRequest) { r.TotalRounds = 0 }, "total_rounds must be between 1 and 20"},
		{"too many rounds", func(r *models.StartInterviewRequest) { r.TotalRounds = 21 }, "total_rounds must be between 1 and 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGemini{}
			svc, _ := newTestInterviewer(gemini, nil)
			req := startRequest(3)
			tt.mutate(&req)

			_, err := svc.StartInterview(context.Background(), req)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.msg, reqErr.Message)
			assert.Zero(t, gemini.questions, "no question generated for a rejected request")
		})
	}
}

func TestInterviewService_StartInterview_GenerationFailure(t *testing.T) {
	gemini := &fakeGemini{questionErr: errors.New("quota exceeded")}
	svc, repo := newTestInterviewer(gemini, nil)

	_, err := svc.StartInterview(context.Background(), startRequest(3))

	assert.ErrorContains(t, err, "failed to generate question: quota exceeded")
	assert.Empty(t, repo.sessions, "nothing persisted when the first question fails")
}

func TestInterviewService_FullInterview(t *testing.T) {
	gemini := &fakeGemini{evaluations: []string{strongEval, weakEval}, report: "Hire"}
	svc, repo := newTestInterviewer(gemini, nil)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, startRequest(2))
	require.NoError(t, err)

	first, err := svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: start.SessionID, Answer: "answer one"})
	require.NoError(t, err)
	assert.False(t, first.InterviewComplete)
	assert.Equal(t, 2, first.CurrentRound)
	assert.Equal(t, "Question 2", first.NextQuestion)
	assert.Equal(t, 8, first.Feedback.Score)
	assert.Equal(t, 8.0, first.AverageScore)

	stored := repo.get(t, start.SessionID)
	assert.Equal(t, 7, stored.Difficulty, "strong answer raises difficulty by two")
	assert.Equal(t, "Question 2", stored.CurrentQuestion)
	require.Len(t, stored.History, 1)
	assert.Equal(t, "Question 1", stored.History[0].Question)
	assert.Equal(t, "answer one", stored.History[0].Answer)
	assert.Contains(t, gemini.lastPrompt(), "Questions already asked:\n1. Question 1")

	final, err := svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: start.SessionID, Answer: "answer two"})
	require.NoError(t, err)
	assert.True(t, final.InterviewComplete)
	assert.Equal(t, "Hire", final.FinalReport)
	assert.Empty(t, final.NextQuestion)
	assert.Zero(t, final.CurrentRound)
	assert.Equal(t, 3, final.Feedback.Score)
	assert.Equal(t, 5.5, final.AverageScore)
	assert.Contains(t, gemini.lastPrompt(), "Average Score: 5.50")

	stored = repo.get(t, start.SessionID)
	assert.True(t, stored.Completed)
	assert.Equal(t, 6, stored.Difficulty, "weak answer lowers difficulty by one")
	assert.Equal(t, []int{8, 3}, stored.ScoreHistory)
	require.NotNil(t, stored.FinalReport)
	assert.Equal(t, "Hire", *stored.FinalReport)

	_, err = svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: start.SessionID, Answer: "again"})
	assert.ErrorIs(t, err, ErrInterviewComplete)

	summary, err := svc.SessionSummary(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, &models.SessionSummaryResponse{
		TotalRounds:       2,
		CompletedRounds:   2,
		AverageScore:      5.5,
		ScoreHistory:      []int{8, 3},
		DifficultyCurrent: 6,
	}, summary)
}

func TestInterviewService_SubmitAnswer_ParseFailure(t *testing.T) {
	gemini := &fakeGemini{evaluations: []string{"I'd rate this a solid seven."}}
	svc, repo := newTestInterviewer(gemini, nil)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, startRequest(3))
	require.NoError(t, err)
	saves := repo.saves

	_, err = svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: start.SessionID, Answer: "answer"})

	var parseErr *FeedbackParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "I'd rate this a solid seven.", parseErr.Raw)
	assert.Equal(t, saves, repo.saves)

	stored := repo.get(t, start.SessionID)
	assert.Equal(t, 1, stored.CurrentRound)
	assert.Empty(t, stored.History)
}

func TestInterviewService_SubmitAnswer_Rejections(t *testing.T) {
	svc, _ := newTestInterviewer(&fakeGemini{}, nil)
	ctx := context.Background()

	_, err := svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: uuid.NewString(), Answer: "   "})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "answer is required", reqErr.Message)

	_, err = svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: "not-a-uuid", Answer: "a"})
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.SubmitAnswer(ctx, models.SubmitAnswerRequest{SessionID: uuid.NewString(), Answer: "a"})
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.SessionSummary(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestInterviewService_ReferenceMaterial(t *testing.T) {
	t.Run("included in question prompt", func(t *testing.T) {
		gemini := &fakeGemini{}
		retriever := &fakeRetriever{text: "--- Reference 1 ---\nAsk about bias-variance."}
		svc, _ := newTestInterviewer(gemini, retriever)

		_, err := svc.StartInterview(context.Background(), startRequest(3))

		require.NoError(t, err)
		assert.Equal(t, []string{"Technical interview questions for Data Science at difficulty 5/10"}, retriever.queries)
		assert.Contains(t, gemini.lastPrompt(), "Reference Material:\n--- Reference 1 ---\nAsk about bias-variance.")
	})

	t.Run("lookup failure is tolerated", func(t *testing.T) {
		gemini := &fakeGemini{}
		svc, _ := newTestInterviewer(gemini, &fakeRetriever{err: errors.New("qdrant down")})

		resp, err := svc.StartInterview(context.Background(), startRequest(3))

		require.NoError(t, err)
		assert.Equal(t, "Question 1", resp.Question)
		assert.NotContains(t, gemini.lastPrompt(), "Reference Material")
	})
}
