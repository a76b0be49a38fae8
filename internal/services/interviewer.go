package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

var (
	// ErrInvalidSession covers unknown ids and ids that are not uuids.
	ErrInvalidSession = errors.New("invalid session id")
	// ErrInterviewComplete is returned for answers sent after the last round.
	ErrInterviewComplete = errors.New("interview already complete")
)

// RequestError is a request that is well-formed JSON but not acceptable.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// FeedbackParseError means the model answered but no evaluation could be
// read from it. The session is left unchanged.
type FeedbackParseError struct {
	Raw string
}

func (e *FeedbackParseError) Error() string { return "failed to parse AI response" }

const (
	questionTemperature   float32 = 0.7
	evaluationTemperature float32 = 0.2
	reportTemperature     float32 = 0.5
)

type InterviewService interface {
	StartInterview(ctx context.Context, req models.StartInterviewRequest) (*models.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error)
	SessionSummary(ctx context.Context, sessionID string) (*models.SessionSummaryResponse, error)
}

// InterviewLimits bounds what a start request may ask for.
type InterviewLimits struct {
	MinDifficulty int
	MaxDifficulty int
	MaxRounds     int
	MaxRetries    int
}

type interviewService struct {
	sessionRepo   repositories.InterviewSessionRepository
	geminiService GeminiService
	retriever     ContextRetriever
	promptBuilder *PromptBuilder
	limits        InterviewLimits

	// Answers to the same session are applied one at a time.
	locks [32]sync.Mutex
}

// NewInterviewService wires the interviewer. retriever may be nil.
func NewInterviewService(
	sessionRepo repositories.InterviewSessionRepository,
	geminiService GeminiService,
	retriever ContextRetriever,
	limits InterviewLimits,
) InterviewService {
	return &interviewService{
		sessionRepo:   sessionRepo,
		geminiService: geminiService,
		retriever:     retriever,
		promptBuilder: NewPromptBuilder(),
		limits:        limits,
	}
}

func (s *interviewService) validateStart(req *models.StartInterviewRequest) error {
	req.Field = strings.TrimSpace(req.Field)
	req.InterviewType = strings.TrimSpace(req.InterviewType)
	req.Resume = strings.TrimSpace(req.Resume)
	req.JobDescription = strings.TrimSpace(req.JobDescription)

	switch {
	case req.Field == "":
		return &RequestError{Message: "field is required"}
	case req.InterviewType == "":
		return &RequestError{Message: "interview_type is required"}
	case req.Difficulty < s.limits.MinDifficulty || req.Difficulty > s.limits.MaxDifficulty:
		return &RequestError{Message: fmt.Sprintf("difficulty must be between %d and %d",
			s.limits.MinDifficulty, s.limits.MaxDifficulty)}
	case req.TotalRounds < 1 || req.TotalRounds > s.limits.MaxRounds:
		return &RequestError{Message: fmt.Sprintf("total_rounds must be between 1 and %d", s.limits.MaxRounds)}
	}
	return nil
}

// StartInterview implements InterviewService.
func (s *interviewService) StartInterview(ctx context.Context, req models.StartInterviewRequest) (*models.StartInterviewResponse, error) {
	if err := s.validateStart(&req); err != nil {
		return nil, err
	}

	session := &models.InterviewSession{
		ID:             uuid.New(),
		Field:          req.Field,
		InterviewType:  req.InterviewType,
		Difficulty:     req.Difficulty,
		TotalRounds:    req.TotalRounds,
		CurrentRound:   1,
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
		History:        []models.RoundRecord{},
		ScoreHistory:   []int{},
	}

	question, err := s.generateQuestion(ctx, session)
	if err != nil {
		return nil, err
	}
	session.CurrentQuestion = question

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	log.Printf("✅ Interview %s started (%s, %s, %d rounds)\n",
		session.ID, session.Field, session.InterviewType, session.TotalRounds)

	return &models.StartInterviewResponse{
		SessionID: session.ID.String(),
		Question:  question,
	}, nil
}

// SubmitAnswer implements InterviewService.
func (s *interviewService) SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, &RequestError{Message: "answer is required"}
	}

	id, err := uuid.Parse(strings.TrimSpace(req.SessionID))
	if err != nil {
		return nil, ErrInvalidSession
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.findSession(id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrInterviewComplete
	}

	question := session.CurrentQuestion
	raw, err := s.geminiService.GenerateTextWithRetry(ctx,
		s.promptBuilder.BuildEvaluationPrompt(session, question, req.Answer),
		evaluationTemperature, s.limits.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate evaluation: %w", err)
	}

	feedback, ok := ParseFeedback(raw)
	if !ok {
		log.Printf("⚠️  Unparseable evaluation for session %s (%d characters)\n", session.ID, len(raw))
		return nil, &FeedbackParseError{Raw: raw}
	}

	session.History = append(session.History, models.RoundRecord{
		Question:   question,
		Answer:     req.Answer,
		Evaluation: feedback,
	})
	session.ScoreHistory = append(session.ScoreHistory, feedback.Score)
	session.AverageScore = CalculateAverage(session.ScoreHistory)
	session.Difficulty = AdjustDifficulty(session.Difficulty, feedback.Score,
		s.limits.MinDifficulty, s.limits.MaxDifficulty)
	session.CurrentRound++

	resp := &models.SubmitAnswerResponse{
		Feedback:     feedback,
		AverageScore: session.AverageScore,
	}

	if session.CurrentRound > session.TotalRounds {
		report, err := s.geminiService.GenerateTextWithRetry(ctx,
			s.promptBuilder.BuildFinalReportPrompt(session), reportTemperature, s.limits.MaxRetries)
		if err != nil {
			return nil, fmt.Errorf("failed to generate final report: %w", err)
		}

		session.Completed = true
		session.CurrentQuestion = ""
		session.FinalReport = &report

		resp.InterviewComplete = true
		resp.FinalReport = report
	} else {
		next, err := s.generateQuestion(ctx, session)
		if err != nil {
			return nil, err
		}

		session.CurrentQuestion = next
		resp.NextQuestion = next
		resp.CurrentRound = session.CurrentRound
	}

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	return resp, nil
}

// SessionSummary implements InterviewService.
func (s *interviewService) SessionSummary(ctx context.Context, sessionID string) (*models.SessionSummaryResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.findSession(id)
	if err != nil {
		return nil, err
	}

	history := session.ScoreHistory
	if history == nil {
		history = []int{}
	}

	return &models.SessionSummaryResponse{
		TotalRounds:       session.TotalRounds,
		CompletedRounds:   len(session.ScoreHistory),
		AverageScore:      session.AverageScore,
		ScoreHistory:      history,
		DifficultyCurrent: session.Difficulty,
	}, nil
}

func (s *interviewService) findSession(id uuid.UUID) (*models.InterviewSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	return session, err
}

// generateQuestion asks the model for a question at the session's current
// state. Reference lookup failures only cost the prompt its reference section.
func (s *interviewService) generateQuestion(ctx context.Context, session *models.InterviewSession) (string, error) {
	var reference string
	if s.retriever != nil {
		ref, err := s.retriever.Retrieve(ctx, s.promptBuilder.BuildRetrievalQuery(session))
		if err != nil {
			log.Printf("⚠️  Warning: Failed to retrieve reference material: %v\n", err)
		} else {
			reference = ref
		}
	}

	question, err := s.geminiService.GenerateTextWithRetry(ctx,
		s.promptBuilder.BuildQuestionPrompt(session, reference), questionTemperature, s.limits.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}

	return strings.TrimSpace(question), nil
}

func (s *interviewService) lockFor(id uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}
