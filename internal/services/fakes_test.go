package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGemini answers prompts by kind: question prompts get numbered
// questions, evaluation prompts pop the next canned evaluation, and report
// prompts get the configured report.
type fakeGemini struct {
	mu          sync.Mutex
	evaluations []string
	report      string
	questionErr error
	questions   int
	prompts     []string
	embedded    []string
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedded = append(f.embedded, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)

	switch {
	case strings.Contains(prompt, "evaluating a candidate's interview response"):
		if len(f.evaluations) == 0 {
			return "", errors.New("no evaluation scripted")
		}
		next := f.evaluations[0]
		f.evaluations = f.evaluations[1:]
		return next, nil
	case strings.Contains(prompt, "Generate a final structured report"):
		return f.report, nil
	default:
		if f.questionErr != nil {
			return "", f.questionErr
		}
		f.questions++
		return "  Question " + string(rune('0'+f.questions)) + "  ", nil
	}
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// memorySessions is an InterviewSessionRepository backed by a map.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.InterviewSession
	saves    int
	cutoffs  []time.Time
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[uuid.UUID]models.InterviewSession{}}
}

func (m *memorySessions) Create(s *models.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.sessions[s.ID] = copySession(*s)
	return nil
}

func (m *memorySessions) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	c := copySession(s)
	return &c, nil
}

func (m *memorySessions) Save(s *models.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return repositories.ErrSessionNotFound
	}
	s.UpdatedAt = time.Now()
	m.sessions[s.ID] = copySession(*s)
	m.saves++
	return nil
}

func (m *memorySessions) DeleteIdleBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs = append(m.cutoffs, cutoff)
	var n int64
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memorySessions) get(t *testing.T, id string) models.InterviewSession {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uuid.MustParse(id)]
	if !ok {
		t.Fatalf("session %s not stored", id)
	}
	return copySession(s)
}

func copySession(s models.InterviewSession) models.InterviewSession {
	s.History = append([]models.RoundRecord(nil), s.History...)
	s.ScoreHistory = append([]int(nil), s.ScoreHistory...)
	return s
}

type fakeRetriever struct {
	text    string
	err     error
	queries []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.text, f.err
}
