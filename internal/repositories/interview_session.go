package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("interview session not found")

type InterviewSessionRepository interface {
	Create(s *models.InterviewSession) error
	FindByID(id uuid.UUID) (*models.InterviewSession, error)
	Save(s *models.InterviewSession) error
	DeleteIdleBefore(cutoff time.Time) (int64, error)
}

type interviewSessionRepository struct {
	db *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) InterviewSessionRepository {
	return &interviewSessionRepository{db: db}
}

func (r *interviewSessionRepository) Create(s *models.InterviewSession) error {
	if err := r.db.Create(s).Error; err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

func (r *interviewSessionRepository) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	var s models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &s, nil
}

// Save writes every column of s, including the jsonb history. It only updates;
// a row removed in the meantime is reported as ErrSessionNotFound.
func (r *interviewSessionRepository) Save(s *models.InterviewSession) error {
	s.UpdatedAt = time.Now()
	result := r.db.Model(s).Select("*").Updates(s)
	if result.Error != nil {
		return fmt.Errorf("failed to save interview session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteIdleBefore removes sessions not touched since cutoff and reports how
// many were removed.
func (r *interviewSessionRepository) DeleteIdleBefore(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("updated_at < ?", cutoff).
		Delete(&models.InterviewSession{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
