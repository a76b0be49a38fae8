package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewSession is one interview attempt as stored by the scoring server.
type InterviewSession struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Field           string        `gorm:"type:text;not null" json:"field"`
	InterviewType   string        `gorm:"type:text;not null" json:"interview_type"`
	Difficulty      int           `gorm:"not null" json:"difficulty"`
	TotalRounds     int           `gorm:"not null" json:"total_rounds"`
	CurrentRound    int           `gorm:"not null;default:1" json:"current_round"`
	Resume          string        `gorm:"type:text" json:"resume"`
	JobDescription  string        `gorm:"type:text" json:"job_description"`
	CurrentQuestion string        `gorm:"type:text" json:"current_question"`
	History         []RoundRecord `gorm:"type:jsonb;serializer:json" json:"history"`
	ScoreHistory    []int         `gorm:"type:jsonb;serializer:json" json:"score_history"`
	AverageScore    float64       `gorm:"type:decimal(4,2);default:0" json:"average_score"`
	Completed       bool          `gorm:"not null;default:false" json:"completed"`
	FinalReport     *string       `gorm:"type:text" json:"final_report,omitempty"`
	CreatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// RoundRecord is one answered question kept in the session history.
type RoundRecord struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Evaluation Feedback `json:"evaluation"`
}

// Feedback is the normalised evaluation of a single answer. Scores are 1-10,
// or 0 when the model sent a value that is not a number.
type Feedback struct {
	Score              int    `json:"score"`
	CommunicationScore int    `json:"communication_score"`
	TechnicalScore     int    `json:"technical_score"`
	ConfidenceScore    int    `json:"confidence_score"`
	Strengths          string `json:"strengths"`
	Weaknesses         string `json:"weaknesses"`
}
