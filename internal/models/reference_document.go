package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceDocument records a file ingested into the vector store so it is
// not embedded twice.
type ReferenceDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:text" json:"name"`
	DocType    string    `gorm:"type:text;index" json:"doc_type"`
	SourcePath string    `gorm:"type:text;uniqueIndex" json:"source_path"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *ReferenceDocument) TableName() string {
	return "reference_documents"
}
