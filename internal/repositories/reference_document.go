package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

type ReferenceDocumentRepository interface {
	Create(doc *models.ReferenceDocument) error
	Save(doc *models.ReferenceDocument) error
	FindBySourcePath(path string) (*models.ReferenceDocument, error)
	ListByDocType(docType string) ([]models.ReferenceDocument, error)
}

type referenceDocumentRepository struct {
	db *gorm.DB
}

func NewReferenceDocumentRepository(db *gorm.DB) ReferenceDocumentRepository {
	return &referenceDocumentRepository{db: db}
}

// Create implements ReferenceDocumentRepository.
func (r *referenceDocumentRepository) Create(doc *models.ReferenceDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create reference document: %w", err)
	}

	return nil
}

// Save implements ReferenceDocumentRepository.
func (r *referenceDocumentRepository) Save(doc *models.ReferenceDocument) error {
	doc.UpdatedAt = time.Now()
	if err := r.db.Save(doc).Error; err != nil {
		return fmt.Errorf("failed to save reference document: %w", err)
	}

	return nil
}

// FindBySourcePath returns nil without error when the file was never ingested.
func (r *referenceDocumentRepository) FindBySourcePath(path string) (*models.ReferenceDocument, error) {
	var doc models.ReferenceDocument
	if err := r.db.Where("source_path = ?", path).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to find reference document: %w", err)
	}

	return &doc, nil
}

// ListByDocType implements ReferenceDocumentRepository.
func (r *referenceDocumentRepository) ListByDocType(docType string) ([]models.ReferenceDocument, error) {
	var docs []models.ReferenceDocument
	if err := r.db.Where("doc_type = ?", docType).Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list reference documents: %w", err)
	}

	return docs, nil
}
