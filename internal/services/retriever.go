package services

import (
	"context"
	"fmt"
	"log"
)

// ContextRetriever finds reference material relevant to a query. The
// interviewer treats a nil retriever as "no reference material".
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

type referenceRetriever struct {
	gemini   GeminiService
	qdrant   QdrantService
	docTypes []string
	perType  int
}

// NewReferenceRetriever embeds queries with Gemini and searches Qdrant for
// the top perType chunks of every doc type.
func NewReferenceRetriever(gemini GeminiService, qdrant QdrantService, perType int) ContextRetriever {
	return &referenceRetriever{
		gemini:   gemini,
		qdrant:   qdrant,
		docTypes: []string{DocTypeQuestionBank, DocTypeRubric, DocTypeRoleProfile},
		perType:  perType,
	}
}

// Retrieve implements ContextRetriever. A failed search for one doc type is
// logged and skipped.
func (r *referenceRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	embedding, err := r.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	var all []SearchResult
	for _, docType := range r.docTypes {
		results, err := r.qdrant.SearchSimilar(ctx, embedding, docType, r.perType)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		all = append(all, results...)
	}

	return FormatReferenceContext(all), nil
}
