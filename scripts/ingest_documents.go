package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/document"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

// manifestEntry is one file listed in the ingest manifest.
type manifestEntry struct {
	Path    string `yaml:"path"`
	DocType string `yaml:"doc_type"`
	Name    string `yaml:"name"`
}

type manifest struct {
	Documents []manifestEntry `yaml:"documents"`
}

var (
	manifestPath string
	force        bool
	chunkSize    int
	chunkOverlap int
)

func main() {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Embed reference documents into Qdrant for question generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "./reference_docs/manifest.yaml", "YAML list of documents to ingest")
	cmd.Flags().BoolVar(&force, "force", false, "re-ingest documents that were already ingested")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 1000, "maximum chunk size in characters")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 200, "characters repeated between chunks")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	// Paths are relative to the manifest.
	base := filepath.Dir(path)
	for i := range m.Documents {
		if !filepath.IsAbs(m.Documents[i].Path) {
			m.Documents[i].Path = filepath.Join(base, m.Documents[i].Path)
		}
	}

	return &m, nil
}

func run(ctx context.Context) error {
	log.Println("🚀 Starting document ingestion...")

	cfg := config.Load()
	if cfg.Qdrant.URL == "" {
		return fmt.Errorf("QDRANT_URL is not set")
	}

	m, err := readManifest(manifestPath)
	if err != nil {
		return err
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return err
	}
	docRepo := repositories.NewReferenceDocumentRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return fmt.Errorf("failed to initialize Qdrant: %w", err)
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		return fmt.Errorf("failed to initialize collection: %w", err)
	}

	chunker := services.NewTextChunker()

	var successCount, skipCount, failCount int
	for _, entry := range m.Documents {
		log.Printf("\n📄 Processing: %s", entry.Name)
		log.Printf("   Path: %s", entry.Path)
		log.Printf("   Type: %s", entry.DocType)

		existing, err := docRepo.FindBySourcePath(entry.Path)
		if err != nil {
			log.Printf("   ❌ %v", err)
			failCount++
			continue
		}
		if existing != nil && !force {
			log.Printf("   ⏭️  Already ingested (%d chunks), skipping", existing.ChunkCount)
			skipCount++
			continue
		}

		content, err := document.Load(entry.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		if existing != nil {
			if err := qdrantService.DeleteSource(ctx, entry.Path); err != nil {
				log.Printf("   ❌ %v", err)
				failCount++
				continue
			}
		}

		chunks := chunker.ChunkText(content.Text, chunkSize, chunkOverlap)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, text := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, text)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			chunk := services.ReferenceChunk{Source: entry.Path, DocType: entry.DocType, Index: i, Text: text}
			if err := qdrantService.UpsertChunk(ctx, chunk, embedding); err != nil {
				log.Printf("   ❌ %v", err)
				continue
			}
			stored++

			if stored%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", stored, len(chunks))
			}
		}

		if stored < len(chunks) {
			log.Printf("   ❌ Only %d of %d chunks stored; not recording %s", stored, len(chunks), entry.Name)
			failCount++
			continue
		}

		record := existing
		if record == nil {
			record = &models.ReferenceDocument{SourcePath: entry.Path}
		}
		record.Name = entry.Name
		record.DocType = entry.DocType
		record.ChunkCount = stored

		if existing == nil {
			err = docRepo.Create(record)
		} else {
			err = docRepo.Save(record)
		}
		if err != nil {
			log.Printf("   ❌ %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %s", entry.Name)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Ingested: %d documents", successCount)
	log.Printf("   ⏭️  Skipped: %d documents", skipCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	for _, docType := range []string{services.DocTypeQuestionBank, services.DocTypeRubric, services.DocTypeRoleProfile} {
		docs, err := docRepo.ListByDocType(docType)
		if err != nil {
			return err
		}
		log.Printf("   📚 %s: %d documents in store", docType, len(docs))
	}
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		return fmt.Errorf("%d documents failed to ingest", failCount)
	}

	log.Println("✅ All documents ingested successfully!")
	return nil
}
