package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	sessionRepo := repositories.NewInterviewSessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reference material is optional; without Qdrant questions are generated
	// from the session alone.
	var retriever services.ContextRetriever
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		retriever = services.NewReferenceRetriever(geminiService, qdrantService, 2)
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("ℹ️  QDRANT_URL not set, reference retrieval disabled")
	}

	interviewService := services.NewInterviewService(sessionRepo, geminiService, retriever, services.InterviewLimits{
		MinDifficulty: cfg.Interview.MinDifficulty,
		MaxDifficulty: cfg.Interview.MaxDifficulty,
		MaxRounds:     cfg.Interview.MaxRounds,
		MaxRetries:    cfg.Interview.RetryMaxAttempts,
	})
	log.Println("✅ Interview service initialized")

	reaper := services.NewSessionReaper(sessionRepo, cfg.Interview.SessionTTL, cfg.Interview.ReaperInterval)
	reaper.Start(ctx)

	interviewHandler := handlers.NewInterviewHandler(interviewService)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName: "AI Interview Coach API",
		// Each answer costs up to three model calls.
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.SetupRoutes(app, interviewHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		reaper.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
