package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the interview API on app.
func SetupRoutes(app *fiber.App, interview *InterviewHandler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Backend Running",
			"endpoints": []string{
				"POST /start-interview",
				"POST /submit-answer",
				"GET /session-summary/:id",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Post("/start-interview", interview.HandleStartInterview)
	app.Post("/submit-answer", interview.HandleSubmitAnswer)
	app.Get("/session-summary/:id", interview.HandleSessionSummary)
}

// ErrorHandler renders errors that escape a handler, such as unknown routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
