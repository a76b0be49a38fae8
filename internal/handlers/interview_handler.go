package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleStartInterview handles POST /start-interview
func (h *InterviewHandler) HandleStartInterview(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return malformedBody(c, err)
	}

	resp, err := h.interviewService.StartInterview(c.UserContext(), req)
	if err != nil {
		return writeServiceError(c, "start interview", err)
	}

	return c.JSON(resp)
}

// HandleSubmitAnswer handles POST /submit-answer
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return malformedBody(c, err)
	}

	resp, err := h.interviewService.SubmitAnswer(c.UserContext(), req)
	if err != nil {
		return writeServiceError(c, "submit answer", err)
	}

	return c.JSON(resp)
}

// HandleSessionSummary handles GET /session-summary/:id
func (h *InterviewHandler) HandleSessionSummary(c *fiber.Ctx) error {
	resp, err := h.interviewService.SessionSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeServiceError(c, "session summary", err)
	}

	return c.JSON(resp)
}

func malformedBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.DetailResponse{
		Detail: "Invalid request payload: " + err.Error(),
	})
}

// writeServiceError maps interviewer failures onto the wire. Session and
// parse problems travel as {error} with a 200 status, which clients treat as
// failures.
func writeServiceError(c *fiber.Ctx, op string, err error) error {
	var reqErr *services.RequestError
	var parseErr *services.FeedbackParseError

	switch {
	case errors.As(err, &reqErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.DetailResponse{
			Detail: reqErr.Message,
		})
	case errors.Is(err, services.ErrInvalidSession):
		return c.JSON(models.ErrorResponse{Error: "Invalid session ID"})
	case errors.Is(err, services.ErrInterviewComplete):
		return c.JSON(models.ErrorResponse{Error: "Interview already complete"})
	case errors.As(err, &parseErr):
		return c.JSON(models.ErrorResponse{
			Error:       "Failed to parse AI response",
			RawResponse: parseErr.Raw,
		})
	}

	log.Printf("❌ Failed to %s: %v\n", op, err)
	return c.Status(fiber.StatusBadGateway).JSON(models.DetailResponse{
		Detail: "Failed to " + op + ": " + err.Error(),
	})
}
