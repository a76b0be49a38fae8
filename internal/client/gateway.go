// Package client talks to the interview scoring service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/session"
)

const (
	pathStartInterview = "/start-interview"
	pathSubmitAnswer   = "/submit-answer"
	pathSessionSummary = "/session-summary/"
)

// HTTPGateway implements session.Gateway against the JSON API. It does not
// retry; the caller decides what to do with a failure.
type HTTPGateway struct {
	baseURL string
	timeout time.Duration
}

var _ session.Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway returns a gateway rooted at baseURL. Trailing slashes are
// dropped. timeout applies when the context carries no deadline.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
	}
}

// BaseURL returns the normalised API root.
func (g *HTTPGateway) BaseURL() string {
	return g.baseURL
}

// StartInterview implements session.Gateway.
func (g *HTTPGateway) StartInterview(ctx context.Context, cfg session.StartConfig) (session.StartResult, error) {
	payload := models.StartInterviewRequest{
		Field:          cfg.Field.String(),
		InterviewType:  string(cfg.InterviewType),
		Difficulty:     cfg.Difficulty,
		TotalRounds:    cfg.TotalRounds,
		Resume:         cfg.Resume,
		JobDescription: cfg.JobDescription,
	}

	var resp startEnvelope
	if err := g.call(ctx, fiber.MethodPost, pathStartInterview, payload, &resp); err != nil {
		return session.StartResult{}, err
	}

	return session.StartResult{
		SessionID: resp.SessionID,
		Question:  resp.Question,
	}, nil
}

// SubmitAnswer implements session.Gateway.
func (g *HTTPGateway) SubmitAnswer(ctx context.Context, sessionID, answer string) (session.SubmitResult, error) {
	payload := models.SubmitAnswerRequest{
		SessionID: sessionID,
		Answer:    answer,
	}

	var resp submitEnvelope
	if err := g.call(ctx, fiber.MethodPost, pathSubmitAnswer, payload, &resp); err != nil {
		return session.SubmitResult{}, err
	}

	return session.SubmitResult{
		Feedback:          resp.feedback(),
		AverageScore:      resp.AverageScore,
		InterviewComplete: resp.InterviewComplete,
		NextQuestion:      resp.NextQuestion,
		CurrentRound:      resp.CurrentRound,
		FinalReport:       resp.FinalReport,
	}, nil
}

// SessionSummary implements session.Gateway.
func (g *HTTPGateway) SessionSummary(ctx context.Context, sessionID string) (session.Summary, error) {
	var resp json.RawMessage
	path := pathSessionSummary + url.PathEscape(sessionID)
	if err := g.call(ctx, fiber.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return session.Summary(resp), nil
}

// call performs one request and decodes the body into out. The error
// convention is: body not JSON -> TransportError; non-2xx -> APIError with
// detail or "HTTP <status>"; an "error" field -> APIError regardless of status.
func (g *HTTPGateway) call(ctx context.Context, method, path string, payload any, out any) error {
	if err := ctx.Err(); err != nil {
		return &session.TransportError{Op: path, Err: err}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	req.SetRequestURI(g.baseURL + path)
	if payload != nil {
		agent.JSON(payload)
	}
	if timeout := g.requestTimeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return &session.TransportError{Op: path, Err: fmt.Errorf("invalid request: %w", err)}
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return &session.TransportError{Op: path, Err: errors.Join(errs...)}
	}
	if err := ctx.Err(); err != nil {
		return &session.TransportError{Op: path, Err: err}
	}

	return decodeResponse(path, status, body, out)
}

func (g *HTTPGateway) requestTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 {
			return d
		}
		return time.Millisecond
	}
	return g.timeout
}

func decodeResponse(path string, status int, body []byte, out any) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Arrays and scalars are still JSON; only reject bodies that fail to parse at all.
		if !json.Valid(body) {
			return &session.TransportError{Op: path, Err: fmt.Errorf("non-JSON response from %s", path)}
		}
	}

	if status < 200 || status > 299 {
		msg := env.detail()
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
		return &session.APIError{Op: path, Status: status, Message: msg}
	}

	if env.Error != "" {
		return &session.APIError{Op: path, Status: status, Message: env.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &session.TransportError{Op: path, Err: fmt.Errorf("unexpected response shape: %w", err)}
	}
	return nil
}
