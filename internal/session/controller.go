// Package session holds the client-side interview state machine: option
// resolution, the controller that sequences requests against the scoring
// service, the view-model projection and the activity log.
package session

import (
	"context"
	"strings"
	"sync"
)

// Controller owns one session's State and applies transitions as gateway calls
// complete. The mutex is never held across a gateway call; a reset while a
// request is in flight bumps the generation so the late result is discarded.
type Controller struct {
	gateway Gateway

	mu         sync.Mutex
	state      State
	generation uint64
	// submits counts applied round results; a summary fetched before a newer
	// round landed must not roll the average back.
	submits uint64
}

func NewController(gateway Gateway) *Controller {
	return &Controller{
		gateway: gateway,
		state:   newState(),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Start opens a new session. Only valid from PhaseIdle with nothing pending.
// On failure no field other than Pending changes.
func (c *Controller) Start(ctx context.Context, cfg StartConfig) error {
	if cfg.TotalRounds < 1 {
		return &ValidationError{Reason: "rounds must be a positive number"}
	}

	c.mu.Lock()
	if c.state.Pending {
		c.mu.Unlock()
		return ErrRequestPending
	}
	if c.state.Phase != PhaseIdle {
		c.mu.Unlock()
		return ErrSessionExists
	}
	c.state.Pending = true
	gen := c.generation
	c.mu.Unlock()

	res, err := c.gateway.StartInterview(ctx, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrStaleResult
	}
	c.state.Pending = false

	if err != nil {
		return err
	}
	if res.SessionID == "" {
		return &APIError{Op: "start interview", Message: "response carried no session id"}
	}

	next := newState()
	next.Phase = PhaseActive
	next.SessionID = res.SessionID
	next.TotalRounds = cfg.TotalRounds
	next.Question = res.Question
	c.state = next
	return nil
}

// submitted describes a round result the controller applied.
type submitted struct {
	Round    int
	Complete bool
}

// SubmitAnswer sends the answer for the current round. Validation failures
// return before the gateway is contacted.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) error {
	_, err := c.submit(ctx, text)
	return err
}

// submit is SubmitAnswer reporting which round was answered, read under the
// same lock that applied the result.
func (c *Controller) submit(ctx context.Context, text string) (submitted, error) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if c.state.Pending {
		c.mu.Unlock()
		return submitted{}, ErrRequestPending
	}
	if !c.state.HasSession() {
		c.mu.Unlock()
		return submitted{}, ErrNoSession
	}
	if c.state.Phase != PhaseActive {
		c.mu.Unlock()
		return submitted{}, ErrNotActive
	}
	if text == "" {
		c.mu.Unlock()
		return submitted{}, ErrEmptyAnswer
	}
	c.state.Pending = true
	gen, sessionID := c.generation, c.state.SessionID
	c.mu.Unlock()

	res, err := c.gateway.SubmitAnswer(ctx, sessionID, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || sessionID != c.state.SessionID {
		return submitted{}, ErrStaleResult
	}
	c.state.Pending = false

	if err != nil {
		return submitted{}, err
	}

	c.submits++
	done := submitted{Round: c.state.CurrentRound, Complete: res.InterviewComplete}
	if res.AverageScore != nil && *res.AverageScore >= 0 {
		c.state.AverageScore = *res.AverageScore
	}
	c.state.Feedback = res.Feedback
	c.state.Summary = nil

	if res.InterviewComplete {
		c.state.Phase = PhaseCompleted
		c.state.CurrentRound = c.state.TotalRounds + 1
		c.state.FinalReport = res.FinalReport
		c.state.Question = ""
		return done, nil
	}

	c.state.CurrentRound = nextRound(c.state.CurrentRound, c.state.TotalRounds, res.CurrentRound)
	c.state.Question = res.NextQuestion
	return done, nil
}

// LoadSummary refreshes the summary for the current session. It is not gated by
// Pending and may be repeated freely.
func (c *Controller) LoadSummary(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.HasSession() {
		c.mu.Unlock()
		return ErrNoSession
	}
	gen, sessionID, submits := c.generation, c.state.SessionID, c.submits
	c.mu.Unlock()

	summary, err := c.gateway.SessionSummary(ctx, sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || sessionID != c.state.SessionID {
		return ErrStaleResult
	}
	if err != nil {
		return err
	}

	if summary == nil {
		summary = Summary("{}")
	}
	c.state.Summary = summary.clone()
	if avg, ok := summary.AverageScore(); ok && avg >= 0 && submits == c.submits {
		c.state.AverageScore = avg
	}
	return nil
}

// Reset returns to a fresh idle state. Requests already sent are not cancelled;
// their results are dropped when they arrive.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.state = newState()
}

// nextRound advances the round counter while the interview is still running.
// The server's value wins when present, but the counter never moves backwards
// and stays within the session's rounds.
func nextRound(current, total int, server *int) int {
	next := current + 1
	if server != nil {
		next = *server
	}
	if next < current {
		next = current
	}
	if next > total {
		next = total
	}
	return next
}
