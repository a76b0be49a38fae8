package session

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher is the command surface a front end drives. Every failure is
// recorded in the activity log and returned as a user-facing error; nothing
// escapes unhandled.
type Dispatcher struct {
	resolver   *Resolver
	controller *Controller
	activity   *ActivityLog
}

func NewDispatcher(resolver *Resolver, controller *Controller, activity *ActivityLog) *Dispatcher {
	return &Dispatcher{
		resolver:   resolver,
		controller: controller,
		activity:   activity,
	}
}

// Start resolves raw and opens a session.
func (d *Dispatcher) Start(ctx context.Context, raw RawSelection) error {
	cfg, err := d.resolver.Resolve(raw)
	if err != nil {
		return d.fail("Start", "could not start interview", err)
	}
	if err := d.controller.Start(ctx, cfg); err != nil {
		return d.fail("Start", "could not start interview", err)
	}
	d.activity.Info("Interview started.")
	return nil
}

// SubmitAnswer sends the answer for the current round.
func (d *Dispatcher) SubmitAnswer(ctx context.Context, answer string) error {
	done, err := d.controller.submit(ctx, answer)
	if err != nil {
		return d.fail("Submit", "could not submit answer", err)
	}

	if done.Complete {
		d.activity.Info("Interview complete.")
		return nil
	}
	d.activity.Info("Round %d submitted. Next question loaded.", done.Round)
	return nil
}

// LoadSummary fetches the summary for the current session.
func (d *Dispatcher) LoadSummary(ctx context.Context) error {
	if err := d.controller.LoadSummary(ctx); err != nil {
		return d.fail("Summary", "could not load summary", err)
	}
	d.activity.Info("Session summary updated.")
	return nil
}

// Reset drops the current session.
func (d *Dispatcher) Reset() {
	d.controller.Reset()
	d.activity.Info("UI state reset.")
}

// View projects the current state.
func (d *Dispatcher) View() ViewModel {
	return Project(d.controller.Snapshot())
}

// State returns a copy of the controller state.
func (d *Dispatcher) State() State {
	return d.controller.Snapshot()
}

// Activity returns the log entries, newest first.
func (d *Dispatcher) Activity() []Entry {
	return d.activity.Entries()
}

func (d *Dispatcher) fail(action, userMsg string, err error) error {
	if errors.Is(err, ErrStaleResult) {
		d.activity.Info("%s result discarded after reset.", action)
		return err
	}
	d.activity.Error("%s failed: %v", action, err)
	return fmt.Errorf("%s: %w", userMsg, err)
}
