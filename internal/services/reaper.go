package services

import (
	"context"
	"log"
	"sync"
	"time"

	"alfredoptarigan/interview-coach/internal/repositories"
)

// SessionReaper periodically deletes sessions nobody has touched within the
// TTL.
type SessionReaper interface {
	Start(ctx context.Context)
	Stop()
	// Sweep runs one pass immediately and reports how many sessions were removed.
	Sweep() (int64, error)
}

type sessionReaper struct {
	sessionRepo repositories.InterviewSessionRepository
	ttl         time.Duration
	interval    time.Duration
	now         func() time.Time

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

func NewSessionReaper(
	sessionRepo repositories.InterviewSessionRepository,
	ttl time.Duration,
	interval time.Duration,
) SessionReaper {
	return &sessionReaper{
		sessionRepo: sessionRepo,
		ttl:         ttl,
		interval:    interval,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start implements SessionReaper. The loop ends on Stop or when ctx is done.
// A non-positive ttl or interval leaves reaping disabled.
func (r *sessionReaper) Start(ctx context.Context) {
	if r.ttl <= 0 || r.interval <= 0 {
		log.Printf("ℹ️  Session reaper disabled (ttl %s, every %s)\n", r.ttl, r.interval)
		return
	}
	log.Printf("🧹 Starting session reaper (ttl %s, every %s)\n", r.ttl, r.interval)

	r.wg.Add(1)
	go r.run(ctx)
}

// Stop implements SessionReaper.
func (r *sessionReaper) Stop() {
	log.Println("🛑 Stopping session reaper...")
	r.stopOnce.Do(func() { close(r.stopChan) })
	r.wg.Wait()
	log.Println("✅ Session reaper stopped")
}

// Sweep implements SessionReaper.
func (r *sessionReaper) Sweep() (int64, error) {
	return r.sessionRepo.DeleteIdleBefore(r.now().Add(-r.ttl))
}

func (r *sessionReaper) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.Sweep()
			if err != nil {
				log.Printf("⚠️  Failed to reap idle sessions: %v\n", err)
				continue
			}
			if n > 0 {
				log.Printf("🧹 Removed %d idle sessions\n", n)
			}
		}
	}
}
