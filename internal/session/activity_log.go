package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultActivityCapacity is used when a non-positive capacity is requested.
const DefaultActivityCapacity = 200

// Entry is a single activity line.
type Entry struct {
	Time    time.Time
	Message string
	IsError bool
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format("15:04:05"), e.Message)
}

// ActivityLog keeps the most recent entries in a ring buffer. Older entries are
// overwritten once the buffer is full.
type ActivityLog struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	now     func() time.Time
	logger  *zap.Logger
}

// NewActivityLog creates a log holding up to capacity entries. A non-nil logger
// receives a copy of every entry.
func NewActivityLog(capacity int, logger *zap.Logger) *ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityLog{
		entries: make([]Entry, capacity),
		now:     time.Now,
		logger:  logger,
	}
}

// Info appends a normal entry.
func (l *ActivityLog) Info(format string, args ...any) {
	l.append(fmt.Sprintf(format, args...), false)
}

// Error appends an entry flagged as an error.
func (l *ActivityLog) Error(format string, args ...any) {
	l.append(fmt.Sprintf(format, args...), true)
}

func (l *ActivityLog) append(msg string, isError bool) {
	l.mu.Lock()
	entry := Entry{Time: l.now(), Message: msg, IsError: isError}
	l.entries[l.next] = entry
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	if l.logger == nil {
		return
	}
	if isError {
		l.logger.Warn("activity", zap.String("message", msg), zap.Time("at", entry.Time))
	} else {
		l.logger.Info("activity", zap.String("message", msg), zap.Time("at", entry.Time))
	}
}

// Len returns the number of retained entries.
func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Entries returns the retained entries, newest first.
func (l *ActivityLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.next
	if l.full {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}
