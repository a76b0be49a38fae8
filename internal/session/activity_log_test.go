package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestActivityLog_NewestFirst(t *testing.T) {
	l := NewActivityLog(10, nil)
	l.now = fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	l.Info("Interview started.")
	l.Error("Submit failed: %s", "HTTP 500")
	l.Info("Round %d submitted. Next question loaded.", 1)

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Round 1 submitted. Next question loaded.", entries[0].Message)
	assert.Equal(t, "Submit failed: HTTP 500", entries[1].Message)
	assert.True(t, entries[1].IsError)
	assert.False(t, entries[0].IsError)
	assert.Equal(t, "[09:00:01] Interview started.", entries[2].String())
}

func TestActivityLog_Bounded(t *testing.T) {
	l := NewActivityLog(3, nil)
	for i := 1; i <= 5; i++ {
		l.Info("entry %d", i)
	}

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "entry 5", entries[0].Message)
	assert.Equal(t, "entry 4", entries[1].Message)
	assert.Equal(t, "entry 3", entries[2].Message)
}

func TestActivityLog_DefaultCapacity(t *testing.T) {
	l := NewActivityLog(0, nil)
	assert.Equal(t, 0, l.Len())
	for i := 0; i < DefaultActivityCapacity+5; i++ {
		l.Info("x")
	}
	assert.Equal(t, DefaultActivityCapacity, l.Len())
}

func TestActivityLog_MirrorsToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewActivityLog(5, zap.New(core))

	l.Info("Interview started.")
	l.Error("Start failed: boom")

	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, "Interview started.", all[0].ContextMap()["message"])
	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
}
