package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COACH_API_BASE", "")
	t.Setenv("MAX_ROUNDS", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.Client.APIBase)
	assert.Equal(t, 20, cfg.Interview.MaxRounds)
	assert.Equal(t, 24*time.Hour, cfg.Interview.SessionTTL)
	assert.Equal(t, 200, cfg.Client.ActivityCapacity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COACH_API_BASE", "http://scoring:9000")
	t.Setenv("MAX_DIFFICULTY", "7")
	t.Setenv("COACH_REQUEST_TIMEOUT", "15s")
	t.Setenv("REAPER_INTERVAL", "not-a-duration")
	t.Setenv("MAX_ROUNDS", "lots")

	cfg := Load()

	assert.Equal(t, "http://scoring:9000", cfg.Client.APIBase)
	assert.Equal(t, 7, cfg.Interview.MaxDifficulty)
	assert.Equal(t, 15*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Interview.ReaperInterval)
	assert.Equal(t, 20, cfg.Interview.MaxRounds)

	limits := cfg.Limits()
	assert.Equal(t, 7, limits.MaxDifficulty)
	assert.Equal(t, 1, limits.MinDifficulty)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "coach", Password: "secret", DBName: "interviews",
	}}

	assert.Equal(t,
		"host=db port=5432 user=coach password=secret dbname=interviews sslmode=disable",
		cfg.GetDatabaseDSN())
}

func TestReadPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`field: custom
custom_field: Embedded Systems
interview_type: Behavioral
rounds: 5
resume_file: cv.pdf
`), 0644))

	p, err := ReadPreset(path)

	require.NoError(t, err)
	assert.Equal(t, "custom", p.Selection.Field)
	assert.Equal(t, "Embedded Systems", p.Selection.CustomField)
	assert.Equal(t, "Behavioral", p.Selection.InterviewType)
	assert.Equal(t, 5, p.Selection.Rounds)
	assert.Equal(t, 5, p.Selection.Difficulty, "difficulty keeps the default")
	assert.Equal(t, "cv.pdf", p.ResumeFile)
}

func TestPresetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	want := DefaultPreset()
	want.Selection.Rounds = 4
	want.JobDescriptionFile = "jd.txt"

	require.NoError(t, WritePreset(path, want))
	got, err := ReadPreset(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadPreset_Errors(t *testing.T) {
	_, err := ReadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading preset")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: [1, 2"), 0644))
	_, err = ReadPreset(path)
	assert.ErrorContains(t, err, "parsing preset")
}
