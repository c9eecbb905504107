package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "resume_parser", cfg.Database.DBName)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Empty(t, cfg.Parser.SkillsLexiconPath)
	assert.False(t, cfg.Parser.EnableNER)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORKER_CONCURRENCY", "5")
	t.Setenv("WORKER_POLL_INTERVAL", "30s")
	t.Setenv("ENABLE_NER", "true")
	t.Setenv("SKILLS_LEXICON_PATH", "/etc/hirelens/skills.txt")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Worker.PollInterval)
	assert.True(t, cfg.Parser.EnableNER)
	assert.Equal(t, "/etc/hirelens/skills.txt", cfg.Parser.SkillsLexiconPath)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "lots")
	t.Setenv("WORKER_POLL_INTERVAL", "soon")
	t.Setenv("MAX_FILE_SIZE", "big")

	cfg := Load()

	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     "5433",
			User:     "app",
			Password: "secret",
			DBName:   "resume_parser",
		},
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=resume_parser sslmode=disable",
		cfg.GetDatabaseDSN())
}
