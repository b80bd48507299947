package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DB_DSN", "postgres://localhost:5432/fitcoach")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.LLMURL)
	assert.Equal(t, "./uploads", cfg.StorageDir)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 2, cfg.AIWorkers)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DB_DSN", "postgres://localhost:5432/fitcoach")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoadAIWorkers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.AIWorkers)
}

func TestLoadAIWorkersInvalid(t *testing.T) {
	setRequiredEnv(t)

	for _, raw := range []string{"0", "-1", "abc"} {
		t.Setenv("AI_WORKERS", raw)
		_, err := Load()
		assert.Error(t, err, "AI_WORKERS=%s", raw)
	}
}
