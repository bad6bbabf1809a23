package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Game.SessionTTL)
	assert.Equal(t, 3, cfg.Game.DecoyCount)
	assert.Equal(t, 3, cfg.Game.MaxConflictRetries)
	assert.Equal(t, 6, cfg.Game.TokenLength)
	assert.Equal(t, 10, cfg.Game.TokenMaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoadParse(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("GAME_DECOY_COUNT", "5")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.Game.SessionTTL)
	assert.Equal(t, 5, cfg.Game.DecoyCount)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DISCORD_TOKEN")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("GAME_MAX_CONFLICT_RETRIES", "0")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("GAME_MAX_CONFLICT_RETRIES", "3")
	t.Setenv("SESSION_TTL", "soon")

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_SAMPLE_EVERY", "4")

	cfg, err := LoadLog()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, 4, cfg.SampleEvery)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUOTED_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("QUOTED_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("QUOTED_TEST_VALUE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("QUOTED_TEST_VALUE"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
