package logging

import (
	"bytes"
	"testing"

	"github.com/KirkDiggler/quoted/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{}, &buf)

	logger.Info().Str("session_token", "abc123").Msg("Game started")

	assert.Contains(t, buf.String(), `"session_token":"abc123"`)
	assert.Contains(t, buf.String(), `"message":"Game started"`)
}

func TestNewSamples(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{SampleEvery: 2}, &buf)

	for i := 0; i < 4; i++ {
		logger.Info().Msg("tick")
	}

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("tick")))
}
