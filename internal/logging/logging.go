// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/KirkDiggler/quoted/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level, output format and sampling
func Init(cfg config.LogConfig) {
	log.Logger = New(cfg, os.Stdout)
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
}

// New builds a logger writing to out
func New(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	return logger
}

// ParseLevel falls back to info for empty or unknown levels
func ParseLevel(v string) zerolog.Level {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(v)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
