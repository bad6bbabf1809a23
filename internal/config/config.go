// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DiscordConfig configures the Discord connection
type DiscordConfig struct {
	Token         string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID" envDefault:""`

	// GuildID registers commands on a single guild for development
	GuildID string `env:"GUILD_ID" envDefault:""`
}

// RedisConfig configures the Redis client
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// GameConfig tunes the guessing game
type GameConfig struct {
	// SessionTTL expires a game after this much inactivity
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	DecoyCount         int           `env:"GAME_DECOY_COUNT" envDefault:"3"`
	MaxConflictRetries int           `env:"GAME_MAX_CONFLICT_RETRIES" envDefault:"3"`
	TokenLength        int           `env:"TOKEN_LENGTH" envDefault:"6"`
	TokenMaxAttempts   int           `env:"TOKEN_MAX_ATTEMPTS" envDefault:"10"`
}

// LogConfig configures logging
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
}

// Config is everything the bot needs to run
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Game    GameConfig
	Log     LogConfig
}

// LoadDotEnv reads .env files into the environment when present.
// Variables already set win over the file.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load parses the full configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadLog parses only the logging configuration, so logging can start before the rest
func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// Validate checks values env tags cannot express
func (c Config) Validate() error {
	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	if c.Game.SessionTTL < 0 {
		return errors.New("SESSION_TTL cannot be negative")
	}
	if c.Game.DecoyCount < 0 {
		return errors.New("GAME_DECOY_COUNT cannot be negative")
	}
	if c.Game.MaxConflictRetries < 1 {
		return errors.New("GAME_MAX_CONFLICT_RETRIES must be at least 1")
	}
	if c.Game.TokenLength < 1 {
		return errors.New("TOKEN_LENGTH must be at least 1")
	}
	if c.Game.TokenMaxAttempts < 1 {
		return errors.New("TOKEN_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}
