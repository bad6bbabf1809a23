package token

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/quoted/internal/random"
)

const (
	// DefaultCharset is lowercase letters and digits
	DefaultCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the token length used when none is configured
	DefaultLength = 6

	// DefaultMaxAttempts is how many collisions are tolerated before giving up
	DefaultMaxAttempts = 10
)

// ErrExhausted is returned when every attempt collided with an existing token
var ErrExhausted = errors.New("token generation exhausted")

// ExistsFunc reports whether a token is already taken
type ExistsFunc func(ctx context.Context, token string) (bool, error)

// Generator produces short unique tokens
type Generator interface {
	Generate(ctx context.Context, input *GenerateInput) (string, error)
}

// GenerateInput describes the token to produce.
// Zero values fall back to the generator's defaults.
type GenerateInput struct {
	Charset     string
	Length      int
	Exists      ExistsFunc
	MaxAttempts int
}

// Config holds configuration for the token generator
type Config struct {
	Random      random.Source
	Charset     string
	Length      int
	MaxAttempts int
}

type generator struct {
	random      random.Source
	charset     string
	length      int
	maxAttempts int
}

// New creates a token generator
func New(cfg *Config) (*generator, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	g := &generator{
		random:      cfg.Random,
		charset:     cfg.Charset,
		length:      cfg.Length,
		maxAttempts: cfg.MaxAttempts,
	}

	if g.charset == "" {
		g.charset = DefaultCharset
	}
	if g.length <= 0 {
		g.length = DefaultLength
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = DefaultMaxAttempts
	}

	return g, nil
}

// Generate draws random tokens until one passes the Exists check.
// A returned token was free when checked; callers still handle duplicate inserts.
func (g *generator) Generate(ctx context.Context, input *GenerateInput) (string, error) {
	if input == nil || input.Exists == nil {
		return "", errors.New("input and exists check cannot be nil")
	}

	charset := []rune(input.Charset)
	if len(charset) == 0 {
		charset = []rune(g.charset)
	}

	length := input.Length
	if length <= 0 {
		length = g.length
	}

	maxAttempts := input.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = g.maxAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		token := g.draw(charset, length)

		exists, err := input.Exists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("failed to check token: %w", err)
		}
		if !exists {
			return token, nil
		}
	}

	return "", ErrExhausted
}

func (g *generator) draw(charset []rune, length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteRune(charset[g.random.Intn(len(charset))])
	}
	return sb.String()
}
