package game

import (
	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
	sessionRepo "github.com/KirkDiggler/quoted/internal/repositories/session"
	"github.com/KirkDiggler/quoted/internal/services/quote"
	"github.com/KirkDiggler/quoted/internal/services/token"
)

const (
	// DefaultDecoyCount is how many wrong authors are offered per round
	DefaultDecoyCount = 3

	// DefaultMaxConflictRetries bounds retries of a session write that lost a race
	DefaultMaxConflictRetries = 3
)

// Config holds configuration for the game service
type Config struct {
	SessionRepo    sessionRepo.Repository
	QuoteService   quote.Service
	TokenGenerator token.Generator
	Random         random.Source
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID

	// DecoyCount is the number of decoy authors per round
	DecoyCount int

	// MaxConflictRetries is how often a conflicting session write is attempted
	MaxConflictRetries int
}

// Prompt is what participants see for the current round
type Prompt struct {
	SessionToken string
	Round        int
	Status       models.SessionStatus
	Statement    string
	Context      string

	// Options are the names to pick from, in display order
	Options []string

	// AnswerCount is how many participants have answered this round
	AnswerCount int
}

type StartGameInput struct {
	TenantID string
}

type StartGameOutput struct {
	Prompt *Prompt
}

type SubmitAnswerInput struct {
	SessionToken  string
	ParticipantID string
	Answer        string
}

type SubmitAnswerOutput struct {
	Prompt *Prompt

	// Replaced is true when the participant changed an earlier answer
	Replaced bool
}

type FinishRoundInput struct {
	SessionToken string
}

type FinishRoundOutput struct {
	SessionToken string
	Result       *models.RoundResult

	// Scores are the cumulative scores after this round
	Scores []*models.ParticipantScore
}

type NextRoundInput struct {
	SessionToken string
}

type NextRoundOutput struct {
	Prompt *Prompt
}

type EndGameInput struct {
	SessionToken string
}

type EndGameOutput struct {
	Result *models.FinalResult
}

type GetGameInput struct {
	SessionToken string
}

type GetGameOutput struct {
	Prompt *Prompt
}
