package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/quoted/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/quoted/internal/models"
)

// Repository defines the interface for game session persistence
type Repository interface {
	// CreateSession stores a new session, claiming its token
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.GameSession, error)

	// GetSessionByToken retrieves a session by its shareable token
	GetSessionByToken(ctx context.Context, input *GetSessionByTokenInput) (*models.GameSession, error)

	// UpdateSession writes a session if its stored version still matches ExpectedVersion
	UpdateSession(ctx context.Context, input *UpdateSessionInput) error

	// SetAnswer stores a participant's answer if the session is still at ExpectedVersion.
	// Answers from different participants never conflict with each other.
	SetAnswer(ctx context.Context, input *SetAnswerInput) (*SetAnswerOutput, error)

	// DeleteSession removes a session and its token if it is still at ExpectedVersion
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// TokenExists reports whether a session token is taken
	TokenExists(ctx context.Context, input *TokenExistsInput) (bool, error)
}
