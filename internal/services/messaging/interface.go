package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/quoted/internal/services/messaging Service

import "context"

// Service picks the user-facing text for game outcomes and errors
type Service interface {
	// GetErrorMessage returns a user-friendly message for an error from the core
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetRoundResultMessage returns a flavor line for a finished round
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetFinalResultMessage returns a flavor line for an ended game
	GetFinalResultMessage(ctx context.Context, input *GetFinalResultMessageInput) (*GetFinalResultMessageOutput, error)
}
