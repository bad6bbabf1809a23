package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/quoted/internal/services/game Service

import "context"

// Service runs the quote guessing game
type Service interface {
	// StartGame creates a session for a tenant and opens its first round
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// SubmitAnswer records a participant's answer, replacing any earlier one this round
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// FinishRound scores the active round
	FinishRound(ctx context.Context, input *FinishRoundInput) (*FinishRoundOutput, error)

	// NextRound opens a new round with a quote not yet used in the session
	NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error)

	// EndGame ranks the scores and deletes the session
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// GetGame returns the current prompt of a session
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)
}
