package session

import "github.com/KirkDiggler/quoted/internal/models"

type CreateSessionInput struct {
	Session *models.GameSession
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionByTokenInput struct {
	Token string
}

type UpdateSessionInput struct {
	Session *models.GameSession

	// ExpectedVersion is the version the caller read before mutating
	ExpectedVersion int64

	// ExpectedAnswerVersion is the answer version the caller read. An answer
	// stored since then fails the write, so no submitted answer is overwritten.
	ExpectedAnswerVersion int64
}

// SetAnswerInput stores one participant's answer without rewriting the session
type SetAnswerInput struct {
	SessionID string

	// ExpectedVersion is the session version whose status the caller checked
	ExpectedVersion int64

	Answer *models.ParticipantAnswer
}

type SetAnswerOutput struct {
	// Replaced is true if the participant had already answered this round
	Replaced bool

	// AnswerVersion is the session's answer version after this write
	AnswerVersion int64
}

type DeleteSessionInput struct {
	SessionID string

	// ExpectedVersion is the version the caller read; a newer write fails the delete
	ExpectedVersion int64
}

type TokenExistsInput struct {
	Token string
}
