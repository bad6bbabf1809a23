package messaging

import (
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ErrorKind groups core errors by how they should be explained to a user
type ErrorKind string

const (
	ErrorKindSessionGone   ErrorKind = "session_gone"
	ErrorKindNoQuotes      ErrorKind = "no_quotes"
	ErrorKindStaleControl  ErrorKind = "stale_control"
	ErrorKindBusy          ErrorKind = "busy"
	ErrorKindTokenExhaust  ErrorKind = "token_exhausted"
	ErrorKindInvalidQuote  ErrorKind = "invalid_quote"
	ErrorKindInvalidFollow ErrorKind = "invalid_follow"
	ErrorKindUnknownTenant ErrorKind = "unknown_tenant"
	ErrorKindInvalidInput  ErrorKind = "invalid_input"
	ErrorKindGeneric       ErrorKind = "generic"
)

// Config holds configuration for the messaging service
type Config struct {
	// Random selects among message variants
	Random random.Source
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by a core service
	Err error

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Kind    ErrorKind
	Title   string
	Message string
	Tone    MessageTone

	// Ephemeral is true when only the user who caused the error needs to see it
	Ephemeral bool
}

type GetRoundResultMessageInput struct {
	Result *models.RoundResult
}

type GetRoundResultMessageOutput struct {
	Message string
	Tone    MessageTone
}

type GetFinalResultMessageInput struct {
	Result *models.FinalResult
}

type GetFinalResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}
