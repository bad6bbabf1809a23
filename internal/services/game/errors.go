package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound        GameError = "this game no longer exists"
	ErrNoQuotesAvailable      GameError = "no quotes available"
	ErrInvalidStateTransition GameError = "this action is no longer available"
	ErrConcurrencyConflict    GameError = "the game changed while saving, please try again"
	ErrTokenExhausted         GameError = "could not allocate a game token"
	ErrInvalidInput           GameError = "invalid input"
	ErrNilConfig              GameError = "config cannot be nil"
	ErrNilSessionRepo         GameError = "session repository cannot be nil"
	ErrNilQuoteService        GameError = "quote service cannot be nil"
	ErrNilTokenGenerator      GameError = "token generator cannot be nil"
	ErrNilRandom              GameError = "random source cannot be nil"
	ErrNilClock               GameError = "clock cannot be nil"
	ErrNilUUIDGenerator       GameError = "UUID generator cannot be nil"
)
