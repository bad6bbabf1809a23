package quote

// QuoteError is a custom error type for quote-related errors
type QuoteError string

// Error implements the error interface
func (e QuoteError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEmptyStatements   QuoteError = "a quote needs at least one statement"
	ErrMissingAuthor     QuoteError = "a quote needs at least one author"
	ErrInvalidInput      QuoteError = "invalid input"
	ErrTokenExhausted    QuoteError = "could not allocate a quote token"
	ErrNilConfig         QuoteError = "config cannot be nil"
	ErrNilQuoteRepo      QuoteError = "quote repository cannot be nil"
	ErrNilVisibility     QuoteError = "visibility service cannot be nil"
	ErrNilTokenGenerator QuoteError = "token generator cannot be nil"
	ErrNilRandom         QuoteError = "random source cannot be nil"
	ErrNilClock          QuoteError = "clock cannot be nil"
	ErrNilUUIDGenerator  QuoteError = "UUID generator cannot be nil"
)
