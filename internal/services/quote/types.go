package quote

import (
	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
	quoteRepo "github.com/KirkDiggler/quoted/internal/repositories/quote"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/KirkDiggler/quoted/internal/services/visibility"
)

// Config holds configuration for the quote service
type Config struct {
	QuoteRepo      quoteRepo.Repository
	Visibility     visibility.Service
	TokenGenerator token.Generator
	Random         random.Source
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID

	// MaxCreateAttempts bounds retries when a generated token loses an insert race
	MaxCreateAttempts int
}

type ListAccessibleInput struct {
	TenantID string
}

type ListAccessibleOutput struct {
	Quotes []*models.Quote
}

type SampleRandomExcludingInput struct {
	TenantID   string
	ExcludeIDs []string
}

type SampleRandomExcludingOutput struct {
	// Quote is nil when no eligible quote is left
	Quote *models.Quote
}

type DistinctAuthorNamesInput struct {
	TenantID string

	// Excluding is left out of the result, compared case-insensitively
	Excluding string
}

type DistinctAuthorNamesOutput struct {
	Names []string
}

// CreateQuoteInput is a quote as submitted by the authoring flow
type CreateQuoteInput struct {
	TenantID   string
	CreatorID  string
	Statements []string
	Authors    []*models.Author
	Context    string
}

type CreateQuoteOutput struct {
	Quote *models.Quote
}

type SearchInput struct {
	TenantID string
	Query    string

	// Limit caps the number of results; zero means no cap
	Limit int
}

type SearchOutput struct {
	Quotes []*models.Quote
}
