package quote

import (
	"context"

	"github.com/KirkDiggler/quoted/internal/models"
)

// Repository defines the interface for quote persistence
type Repository interface {
	// CreateQuote stores a new quote and indexes it under its tenant
	CreateQuote(ctx context.Context, input *CreateQuoteInput) error

	// GetQuote retrieves a quote by ID
	GetQuote(ctx context.Context, input *GetQuoteInput) (*models.Quote, error)

	// GetQuotes retrieves several quotes, skipping IDs with no record
	GetQuotes(ctx context.Context, input *GetQuotesInput) (*GetQuotesOutput, error)

	// ListQuoteIDs returns the IDs of every quote owned by the given tenants
	ListQuoteIDs(ctx context.Context, input *ListQuoteIDsInput) (*ListQuoteIDsOutput, error)

	// ListAuthorNames returns every author name used by the given tenants' quotes
	ListAuthorNames(ctx context.Context, input *ListAuthorNamesInput) (*ListAuthorNamesOutput, error)

	// TokenExists reports whether a quote token is taken
	TokenExists(ctx context.Context, input *TokenExistsInput) (bool, error)
}
