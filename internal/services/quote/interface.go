package quote

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/quoted/internal/services/quote Service

import "context"

// Service reads the quote corpus through the follow-graph
type Service interface {
	// ListAccessible returns every quote the tenant may read
	ListAccessible(ctx context.Context, input *ListAccessibleInput) (*ListAccessibleOutput, error)

	// SampleRandomExcluding picks a uniformly random single-statement quote the tenant may read
	SampleRandomExcluding(ctx context.Context, input *SampleRandomExcludingInput) (*SampleRandomExcludingOutput, error)

	// DistinctAuthorNames returns the visible author names, one per case-insensitive spelling
	DistinctAuthorNames(ctx context.Context, input *DistinctAuthorNamesInput) (*DistinctAuthorNamesOutput, error)

	// CreateQuote saves a quote for a tenant
	CreateQuote(ctx context.Context, input *CreateQuoteInput) (*CreateQuoteOutput, error)

	// Search finds accessible quotes containing the query
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
}
