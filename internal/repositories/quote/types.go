package quote

import "github.com/KirkDiggler/quoted/internal/models"

type CreateQuoteInput struct {
	Quote *models.Quote
}

type GetQuoteInput struct {
	QuoteID string
}

type GetQuotesInput struct {
	QuoteIDs []string
}

type GetQuotesOutput struct {
	// Quotes are in the order of the requested IDs
	Quotes []*models.Quote
}

type ListQuoteIDsInput struct {
	TenantIDs []string

	// SingleStatementOnly leaves out conversations
	SingleStatementOnly bool
}

type ListQuoteIDsOutput struct {
	// QuoteIDs is sorted and free of duplicates
	QuoteIDs []string
}

type ListAuthorNamesInput struct {
	TenantIDs []string
}

type ListAuthorNamesOutput struct {
	// Names is sorted; names differing only in case are all kept
	Names []string
}

type TokenExistsInput struct {
	Token string
}
