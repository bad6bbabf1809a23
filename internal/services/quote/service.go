package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
	quoteRepo "github.com/KirkDiggler/quoted/internal/repositories/quote"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/KirkDiggler/quoted/internal/services/visibility"
	"github.com/rs/zerolog/log"
)

const defaultMaxCreateAttempts = 3

type service struct {
	quoteRepo         quoteRepo.Repository
	visibility        visibility.Service
	tokenGenerator    token.Generator
	random            random.Source
	clock             clock.Clock
	uuidGenerator     uuid.UUID
	maxCreateAttempts int
}

// New creates a new quote service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.QuoteRepo == nil {
		return nil, ErrNilQuoteRepo
	}
	if cfg.Visibility == nil {
		return nil, ErrNilVisibility
	}
	if cfg.TokenGenerator == nil {
		return nil, ErrNilTokenGenerator
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxCreateAttempts := cfg.MaxCreateAttempts
	if maxCreateAttempts <= 0 {
		maxCreateAttempts = defaultMaxCreateAttempts
	}

	return &service{
		quoteRepo:         cfg.QuoteRepo,
		visibility:        cfg.Visibility,
		tokenGenerator:    cfg.TokenGenerator,
		random:            cfg.Random,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		maxCreateAttempts: maxCreateAttempts,
	}, nil
}

// ListAccessible returns every quote owned by a tenant the caller may read
func (s *service) ListAccessible(ctx context.Context, input *ListAccessibleInput) (*ListAccessibleOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	tenantIDs, err := s.accessibleTenantIDs(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	ids, err := s.quoteRepo.ListQuoteIDs(ctx, &quoteRepo.ListQuoteIDsInput{
		TenantIDs: tenantIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list quote IDs: %w", err)
	}

	quotes, err := s.quoteRepo.GetQuotes(ctx, &quoteRepo.GetQuotesInput{
		QuoteIDs: ids.QuoteIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}

	return &ListAccessibleOutput{Quotes: quotes.Quotes}, nil
}

// SampleRandomExcluding draws uniformly from the accessible single-statement quotes
// that are not excluded. A nil quote in the output means nothing is left to draw.
func (s *service) SampleRandomExcluding(ctx context.Context, input *SampleRandomExcludingInput) (*SampleRandomExcludingOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	tenantIDs, err := s.accessibleTenantIDs(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	ids, err := s.quoteRepo.ListQuoteIDs(ctx, &quoteRepo.ListQuoteIDsInput{
		TenantIDs:           tenantIDs,
		SingleStatementOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list quote IDs: %w", err)
	}

	excluded := make(map[string]struct{}, len(input.ExcludeIDs))
	for _, id := range input.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]string, 0, len(ids.QuoteIDs))
	for _, id := range ids.QuoteIDs {
		if _, ok := excluded[id]; !ok {
			candidates = append(candidates, id)
		}
	}

	// An index entry can outlive its record; drop it and draw again
	for len(candidates) > 0 {
		i := s.random.Intn(len(candidates))

		q, err := s.quoteRepo.GetQuote(ctx, &quoteRepo.GetQuoteInput{QuoteID: candidates[i]})
		if err != nil && !errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			return nil, fmt.Errorf("failed to get quote: %w", err)
		}

		if err == nil && !q.IsConversation() && q.PrimaryAuthor() != nil {
			return &SampleRandomExcludingOutput{Quote: q}, nil
		}

		log.Warn().
			Str("tenant_id", input.TenantID).
			Str("quote_id", candidates[i]).
			Msg("Skipping unusable quote index entry")

		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}

	return &SampleRandomExcludingOutput{}, nil
}

// DistinctAuthorNames returns the visible author names. Spellings that differ only in
// case collapse to the first one in sorted order.
func (s *service) DistinctAuthorNames(ctx context.Context, input *DistinctAuthorNamesInput) (*DistinctAuthorNamesOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	tenantIDs, err := s.accessibleTenantIDs(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	out, err := s.quoteRepo.ListAuthorNames(ctx, &quoteRepo.ListAuthorNamesInput{
		TenantIDs: tenantIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list author names: %w", err)
	}

	excluding := normalize(input.Excluding)
	seen := make(map[string]struct{}, len(out.Names))
	names := make([]string, 0, len(out.Names))

	for _, name := range out.Names {
		key := normalize(name)
		if key == "" || key == excluding {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		names = append(names, strings.TrimSpace(name))
	}

	return &DistinctAuthorNamesOutput{Names: names}, nil
}

// CreateQuote validates and stores a quote under a freshly generated token
func (s *service) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*CreateQuoteOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	statements := make([]string, 0, len(input.Statements))
	for _, statement := range input.Statements {
		if statement = strings.TrimSpace(statement); statement != "" {
			statements = append(statements, statement)
		}
	}
	if len(statements) == 0 {
		return nil, ErrEmptyStatements
	}

	authors := make([]*models.Author, 0, len(input.Authors))
	for _, author := range input.Authors {
		if author == nil || strings.TrimSpace(author.Name) == "" {
			continue
		}

		a := &models.Author{
			ID:   author.ID,
			Name: strings.TrimSpace(author.Name),
		}
		for _, alias := range author.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				a.Aliases = append(a.Aliases, alias)
			}
		}

		authors = append(authors, a)
	}
	if len(authors) == 0 {
		return nil, ErrMissingAuthor
	}

	q := &models.Quote{
		ID:         s.uuidGenerator.NewUUID(),
		TenantID:   input.TenantID,
		CreatorID:  input.CreatorID,
		Statements: statements,
		Authors:    authors,
		Context:    strings.TrimSpace(input.Context),
		CreatedAt:  s.clock.Now(),
	}

	for attempt := 1; attempt <= s.maxCreateAttempts; attempt++ {
		tok, err := s.tokenGenerator.Generate(ctx, &token.GenerateInput{
			Exists: s.tokenExists,
		})
		if err != nil {
			if errors.Is(err, token.ErrExhausted) {
				return nil, ErrTokenExhausted
			}
			return nil, fmt.Errorf("failed to generate quote token: %w", err)
		}

		q.Token = tok
		err = s.quoteRepo.CreateQuote(ctx, &quoteRepo.CreateQuoteInput{Quote: q})
		if err == nil {
			log.Info().
				Str("tenant_id", q.TenantID).
				Str("quote_id", q.ID).
				Str("quote_token", q.Token).
				Int("statements", len(q.Statements)).
				Msg("Quote created")

			return &CreateQuoteOutput{Quote: q}, nil
		}

		if !errors.Is(err, quoteRepo.ErrTokenTaken) {
			return nil, fmt.Errorf("failed to create quote: %w", err)
		}

		log.Debug().
			Str("tenant_id", q.TenantID).
			Int("attempt", attempt).
			Msg("Quote token taken during insert, retrying")
	}

	return nil, ErrTokenExhausted
}

// Search returns accessible quotes whose statements, authors or context contain the
// query, ignoring case
func (s *service) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	query := normalize(input.Query)
	if query == "" {
		return nil, ErrInvalidInput
	}

	all, err := s.ListAccessible(ctx, &ListAccessibleInput{TenantID: input.TenantID})
	if err != nil {
		return nil, err
	}

	matches := make([]*models.Quote, 0)
	for _, q := range all.Quotes {
		if !quoteContains(q, query) {
			continue
		}

		matches = append(matches, q)
		if input.Limit > 0 && len(matches) == input.Limit {
			break
		}
	}

	return &SearchOutput{Quotes: matches}, nil
}

func (s *service) accessibleTenantIDs(ctx context.Context, tenantID string) ([]string, error) {
	out, err := s.visibility.AccessibleTenants(ctx, &visibility.AccessibleTenantsInput{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accessible tenants: %w", err)
	}

	return out.TenantIDs.IDs(), nil
}

func (s *service) tokenExists(ctx context.Context, tok string) (bool, error) {
	return s.quoteRepo.TokenExists(ctx, &quoteRepo.TokenExistsInput{Token: tok})
}

func quoteContains(q *models.Quote, query string) bool {
	for _, statement := range q.Statements {
		if strings.Contains(strings.ToLower(statement), query) {
			return true
		}
	}

	for _, author := range q.Authors {
		if strings.Contains(strings.ToLower(author.Name), query) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(q.Context), query)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
