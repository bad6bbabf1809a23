package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	quoteKeyPrefix           = "quote:"
	quoteTokenKeyPrefix      = "quote_token:"
	tenantQuotesPrefix       = "tenant_quotes:"
	tenantSingleQuotesPrefix = "tenant_single_quotes:"
	tenantAuthorsPrefix      = "tenant_authors:"
)

var (
	// ErrQuoteNotFound is returned when a quote is not found
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrTokenTaken is returned when another quote already holds the token
	ErrTokenTaken = errors.New("quote token already taken")
)

// Config holds configuration for the Redis quote repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed quote repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateQuote stores a new quote. The token is claimed first so two quotes can never share it.
func (r *redisRepository) CreateQuote(ctx context.Context, input *CreateQuoteInput) error {
	if input == nil || input.Quote == nil {
		return errors.New("input and quote cannot be nil")
	}

	quote := input.Quote
	if quote.ID == "" || quote.Token == "" || quote.TenantID == "" {
		return errors.New("quote ID, token and tenant ID cannot be empty")
	}

	quoteJSON, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	claimed, err := r.client.SetNX(ctx, quoteTokenKeyPrefix+quote.Token, quote.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim quote token: %w", err)
	}
	if !claimed {
		return ErrTokenTaken
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, quoteKeyPrefix+quote.ID, quoteJSON, 0)
	pipe.SAdd(ctx, tenantQuotesPrefix+quote.TenantID, quote.ID)

	if !quote.IsConversation() {
		pipe.SAdd(ctx, tenantSingleQuotesPrefix+quote.TenantID, quote.ID)
	}

	for _, author := range quote.Authors {
		if name := strings.TrimSpace(author.Name); name != "" {
			pipe.SAdd(ctx, tenantAuthorsPrefix+quote.TenantID, name)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		// release the token so a retry is not blocked by a half-written quote
		r.client.Del(ctx, quoteTokenKeyPrefix+quote.Token)
		return fmt.Errorf("failed to save quote: %w", err)
	}

	return nil
}

// GetQuote retrieves a quote by ID
func (r *redisRepository) GetQuote(ctx context.Context, input *GetQuoteInput) (*models.Quote, error) {
	if input == nil || input.QuoteID == "" {
		return nil, errors.New("input and quote ID cannot be empty")
	}

	quoteJSON, err := r.client.Get(ctx, quoteKeyPrefix+input.QuoteID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	var quote models.Quote
	if err := json.Unmarshal([]byte(quoteJSON), &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}

	return &quote, nil
}

// GetQuotes retrieves quotes in a single pipeline
func (r *redisRepository) GetQuotes(ctx context.Context, input *GetQuotesInput) (*GetQuotesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.QuoteIDs) == 0 {
		return &GetQuotesOutput{Quotes: []*models.Quote{}}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(input.QuoteIDs))
	for i, id := range input.QuoteIDs {
		commands[i] = pipe.Get(ctx, quoteKeyPrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get quotes: %w", err)
	}

	quotes := make([]*models.Quote, 0, len(commands))
	for i, cmd := range commands {
		quoteJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Quote was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get quote %s: %w", input.QuoteIDs[i], err)
		}

		var quote models.Quote
		if err := json.Unmarshal([]byte(quoteJSON), &quote); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quote %s: %w", input.QuoteIDs[i], err)
		}
		quotes = append(quotes, &quote)
	}

	return &GetQuotesOutput{Quotes: quotes}, nil
}

// ListQuoteIDs returns the quote IDs owned by the given tenants
func (r *redisRepository) ListQuoteIDs(ctx context.Context, input *ListQuoteIDsInput) (*ListQuoteIDsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.TenantIDs) == 0 {
		return &ListQuoteIDsOutput{QuoteIDs: []string{}}, nil
	}

	prefix := tenantQuotesPrefix
	if input.SingleStatementOnly {
		prefix = tenantSingleQuotesPrefix
	}

	keys := make([]string, 0, len(input.TenantIDs))
	for _, id := range input.TenantIDs {
		keys = append(keys, prefix+id)
	}

	ids, err := r.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list quote IDs: %w", err)
	}

	sort.Strings(ids)

	return &ListQuoteIDsOutput{QuoteIDs: ids}, nil
}

// ListAuthorNames returns the author names used by the given tenants
func (r *redisRepository) ListAuthorNames(ctx context.Context, input *ListAuthorNamesInput) (*ListAuthorNamesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.TenantIDs) == 0 {
		return &ListAuthorNamesOutput{Names: []string{}}, nil
	}

	keys := make([]string, 0, len(input.TenantIDs))
	for _, id := range input.TenantIDs {
		keys = append(keys, tenantAuthorsPrefix+id)
	}

	names, err := r.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list author names: %w", err)
	}

	sort.Strings(names)

	return &ListAuthorNamesOutput{Names: names}, nil
}

// TokenExists reports whether the token has been claimed by a quote
func (r *redisRepository) TokenExists(ctx context.Context, input *TokenExistsInput) (bool, error) {
	if input == nil || input.Token == "" {
		return false, errors.New("input and token cannot be empty")
	}

	n, err := r.client.Exists(ctx, quoteTokenKeyPrefix+input.Token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check quote token: %w", err)
	}

	return n > 0, nil
}
