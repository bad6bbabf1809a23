package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	tenantKeyPrefix    = "tenant:"
	followingKeyPrefix = "tenant_following:"
)

// ErrTenantNotFound is returned when a tenant is not found
var ErrTenantNotFound = errors.New("tenant not found")

// Config holds configuration for the Redis tenant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed tenant repository
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

func tenantKey(id string) string {
	return tenantKeyPrefix + id
}

func followingKey(id string) string {
	return followingKeyPrefix + id
}

// SaveTenant persists a tenant to Redis. Following lives in its own set and is ignored here.
func (r *redisRepository) SaveTenant(ctx context.Context, input *SaveTenantInput) error {
	if input == nil || input.Tenant == nil {
		return errors.New("input and tenant cannot be nil")
	}

	if input.Tenant.ID == "" {
		return errors.New("tenant ID cannot be empty")
	}

	stored := *input.Tenant
	stored.Following = nil

	tenantJSON, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant: %w", err)
	}

	if err := r.client.Set(ctx, tenantKey(stored.ID), tenantJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}

	return nil
}

// GetTenant retrieves a tenant and its follow edges
func (r *redisRepository) GetTenant(ctx context.Context, input *GetTenantInput) (*models.Tenant, error) {
	if input == nil || input.TenantID == "" {
		return nil, errors.New("input and tenant ID cannot be empty")
	}

	output, err := r.GetTenants(ctx, &GetTenantsInput{
		TenantIDs: []string{input.TenantID},
	})
	if err != nil {
		return nil, err
	}

	tenant, ok := output.Tenants[input.TenantID]
	if !ok {
		return nil, ErrTenantNotFound
	}

	return tenant, nil
}

// GetTenants retrieves tenants and their follow edges in a single pipeline
func (r *redisRepository) GetTenants(ctx context.Context, input *GetTenantsInput) (*GetTenantsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	output := &GetTenantsOutput{
		Tenants: make(map[string]*models.Tenant, len(input.TenantIDs)),
	}

	if len(input.TenantIDs) == 0 {
		return output, nil
	}

	pipe := r.client.Pipeline()
	tenantCommands := make(map[string]*redis.StringCmd, len(input.TenantIDs))
	followingCommands := make(map[string]*redis.StringSliceCmd, len(input.TenantIDs))

	for _, id := range input.TenantIDs {
		if id == "" {
			continue
		}
		if _, seen := tenantCommands[id]; seen {
			continue
		}
		tenantCommands[id] = pipe.Get(ctx, tenantKey(id))
		followingCommands[id] = pipe.SMembers(ctx, followingKey(id))
	}

	// redis.Nil from a missing tenant is reported per command, not as a failure
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get tenants: %w", err)
	}

	for id, cmd := range tenantCommands {
		tenantJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get tenant %s: %w", id, err)
		}

		var tenant models.Tenant
		if err := json.Unmarshal([]byte(tenantJSON), &tenant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tenant %s: %w", id, err)
		}

		following, err := followingCommands[id].Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to get following for tenant %s: %w", id, err)
		}
		sort.Strings(following)
		tenant.Following = following

		output.Tenants[id] = &tenant
	}

	return output, nil
}

// AddFollow adds targetID to the tenant's following set
func (r *redisRepository) AddFollow(ctx context.Context, input *AddFollowInput) error {
	if input == nil || input.TenantID == "" || input.TargetID == "" {
		return errors.New("input, tenant ID and target ID cannot be empty")
	}

	if err := r.client.SAdd(ctx, followingKey(input.TenantID), input.TargetID).Err(); err != nil {
		return fmt.Errorf("failed to add follow: %w", err)
	}

	return nil
}

// RemoveFollow removes targetID from the tenant's following set
func (r *redisRepository) RemoveFollow(ctx context.Context, input *RemoveFollowInput) error {
	if input == nil || input.TenantID == "" || input.TargetID == "" {
		return errors.New("input, tenant ID and target ID cannot be empty")
	}

	if err := r.client.SRem(ctx, followingKey(input.TenantID), input.TargetID).Err(); err != nil {
		return fmt.Errorf("failed to remove follow: %w", err)
	}

	return nil
}
