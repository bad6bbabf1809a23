package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/models"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	tenantRepo tenantRepo.Repository
	clock      clock.Clock
}

// New creates a new tenant service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.TenantRepo == nil {
		return nil, ErrNilTenantRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		tenantRepo: cfg.TenantRepo,
		clock:      cfg.Clock,
	}, nil
}

// Touch creates the tenant lazily or refreshes its name and member count
func (s *service) Touch(ctx context.Context, input *TouchInput) (*TouchOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	if !input.Kind.IsValid() {
		return nil, ErrInvalidKind
	}

	memberCount := input.MemberCount
	if input.Kind != models.TenantKindGuild {
		memberCount = 0
	}

	now := s.clock.Now()

	existing, err := s.tenantRepo.GetTenant(ctx, &tenantRepo.GetTenantInput{
		TenantID: input.TenantID,
	})
	if err != nil && !errors.Is(err, tenantRepo.ErrTenantNotFound) {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if existing != nil {
		if existing.Name == input.Name && existing.MemberCount == memberCount && existing.Kind == input.Kind {
			return &TouchOutput{Tenant: existing}, nil
		}

		existing.Kind = input.Kind
		existing.Name = input.Name
		existing.MemberCount = memberCount
		existing.UpdatedAt = now

		if err := s.tenantRepo.SaveTenant(ctx, &tenantRepo.SaveTenantInput{Tenant: existing}); err != nil {
			return nil, fmt.Errorf("failed to update tenant: %w", err)
		}

		return &TouchOutput{Tenant: existing}, nil
	}

	created := &models.Tenant{
		ID:          input.TenantID,
		Kind:        input.Kind,
		Name:        input.Name,
		MemberCount: memberCount,
		Privacy:     models.PrivacyPublic,
		Following:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tenantRepo.SaveTenant(ctx, &tenantRepo.SaveTenantInput{Tenant: created}); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	log.Info().
		Str("tenant_id", created.ID).
		Str("kind", string(created.Kind)).
		Msg("Tenant created")

	return &TouchOutput{Tenant: created, Created: true}, nil
}

// Follow adds a follow edge after checking the target exists
func (s *service) Follow(ctx context.Context, input *FollowInput) error {
	if input == nil || input.TenantID == "" || input.TargetID == "" {
		return ErrInvalidInput
	}

	if input.TenantID == input.TargetID {
		return ErrSelfFollow
	}

	if _, err := s.tenantRepo.GetTenant(ctx, &tenantRepo.GetTenantInput{
		TenantID: input.TargetID,
	}); err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("failed to get follow target: %w", err)
	}

	if err := s.tenantRepo.AddFollow(ctx, &tenantRepo.AddFollowInput{
		TenantID: input.TenantID,
		TargetID: input.TargetID,
	}); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}

	log.Info().
		Str("tenant_id", input.TenantID).
		Str("target_id", input.TargetID).
		Msg("Tenant followed")

	return nil
}

// Unfollow removes a follow edge; removing a missing edge is not an error
func (s *service) Unfollow(ctx context.Context, input *UnfollowInput) error {
	if input == nil || input.TenantID == "" || input.TargetID == "" {
		return ErrInvalidInput
	}

	if err := s.tenantRepo.RemoveFollow(ctx, &tenantRepo.RemoveFollowInput{
		TenantID: input.TenantID,
		TargetID: input.TargetID,
	}); err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}

	return nil
}

// SetPrivacy updates the tenant's privacy setting
func (s *service) SetPrivacy(ctx context.Context, input *SetPrivacyInput) error {
	if input == nil || input.TenantID == "" {
		return ErrInvalidInput
	}

	if !input.Privacy.IsValid() {
		return ErrInvalidPrivacy
	}

	existing, err := s.tenantRepo.GetTenant(ctx, &tenantRepo.GetTenantInput{
		TenantID: input.TenantID,
	})
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("failed to get tenant: %w", err)
	}

	if existing.Privacy == input.Privacy {
		return nil
	}

	existing.Privacy = input.Privacy
	existing.UpdatedAt = s.clock.Now()

	if err := s.tenantRepo.SaveTenant(ctx, &tenantRepo.SaveTenantInput{Tenant: existing}); err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}

	return nil
}
