package tenant

import (
	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/models"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
)

// Config holds configuration for the tenant service
type Config struct {
	TenantRepo tenantRepo.Repository
	Clock      clock.Clock
}

// TouchInput identifies the tenant an interaction came from
type TouchInput struct {
	TenantID    string
	Kind        models.TenantKind
	Name        string
	MemberCount int
}

// TouchOutput contains the current tenant record
type TouchOutput struct {
	Tenant *models.Tenant

	// Created is true if this was the tenant's first interaction
	Created bool
}

type FollowInput struct {
	TenantID string
	TargetID string
}

type UnfollowInput struct {
	TenantID string
	TargetID string
}

type SetPrivacyInput struct {
	TenantID string
	Privacy  models.Privacy
}
