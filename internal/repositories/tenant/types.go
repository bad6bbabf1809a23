package tenant

import "github.com/KirkDiggler/quoted/internal/models"

type SaveTenantInput struct {
	Tenant *models.Tenant
}

type GetTenantInput struct {
	TenantID string
}

type GetTenantsInput struct {
	TenantIDs []string
}

type GetTenantsOutput struct {
	// Tenants is keyed by tenant ID
	Tenants map[string]*models.Tenant
}

type AddFollowInput struct {
	TenantID string
	TargetID string
}

type RemoveFollowInput struct {
	TenantID string
	TargetID string
}
