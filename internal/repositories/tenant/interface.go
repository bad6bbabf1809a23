package tenant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/quoted/internal/repositories/tenant Repository

import (
	"context"

	"github.com/KirkDiggler/quoted/internal/models"
)

// Repository defines the interface for tenant and follow-graph persistence
type Repository interface {
	// SaveTenant persists a tenant's attributes. Follow edges are not touched.
	SaveTenant(ctx context.Context, input *SaveTenantInput) error

	// GetTenant retrieves a tenant with its Following populated
	GetTenant(ctx context.Context, input *GetTenantInput) (*models.Tenant, error)

	// GetTenants retrieves several tenants; IDs with no record are skipped
	GetTenants(ctx context.Context, input *GetTenantsInput) (*GetTenantsOutput, error)

	// AddFollow adds an outbound follow edge
	AddFollow(ctx context.Context, input *AddFollowInput) error

	// RemoveFollow removes an outbound follow edge
	RemoveFollow(ctx context.Context, input *RemoveFollowInput) error
}
