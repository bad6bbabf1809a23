package visibility

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/quoted/internal/models"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
)

// Service resolves which tenants' quotes a tenant may read
type Service interface {
	AccessibleTenants(ctx context.Context, input *AccessibleTenantsInput) (*AccessibleTenantsOutput, error)
}

type AccessibleTenantsInput struct {
	TenantID string
}

type AccessibleTenantsOutput struct {
	// TenantIDs always contains the requesting tenant
	TenantIDs models.TenantSet
}

// Resolve computes the accessible tenant set of node.
//
// The tenant itself is always included. A followed tenant is included unless it is
// private; a two-way tenant additionally has to follow the tenant back. Dangling edges
// are skipped. Only direct edges count, following a follower grants nothing.
func Resolve(node *models.TenantNode) models.TenantSet {
	set := models.NewTenantSet()
	if node == nil || node.Tenant == nil {
		return set
	}

	self := node.Tenant
	set.Add(self.ID)

	for _, edge := range node.Following {
		if edge.IsDangling() || edge.Target.ID == self.ID {
			continue
		}

		switch edge.Target.Privacy {
		case models.PrivacyPrivate:
			continue
		case models.PrivacyTwoWay:
			if !edge.Target.Follows(self.ID) {
				continue
			}
		}

		set.Add(edge.Target.ID)
	}

	return set
}

// Config holds configuration for the resolver
type Config struct {
	TenantRepo tenantRepo.Repository
}

type resolver struct {
	tenantRepo tenantRepo.Repository
}

// New creates a resolver that loads tenant nodes from the tenant repository
func New(cfg *Config) (*resolver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.TenantRepo == nil {
		return nil, errors.New("tenant repository cannot be nil")
	}

	return &resolver{
		tenantRepo: cfg.TenantRepo,
	}, nil
}

// AccessibleTenants loads the tenant and its follow targets, then resolves them.
// A tenant with no record has no edges and only sees itself.
func (r *resolver) AccessibleTenants(ctx context.Context, input *AccessibleTenantsInput) (*AccessibleTenantsOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, errors.New("input and tenant ID cannot be empty")
	}

	node, err := r.loadNode(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	return &AccessibleTenantsOutput{
		TenantIDs: Resolve(node),
	}, nil
}

func (r *resolver) loadNode(ctx context.Context, tenantID string) (*models.TenantNode, error) {
	tenant, err := r.tenantRepo.GetTenant(ctx, &tenantRepo.GetTenantInput{
		TenantID: tenantID,
	})
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return &models.TenantNode{Tenant: &models.Tenant{ID: tenantID}}, nil
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	node := &models.TenantNode{
		Tenant:    tenant,
		Following: make([]*models.FollowEdge, 0, len(tenant.Following)),
	}

	if len(tenant.Following) == 0 {
		return node, nil
	}

	targets, err := r.tenantRepo.GetTenants(ctx, &tenantRepo.GetTenantsInput{
		TenantIDs: tenant.Following,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get followed tenants: %w", err)
	}

	for _, targetID := range tenant.Following {
		node.Following = append(node.Following, &models.FollowEdge{
			TargetID: targetID,
			Target:   targets.Tenants[targetID],
		})
	}

	return node, nil
}
