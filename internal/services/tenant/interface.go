package tenant

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/quoted/internal/services/tenant Service

import "context"

// Service defines the tenant lifecycle operations
type Service interface {
	// Touch creates the tenant on first interaction or refreshes its name and member count
	Touch(ctx context.Context, input *TouchInput) (*TouchOutput, error)

	// Follow makes a tenant read another tenant's quotes, subject to the target's privacy
	Follow(ctx context.Context, input *FollowInput) error

	// Unfollow removes a follow edge
	Unfollow(ctx context.Context, input *UnfollowInput) error

	// SetPrivacy changes who may read the tenant's quotes
	SetPrivacy(ctx context.Context, input *SetPrivacyInput) error
}
