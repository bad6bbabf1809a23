package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/quoted/internal/common/uuid UUID

// UUID generates record identifiers for quotes and game sessions.
// These are internal keys; the short human-shareable tokens come from the token service.
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using random (v4) uuids
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
