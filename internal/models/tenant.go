package models

import (
	"sort"
	"time"
)

// TenantKind distinguishes guild tenants from direct-message users
type TenantKind string

const (
	// TenantKindUser is a single Discord user talking to the bot directly
	TenantKindUser TenantKind = "user"

	// TenantKindGuild is a Discord server
	TenantKindGuild TenantKind = "guild"
)

// IsValid reports whether k is a known tenant kind
func (k TenantKind) IsValid() bool {
	return k == TenantKindUser || k == TenantKindGuild
}

// Privacy controls which followers may read a tenant's quotes
type Privacy string

const (
	// PrivacyPublic lets every follower read the tenant's quotes
	PrivacyPublic Privacy = "public"

	// PrivacyPrivate hides the tenant's quotes from every follower
	PrivacyPrivate Privacy = "private"

	// PrivacyTwoWay only shares with followers the tenant follows back
	PrivacyTwoWay Privacy = "two_way"
)

// IsValid reports whether p is a known privacy setting
func (p Privacy) IsValid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyTwoWay:
		return true
	default:
		return false
	}
}

// Tenant is a guild or user that owns quotes and game sessions
type Tenant struct {
	// ID is the external Discord identifier (guild ID or user ID)
	ID string

	// Kind is whether this tenant is a guild or a user
	Kind TenantKind

	// Name is the display name, refreshed on every interaction
	Name string

	// MemberCount is the guild member count (0 for users)
	MemberCount int

	// Privacy is who may read this tenant's quotes
	Privacy Privacy

	// Following contains the IDs of tenants this tenant reads from.
	// Targets may no longer exist.
	Following []string

	// CreatedAt is when the tenant first interacted with the bot
	CreatedAt time.Time

	// UpdatedAt is when the tenant was last refreshed
	UpdatedAt time.Time
}

// Follows reports whether the tenant has an outbound edge to targetID
func (t *Tenant) Follows(targetID string) bool {
	for _, id := range t.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// FollowEdge is an outbound edge of the follow-graph with its target resolved.
// Target is nil when the edge points at a tenant that no longer exists.
type FollowEdge struct {
	TargetID string
	Target   *Tenant
}

// IsDangling reports whether the edge target could not be found
func (e *FollowEdge) IsDangling() bool {
	return e == nil || e.Target == nil
}

// TenantNode is a tenant together with its resolved outbound edges
type TenantNode struct {
	Tenant    *Tenant
	Following []*FollowEdge
}

// TenantSet is a set of tenant IDs
type TenantSet map[string]struct{}

// NewTenantSet creates a set holding ids
func NewTenantSet(ids ...string) TenantSet {
	set := make(TenantSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add inserts id
func (s TenantSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set
func (s TenantSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted, so storage queries are issued in a stable order
func (s TenantSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
