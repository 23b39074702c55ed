package authz

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Tier is the coarse membership level within an organization, independent
// of role assignments. Roles carry the fine-grained permissions; the tier
// only distinguishes regular members from organization administration.
type Tier string

const (
	TierMember Tier = "member"
	TierAdmin  Tier = "admin"
	TierOwner  Tier = "owner"
)

// Valid reports whether the tier is one of the known levels.
func (t Tier) Valid() bool {
	switch t {
	case TierMember, TierAdmin, TierOwner:
		return true
	}
	return false
}

// Role is a named, organization-scoped bundle of permissions. Role names
// are unique among the non-deleted roles of one organization, compared
// case-insensitively.
type Role struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the role has been soft-deleted. A deleted role
// stops granting access immediately but its rows remain as an audit trail.
func (r Role) Deleted() bool {
	return r.DeletedAt != nil
}

// Membership ties a user to an organization. It is required before any
// role assignment in that organization has effect.
type Membership struct {
	UserID    uuid.UUID `json:"user_id"`
	OrgID     uuid.UUID `json:"org_id"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleAssignment grants a role to a user within an organization. The
// organization always matches the role's owning organization; a mismatch
// is rejected at write time.
type RoleAssignment struct {
	UserID    uuid.UUID `json:"user_id"`
	RoleID    uuid.UUID `json:"role_id"`
	OrgID     uuid.UUID `json:"org_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PermissionSet is an immutable snapshot of permission identifiers. Sets
// returned by the Resolver are copies: they reflect store state at the time
// of the query and never update afterwards.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from identifiers.
func NewPermissionSet(ids ...string) PermissionSet {
	s := make(PermissionSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the identifier.
func (s PermissionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// HasAny reports whether the set contains at least one of the identifiers.
// An empty input yields false: holding "at least one of nothing" is not
// satisfiable.
func (s PermissionSet) HasAny(ids ...string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// HasAll reports whether the set contains every identifier. An empty input
// is vacuously true.
func (s PermissionSet) HasAll(ids ...string) bool {
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// List returns the identifiers in sorted order.
func (s PermissionSet) List() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of identifiers in the set.
func (s PermissionSet) Len() int {
	return len(s)
}
