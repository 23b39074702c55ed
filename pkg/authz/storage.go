package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/org"
)

// Storage is the persistence contract for the authorization core. Backends
// need single-row atomic update semantics; no cross-row transactions are
// required, because the only multi-row-visible mutation (role deletion) is
// a single tombstone field flip.
//
// Methods return the package's sentinel errors: ErrRoleNotFound,
// ErrMembershipNotFound, ErrOrganizationNotFound, ErrAlreadyMember,
// ErrAlreadyAssigned, ErrDuplicateRoleName, ErrDuplicateSlug.
type Storage interface {
	// CreateOrganization persists a new organization. The slug must be
	// unique across all organizations.
	CreateOrganization(ctx context.Context, o org.Organization) error

	// GetOrganization retrieves an organization by id.
	GetOrganization(ctx context.Context, id uuid.UUID) (org.Organization, error)

	// GetOrganizationBySlug retrieves an organization by its unique slug.
	GetOrganizationBySlug(ctx context.Context, slug string) (org.Organization, error)

	// CreateRole persists a new role. Fails with ErrDuplicateRoleName when
	// a non-deleted role with the same name (case-insensitive) exists in
	// the organization.
	CreateRole(ctx context.Context, r Role) error

	// GetRole retrieves a role by id, including soft-deleted roles.
	// Callers decide whether a tombstone is acceptable.
	GetRole(ctx context.Context, id uuid.UUID) (Role, error)

	// FindRoleByName retrieves the non-deleted role with the given name in
	// the organization, compared case-insensitively.
	FindRoleByName(ctx context.Context, orgID uuid.UUID, name string) (Role, error)

	// ListRoles returns the organization's non-deleted roles.
	ListRoles(ctx context.Context, orgID uuid.UUID) ([]Role, error)

	// SoftDeleteRole marks the role deleted at the given time. Deleting an
	// already-deleted role is a no-op; the original tombstone is kept.
	SoftDeleteRole(ctx context.Context, id uuid.UUID, at time.Time) error

	// AddRolePermission records that the role grants the permission.
	// Adding an existing grant is a no-op.
	AddRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error

	// RemoveRolePermission removes a grant; absent grants are a no-op.
	RemoveRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error

	// ListRolePermissions returns the role's granted permission
	// identifiers in sorted order. Soft-deleted roles keep their rows.
	ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)

	// CreateMembership persists a membership. Fails with ErrAlreadyMember
	// when the (user, organization) pair exists.
	CreateMembership(ctx context.Context, m Membership) error

	// GetMembership retrieves the membership for a (user, organization)
	// pair, or ErrMembershipNotFound.
	GetMembership(ctx context.Context, userID, orgID uuid.UUID) (Membership, error)

	// UpdateMembershipTier changes the membership tier.
	UpdateMembershipTier(ctx context.Context, userID, orgID uuid.UUID, tier Tier) error

	// DeleteMembership removes the membership row; absent rows are a
	// no-op. Role assignments are left in place; without a membership
	// they are inert.
	DeleteMembership(ctx context.Context, userID, orgID uuid.UUID) error

	// ListMembers returns all memberships of an organization.
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]Membership, error)

	// CreateAssignment persists a role assignment. Fails with
	// ErrAlreadyAssigned when the (user, role, organization) triple exists.
	CreateAssignment(ctx context.Context, a RoleAssignment) error

	// DeleteAssignment removes an assignment; absent rows are a no-op.
	DeleteAssignment(ctx context.Context, userID, roleID, orgID uuid.UUID) error

	// ListAssignments returns the user's role assignments within the
	// organization, including assignments pointing at soft-deleted roles.
	ListAssignments(ctx context.Context, userID, orgID uuid.UUID) ([]RoleAssignment, error)
}
