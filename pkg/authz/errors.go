package authz

import (
	"errors"
	"fmt"
)

// ErrNotFound is the generic absence error surfaced at the application
// boundary. The specific not-found sentinels below wrap it, so callers can
// match either the precise entity or the generic case.
var ErrNotFound = errors.New("not found")

var (
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrRoleNotFound         = fmt.Errorf("role %w", ErrNotFound)
	ErrMembershipNotFound   = fmt.Errorf("membership %w", ErrNotFound)
)

var (
	// ErrCrossTenantAccess is returned when a caller-supplied identifier
	// resolves to an entity owned by a different organization than the
	// caller's context. It is logged for security audit and must be
	// collapsed to ErrNotFound before reaching end users (see Sanitize)
	// so that the existence of other tenants' entities does not leak.
	ErrCrossTenantAccess = errors.New("cross-tenant access")

	// ErrDuplicateRoleName is returned when creating a role whose name is
	// already used by a non-deleted role in the same organization.
	ErrDuplicateRoleName = errors.New("role name already exists in organization")

	// ErrDuplicateSlug is returned when creating an organization with a
	// slug that is already taken.
	ErrDuplicateSlug = errors.New("organization slug already exists")

	// ErrUnknownPermission is returned when a grant or revoke references a
	// permission identifier absent from the catalog.
	ErrUnknownPermission = errors.New("permission not in catalog")

	// ErrNotAMember is returned when assigning a role to a user without a
	// membership in the target organization.
	ErrNotAMember = errors.New("user is not a member of organization")

	// ErrAlreadyMember is returned when adding a membership that exists.
	ErrAlreadyMember = errors.New("user is already a member of organization")

	// ErrAlreadyAssigned is the storage-level signal for a duplicate role
	// assignment. Services treat it as idempotent success.
	ErrAlreadyAssigned = errors.New("role already assigned")

	// ErrOrganizationMismatch is returned when a role assignment names an
	// organization different from the role's owning organization.
	ErrOrganizationMismatch = errors.New("role belongs to a different organization")

	// ErrInvalidRoleName is returned when a role name is empty.
	ErrInvalidRoleName = errors.New("role name is required")

	// ErrInvalidTier is returned when a membership tier is not recognized.
	ErrInvalidTier = errors.New("invalid membership tier")

	// ErrNoUserInContext is returned by context-based authorization checks
	// when no user identifier is present in the request context.
	ErrNoUserInContext = errors.New("no user in context")
)

// Sanitize prepares an error for the application boundary: cross-tenant
// violations become the generic ErrNotFound so responses do not reveal that
// an entity exists under another tenant. Every other error passes through.
// Call it after the internal error has been audited.
func Sanitize(err error) error {
	if errors.Is(err, ErrCrossTenantAccess) {
		return ErrNotFound
	}
	return err
}
