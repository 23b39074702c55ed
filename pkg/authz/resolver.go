package authz

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/catalog"
	"github.com/dmitrymomot/rbackit/pkg/org"
)

// Resolver answers authorization queries by computing a user's effective
// permission set within an organization: the union of the grants of every
// non-deleted role currently assigned to the user there.
//
// Queries never fail on mere absence of access. A user without membership,
// without assignments, or holding only soft-deleted roles simply has an
// empty effective set. Errors are reserved for malformed requests, such as
// an organization id that does not exist at all.
type Resolver struct {
	storage Storage
	catalog *catalog.Catalog
	log     *slog.Logger
}

// ResolverOption configures the resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the resolver logger.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver over the given storage and catalog.
func NewResolver(storage Storage, cat *catalog.Catalog, opts ...ResolverOption) *Resolver {
	if storage == nil {
		panic("authz: storage cannot be nil")
	}
	if cat == nil {
		panic("authz: catalog cannot be nil")
	}

	r := &Resolver{
		storage: storage,
		catalog: cat,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EffectivePermissions computes the user's effective permission set within
// the organization. The returned set is a snapshot of store state at query
// time; callers may reuse it for the duration of one request but must not
// cache it across requests, because revocations take effect on the next
// independent query.
func (r *Resolver) EffectivePermissions(ctx context.Context, userID, orgID uuid.UUID) (PermissionSet, error) {
	if _, err := r.storage.GetMembership(ctx, userID, orgID); err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			// No membership means no permissions, but an organization that
			// does not exist at all is a malformed request, not a deny.
			if _, orgErr := r.storage.GetOrganization(ctx, orgID); orgErr != nil {
				return nil, orgErr
			}
			return PermissionSet{}, nil
		}
		return nil, err
	}

	assignments, err := r.storage.ListAssignments(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	effective := PermissionSet{}
	for _, a := range assignments {
		role, err := r.storage.GetRole(ctx, a.RoleID)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				continue
			}
			return nil, err
		}
		// Soft-deleted roles stop granting immediately; their orphaned
		// assignments are skipped here, not cleaned up.
		if role.Deleted() {
			continue
		}

		perms, err := r.storage.ListRolePermissions(ctx, a.RoleID)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				continue
			}
			return nil, err
		}
		for _, id := range perms {
			effective[id] = struct{}{}
		}
	}
	return effective, nil
}

// Authorize reports whether the user holds the permission within the
// organization. Unknown permission identifiers are always denied, and a
// missing membership is a plain deny, so the check is safe to call
// speculatively.
func (r *Resolver) Authorize(ctx context.Context, userID, orgID uuid.UUID, permissionID string) (bool, error) {
	if !r.catalog.Has(permissionID) {
		return false, nil
	}

	effective, err := r.EffectivePermissions(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	return effective.Has(permissionID), nil
}

// AuthorizeAny reports whether the user holds at least one of the
// permissions. An empty list is never satisfied.
func (r *Resolver) AuthorizeAny(ctx context.Context, userID, orgID uuid.UUID, permissionIDs ...string) (bool, error) {
	if len(permissionIDs) == 0 {
		return false, nil
	}

	effective, err := r.EffectivePermissions(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	for _, id := range permissionIDs {
		if r.catalog.Has(id) && effective.Has(id) {
			return true, nil
		}
	}
	return false, nil
}

// AuthorizeAll reports whether the user holds every listed permission.
// An empty list is vacuously satisfied.
func (r *Resolver) AuthorizeAll(ctx context.Context, userID, orgID uuid.UUID, permissionIDs ...string) (bool, error) {
	if len(permissionIDs) == 0 {
		return true, nil
	}

	effective, err := r.EffectivePermissions(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	for _, id := range permissionIDs {
		if !r.catalog.Has(id) || !effective.Has(id) {
			return false, nil
		}
	}
	return true, nil
}

// AuthorizeFromContext checks the permission for the user and organization
// carried by the request context. A context without a user or organization
// is a malformed request and yields an error alongside the deny.
func (r *Resolver) AuthorizeFromContext(ctx context.Context, permissionID string) (bool, error) {
	userID, orgID, err := idsFromContext(ctx)
	if err != nil {
		return false, err
	}
	return r.Authorize(ctx, userID, orgID, permissionID)
}

// AuthorizeAnyFromContext is AuthorizeAny against the context's user and
// organization.
func (r *Resolver) AuthorizeAnyFromContext(ctx context.Context, permissionIDs ...string) (bool, error) {
	userID, orgID, err := idsFromContext(ctx)
	if err != nil {
		return false, err
	}
	return r.AuthorizeAny(ctx, userID, orgID, permissionIDs...)
}

// AuthorizeAllFromContext is AuthorizeAll against the context's user and
// organization.
func (r *Resolver) AuthorizeAllFromContext(ctx context.Context, permissionIDs ...string) (bool, error) {
	userID, orgID, err := idsFromContext(ctx)
	if err != nil {
		return false, err
	}
	return r.AuthorizeAll(ctx, userID, orgID, permissionIDs...)
}

func idsFromContext(ctx context.Context) (userID, orgID uuid.UUID, err error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, ErrNoUserInContext
	}
	orgID, ok = org.IDFromContext(ctx)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, org.ErrNoOrganizationInContext
	}
	return userID, orgID, nil
}
