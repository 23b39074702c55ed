package authz

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/audit"
	"github.com/dmitrymomot/rbackit/pkg/org"
)

// Guard is a Storage wrapper enforcing tenant isolation: every operation
// that names an organization-scoped entity is checked against the
// organization in the request context before it reaches the underlying
// store. A caller-supplied id that resolves to another organization's
// entity fails with ErrCrossTenantAccess and is recorded for security
// audit; it is never silently filtered.
//
// The guard requires an organization in the context for all scoped
// operations, so it belongs behind org.Middleware (or an equivalent that
// populates the context). CreateOrganization and GetOrganizationBySlug
// pass through unguarded: they run during bootstrap and organization
// resolution, before any tenant context exists.
//
// Use Sanitize on errors crossing the application boundary so
// ErrCrossTenantAccess collapses to the generic ErrNotFound.
type Guard struct {
	next  Storage
	log   *slog.Logger
	audit audit.Logger
}

// GuardOption configures the guard.
type GuardOption func(*Guard)

// WithGuardLogger sets the guard logger.
func WithGuardLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithGuardAuditLogger records cross-tenant violations to an audit trail.
func WithGuardAuditLogger(a audit.Logger) GuardOption {
	return func(g *Guard) {
		g.audit = a
	}
}

// NewGuard wraps a Storage with tenant-isolation checks.
func NewGuard(next Storage, opts ...GuardOption) *Guard {
	if next == nil {
		panic("authz: storage cannot be nil")
	}

	g := &Guard{
		next: next,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// contextOrg returns the organization id the caller is operating under.
func (g *Guard) contextOrg(ctx context.Context) (uuid.UUID, error) {
	id, ok := org.IDFromContext(ctx)
	if !ok {
		return uuid.UUID{}, org.ErrNoOrganizationInContext
	}
	return id, nil
}

// checkOrg verifies that the entity's owning organization matches the
// caller's context, recording a violation when it does not.
func (g *Guard) checkOrg(ctx context.Context, ctxOrg, entityOrg uuid.UUID, resource, resourceID string) error {
	if entityOrg == ctxOrg {
		return nil
	}

	g.log.WarnContext(ctx, "cross-tenant access rejected",
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("context_org", ctxOrg.String()),
		slog.String("entity_org", entityOrg.String()))

	if g.audit != nil {
		if err := g.audit.LogError(ctx, "storage.cross_tenant_access", ErrCrossTenantAccess,
			audit.WithResource(resource, resourceID),
			audit.WithResult(audit.ResultDenied),
			audit.WithMetadata("entity_org", entityOrg.String()),
		); err != nil {
			g.log.ErrorContext(ctx, "audit log failed", slog.Any("error", err))
		}
	}

	return ErrCrossTenantAccess
}

// resolveRole loads a role through the inner store and verifies ownership.
func (g *Guard) resolveRole(ctx context.Context, roleID uuid.UUID) (Role, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return Role{}, err
	}
	role, err := g.next.GetRole(ctx, roleID)
	if err != nil {
		return Role{}, err
	}
	if err := g.checkOrg(ctx, ctxOrg, role.OrgID, "role", roleID.String()); err != nil {
		return Role{}, err
	}
	return role, nil
}

func (g *Guard) CreateOrganization(ctx context.Context, o org.Organization) error {
	return g.next.CreateOrganization(ctx, o)
}

func (g *Guard) GetOrganization(ctx context.Context, id uuid.UUID) (org.Organization, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return org.Organization{}, err
	}
	if err := g.checkOrg(ctx, ctxOrg, id, "organization", id.String()); err != nil {
		return org.Organization{}, err
	}
	return g.next.GetOrganization(ctx, id)
}

func (g *Guard) GetOrganizationBySlug(ctx context.Context, slug string) (org.Organization, error) {
	return g.next.GetOrganizationBySlug(ctx, slug)
}

func (g *Guard) CreateRole(ctx context.Context, r Role) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, r.OrgID, "role", r.ID.String()); err != nil {
		return err
	}
	return g.next.CreateRole(ctx, r)
}

func (g *Guard) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	return g.resolveRole(ctx, id)
}

func (g *Guard) FindRoleByName(ctx context.Context, orgID uuid.UUID, name string) (Role, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return Role{}, err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "organization", orgID.String()); err != nil {
		return Role{}, err
	}
	return g.next.FindRoleByName(ctx, orgID, name)
}

func (g *Guard) ListRoles(ctx context.Context, orgID uuid.UUID) ([]Role, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "organization", orgID.String()); err != nil {
		return nil, err
	}
	return g.next.ListRoles(ctx, orgID)
}

func (g *Guard) SoftDeleteRole(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := g.resolveRole(ctx, id); err != nil {
		return err
	}
	return g.next.SoftDeleteRole(ctx, id, at)
}

func (g *Guard) AddRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	if _, err := g.resolveRole(ctx, roleID); err != nil {
		return err
	}
	return g.next.AddRolePermission(ctx, roleID, permissionID)
}

func (g *Guard) RemoveRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	if _, err := g.resolveRole(ctx, roleID); err != nil {
		return err
	}
	return g.next.RemoveRolePermission(ctx, roleID, permissionID)
}

func (g *Guard) ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	if _, err := g.resolveRole(ctx, roleID); err != nil {
		return nil, err
	}
	return g.next.ListRolePermissions(ctx, roleID)
}

func (g *Guard) CreateMembership(ctx context.Context, m Membership) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, m.OrgID, "membership", m.UserID.String()); err != nil {
		return err
	}
	return g.next.CreateMembership(ctx, m)
}

func (g *Guard) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (Membership, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return Membership{}, err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "membership", userID.String()); err != nil {
		return Membership{}, err
	}
	return g.next.GetMembership(ctx, userID, orgID)
}

func (g *Guard) UpdateMembershipTier(ctx context.Context, userID, orgID uuid.UUID, tier Tier) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "membership", userID.String()); err != nil {
		return err
	}
	return g.next.UpdateMembershipTier(ctx, userID, orgID, tier)
}

func (g *Guard) DeleteMembership(ctx context.Context, userID, orgID uuid.UUID) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "membership", userID.String()); err != nil {
		return err
	}
	return g.next.DeleteMembership(ctx, userID, orgID)
}

func (g *Guard) ListMembers(ctx context.Context, orgID uuid.UUID) ([]Membership, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "organization", orgID.String()); err != nil {
		return nil, err
	}
	return g.next.ListMembers(ctx, orgID)
}

func (g *Guard) CreateAssignment(ctx context.Context, a RoleAssignment) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, a.OrgID, "assignment", a.UserID.String()); err != nil {
		return err
	}
	return g.next.CreateAssignment(ctx, a)
}

func (g *Guard) DeleteAssignment(ctx context.Context, userID, roleID, orgID uuid.UUID) error {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "assignment", userID.String()); err != nil {
		return err
	}
	return g.next.DeleteAssignment(ctx, userID, roleID, orgID)
}

func (g *Guard) ListAssignments(ctx context.Context, userID, orgID uuid.UUID) ([]RoleAssignment, error) {
	ctxOrg, err := g.contextOrg(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.checkOrg(ctx, ctxOrg, orgID, "assignment", userID.String()); err != nil {
		return nil, err
	}
	return g.next.ListAssignments(ctx, userID, orgID)
}
