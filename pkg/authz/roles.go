package authz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/audit"
	"github.com/dmitrymomot/rbackit/pkg/catalog"
)

// RoleService manages organization-scoped roles and their permission
// grants. All mutations validate invariants before touching storage and
// surface violations as typed errors, never silent corrections.
type RoleService struct {
	storage Storage
	catalog *catalog.Catalog
	log     *slog.Logger
	audit   audit.Logger
}

// RoleOption configures the role service.
type RoleOption func(*RoleService)

// WithRoleLogger sets the service logger.
func WithRoleLogger(log *slog.Logger) RoleOption {
	return func(s *RoleService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRoleAuditLogger records role mutations to an audit trail.
func WithRoleAuditLogger(a audit.Logger) RoleOption {
	return func(s *RoleService) {
		s.audit = a
	}
}

// NewRoleService creates a role service over the given storage and
// permission catalog.
func NewRoleService(storage Storage, cat *catalog.Catalog, opts ...RoleOption) *RoleService {
	if storage == nil {
		panic("authz: storage cannot be nil")
	}
	if cat == nil {
		panic("authz: catalog cannot be nil")
	}

	s := &RoleService{
		storage: storage,
		catalog: cat,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRole creates a role owned by the organization. The name must be
// unique among the organization's non-deleted roles, compared
// case-insensitively because role names are human-readable labels.
func (s *RoleService) CreateRole(ctx context.Context, orgID uuid.UUID, name, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, ErrInvalidRoleName
	}

	if _, err := s.storage.GetOrganization(ctx, orgID); err != nil {
		return Role{}, err
	}

	role := Role{
		ID:          uuid.New(),
		OrgID:       orgID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.storage.CreateRole(ctx, role); err != nil {
		return Role{}, fmt.Errorf("create role %q: %w", name, err)
	}

	s.log.InfoContext(ctx, "role created",
		slog.String("role_id", role.ID.String()),
		slog.String("org_id", orgID.String()),
		slog.String("name", name))
	s.auditLog(ctx, "role.created", role.ID, audit.WithMetadata("name", name))

	return role, nil
}

// Get retrieves a role by id, including soft-deleted roles so that
// administrative surfaces can render the audit trail.
func (s *RoleService) Get(ctx context.Context, roleID uuid.UUID) (Role, error) {
	return s.storage.GetRole(ctx, roleID)
}

// FindByName retrieves the organization's non-deleted role with the given
// name, compared case-insensitively.
func (s *RoleService) FindByName(ctx context.Context, orgID uuid.UUID, name string) (Role, error) {
	return s.storage.FindRoleByName(ctx, orgID, name)
}

// List returns the organization's non-deleted roles.
func (s *RoleService) List(ctx context.Context, orgID uuid.UUID) ([]Role, error) {
	return s.storage.ListRoles(ctx, orgID)
}

// GrantPermission records that the role grants the permission. Granting an
// already-granted permission is a no-op. The permission must exist in the
// catalog and the role must not be soft-deleted.
func (s *RoleService) GrantPermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	if !s.catalog.Has(permissionID) {
		return fmt.Errorf("%w: %s", ErrUnknownPermission, permissionID)
	}

	role, err := s.storage.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Deleted() {
		return ErrRoleNotFound
	}

	if err := s.storage.AddRolePermission(ctx, roleID, permissionID); err != nil {
		return fmt.Errorf("grant %s to role %s: %w", permissionID, roleID, err)
	}

	s.auditLog(ctx, "role.permission_granted", roleID, audit.WithMetadata("permission", permissionID))
	return nil
}

// RevokePermission removes a grant from the role. Revoking a permission
// that is not granted is a no-op.
func (s *RoleService) RevokePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	role, err := s.storage.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Deleted() {
		return ErrRoleNotFound
	}

	if err := s.storage.RemoveRolePermission(ctx, roleID, permissionID); err != nil {
		return fmt.Errorf("revoke %s from role %s: %w", permissionID, roleID, err)
	}

	s.auditLog(ctx, "role.permission_revoked", roleID, audit.WithMetadata("permission", permissionID))
	return nil
}

// DeleteRole soft-deletes the role: a single tombstone field flip, so a
// concurrent permission resolution sees the role either fully present or
// fully gone. Permission and assignment rows remain as inert audit data.
// Deleting an already-deleted role is a no-op.
func (s *RoleService) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.storage.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Deleted() {
		return nil
	}

	if err := s.storage.SoftDeleteRole(ctx, roleID, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete role %s: %w", roleID, err)
	}

	s.log.InfoContext(ctx, "role deleted",
		slog.String("role_id", roleID.String()),
		slog.String("org_id", role.OrgID.String()))
	s.auditLog(ctx, "role.deleted", roleID, audit.WithMetadata("name", role.Name))

	return nil
}

// PermissionsOf returns the role's granted permission identifiers. The set
// reflects stored grants even for soft-deleted roles, since tombstoned
// grants remain part of the audit trail; only effective-permission
// resolution excludes deleted roles.
func (s *RoleService) PermissionsOf(ctx context.Context, roleID uuid.UUID) (PermissionSet, error) {
	if _, err := s.storage.GetRole(ctx, roleID); err != nil {
		return nil, err
	}

	ids, err := s.storage.ListRolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return NewPermissionSet(ids...), nil
}

func (s *RoleService) auditLog(ctx context.Context, action string, roleID uuid.UUID, opts ...audit.EventOption) {
	if s.audit == nil {
		return
	}
	opts = append(opts, audit.WithResource("role", roleID.String()))
	if err := s.audit.Log(ctx, action, opts...); err != nil {
		s.log.ErrorContext(ctx, "audit log failed",
			slog.String("action", action),
			slog.Any("error", err))
	}
}
