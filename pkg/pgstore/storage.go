package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rbackit/pkg/authz"
	"github.com/dmitrymomot/rbackit/pkg/org"
	"github.com/dmitrymomot/rbackit/pkg/pg"
)

// Storage is the PostgreSQL implementation of authz.Storage.
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a Storage on the given pool. Run Migrate first.
func New(pool *pgxpool.Pool) *Storage {
	if pool == nil {
		panic("pgstore: pool cannot be nil")
	}
	return &Storage{pool: pool}
}

func (s *Storage) CreateOrganization(ctx context.Context, o org.Organization) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO organizations (id, name, slug, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Name, o.Slug, o.Active, o.CreatedAt)
	if pg.IsUniqueViolation(err) {
		return authz.ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *Storage) GetOrganization(ctx context.Context, id uuid.UUID) (org.Organization, error) {
	var o org.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, slug, active, created_at FROM organizations WHERE id = $1`,
		id).Scan(&o.ID, &o.Name, &o.Slug, &o.Active, &o.CreatedAt)
	if pg.IsNotFound(err) {
		return org.Organization{}, authz.ErrOrganizationNotFound
	}
	if err != nil {
		return org.Organization{}, fmt.Errorf("select organization: %w", err)
	}
	return o, nil
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (org.Organization, error) {
	var o org.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, slug, active, created_at FROM organizations WHERE slug = $1`,
		slug).Scan(&o.ID, &o.Name, &o.Slug, &o.Active, &o.CreatedAt)
	if pg.IsNotFound(err) {
		return org.Organization{}, authz.ErrOrganizationNotFound
	}
	if err != nil {
		return org.Organization{}, fmt.Errorf("select organization by slug: %w", err)
	}
	return o, nil
}

func (s *Storage) CreateRole(ctx context.Context, r authz.Role) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO roles (id, org_id, name, description, created_at, deleted_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.OrgID, r.Name, r.Description, r.CreatedAt, r.DeletedAt)
	if pg.IsUniqueViolation(err) {
		return authz.ErrDuplicateRoleName
	}
	if pg.IsForeignKeyViolation(err) {
		return authz.ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (s *Storage) GetRole(ctx context.Context, id uuid.UUID) (authz.Role, error) {
	var r authz.Role
	err := s.pool.QueryRow(ctx,
		`SELECT id, org_id, name, description, created_at, deleted_at FROM roles WHERE id = $1`,
		id).Scan(&r.ID, &r.OrgID, &r.Name, &r.Description, &r.CreatedAt, &r.DeletedAt)
	if pg.IsNotFound(err) {
		return authz.Role{}, authz.ErrRoleNotFound
	}
	if err != nil {
		return authz.Role{}, fmt.Errorf("select role: %w", err)
	}
	return r, nil
}

func (s *Storage) FindRoleByName(ctx context.Context, orgID uuid.UUID, name string) (authz.Role, error) {
	var r authz.Role
	err := s.pool.QueryRow(ctx,
		`SELECT id, org_id, name, description, created_at, deleted_at
		 FROM roles WHERE org_id = $1 AND lower(name) = lower($2) AND deleted_at IS NULL`,
		orgID, name).Scan(&r.ID, &r.OrgID, &r.Name, &r.Description, &r.CreatedAt, &r.DeletedAt)
	if pg.IsNotFound(err) {
		return authz.Role{}, authz.ErrRoleNotFound
	}
	if err != nil {
		return authz.Role{}, fmt.Errorf("select role by name: %w", err)
	}
	return r, nil
}

func (s *Storage) ListRoles(ctx context.Context, orgID uuid.UUID) ([]authz.Role, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, org_id, name, description, created_at, deleted_at
		 FROM roles WHERE org_id = $1 AND deleted_at IS NULL ORDER BY lower(name)`,
		orgID)
	if err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
	}
	defer rows.Close()

	var roles []authz.Role
	for rows.Next() {
		var r authz.Role
		if err := rows.Scan(&r.ID, &r.OrgID, &r.Name, &r.Description, &r.CreatedAt, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *Storage) SoftDeleteRole(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE roles SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at)
	if err != nil {
		return fmt.Errorf("soft delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already tombstoned; distinguish for the caller.
		if _, err := s.GetRole(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) AddRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)
		 ON CONFLICT (role_id, permission_id) DO NOTHING`,
		roleID, permissionID)
	if pg.IsForeignKeyViolation(err) {
		return authz.ErrRoleNotFound
	}
	if err != nil {
		return fmt.Errorf("insert role permission: %w", err)
	}
	return nil
}

func (s *Storage) RemoveRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID); err != nil {
		return fmt.Errorf("delete role permission: %w", err)
	}
	return nil
}

func (s *Storage) ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT permission_id FROM role_permissions WHERE role_id = $1 ORDER BY permission_id`,
		roleID)
	if err != nil {
		return nil, fmt.Errorf("select role permissions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan permission id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) CreateMembership(ctx context.Context, m authz.Membership) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO memberships (user_id, org_id, tier, created_at) VALUES ($1, $2, $3, $4)`,
		m.UserID, m.OrgID, m.Tier, m.CreatedAt)
	if pg.IsUniqueViolation(err) {
		return authz.ErrAlreadyMember
	}
	if pg.IsForeignKeyViolation(err) {
		return authz.ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (s *Storage) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (authz.Membership, error) {
	var m authz.Membership
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, org_id, tier, created_at FROM memberships WHERE user_id = $1 AND org_id = $2`,
		userID, orgID).Scan(&m.UserID, &m.OrgID, &m.Tier, &m.CreatedAt)
	if pg.IsNotFound(err) {
		return authz.Membership{}, authz.ErrMembershipNotFound
	}
	if err != nil {
		return authz.Membership{}, fmt.Errorf("select membership: %w", err)
	}
	return m, nil
}

func (s *Storage) UpdateMembershipTier(ctx context.Context, userID, orgID uuid.UUID, tier authz.Tier) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE memberships SET tier = $3 WHERE user_id = $1 AND org_id = $2`,
		userID, orgID, tier)
	if err != nil {
		return fmt.Errorf("update membership tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authz.ErrMembershipNotFound
	}
	return nil
}

func (s *Storage) DeleteMembership(ctx context.Context, userID, orgID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM memberships WHERE user_id = $1 AND org_id = $2`,
		userID, orgID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (s *Storage) ListMembers(ctx context.Context, orgID uuid.UUID) ([]authz.Membership, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, org_id, tier, created_at FROM memberships WHERE org_id = $1 ORDER BY created_at`,
		orgID)
	if err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}
	defer rows.Close()

	var members []authz.Membership
	for rows.Next() {
		var m authz.Membership
		if err := rows.Scan(&m.UserID, &m.OrgID, &m.Tier, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Storage) CreateAssignment(ctx context.Context, a authz.RoleAssignment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO role_assignments (user_id, role_id, org_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.UserID, a.RoleID, a.OrgID, a.CreatedAt)
	if pg.IsUniqueViolation(err) {
		return authz.ErrAlreadyAssigned
	}
	if pg.IsForeignKeyViolation(err) {
		return authz.ErrRoleNotFound
	}
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (s *Storage) DeleteAssignment(ctx context.Context, userID, roleID, orgID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM role_assignments WHERE user_id = $1 AND role_id = $2 AND org_id = $3`,
		userID, roleID, orgID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (s *Storage) ListAssignments(ctx context.Context, userID, orgID uuid.UUID) ([]authz.RoleAssignment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, role_id, org_id, created_at
		 FROM role_assignments WHERE user_id = $1 AND org_id = $2 ORDER BY created_at`,
		userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("select assignments: %w", err)
	}
	defer rows.Close()

	var assignments []authz.RoleAssignment
	for rows.Next() {
		var a authz.RoleAssignment
		if err := rows.Scan(&a.UserID, &a.RoleID, &a.OrgID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
