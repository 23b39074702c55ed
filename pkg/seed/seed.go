package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/authz"
	"github.com/dmitrymomot/rbackit/pkg/catalog"
)

//go:embed permissions.yaml
var defaultPermissions []byte

// Stock role names created for every organization.
const (
	SuperAdministratorRole = "Super Administrator"
	ReadOnlyRole           = "Read Only"
)

// DefaultCatalog returns a catalog populated with the embedded default
// permission set.
func DefaultCatalog() (*catalog.Catalog, error) {
	cat := catalog.New()
	if err := LoadDefaultPermissions(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadDefaultPermissions registers the embedded default permission set into
// an existing catalog. Already registered identifiers are left alone.
func LoadDefaultPermissions(cat *catalog.Catalog) error {
	if err := cat.LoadYAML(bytes.NewReader(defaultPermissions)); err != nil {
		return fmt.Errorf("load default permissions: %w", err)
	}
	return nil
}

// Run creates the stock roles for an organization: Super Administrator holds
// every permission currently in the catalog, Read Only holds every ".view"
// permission. Existing roles are topped up with any grants they are missing
// rather than recreated, so running twice leaves the same state.
func Run(ctx context.Context, roles *authz.RoleService, cat *catalog.Catalog, orgID uuid.UUID) error {
	var all, viewOnly []string
	for _, p := range cat.List() {
		all = append(all, p.ID)
		if strings.HasSuffix(p.ID, ".view") {
			viewOnly = append(viewOnly, p.ID)
		}
	}

	if err := ensureRole(ctx, roles, orgID, SuperAdministratorRole,
		"Full access to every registered permission", all); err != nil {
		return err
	}
	if err := ensureRole(ctx, roles, orgID, ReadOnlyRole,
		"View-only access across the organization", viewOnly); err != nil {
		return err
	}
	return nil
}

// ensureRole finds or creates the named role and grants it the wanted
// permissions. Grants the role already holds are no-ops.
func ensureRole(ctx context.Context, roles *authz.RoleService, orgID uuid.UUID, name, description string, permissionIDs []string) error {
	role, err := roles.FindByName(ctx, orgID, name)
	switch {
	case errors.Is(err, authz.ErrRoleNotFound):
		role, err = roles.CreateRole(ctx, orgID, name, description)
		if err != nil && !errors.Is(err, authz.ErrDuplicateRoleName) {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
		if errors.Is(err, authz.ErrDuplicateRoleName) {
			// Lost a race with a concurrent seeder.
			role, err = roles.FindByName(ctx, orgID, name)
			if err != nil {
				return fmt.Errorf("seed role %q: %w", name, err)
			}
		}
	case err != nil:
		return fmt.Errorf("seed role %q: %w", name, err)
	}

	for _, id := range permissionIDs {
		if err := roles.GrantPermission(ctx, role.ID, id); err != nil {
			return fmt.Errorf("seed role %q grant %q: %w", name, id, err)
		}
	}
	return nil
}
