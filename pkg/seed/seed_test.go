package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/authz"
	"github.com/dmitrymomot/rbackit/pkg/catalog"
	"github.com/dmitrymomot/rbackit/pkg/org"
	"github.com/dmitrymomot/rbackit/pkg/seed"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat, err := seed.DefaultCatalog()
	require.NoError(t, err)

	assert.True(t, cat.Has("users.view"))
	assert.True(t, cat.Has("roles.manage"))
	assert.True(t, cat.Has("audit.view"))
	assert.Contains(t, cat.Categories(), "members")

	// Loading the defaults again on top is harmless.
	require.NoError(t, seed.LoadDefaultPermissions(cat))
	assert.Equal(t, len(cat.List()), cat.Len())
}

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*authz.RoleService, *seedEnv) {
		t.Helper()
		cat, err := seed.DefaultCatalog()
		require.NoError(t, err)

		storage := authz.NewMemoryStorage()
		o := org.New("Acme")
		require.NoError(t, storage.CreateOrganization(ctx, o))

		roles := authz.NewRoleService(storage, cat)
		return roles, &seedEnv{cat: cat, org: o}
	}

	t.Run("creates stock roles", func(t *testing.T) {
		t.Parallel()
		roles, env := setup(t)

		require.NoError(t, seed.Run(ctx, roles, env.cat, env.org.ID))

		super, err := roles.FindByName(ctx, env.org.ID, seed.SuperAdministratorRole)
		require.NoError(t, err)
		perms, err := roles.PermissionsOf(ctx, super.ID)
		require.NoError(t, err)
		assert.Equal(t, env.cat.Len(), perms.Len())

		readonly, err := roles.FindByName(ctx, env.org.ID, seed.ReadOnlyRole)
		require.NoError(t, err)
		viewPerms, err := roles.PermissionsOf(ctx, readonly.ID)
		require.NoError(t, err)
		for _, id := range viewPerms.List() {
			assert.True(t, strings.HasSuffix(id, ".view"), id)
		}
		assert.True(t, viewPerms.Has("users.view"))
		assert.False(t, viewPerms.Has("roles.manage"))
	})

	t.Run("running twice leaves the same state", func(t *testing.T) {
		t.Parallel()
		roles, env := setup(t)

		require.NoError(t, seed.Run(ctx, roles, env.cat, env.org.ID))
		require.NoError(t, seed.Run(ctx, roles, env.cat, env.org.ID))

		all, err := roles.List(ctx, env.org.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		super, err := roles.FindByName(ctx, env.org.ID, seed.SuperAdministratorRole)
		require.NoError(t, err)
		perms, err := roles.PermissionsOf(ctx, super.ID)
		require.NoError(t, err)
		assert.Equal(t, env.cat.Len(), perms.Len())
	})

	t.Run("tops up an existing role with new permissions", func(t *testing.T) {
		t.Parallel()
		roles, env := setup(t)
		require.NoError(t, seed.Run(ctx, roles, env.cat, env.org.ID))

		require.NoError(t, env.cat.Register("billing.view", "billing", ""))
		require.NoError(t, seed.Run(ctx, roles, env.cat, env.org.ID))

		readonly, err := roles.FindByName(ctx, env.org.ID, seed.ReadOnlyRole)
		require.NoError(t, err)
		perms, err := roles.PermissionsOf(ctx, readonly.ID)
		require.NoError(t, err)
		assert.True(t, perms.Has("billing.view"))
	})
}

type seedEnv struct {
	cat *catalog.Catalog
	org org.Organization
}
