package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/authz"
	"github.com/dmitrymomot/rbackit/pkg/catalog"
	"github.com/dmitrymomot/rbackit/pkg/org"
)

// testEnv wires a full in-memory authorization stack around one seeded
// organization.
type testEnv struct {
	catalog  *catalog.Catalog
	storage  authz.Storage
	roles    *authz.RoleService
	members  *authz.MembershipService
	resolver *authz.Resolver
	org      org.Organization
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat := catalog.New()
	for _, p := range []struct{ id, category string }{
		{"users.view", "users"},
		{"users.create", "users"},
		{"users.delete", "users"},
		{"roles.view", "roles"},
		{"roles.manage", "roles"},
	} {
		require.NoError(t, cat.Register(p.id, p.category, ""))
	}

	storage := authz.NewMemoryStorage()
	o := org.New("Acme")
	require.NoError(t, storage.CreateOrganization(context.Background(), o))

	return &testEnv{
		catalog:  cat,
		storage:  storage,
		roles:    authz.NewRoleService(storage, cat),
		members:  authz.NewMembershipService(storage),
		resolver: authz.NewResolver(storage, cat),
		org:      o,
	}
}

// addOrg seeds an additional organization.
func (e *testEnv) addOrg(t *testing.T, name string) org.Organization {
	t.Helper()
	o := org.New(name)
	require.NoError(t, e.storage.CreateOrganization(context.Background(), o))
	return o
}

// member adds a user to the default organization.
func (e *testEnv) member(t *testing.T, userID uuid.UUID) {
	t.Helper()
	_, err := e.members.AddMember(context.Background(), userID, e.org.ID, authz.TierMember)
	require.NoError(t, err)
}

// role creates a role in the default organization with the given grants.
func (e *testEnv) role(t *testing.T, name string, permissions ...string) authz.Role {
	t.Helper()
	r, err := e.roles.CreateRole(context.Background(), e.org.ID, name, "")
	require.NoError(t, err)
	for _, p := range permissions {
		require.NoError(t, e.roles.GrantPermission(context.Background(), r.ID, p))
	}
	return r
}
