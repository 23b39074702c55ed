package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/authz"
)

func TestMembershipService_AddMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("adds with explicit tier", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()

		m, err := env.members.AddMember(ctx, userID, env.org.ID, authz.TierAdmin)
		require.NoError(t, err)
		assert.Equal(t, authz.TierAdmin, m.Tier)

		members, err := env.members.Members(ctx, env.org.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, userID, members[0].UserID)
	})

	t.Run("empty tier defaults to member", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		m, err := env.members.AddMember(ctx, uuid.New(), env.org.ID, "")
		require.NoError(t, err)
		assert.Equal(t, authz.TierMember, m.Tier)
	})

	t.Run("invalid tier", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.members.AddMember(ctx, uuid.New(), env.org.ID, authz.Tier("superuser"))
		assert.ErrorIs(t, err, authz.ErrInvalidTier)
	})

	t.Run("duplicate membership", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)

		_, err := env.members.AddMember(ctx, userID, env.org.ID, authz.TierMember)
		assert.ErrorIs(t, err, authz.ErrAlreadyMember)
	})

	t.Run("unknown organization", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.members.AddMember(ctx, uuid.New(), uuid.New(), authz.TierMember)
		assert.ErrorIs(t, err, authz.ErrOrganizationNotFound)
	})

	t.Run("same user in two organizations", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		other := env.addOrg(t, "Globex")
		userID := uuid.New()

		_, err := env.members.AddMember(ctx, userID, env.org.ID, authz.TierMember)
		require.NoError(t, err)
		_, err = env.members.AddMember(ctx, userID, other.ID, authz.TierOwner)
		assert.NoError(t, err)
	})
}

func TestMembershipService_UpdateTier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("promotes member", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)

		require.NoError(t, env.members.UpdateTier(ctx, userID, env.org.ID, authz.TierOwner))

		members, err := env.members.Members(ctx, env.org.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, authz.TierOwner, members[0].Tier)
	})

	t.Run("invalid tier", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)

		err := env.members.UpdateTier(ctx, userID, env.org.ID, authz.Tier("root"))
		assert.ErrorIs(t, err, authz.ErrInvalidTier)
	})

	t.Run("not a member", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		err := env.members.UpdateTier(ctx, uuid.New(), env.org.ID, authz.TierAdmin)
		assert.ErrorIs(t, err, authz.ErrMembershipNotFound)
	})
}

func TestMembershipService_RemoveMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes membership but keeps assignment rows", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer", "users.view")
		require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))

		require.NoError(t, env.members.RemoveMember(ctx, userID, env.org.ID))

		members, err := env.members.Members(ctx, env.org.ID)
		require.NoError(t, err)
		assert.Empty(t, members)

		// Assignment rows stay behind but no longer resolve to anything.
		perms, err := env.resolver.EffectivePermissions(ctx, userID, env.org.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, perms.Len())
	})

	t.Run("removing a non-member is a no-op", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		assert.NoError(t, env.members.RemoveMember(ctx, uuid.New(), env.org.ID))
	})
}

func TestMembershipService_AssignRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns a role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer", "users.view")

		require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))

		roles, err := env.members.RolesOf(ctx, userID, env.org.ID)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, viewer.ID, roles[0].ID)
	})

	t.Run("assigning twice succeeds without duplicating", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer")

		require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))
		require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))

		roles, err := env.members.RolesOf(ctx, userID, env.org.ID)
		require.NoError(t, err)
		assert.Len(t, roles, 1)
	})

	t.Run("requires membership", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		viewer := env.role(t, "Viewer")

		err := env.members.AssignRole(ctx, uuid.New(), viewer.ID, env.org.ID)
		assert.ErrorIs(t, err, authz.ErrNotAMember)
	})

	t.Run("rejects role from another organization", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		other := env.addOrg(t, "Globex")
		foreign, err := env.roles.CreateRole(ctx, other.ID, "Viewer", "")
		require.NoError(t, err)

		userID := uuid.New()
		env.member(t, userID)

		err = env.members.AssignRole(ctx, userID, foreign.ID, env.org.ID)
		assert.ErrorIs(t, err, authz.ErrOrganizationMismatch)

		// Nothing was written.
		roles, err := env.members.RolesOf(ctx, userID, env.org.ID)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("rejects soft-deleted role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer")
		require.NoError(t, env.roles.DeleteRole(ctx, viewer.ID))

		err := env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID)
		assert.ErrorIs(t, err, authz.ErrRoleNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)

		err := env.members.AssignRole(ctx, userID, uuid.New(), env.org.ID)
		assert.ErrorIs(t, err, authz.ErrRoleNotFound)
	})
}

func TestMembershipService_RevokeRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("revokes an assignment", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer")
		require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))

		require.NoError(t, env.members.RevokeRole(ctx, userID, viewer.ID, env.org.ID))

		roles, err := env.members.RolesOf(ctx, userID, env.org.ID)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("revoking an absent assignment is a no-op", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.member(t, userID)
		viewer := env.role(t, "Viewer")

		assert.NoError(t, env.members.RevokeRole(ctx, userID, viewer.ID, env.org.ID))
	})
}

func TestMembershipService_RolesOf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.New()
	env.member(t, userID)

	viewer := env.role(t, "Viewer", "users.view")
	editor := env.role(t, "Editor", "users.create")
	require.NoError(t, env.members.AssignRole(ctx, userID, viewer.ID, env.org.ID))
	require.NoError(t, env.members.AssignRole(ctx, userID, editor.ID, env.org.ID))

	// Soft-deleted roles drop out of the listing.
	require.NoError(t, env.roles.DeleteRole(ctx, editor.ID))

	roles, err := env.members.RolesOf(ctx, userID, env.org.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, viewer.ID, roles[0].ID)
}
