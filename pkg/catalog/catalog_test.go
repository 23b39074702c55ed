package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/catalog"
)

func TestCatalog_Register(t *testing.T) {
	t.Parallel()

	t.Run("registers new permission", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		err := cat.Register("users.view", "users", "View user profiles")
		require.NoError(t, err)

		perm, err := cat.Lookup("users.view")
		require.NoError(t, err)
		assert.Equal(t, "users.view", perm.ID)
		assert.Equal(t, "users", perm.Category)
		assert.Equal(t, "View user profiles", perm.Description)
	})

	t.Run("rejects duplicate identifier", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		require.NoError(t, cat.Register("users.view", "users", "View users"))

		err := cat.Register("users.view", "admin", "Different category")
		assert.ErrorIs(t, err, catalog.ErrDuplicatePermission)
		assert.Equal(t, 1, cat.Len())
	})

	t.Run("rejects empty identifier", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		err := cat.Register("", "users", "desc")
		assert.ErrorIs(t, err, catalog.ErrInvalidPermission)
	})

	t.Run("rejects empty category", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		err := cat.Register("users.view", "", "desc")
		assert.ErrorIs(t, err, catalog.ErrInvalidPermission)
	})
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	cat := catalog.New()
	require.NoError(t, cat.Register("users.view", "users", "View users"))

	t.Run("unknown identifier", func(t *testing.T) {
		t.Parallel()

		_, err := cat.Lookup("users.delete")
		assert.ErrorIs(t, err, catalog.ErrPermissionNotFound)
	})

	t.Run("has reports registration state", func(t *testing.T) {
		t.Parallel()

		assert.True(t, cat.Has("users.view"))
		assert.False(t, cat.Has("users.delete"))
	})
}

func TestCatalog_ListByCategory(t *testing.T) {
	t.Parallel()

	cat := catalog.New()
	require.NoError(t, cat.Register("users.view", "users", "View users"))
	require.NoError(t, cat.Register("roles.view", "roles", "View roles"))
	require.NoError(t, cat.Register("users.create", "users", "Create users"))
	require.NoError(t, cat.Register("users.delete", "users", "Delete users"))

	t.Run("preserves registration order within category", func(t *testing.T) {
		t.Parallel()

		perms := cat.ListByCategory("users")
		require.Len(t, perms, 3)
		assert.Equal(t, "users.view", perms[0].ID)
		assert.Equal(t, "users.create", perms[1].ID)
		assert.Equal(t, "users.delete", perms[2].ID)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cat.ListByCategory("billing"))
	})

	t.Run("list returns everything in registration order", func(t *testing.T) {
		t.Parallel()

		all := cat.List()
		require.Len(t, all, 4)
		assert.Equal(t, "users.view", all[0].ID)
		assert.Equal(t, "roles.view", all[1].ID)
	})

	t.Run("categories in first-use order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"users", "roles"}, cat.Categories())
	})
}

func TestCatalog_LoadYAML(t *testing.T) {
	t.Parallel()

	const doc = `
permissions:
  - id: users.view
    category: users
    description: View user profiles
  - id: users.create
    category: users
    description: Create users
  - id: roles.view
    category: roles
    description: View roles
`

	t.Run("loads definitions", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		require.NoError(t, cat.LoadYAML(strings.NewReader(doc)))
		assert.Equal(t, 3, cat.Len())
		assert.True(t, cat.Has("users.create"))
	})

	t.Run("loading twice is idempotent", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		require.NoError(t, cat.LoadYAML(strings.NewReader(doc)))
		require.NoError(t, cat.LoadYAML(strings.NewReader(doc)))
		assert.Equal(t, 3, cat.Len())
	})

	t.Run("invalid yaml surfaces error", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		err := cat.LoadYAML(strings.NewReader("permissions: [}"))
		assert.Error(t, err)
	})

	t.Run("invalid definition surfaces error", func(t *testing.T) {
		t.Parallel()

		cat := catalog.New()
		err := cat.LoadYAML(strings.NewReader("permissions:\n  - id: ''\n    category: users\n"))
		assert.ErrorIs(t, err, catalog.ErrInvalidPermission)
	})
}

func TestCatalog_Concurrent(t *testing.T) {
	t.Parallel()

	cat := catalog.New()
	require.NoError(t, cat.Register("users.view", "users", "View users"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 1000 {
			_ = cat.Has("users.view")
			_, _ = cat.Lookup("users.view")
			_ = cat.List()
		}
	}()

	for i := range 100 {
		_ = cat.Register("perm."+string(rune('a'+i%26))+"."+strings.Repeat("x", i%5), "generated", "")
	}
	<-done
}

func TestCatalog_DuplicateErrorUnwraps(t *testing.T) {
	t.Parallel()

	cat := catalog.New()
	require.NoError(t, cat.Register("users.view", "users", ""))

	err := cat.Register("users.view", "users", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrDuplicatePermission))
	assert.Contains(t, err.Error(), "users.view")
}
