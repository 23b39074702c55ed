package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/audit"
)

type ctxOrgKey struct{}
type ctxUserKey struct{}

func testLogger(store audit.Storage) audit.Logger {
	return audit.NewLogger(store,
		audit.WithOrgIDExtractor(func(ctx context.Context) (string, bool) {
			v, ok := ctx.Value(ctxOrgKey{}).(string)
			return v, ok
		}),
		audit.WithUserIDExtractor(func(ctx context.Context) (string, bool) {
			v, ok := ctx.Value(ctxUserKey{}).(string)
			return v, ok
		}),
	)
}

func TestLogger_Log(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	log := testLogger(store)

	ctx := context.WithValue(context.Background(), ctxOrgKey{}, "org-1")
	ctx = context.WithValue(ctx, ctxUserKey{}, "user-1")

	require.NoError(t, log.Log(ctx, "role.created",
		audit.WithResource("role", "role-1"),
		audit.WithMetadata("name", "Support"),
	))

	events, err := store.Query(ctx, audit.Criteria{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "org-1", e.OrgID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "role.created", e.Action)
	assert.Equal(t, "role", e.Resource)
	assert.Equal(t, "role-1", e.ResourceID)
	assert.Equal(t, audit.ResultSuccess, e.Result)
	assert.Equal(t, "Support", e.Metadata["name"])
	assert.False(t, e.CreatedAt.IsZero())
}

func TestLogger_LogError(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	log := testLogger(store)

	require.NoError(t, log.LogError(context.Background(), "role.assign", errors.New("cross-tenant access"),
		audit.WithOrgID("org-2"),
		audit.WithUserID("user-9"),
		audit.WithResult(audit.ResultDenied),
	))

	events, err := store.Query(context.Background(), audit.Criteria{Result: audit.ResultDenied})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "cross-tenant access", events[0].Error)
	assert.Equal(t, "org-2", events[0].OrgID)
}

func TestLogger_RejectsEmptyAction(t *testing.T) {
	t.Parallel()

	log := audit.NewLogger(audit.NewMemoryStorage())
	assert.ErrorIs(t, log.Log(context.Background(), ""), audit.ErrInvalidEvent)
}

func TestNewLogger_NilStoragePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { audit.NewLogger(nil) })
}

func TestMemoryStorage_Query(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	log := audit.NewLogger(store)
	ctx := context.Background()

	require.NoError(t, log.Log(ctx, "a", audit.WithOrgID("org-1")))
	require.NoError(t, log.Log(ctx, "b", audit.WithOrgID("org-1")))
	require.NoError(t, log.Log(ctx, "a", audit.WithOrgID("org-2")))

	t.Run("filter by org", func(t *testing.T) {
		events, err := store.Query(ctx, audit.Criteria{OrgID: "org-1"})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("filter by action", func(t *testing.T) {
		events, err := store.Query(ctx, audit.Criteria{Action: "a"})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("newest first with limit", func(t *testing.T) {
		events, err := store.Query(ctx, audit.Criteria{Limit: 1})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "org-2", events[0].OrgID)
	})
}

func TestMemoryStorage_Concurrent(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	log := audit.NewLogger(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = log.Log(ctx, "concurrent.write")
				_, _ = store.Query(ctx, audit.Criteria{Limit: 5})
			}
		}()
	}
	wg.Wait()

	events, err := store.Query(ctx, audit.Criteria{Action: "concurrent.write"})
	require.NoError(t, err)
	assert.Len(t, events, 1000)
}
