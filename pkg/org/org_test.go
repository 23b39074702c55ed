package org_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/org"
)

func TestNew(t *testing.T) {
	t.Parallel()

	o := org.New("Acme Corp.")
	assert.NotEqual(t, "", o.ID.String())
	assert.Equal(t, "Acme Corp.", o.Name)
	assert.Equal(t, "acme-corp", o.Slug)
	assert.True(t, o.Active)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		o := org.New("Acme")
		ctx := org.WithOrganization(context.Background(), &o)

		got, ok := org.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, o.ID, got.ID)

		id, ok := org.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, o.ID, id)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		_, ok := org.FromContext(context.Background())
		assert.False(t, ok)

		_, ok = org.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("must panics without organization", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			org.MustFromContext(context.Background())
		})
	})

	t.Run("logger extractor", func(t *testing.T) {
		t.Parallel()

		o := org.New("Acme")
		ctx := org.WithOrganization(context.Background(), &o)

		attr, ok := org.LoggerExtractor()(ctx)
		require.True(t, ok)
		assert.Equal(t, "org_id", attr.Key)
		assert.Equal(t, o.ID.String(), attr.Value.String())

		_, ok = org.LoggerExtractor()(context.Background())
		assert.False(t, ok)
	})

	t.Run("audit extractor", func(t *testing.T) {
		t.Parallel()

		o := org.New("Acme")
		ctx := org.WithOrganization(context.Background(), &o)

		id, ok := org.AuditExtractor()(ctx)
		require.True(t, ok)
		assert.Equal(t, o.ID.String(), id)
	})
}
