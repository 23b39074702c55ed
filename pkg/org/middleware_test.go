package org_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/org"
)

type fakeProvider struct {
	orgs  map[string]*org.Organization
	calls int
}

func (p *fakeProvider) GetByIdentifier(ctx context.Context, identifier string) (*org.Organization, error) {
	p.calls++
	if o, ok := p.orgs[identifier]; ok {
		return o, nil
	}
	return nil, org.ErrOrganizationNotFound
}

func captureHandler(captured **org.Organization) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o, ok := org.FromContext(r.Context()); ok {
			*captured = o
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	acme := org.New("Acme")

	t.Run("resolves and injects organization", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{orgs: map[string]*org.Organization{"acme": &acme}}
		var captured *org.Organization
		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider)(captureHandler(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Org", "acme")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, acme.ID, captured.ID)
	})

	t.Run("passes through without identifier", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		var captured *org.Organization
		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider)(captureHandler(&captured))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, captured)
		assert.Zero(t, provider.calls)
	})

	t.Run("unknown organization is 404", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider)(captureHandler(new(*org.Organization)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Org", "ghost")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inactive organization is 403", func(t *testing.T) {
		t.Parallel()

		inactive := org.New("Dormant")
		inactive.Active = false
		provider := &fakeProvider{orgs: map[string]*org.Organization{"dormant": &inactive}}
		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider)(captureHandler(new(*org.Organization)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Org", "dormant")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("second request served from cache", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{orgs: map[string]*org.Organization{"acme": &acme}}
		cache := org.NewMemoryCache()
		defer cache.Close()

		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider,
			org.WithCache(cache),
			org.WithCacheTTL(time.Minute),
		)(captureHandler(new(*org.Organization)))

		for range 2 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Org", "acme")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		assert.Equal(t, 1, provider.calls)
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := org.Middleware(org.NewHeaderResolver("X-Org"), provider,
			org.WithSkipPaths("/healthz"),
		)(captureHandler(new(*org.Organization)))

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Org", "ghost")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, provider.calls)
	})
}

func TestRequireOrganization(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects missing organization", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		org.RequireOrganization(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("allows request with organization", func(t *testing.T) {
		t.Parallel()

		o := org.New("Acme")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(org.WithOrganization(req.Context(), &o))

		rec := httptest.NewRecorder()
		org.RequireOrganization(nil)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
