package org

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware extracts the organization identifier from the request,
// resolves it through the provider (consulting the cache first), and stores
// the organization in the request context. Requests without an identifier
// pass through untouched; use RequireOrganization behind this middleware
// for routes that cannot run without tenant context.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewMemoryCache(),
		cacheTTL:      5 * time.Minute,
		errorHandler:  defaultErrorHandler,
		requireActive: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cfg.cache.Get(r.Context(), identifier); ok {
				if cfg.requireActive && !cached.Active {
					cfg.errorHandler(w, r, ErrInactiveOrganization)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithOrganization(r.Context(), cached)))
				return
			}

			o, err := provider.GetByIdentifier(r.Context(), identifier)
			if err != nil {
				if !errors.Is(err, ErrOrganizationNotFound) {
					cfg.logger.ErrorContext(r.Context(), "organization lookup failed",
						slog.String("identifier", identifier),
						slog.Any("error", err))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !o.Active {
				cfg.errorHandler(w, r, ErrInactiveOrganization)
				return
			}

			cfg.cache.Set(r.Context(), identifier, o, cfg.cacheTTL)
			next.ServeHTTP(w, r.WithContext(WithOrganization(r.Context(), o)))
		})
	}
}

// RequireOrganization rejects requests whose context carries no
// organization. Protects routes that must not run outside a tenant scope.
func RequireOrganization(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if o, ok := FromContext(r.Context()); !ok || o == nil {
				errorHandler(w, r, ErrNoOrganizationInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
