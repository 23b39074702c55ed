package authz

import (
	"log/slog"
	"net/http"
	"strings"
)

// ForbiddenHandler renders the access-denied response. It receives no
// detail about which check failed: a denied authorization surfaces as a
// generic forbidden outcome so permission sets cannot be enumerated.
type ForbiddenHandler func(w http.ResponseWriter, r *http.Request)

func defaultForbiddenHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// MiddlewareOption configures the permission middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	forbidden ForbiddenHandler
	logger    *slog.Logger
}

// WithForbiddenHandler sets a custom access-denied response.
func WithForbiddenHandler(h ForbiddenHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.forbidden = h
		}
	}
}

// WithMiddlewareLogger sets the middleware logger.
func WithMiddlewareLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// RequirePermission gates a handler behind a permission check against the
// user and organization in the request context. Both a plain deny and a
// malformed context produce the same generic forbidden response; resolver
// failures are logged but never detailed to the client.
func RequirePermission(resolver *Resolver, permissionID string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{forbidden: defaultForbiddenHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := resolver.AuthorizeFromContext(r.Context(), permissionID)
			if err != nil && cfg.logger != nil {
				cfg.logger.WarnContext(r.Context(), "authorization check failed",
					slog.String("permission", permissionID),
					slog.Any("error", err))
			}
			if err != nil || !ok {
				cfg.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission gates a handler behind an any-of permission check.
func RequireAnyPermission(resolver *Resolver, permissionIDs []string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{forbidden: defaultForbiddenHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := resolver.AuthorizeAnyFromContext(r.Context(), permissionIDs...)
			if err != nil && cfg.logger != nil {
				cfg.logger.WarnContext(r.Context(), "authorization check failed",
					slog.String("permissions", strings.Join(permissionIDs, ",")),
					slog.Any("error", err))
			}
			if err != nil || !ok {
				cfg.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
