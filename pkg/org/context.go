package org

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithOrganization stores the organization in the context.
func WithOrganization(ctx context.Context, o *Organization) context.Context {
	return context.WithValue(ctx, contextKey{}, o)
}

// FromContext retrieves the organization from the context.
func FromContext(ctx context.Context) (*Organization, bool) {
	o, ok := ctx.Value(contextKey{}).(*Organization)
	return o, ok
}

// IDFromContext retrieves just the organization ID from the context.
// Returns the zero UUID and false if no organization is present.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	o, ok := FromContext(ctx)
	if !ok || o == nil {
		return uuid.UUID{}, false
	}
	return o.ID, true
}

// MustFromContext retrieves the organization from the context and panics
// when absent. Use only in handlers behind Middleware or RequireOrganization.
func MustFromContext(ctx context.Context) *Organization {
	o, ok := FromContext(ctx)
	if !ok || o == nil {
		panic("org: no organization in context")
	}
	return o
}

// LoggerExtractor returns a logger context extractor that records the
// organization id on every log line carrying an organization context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("org_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}

// AuditExtractor returns an audit context extractor for the organization id.
func AuditExtractor() func(ctx context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return id.String(), true
		}
		return "", false
	}
}
