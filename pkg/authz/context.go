package authz

import (
	"context"

	"github.com/google/uuid"
)

// userIDCtxKey is the context key for the authenticated user id.
type userIDCtxKey struct{}

// WithUserID stores the verified user id in the context. The identity
// layer authenticates; this package only authorizes.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext retrieves the user id from the context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID)
	return id, ok
}

// UserAuditExtractor returns an audit context extractor for the user id.
func UserAuditExtractor() func(ctx context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		if id, ok := UserIDFromContext(ctx); ok {
			return id.String(), true
		}
		return "", false
	}
}
