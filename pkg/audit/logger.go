package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextExtractor pulls a string value out of the request context.
type contextExtractor func(ctx context.Context) (string, bool)

// Logger records audit events.
type Logger interface {
	// Log records a successful action.
	Log(ctx context.Context, action string, opts ...EventOption) error

	// LogError records a failed action with the triggering error.
	LogError(ctx context.Context, action string, err error, opts ...EventOption) error
}

type auditLogger struct {
	storage         Storage
	orgIDExtractor  contextExtractor
	userIDExtractor contextExtractor
}

// Option configures the audit logger.
type Option func(*auditLogger)

// WithOrgIDExtractor registers the callback used to pull the organization
// id from the request context.
func WithOrgIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.orgIDExtractor = fn
	}
}

// WithUserIDExtractor registers the callback used to pull the user id from
// the request context.
func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.userIDExtractor = fn
	}
}

// NewLogger creates an audit logger writing to the given storage.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &auditLogger{storage: storage}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *auditLogger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.store(ctx, action, ResultSuccess, "", opts)
}

func (l *auditLogger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return l.store(ctx, action, ResultFailure, msg, opts)
}

func (l *auditLogger) store(ctx context.Context, action string, result Result, errMsg string, opts []EventOption) error {
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		Result:    result,
		Error:     errMsg,
		CreatedAt: time.Now().UTC(),
	}

	if l.orgIDExtractor != nil {
		if id, ok := l.orgIDExtractor(ctx); ok {
			event.OrgID = id
		}
	}
	if l.userIDExtractor != nil {
		if id, ok := l.userIDExtractor(ctx); ok {
			event.UserID = id
		}
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}
	return l.storage.Store(ctx, event)
}
