package audit

import (
	"fmt"
	"time"
)

// Result represents the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultDenied  Result = "denied"
)

// Event is a single audit log entry.
type Event struct {
	ID         string         `json:"id"`
	OrgID      string         `json:"org_id"`
	UserID     string         `json:"user_id"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	Result     Result         `json:"result"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks that the event carries the required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidEvent)
	}
	return nil
}

// EventOption applies optional fields to an Event during logging.
type EventOption func(*Event)

// WithResource attaches the affected resource type and identifier.
func WithResource(resource, resourceID string) EventOption {
	return func(e *Event) {
		e.Resource = resource
		e.ResourceID = resourceID
	}
}

// WithMetadata attaches a single metadata key/value pair.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// WithOrgID overrides the organization id extracted from context.
func WithOrgID(orgID string) EventOption {
	return func(e *Event) {
		e.OrgID = orgID
	}
}

// WithUserID overrides the user id extracted from context.
func WithUserID(userID string) EventOption {
	return func(e *Event) {
		e.UserID = userID
	}
}

// WithResult overrides the default success result.
func WithResult(r Result) EventOption {
	return func(e *Event) {
		e.Result = r
	}
}
