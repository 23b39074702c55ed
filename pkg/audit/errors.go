package audit

import "errors"

var (
	// ErrInvalidEvent indicates the event is missing required fields.
	ErrInvalidEvent = errors.New("invalid audit event")

	// ErrStorageNotAvailable indicates the storage backend rejected the event.
	ErrStorageNotAvailable = errors.New("audit storage unavailable")
)
