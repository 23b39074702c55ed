package catalog

import "errors"

var (
	// ErrDuplicatePermission is returned when registering an identifier
	// that is already present in the catalog.
	ErrDuplicatePermission = errors.New("permission already registered")

	// ErrPermissionNotFound is returned when looking up an identifier
	// that has never been registered.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrInvalidPermission is returned when a permission identifier or
	// category is empty.
	ErrInvalidPermission = errors.New("invalid permission definition")
)
