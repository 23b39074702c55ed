package org

import "errors"

var (
	// ErrOrganizationNotFound is returned when an organization cannot be found.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid organization identifier")

	// ErrNoOrganizationInContext is returned when no organization is present
	// in the request context.
	ErrNoOrganizationInContext = errors.New("no organization in context")

	// ErrInactiveOrganization is returned when requests target a deactivated
	// organization.
	ErrInactiveOrganization = errors.New("organization is inactive")
)
