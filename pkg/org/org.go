package org

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/slug"
)

// Organization is the tenant boundary. Every organization-scoped entity
// (role, membership, role assignment) belongs to exactly one.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates an organization with a fresh id and a slug derived from the
// display name. Slug uniqueness is enforced by the storage layer, not here.
func New(name string) Organization {
	return Organization{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug.Make(name),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// Provider loads organization records from a data source. Implementations
// should accept any unique identifier format the application uses: UUID
// string, slug, or both.
type Provider interface {
	// GetByIdentifier retrieves an organization using a unique identifier.
	// Returns ErrOrganizationNotFound if no organization matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Organization, error)
}
