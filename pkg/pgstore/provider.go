package pgstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/org"
)

// GetByIdentifier implements org.Provider for the tenant resolution
// middleware. A parseable UUID is looked up by id, anything else by slug.
func (s *Storage) GetByIdentifier(ctx context.Context, identifier string) (*org.Organization, error) {
	if identifier == "" {
		return nil, org.ErrInvalidIdentifier
	}

	var (
		o   org.Organization
		err error
	)
	if id, parseErr := uuid.Parse(identifier); parseErr == nil {
		o, err = s.GetOrganization(ctx, id)
	} else {
		o, err = s.GetOrganizationBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, org.ErrOrganizationNotFound
	}
	return &o, nil
}
