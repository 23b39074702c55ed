// Package pgstore implements authz.Storage on a PostgreSQL pool. Schema
// migrations ship embedded with the package and are applied through pg.Migrate
// before the store is used.
//
// Constraint violations are translated into the authz sentinel errors at this
// boundary: the partial unique index on live role names becomes
// ErrDuplicateRoleName, the slug index becomes ErrDuplicateSlug, and the
// membership and assignment primary keys become ErrAlreadyMember and
// ErrAlreadyAssigned.
package pgstore
