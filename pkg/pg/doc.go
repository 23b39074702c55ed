// Package pg bootstraps the PostgreSQL layer: an env-driven pgxpool
// configuration, a Connect helper that retries until the database is
// reachable, goose migrations applied from an embedded filesystem, and a
// healthcheck closure for readiness probes.
//
// Error helpers such as IsUniqueViolation classify *pgconn.PgError values so
// storage code can map constraint violations to its own sentinel errors
// without inspecting SQLSTATE codes inline.
package pg
