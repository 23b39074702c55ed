// Package audit records security-relevant events from the authorization
// core: administrative mutations (role created, permission granted,
// membership changed) and cross-tenant access attempts.
//
// The Logger enriches events with organization and user identifiers pulled
// from the request context through configurable extractors, then hands them
// to a Storage backend. An in-memory Storage is provided for tests and
// small deployments; production backends implement the same interface over
// their database of choice.
//
//	store := audit.NewMemoryStorage()
//	log := audit.NewLogger(store,
//	    audit.WithOrgIDExtractor(orgExtractor),
//	    audit.WithUserIDExtractor(userExtractor),
//	)
//
//	_ = log.Log(ctx, "role.created",
//	    audit.WithResource("role", roleID),
//	    audit.WithMetadata("name", "Support"),
//	)
//
// Events are append-only; there is no update or delete operation, matching
// the tombstone-style auditability of the rest of the module.
package audit
