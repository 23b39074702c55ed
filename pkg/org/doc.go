// Package org resolves and carries the organization (tenant) context for a
// request.
//
// An Organization is the tenant boundary of the authorization core: every
// role, membership, and role assignment belongs to exactly one organization.
// This package owns the request-scoped plumbing around that boundary:
// extracting the organization identifier from an incoming request
// (subdomain, header, or path), loading the organization through a Provider,
// caching it, and storing it in the context where the authorization guard
// and resolver expect to find it.
//
// Typical wiring:
//
//	resolver := org.NewCompositeResolver(
//	    org.NewSubdomainResolver(".example.com"),
//	    org.NewHeaderResolver("X-Organization"),
//	)
//
//	mux.Handle("/", org.Middleware(resolver, provider)(appHandler))
//
// Inside a handler:
//
//	o := org.MustFromContext(r.Context())
//
// The default cache is an in-process TTL cache; NewRedisCache provides a
// shared cache for multi-instance deployments. Cached entries only ever
// hold the organization record itself, never permission data, so role and
// assignment mutations are visible to the very next authorization check.
package org
