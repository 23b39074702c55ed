// Package catalog provides a process-wide registry of permission identifiers.
//
// A permission (e.g. "users.view") is a stable string identifier grouped under
// a category label. The catalog is append-only: permissions are registered
// once at startup and never removed, so historical role grants never end up
// referencing an identifier the system no longer knows about. Deprecation is
// a documentation concern, not a catalog operation.
//
// Basic usage:
//
//	cat := catalog.New()
//	if err := cat.Register("users.view", "users", "View user profiles"); err != nil {
//		// Handle duplicate registration
//	}
//
//	perm, err := cat.Lookup("users.view")
//	if err != nil {
//		// Handle unknown permission
//	}
//
//	// List all permissions in a category, in registration order
//	userPerms := cat.ListByCategory("users")
//
// Permissions can also be loaded in bulk from a YAML document:
//
//	permissions:
//	  - id: users.view
//	    category: users
//	    description: View user profiles
//
//	err := cat.LoadYAML(file)
//
// The catalog is safe for concurrent use. It is read-mostly after
// initialization; registration during normal operation is allowed but
// expected to be rare.
package catalog
