// Package authz implements multi-tenant role-based access control.
//
// Every decision is scoped to one organization: users become members of an
// organization, members are assigned organization-owned roles, roles grant
// permissions from the shared catalog, and a user's effective permissions
// within an organization are the union over all of their non-deleted
// assigned roles. There is no precedence or deny-override between roles; a
// permission granted by any assigned role is granted.
//
// The package is organized around four collaborators sharing one Storage
// interface:
//
//   - RoleService: create roles, grant and revoke permissions, soft-delete
//   - MembershipService: memberships and role assignments
//   - Resolver: effective-permission computation and authorization checks
//   - Guard: tenant-isolation wrapper rejecting cross-organization access
//
// Basic usage:
//
//	cat := catalog.New()
//	_ = cat.Register("users.view", "users", "View users")
//
//	store := authz.NewMemoryStorage()
//	roles := authz.NewRoleService(store, cat)
//	members := authz.NewMembershipService(store)
//	resolver := authz.NewResolver(store, cat)
//
//	viewer, _ := roles.CreateRole(ctx, orgID, "Viewer", "Read-only access")
//	_ = roles.GrantPermission(ctx, viewer.ID, "users.view")
//	_, _ = members.AddMember(ctx, aliceID, orgID, authz.TierMember)
//	_ = members.AssignRole(ctx, aliceID, viewer.ID, orgID)
//
//	ok, _ := resolver.Authorize(ctx, aliceID, orgID, "users.view") // true
//
// Authorization queries are safe to call speculatively: a missing
// membership, an unassigned role, or an unknown permission identifier all
// yield a plain deny, never an error. Errors are reserved for malformed
// requests, such as an organization id that does not exist at all.
//
// Roles are soft-deleted: DeleteRole flips a single tombstone field, the
// role immediately stops contributing to effective permissions, and its
// assignment and permission rows remain for auditability.
package authz
