package authz

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/org"
)

type memberKey struct {
	userID uuid.UUID
	orgID  uuid.UUID
}

type assignKey struct {
	userID uuid.UUID
	roleID uuid.UUID
	orgID  uuid.UUID
}

// memoryStorage is an in-process Storage for tests and single-instance
// deployments. A single RWMutex guards all tables; every method copies on
// the way out, so readers hold consistent per-row snapshots.
type memoryStorage struct {
	mu          sync.RWMutex
	orgs        map[uuid.UUID]org.Organization
	orgSlugs    map[string]uuid.UUID
	roles       map[uuid.UUID]Role
	rolePerms   map[uuid.UUID]map[string]struct{}
	memberships map[memberKey]Membership
	assignments map[assignKey]RoleAssignment
}

// NewMemoryStorage creates an empty in-memory Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{
		orgs:        make(map[uuid.UUID]org.Organization),
		orgSlugs:    make(map[string]uuid.UUID),
		roles:       make(map[uuid.UUID]Role),
		rolePerms:   make(map[uuid.UUID]map[string]struct{}),
		memberships: make(map[memberKey]Membership),
		assignments: make(map[assignKey]RoleAssignment),
	}
}

func (s *memoryStorage) CreateOrganization(ctx context.Context, o org.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orgSlugs[o.Slug]; exists {
		return ErrDuplicateSlug
	}
	s.orgs[o.ID] = o
	s.orgSlugs[o.Slug] = o.ID
	return nil
}

func (s *memoryStorage) GetOrganization(ctx context.Context, id uuid.UUID) (org.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.orgs[id]
	if !exists {
		return org.Organization{}, ErrOrganizationNotFound
	}
	return o, nil
}

func (s *memoryStorage) GetOrganizationBySlug(ctx context.Context, slug string) (org.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.orgSlugs[slug]
	if !exists {
		return org.Organization{}, ErrOrganizationNotFound
	}
	return s.orgs[id], nil
}

func (s *memoryStorage) CreateRole(ctx context.Context, r Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.roles {
		if existing.OrgID == r.OrgID && !existing.Deleted() && strings.EqualFold(existing.Name, r.Name) {
			return ErrDuplicateRoleName
		}
	}
	s.roles[r.ID] = r
	return nil
}

func (s *memoryStorage) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.roles[id]
	if !exists {
		return Role{}, ErrRoleNotFound
	}
	return r, nil
}

func (s *memoryStorage) FindRoleByName(ctx context.Context, orgID uuid.UUID, name string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roles {
		if r.OrgID == orgID && !r.Deleted() && strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

func (s *memoryStorage) ListRoles(ctx context.Context, orgID uuid.UUID) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Role
	for _, r := range s.roles {
		if r.OrgID == orgID && !r.Deleted() {
			result = append(result, r)
		}
	}
	slices.SortFunc(result, func(a, b Role) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (s *memoryStorage) SoftDeleteRole(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.roles[id]
	if !exists {
		return ErrRoleNotFound
	}
	if r.Deleted() {
		return nil
	}
	r.DeletedAt = &at
	s.roles[id] = r
	return nil
}

func (s *memoryStorage) AddRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roles[roleID]; !exists {
		return ErrRoleNotFound
	}
	perms, exists := s.rolePerms[roleID]
	if !exists {
		perms = make(map[string]struct{})
		s.rolePerms[roleID] = perms
	}
	perms[permissionID] = struct{}{}
	return nil
}

func (s *memoryStorage) RemoveRolePermission(ctx context.Context, roleID uuid.UUID, permissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roles[roleID]; !exists {
		return ErrRoleNotFound
	}
	delete(s.rolePerms[roleID], permissionID)
	return nil
}

func (s *memoryStorage) ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.roles[roleID]; !exists {
		return nil, ErrRoleNotFound
	}

	perms := s.rolePerms[roleID]
	result := make([]string, 0, len(perms))
	for id := range perms {
		result = append(result, id)
	}
	slices.Sort(result)
	return result, nil
}

func (s *memoryStorage) CreateMembership(ctx context.Context, m Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{userID: m.UserID, orgID: m.OrgID}
	if _, exists := s.memberships[key]; exists {
		return ErrAlreadyMember
	}
	s.memberships[key] = m
	return nil
}

func (s *memoryStorage) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.memberships[memberKey{userID: userID, orgID: orgID}]
	if !exists {
		return Membership{}, ErrMembershipNotFound
	}
	return m, nil
}

func (s *memoryStorage) UpdateMembershipTier(ctx context.Context, userID, orgID uuid.UUID, tier Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{userID: userID, orgID: orgID}
	m, exists := s.memberships[key]
	if !exists {
		return ErrMembershipNotFound
	}
	m.Tier = tier
	s.memberships[key] = m
	return nil
}

func (s *memoryStorage) DeleteMembership(ctx context.Context, userID, orgID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.memberships, memberKey{userID: userID, orgID: orgID})
	return nil
}

func (s *memoryStorage) ListMembers(ctx context.Context, orgID uuid.UUID) ([]Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Membership
	for _, m := range s.memberships {
		if m.OrgID == orgID {
			result = append(result, m)
		}
	}
	slices.SortFunc(result, func(a, b Membership) int {
		return strings.Compare(a.UserID.String(), b.UserID.String())
	})
	return result, nil
}

func (s *memoryStorage) CreateAssignment(ctx context.Context, a RoleAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignKey{userID: a.UserID, roleID: a.RoleID, orgID: a.OrgID}
	if _, exists := s.assignments[key]; exists {
		return ErrAlreadyAssigned
	}
	s.assignments[key] = a
	return nil
}

func (s *memoryStorage) DeleteAssignment(ctx context.Context, userID, roleID, orgID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assignments, assignKey{userID: userID, roleID: roleID, orgID: orgID})
	return nil
}

func (s *memoryStorage) ListAssignments(ctx context.Context, userID, orgID uuid.UUID) ([]RoleAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []RoleAssignment
	for key, a := range s.assignments {
		if key.userID == userID && key.orgID == orgID {
			result = append(result, a)
		}
	}
	slices.SortFunc(result, func(a, b RoleAssignment) int {
		return strings.Compare(a.RoleID.String(), b.RoleID.String())
	})
	return result, nil
}
