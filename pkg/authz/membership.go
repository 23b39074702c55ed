package authz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rbackit/pkg/audit"
)

// MembershipService manages organization memberships and role assignments.
// Membership is the prerequisite for every role assignment: an assignment
// without a membership is inert and never contributes permissions.
type MembershipService struct {
	storage Storage
	log     *slog.Logger
	audit   audit.Logger
}

// MembershipOption configures the membership service.
type MembershipOption func(*MembershipService)

// WithMembershipLogger sets the service logger.
func WithMembershipLogger(log *slog.Logger) MembershipOption {
	return func(s *MembershipService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMembershipAuditLogger records membership mutations to an audit trail.
func WithMembershipAuditLogger(a audit.Logger) MembershipOption {
	return func(s *MembershipService) {
		s.audit = a
	}
}

// NewMembershipService creates a membership service over the given storage.
func NewMembershipService(storage Storage, opts ...MembershipOption) *MembershipService {
	if storage == nil {
		panic("authz: storage cannot be nil")
	}

	s := &MembershipService{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddMember adds a user to an organization. An empty tier defaults to the
// lowest privilege level.
func (s *MembershipService) AddMember(ctx context.Context, userID, orgID uuid.UUID, tier Tier) (Membership, error) {
	if tier == "" {
		tier = TierMember
	}
	if !tier.Valid() {
		return Membership{}, fmt.Errorf("%w: %s", ErrInvalidTier, tier)
	}

	if _, err := s.storage.GetOrganization(ctx, orgID); err != nil {
		return Membership{}, err
	}

	m := Membership{
		UserID:    userID,
		OrgID:     orgID,
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.CreateMembership(ctx, m); err != nil {
		return Membership{}, err
	}

	s.log.InfoContext(ctx, "member added",
		slog.String("user_id", userID.String()),
		slog.String("org_id", orgID.String()),
		slog.String("tier", string(tier)))
	s.auditLog(ctx, "membership.created", userID, audit.WithMetadata("tier", string(tier)))

	return m, nil
}

// UpdateTier changes a member's tier.
func (s *MembershipService) UpdateTier(ctx context.Context, userID, orgID uuid.UUID, tier Tier) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidTier, tier)
	}

	if err := s.storage.UpdateMembershipTier(ctx, userID, orgID, tier); err != nil {
		return err
	}

	s.auditLog(ctx, "membership.tier_updated", userID, audit.WithMetadata("tier", string(tier)))
	return nil
}

// RemoveMember removes the user's membership. Role assignments are left in
// place as inert rows: without a membership they contribute nothing, and
// re-adding the member restores the previous assignments. Removing a
// non-member is a no-op.
func (s *MembershipService) RemoveMember(ctx context.Context, userID, orgID uuid.UUID) error {
	if err := s.storage.DeleteMembership(ctx, userID, orgID); err != nil {
		return err
	}

	s.auditLog(ctx, "membership.removed", userID)
	return nil
}

// Members returns all memberships of an organization.
func (s *MembershipService) Members(ctx context.Context, orgID uuid.UUID) ([]Membership, error) {
	return s.storage.ListMembers(ctx, orgID)
}

// AssignRole assigns a role to a member of the organization. The user must
// already be a member, and the role must be owned by the same organization;
// a mismatch is rejected at write time as a data-integrity violation, not
// filtered at read time. Assigning an already-assigned role succeeds
// without effect, which keeps seeding and retried admin requests simple.
func (s *MembershipService) AssignRole(ctx context.Context, userID, roleID, orgID uuid.UUID) error {
	if _, err := s.storage.GetMembership(ctx, userID, orgID); err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotAMember
		}
		return err
	}

	role, err := s.storage.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Deleted() {
		return ErrRoleNotFound
	}
	if role.OrgID != orgID {
		return fmt.Errorf("%w: role %s belongs to %s", ErrOrganizationMismatch, roleID, role.OrgID)
	}

	a := RoleAssignment{
		UserID:    userID,
		RoleID:    roleID,
		OrgID:     orgID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.CreateAssignment(ctx, a); err != nil {
		if errors.Is(err, ErrAlreadyAssigned) {
			return nil
		}
		return err
	}

	s.log.InfoContext(ctx, "role assigned",
		slog.String("user_id", userID.String()),
		slog.String("role_id", roleID.String()),
		slog.String("org_id", orgID.String()))
	s.auditLog(ctx, "role.assigned", userID, audit.WithMetadata("role_id", roleID.String()))

	return nil
}

// RevokeRole removes a role assignment. Revoking an assignment that does
// not exist is a no-op.
func (s *MembershipService) RevokeRole(ctx context.Context, userID, roleID, orgID uuid.UUID) error {
	if err := s.storage.DeleteAssignment(ctx, userID, roleID, orgID); err != nil {
		return err
	}

	s.auditLog(ctx, "role.revoked", userID, audit.WithMetadata("role_id", roleID.String()))
	return nil
}

// RolesOf returns the user's currently assigned, non-deleted roles within
// the organization. Assignments pointing at soft-deleted roles are skipped
// rather than cleaned up; tombstoned rows stay for the audit trail.
func (s *MembershipService) RolesOf(ctx context.Context, userID, orgID uuid.UUID) ([]Role, error) {
	assignments, err := s.storage.ListAssignments(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(assignments))
	for _, a := range assignments {
		role, err := s.storage.GetRole(ctx, a.RoleID)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				continue
			}
			return nil, err
		}
		if role.Deleted() {
			continue
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *MembershipService) auditLog(ctx context.Context, action string, userID uuid.UUID, opts ...audit.EventOption) {
	if s.audit == nil {
		return
	}
	opts = append(opts, audit.WithResource("membership", userID.String()))
	if err := s.audit.Log(ctx, action, opts...); err != nil {
		s.log.ErrorContext(ctx, "audit log failed",
			slog.String("action", action),
			slog.Any("error", err))
	}
}
