package organization

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
	"tigerlife/internal/workflow"
)

// Service runs the membership and organization approval workflow. Every
// check re-reads authority from storage; nothing is cached between calls.
type Service struct {
	orgs    OrganizationRepository
	members MembershipRepository
	users   UserRepository
	notify  Notifier
	log     *zap.Logger
}

func NewService(
	orgs OrganizationRepository,
	members MembershipRepository,
	users UserRepository,
	notify Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		orgs:    orgs,
		members: members,
		users:   users,
		notify:  notify,
		log:     logger.OrNop(log),
	}
}

// CreateOrganization inserts an unverified organization and makes the
// creator its verified admin. When the admin row cannot be written the
// organization is removed again.
func (s *Service) CreateOrganization(ctx context.Context, creatorID int64, req CreateOrganizationRequest) (*workflow.Outcome[*domain.Organization], error) {
	req.Name = sanitize.Text(req.Name)
	req.Description = sanitize.Text(req.Description)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	org := &domain.Organization{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	res, err := s.orgs.Create(ctx, org)
	if err != nil {
		return nil, apperr.Remote(err, "failed to create organization")
	}
	org.ID = res.ID

	admin := &domain.OrganizationMember{
		UserID:         creatorID,
		OrganizationID: org.ID,
		Role:           domain.RoleAdmin,
		Verified:       true,
	}
	if _, err := s.members.Create(ctx, admin); err != nil {
		if delErr := s.orgs.Delete(ctx, org.ID); delErr != nil {
			s.log.Warn("compensating organization delete failed",
				zap.Int64("organization_id", org.ID),
				zap.Error(delErr),
			)
		}
		return nil, apperr.Remote(err, "failed to add organization creator as admin")
	}

	out := workflow.New(org, s.log)
	out.Attempt(ctx, "notify_creator", func(ctx context.Context) error {
		return s.notify.NotifyOrganization(ctx, creatorID, org.ID,
			"Organization submitted",
			fmt.Sprintf("%s is waiting for administrator approval", org.Name),
		)
	}, zap.Int64("user_id", creatorID), zap.Int64("organization_id", org.ID))
	return out, nil
}

func (s *Service) GetOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organizations")
	}
	return orgs, nil
}

func (s *Service) GetOrganizationsByType(ctx context.Context, t domain.OrganizationType) ([]domain.Organization, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	orgs, err := s.orgs.ListByType(ctx, t)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organizations")
	}
	return orgs, nil
}

func (s *Service) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	return s.loadOrganization(ctx, id)
}

// GetOrganizationMembers returns every membership of orgID with the
// member's public profile.
func (s *Service) GetOrganizationMembers(ctx context.Context, orgID int64) ([]domain.MemberWithUser, error) {
	org, err := s.loadOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	rows, err := s.members.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organization members")
	}
	return s.withUsers(ctx, rows, map[int64]string{org.ID: org.Name})
}

// GetUserOrganizations returns all of userID's memberships joined with
// their organizations, verified or not.
func (s *Service) GetUserOrganizations(ctx context.Context, userID int64) ([]domain.Membership, error) {
	rows, err := s.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load memberships")
	}
	if len(rows) == 0 {
		return []domain.Membership{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.OrganizationID)
	}
	orgs, err := s.orgs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organizations")
	}
	byID := make(map[int64]domain.Organization, len(orgs))
	for _, o := range orgs {
		byID[o.ID] = o
	}

	out := make([]domain.Membership, 0, len(rows))
	for _, m := range rows {
		org, ok := byID[m.OrganizationID]
		if !ok {
			continue
		}
		out = append(out, domain.Membership{OrganizationMember: m, Organization: org})
	}
	return out, nil
}

// CanUserCreateEvents reports whether any membership is verified in a
// verified organization. Zero memberships is not an error.
func (s *Service) CanUserCreateEvents(ctx context.Context, userID int64) (*EventEligibility, error) {
	memberships, err := s.GetUserOrganizations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &EventEligibility{Memberships: memberships}
	for i := range memberships {
		m := &memberships[i]
		if m.CanCreateEvents(&m.Organization) {
			out.CanCreate = true
			break
		}
	}
	return out, nil
}

// AuthorizeEventCreation checks the compound gate for one organization:
// userID holds a verified membership in orgID and orgID itself is verified.
func (s *Service) AuthorizeEventCreation(ctx context.Context, userID, orgID int64) (*domain.Organization, error) {
	org, err := s.loadOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	m, err := s.members.Get(ctx, userID, orgID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrCannotCreateEvents
		}
		return nil, apperr.Remote(err, "failed to load membership")
	}
	if !m.CanCreateEvents(org) {
		return nil, ErrCannotCreateEvents
	}
	return org, nil
}

// JoinOrganization requests membership. The storage layer's unique
// (user_id, organization_id) index decides duplicates, so concurrent joins
// cannot both succeed.
func (s *Service) JoinOrganization(ctx context.Context, userID, orgID int64) (*workflow.Outcome[*domain.OrganizationMember], error) {
	org, err := s.loadOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	m := &domain.OrganizationMember{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           domain.RoleMember,
		Verified:       false,
	}
	res, err := s.members.Create(ctx, m)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyMember
		}
		return nil, apperr.Remote(err, "failed to join organization")
	}
	m.ID = res.ID

	out := workflow.New(m, s.log)
	admins, err := s.members.ListAdmins(ctx, orgID)
	if err != nil {
		out.Attempt(ctx, "list_admins", func(context.Context) error { return err },
			zap.Int64("organization_id", orgID))
		return out, nil
	}
	for _, admin := range admins {
		adminID := admin.UserID
		out.Attempt(ctx, "notify_admin", func(ctx context.Context) error {
			return s.notify.NotifyOrganization(ctx, adminID, orgID,
				"New membership request",
				fmt.Sprintf("A user asked to join %s", org.Name),
			)
		}, zap.Int64("user_id", adminID), zap.Int64("organization_id", orgID))
	}
	return out, nil
}

// ApproveOrganization verifies orgID on behalf of a system admin and then
// tells every current member. A failed notification does not stop the
// rest nor undo the verification.
func (s *Service) ApproveOrganization(ctx context.Context, orgID, approverID int64) (*workflow.Outcome[*domain.Organization], error) {
	approver, err := s.users.GetByID(ctx, approverID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotSystemAdmin
		}
		return nil, apperr.Remote(err, "failed to load approver")
	}
	if !approver.IsAdmin {
		return nil, ErrNotSystemAdmin
	}

	org, err := s.loadOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.SetVerified(ctx, orgID); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrOrganizationNotFound
		}
		return nil, apperr.Remote(err, "failed to approve organization")
	}
	org.Verified = true

	out := workflow.New(org, s.log)
	members, err := s.members.ListByOrganization(ctx, orgID)
	if err != nil {
		out.Attempt(ctx, "list_members", func(context.Context) error { return err },
			zap.Int64("organization_id", orgID))
		return out, nil
	}
	for _, m := range members {
		memberID := m.UserID
		out.Attempt(ctx, "notify_member", func(ctx context.Context) error {
			return s.notify.NotifyOrganization(ctx, memberID, orgID,
				"Organization approved",
				fmt.Sprintf("%s has been verified", org.Name),
			)
		}, zap.Int64("user_id", memberID), zap.Int64("organization_id", orgID))
	}
	return out, nil
}

// ApproveOrganizationMember verifies memberUserID in orgID. Only an admin
// of that organization may approve, and only the approved member is told.
func (s *Service) ApproveOrganizationMember(ctx context.Context, memberUserID, orgID, approverID int64) (*workflow.Outcome[*domain.OrganizationMember], error) {
	approver, err := s.members.Get(ctx, approverID, orgID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotOrganizationAdmin
		}
		return nil, apperr.Remote(err, "failed to load approver membership")
	}
	if approver.Role != domain.RoleAdmin {
		return nil, ErrNotOrganizationAdmin
	}

	if err := s.members.SetVerified(ctx, memberUserID, orgID); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrMembershipNotFound
		}
		return nil, apperr.Remote(err, "failed to approve member")
	}
	member, err := s.members.Get(ctx, memberUserID, orgID)
	if err != nil {
		member = &domain.OrganizationMember{UserID: memberUserID, OrganizationID: orgID, Role: domain.RoleMember}
	}
	member.Verified = true

	orgName := "your organization"
	if org, err := s.orgs.GetByID(ctx, orgID); err == nil {
		orgName = org.Name
	}

	out := workflow.New(member, s.log)
	out.Attempt(ctx, "notify_member", func(ctx context.Context) error {
		return s.notify.NotifyOrganization(ctx, memberUserID, orgID,
			"Membership approved",
			fmt.Sprintf("You are now a verified member of %s", orgName),
		)
	}, zap.Int64("user_id", memberUserID), zap.Int64("organization_id", orgID))
	return out, nil
}

func (s *Service) GetPendingOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgs.ListPending(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load pending organizations")
	}
	return orgs, nil
}

// GetPendingMembersForAdmin lists unverified members of every organization
// where adminID holds the admin role.
func (s *Service) GetPendingMembersForAdmin(ctx context.Context, adminID int64) ([]domain.MemberWithUser, error) {
	orgIDs, err := s.members.AdminOrganizationIDs(ctx, adminID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load administered organizations")
	}
	if len(orgIDs) == 0 {
		return []domain.MemberWithUser{}, nil
	}

	pending, err := s.members.ListPending(ctx, orgIDs)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load pending members")
	}

	orgs, err := s.orgs.GetByIDs(ctx, orgIDs)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organizations")
	}
	names := make(map[int64]string, len(orgs))
	for _, o := range orgs {
		names[o.ID] = o.Name
	}
	return s.withUsers(ctx, pending, names)
}

func (s *Service) withUsers(ctx context.Context, rows []domain.OrganizationMember, orgNames map[int64]string) ([]domain.MemberWithUser, error) {
	out := make([]domain.MemberWithUser, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load users")
	}
	byID := make(map[int64]domain.UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	for _, m := range rows {
		u, ok := byID[m.UserID]
		if !ok {
			u = domain.UserSummary{ID: m.UserID}
		}
		out = append(out, domain.MemberWithUser{
			OrganizationMember: m,
			User:               u,
			OrganizationName:   orgNames[m.OrganizationID],
		})
	}
	return out, nil
}

func (s *Service) loadOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrOrganizationNotFound
		}
		return nil, apperr.Remote(err, "failed to load organization")
	}
	return org, nil
}
