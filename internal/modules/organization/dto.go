package organization

import "tigerlife/internal/domain"

type CreateOrganizationRequest struct {
	Name        string                  `json:"name" validate:"required,max=120"`
	Type        domain.OrganizationType `json:"type" validate:"required"`
	Description string                  `json:"description" validate:"max=2000"`
}

type ApproveMemberRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// EventEligibility lists every membership so callers can render all
// organizations while gating the create action on CanCreate.
type EventEligibility struct {
	CanCreate   bool                `json:"can_create"`
	Memberships []domain.Membership `json:"memberships"`
}
