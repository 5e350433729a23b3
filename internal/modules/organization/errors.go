package organization

import "tigerlife/internal/pkg/apperr"

var (
	ErrInvalidType          = apperr.Validation("organization type must be admin_faculty, official_student or general")
	ErrOrganizationNotFound = apperr.NotFound("organization not found")
	ErrMembershipNotFound   = apperr.NotFound("membership not found")
	ErrAlreadyMember        = apperr.Conflict("user is already a member of this organization")
	ErrNotSystemAdmin       = apperr.Unauthorized("only administrators can approve organizations")
	ErrNotOrganizationAdmin = apperr.Unauthorized("only organization admins can approve members")
	ErrCannotCreateEvents   = apperr.Unauthorized("only verified members of a verified organization can create events")
)
