package user

import "tigerlife/internal/pkg/apperr"

var (
	ErrUserNotFound    = apperr.NotFound("user not found")
	ErrEmailTaken      = apperr.Conflict("email is already in use")
	ErrWrongPassword   = apperr.Unauthorized("current password is incorrect")
	ErrNotSystemAdmin  = apperr.Unauthorized("only administrators can grant admin rights")
	ErrAlreadyVerified = apperr.Conflict("student ID is already verified")
	ErrIDMismatch      = apperr.Validation("G-number not found on the uploaded ID")
	ErrMissingImage    = apperr.Validation("image is required")
	ErrEmptySettings   = apperr.Validation("settings must not be empty")
)
