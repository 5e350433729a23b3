package auth

import "tigerlife/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("invalid email or password")
	ErrEmailAlreadyExists = apperr.Conflict("an account with this email already exists")
	ErrUserAlreadyExists  = apperr.Conflict("a user with this email or G-number already exists")
	ErrInvalidEmail       = apperr.Validation("invalid email address")
	ErrInvalidGNumber     = apperr.Validation("G-number must be G followed by 8 digits")
)
