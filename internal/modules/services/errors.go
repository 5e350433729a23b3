package services

import "tigerlife/internal/pkg/apperr"

var (
	ErrMissingProvider = apperr.Validation("provider id is required")
	ErrServiceNotFound = apperr.NotFound("service not found")
	ErrBookOwnService  = apperr.Validation("you cannot book your own service")
	ErrTooManyImages   = apperr.Validation("a service can have at most 8 images")
)
