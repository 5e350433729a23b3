package marketplace

import "tigerlife/internal/pkg/apperr"

var (
	ErrMissingSeller = apperr.Validation("seller id is required")
	ErrItemNotFound  = apperr.NotFound("item not found")
	ErrTooManyImages = apperr.Validation("a listing can have at most 8 images")
)
