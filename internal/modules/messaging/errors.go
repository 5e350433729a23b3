package messaging

import "tigerlife/internal/pkg/apperr"

var (
	ErrMissingSender     = apperr.Validation("sender id is required")
	ErrEmptyContent      = apperr.Validation("message content cannot be empty")
	ErrContentTooLong    = apperr.Validation("message content is too long")
	ErrCannotMessageSelf = apperr.Validation("cannot send message to yourself")
	ErrRecipientNotFound = apperr.NotFound("recipient not found")
)
