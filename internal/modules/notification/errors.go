package notification

import "tigerlife/internal/pkg/apperr"

var (
	ErrMissingUserID = apperr.Validation("user id is required")
	ErrInvalidType   = apperr.Validation("unknown notification type")
	ErrMissingTitle  = apperr.Validation("notification title is required")
	ErrNotFound      = apperr.NotFound("notification not found")
	ErrCannotUnread  = apperr.Validation("a read notification cannot be marked unread")
)
