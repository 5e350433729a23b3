package event

import "tigerlife/internal/pkg/apperr"

// WarnImageSkipped is surfaced when the event was stored without its image.
const WarnImageSkipped = "event image could not be uploaded; the event was created without an image"

var (
	ErrMissingImage = apperr.Validation("image data is required")
	ErrMissingDate  = apperr.Validation("event date is required")
)
