package checkout

import (
	"errors"

	"tigerlife/internal/pkg/apperr"
)

var errMissingSecret = errors.New("empty client secret")

var (
	ErrItemNotFound      = apperr.NotFound("item not found")
	ErrAlreadySold       = apperr.Conflict("item has already been sold")
	ErrBuyOwnItem        = apperr.Validation("you cannot buy your own item")
	ErrMissingPaymentID  = apperr.Validation("payment intent id is required")
	ErrPaymentNotFound   = apperr.Validation("payment intent not found")
	ErrPaymentIncomplete = apperr.Validation("payment has not been completed")
	ErrPaymentMismatch   = apperr.Validation("payment does not match this purchase")
	ErrEmptyClientSecret = apperr.Remote(errMissingSecret, "payment provider returned no client secret")
)
