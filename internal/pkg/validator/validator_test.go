package validator

import (
	"testing"

	"tigerlife/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email   string `validate:"required,email"`
	GNumber string `validate:"required,gnumber"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.edu", GNumber: "G12345678"}))

	errs := Validate(sample{Email: "nope", GNumber: "123"})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "gnumber", errs["GNumber"])
}

func TestCheck(t *testing.T) {
	err := Check(sample{Email: "a@b.edu", GNumber: "X1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "gnumber")
}

func TestIsGNumber(t *testing.T) {
	assert.True(t, IsGNumber("g00012345"))
	assert.False(t, IsGNumber("G1234"))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Ada.Lovelace@Example.EDU ")
	assert.NoError(t, err)
	assert.Equal(t, "ada.lovelace@example.edu", got)

	_, err = NormalizeEmail("not-an-email")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
