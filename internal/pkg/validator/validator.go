package validator

import (
	"errors"
	"regexp"
	"strings"

	"tigerlife/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/mcnijman/go-emailaddress"
)

var validate *validator.Validate

var gNumberPattern = regexp.MustCompile(`^G\d{8}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("gnumber", func(fl validator.FieldLevel) bool {
		return gNumberPattern.MatchString(strings.ToUpper(fl.Field().String()))
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string)
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Check returns an apperr validation error naming the first failing field.
func Check(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation("invalid %s: failed %q", strings.ToLower(fe.Field()), fe.Tag())
	}
	return apperr.Validation("%s", err.Error())
}

// IsGNumber reports whether s looks like a campus G-number (G followed by 8 digits).
func IsGNumber(s string) bool {
	return gNumberPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// NormalizeEmail parses s as an email address and returns it lowercased.
func NormalizeEmail(s string) (string, error) {
	addr, err := emailaddress.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", apperr.Validation("invalid email address")
	}
	return strings.ToLower(addr.String()), nil
}
