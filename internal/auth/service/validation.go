package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// All four registration fields and both login fields share the same policy:
// present and non-empty after trimming. There is no format validation at all;
// any byte sequence passes and reaches the store as a bound parameter.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return newValidationError(requiredFieldMessage(fieldErrs[0].Field()))
	}
	return ErrValidation.WithCause(err)
}

func requiredFieldMessage(field string) string {
	return field + " is required and must be a non-empty string"
}
