package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "nexus-backend/pkg/errors"
)

var validate = validator.New()

// ValidateStruct checks a request DTO against its validation tags and folds
// all failures into a single validation error, so a response reports every
// bad field at once.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	reasons := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		reasons = append(reasons, fieldReason(fe))
	}
	return pkgerrors.NewValidationError(strings.Join(reasons, "; "))
}

func fieldReason(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s is shorter than %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is longer than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s fails the %s constraint", field, fe.Tag())
	}
}
