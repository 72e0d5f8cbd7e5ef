package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding/validation error into a field-level
// ErrorDetail suitable for a 400 response.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s: failed on '%s'", lowerFirst(fe.Field()), fe.Tag()))
		}

		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		detail = detail.WithDetails(fields)
		if len(validationErrs) == 1 {
			detail = detail.WithField(lowerFirst(validationErrs[0].Field()))
		}
		return detail
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format")
	return detail.WithDetails(err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
