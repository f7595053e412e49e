package handler

import (
	"errors"

	"devjobs/internal/pkg/validate"
)

// isValidation reports whether err carries field-level validation details;
// those flow to the error middleware untouched so the field map reaches the
// client.
func isValidation(err error) bool {
	var v *validate.Error
	return errors.As(err, &v)
}
