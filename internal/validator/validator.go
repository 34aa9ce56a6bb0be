// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"itemvault/internal/fieldtype"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom validators to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("field_type", validateFieldType)
	_ = v.RegisterValidation("field_name", validateFieldName)
}

// validateFieldType accepts registered field type values.
func validateFieldType(fl validator.FieldLevel) bool {
	return fieldtype.IsKnown(fl.Field().String())
}

// validateFieldName rejects blank names. Surrounding whitespace is kept as
// typed, only all-blank names fail.
func validateFieldName(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
