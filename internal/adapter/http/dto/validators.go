package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeKeyRe   = regexp.MustCompile(`^[a-zA-Z0-9_\-\.@]+$`)
	referenceRe = regexp.MustCompile(`^[A-Z]{1,8}\d{14}[0-9A-F]{12}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_key", validateUserKey)
	}
}

// validateUserKey allows alphanumeric, underscore, dash, dot, and @ so
// email-shaped keys pass.
func validateUserKey(fl validator.FieldLevel) bool {
	return safeKeyRe.MatchString(fl.Field().String())
}

// ValidUserKey reports whether s is acceptable as an opaque user key.
func ValidUserKey(s string) bool {
	return s != "" && len(s) <= 128 && safeKeyRe.MatchString(s)
}

// ValidReference reports whether s matches the transaction reference
// format: prefix, 14-digit timestamp, 12 hex chars.
func ValidReference(s string) bool {
	return referenceRe.MatchString(s)
}
