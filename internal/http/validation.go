package http

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxShelfNameLength matches the column size of custom_shelves.name.
const MaxShelfNameLength = 100

// RegisterValidators installs the custom binding rules on gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return v.RegisterValidation("shelfname", validateShelfName)
}

// validateShelfName accepts non-blank names that fit the column and can be
// addressed as a single path segment.
func validateShelfName(fl validator.FieldLevel) bool {
	return IsValidShelfName(fl.Field().String())
}

// IsValidShelfName applies the shelfname rule to a raw string, for names that
// arrive as path parameters rather than in a bound body.
func IsValidShelfName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxShelfNameLength {
		return false
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
