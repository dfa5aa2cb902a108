// Package validate wraps a shared validator instance for the boundary DTOs.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is shared by every call; register custom types in an init() before the
// first Struct call.
var v = validator.New()

// Struct checks the validate tags on s. The returned error wraps the
// underlying ValidationErrors so callers can errors.As on it.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), ve)
	}
	return nil
}
