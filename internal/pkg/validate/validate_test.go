package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email string `validate:"required"`
	Code  string `validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(loginForm{Email: "jane@alpha.edu", Code: "123456"}))
}

func TestStruct_FailureKeepsValidationErrors(t *testing.T) {
	err := Struct(loginForm{Email: "jane@alpha.edu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code")

	// Handlers map validation failures by unwrapping to ValidationErrors.
	var ve validator.ValidationErrors
	assert.True(t, errors.As(err, &ve))
}
