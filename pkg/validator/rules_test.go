package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when every rule passes", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Jane"),
			validator.RequiredString("message", "hello"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure in order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", ""),
			validator.RequiredString("email", "jane@example.com"),
			validator.RequiredString("message", ""),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrValidation))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 2)
		assert.Equal(t, []string{"name", "message"}, ve.Fields())
		assert.True(t, ve.Has("message"))
		assert.False(t, ve.Has("email"))
	})

	t.Run("no rules", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply())
	})
}

func TestRequiredString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"whitespace counts as content", " ", true},
		{"text", "Jane", true},
		{"unicode", "Zoë", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validator.RequiredString("name", tt.value)
			assert.Equal(t, tt.valid, r.Check())
			assert.Equal(t, "name", r.Error.Field)
			assert.Equal(t, "is required", r.Error.Message)
		})
	}
}

func TestApply_NilCheckPasses(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validator.Apply(validator.Rule{Error: validator.ValidationError{Field: "x"}}))
}

func TestValidationHelpers(t *testing.T) {
	t.Parallel()

	t.Run("wrapped validation errors are detected", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("bind: %w", validator.Apply(validator.RequiredString("email", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
	})

	t.Run("other errors are not validation errors", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		assert.False(t, validator.IsValidationError(err))
		assert.Nil(t, validator.ExtractValidationErrors(err))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})

	t.Run("error string lists fields", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.RequiredString("email", ""))
		assert.Equal(t, "validation failed: email: is required", err.Error())
	})
}
