package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectValidator_ValidateProjectName(t *testing.T) {
	validator := NewProjectValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   Rule
	}{
		{"Valid name", "Garden", false, ""},
		{"Default project", "Default", false, ""},
		{"Empty name", "", true, RuleRequired},
		{"Too long", strings.Repeat("p", 101), true, RuleMaxLength},
		{"Tab", "Home\tWork", true, RuleSingleLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateProjectName(tt.input)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.errorType, validationErr.Errors[0].Rule)
			assert.Equal(t, "project_name", validationErr.Errors[0].Field)
		})
	}
}

func TestProjectValidator_GetValidProjectName(t *testing.T) {
	name, err := NewProjectValidator().GetValidProjectName("  Home ")
	require.NoError(t, err)
	assert.Equal(t, "Home", name)
}

func TestProjectValidator_ValidateProjectID(t *testing.T) {
	validator := NewProjectValidator()

	assert.NoError(t, validator.ValidateProjectID(uuid.NewString()))

	err := validator.ValidateProjectID("not-an-id")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "project_id", validationErr.Errors[0].Field)
}
