package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	FullName string `json:"fullName" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid_struct_returns_nil", func(t *testing.T) {
		errs := ValidateRequest(sampleRequest{
			FullName: "Grace Hopper",
			Email:    "grace@example.com",
			Password: "password1",
		})
		assert.Nil(t, errs)
	})

	t.Run("field_names_come_from_json_tags", func(t *testing.T) {
		errs := ValidateRequest(sampleRequest{
			Email:    "grace@example.com",
			Password: "password1",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "fullName", errs[0].Field)
		assert.Equal(t, "required", errs[0].Rule)
		assert.Equal(t, "The fullName field is required", errs[0].Message)
	})

	t.Run("one_entry_per_failed_field", func(t *testing.T) {
		errs := ValidateRequest(sampleRequest{})
		assert.Len(t, errs, 3)
	})

	t.Run("rule_specific_messages", func(t *testing.T) {
		tests := []struct {
			name    string
			req     sampleRequest
			rule    string
			message string
		}{
			{
				name: "email_rule",
				req: sampleRequest{
					FullName: "Grace Hopper",
					Email:    "nope",
					Password: "password1",
				},
				rule:    "email",
				message: "The email field must be a valid email address",
			},
			{
				name: "min_rule",
				req: sampleRequest{
					FullName: "Grace Hopper",
					Email:    "grace@example.com",
					Password: "short",
				},
				rule:    "min",
				message: "The password field must be at least 8 characters",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				errs := ValidateRequest(tt.req)
				require.Len(t, errs, 1)
				assert.Equal(t, tt.rule, errs[0].Rule)
				assert.Equal(t, tt.message, errs[0].Message)
			})
		}
	})
}
