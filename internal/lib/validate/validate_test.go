package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

func TestValidator_Check(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   any
		wantMsg string
	}{
		{
			name:  "valid customer",
			input: models.NewCustomer{Name: "John Doe", Email: "john@x.com"},
		},
		{
			name:    "missing email",
			input:   models.NewCustomer{Name: "John Doe"},
			wantMsg: "Name and email are required fields",
		},
		{
			name:    "malformed email",
			input:   models.NewCustomer{Name: "John Doe", Email: "not-an-email"},
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "short password",
			input:   models.NewSeller{Username: "bob", Email: "bob@x.com", Password: "123"},
			wantMsg: "password must be at least 6 characters",
		},
		{
			name:    "name too long",
			input:   models.NewCustomer{Name: strings.Repeat("a", 101), Email: "john@x.com"},
			wantMsg: "name must be at most 100 characters",
		},
		{
			name:    "missing order field",
			input:   models.NewOrder{CustomerID: "1", StartDate: "2024-01-01"},
			wantMsg: "Name and email are required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.input, "Name and email are required fields")
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}
