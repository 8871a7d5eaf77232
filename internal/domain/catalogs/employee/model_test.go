package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdesk/internal/core/apperror"
)

func TestEmployeeValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid roles", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleEmployee} {
			e := NewEmployee("Asha Nair", "asha@billdesk.local")
			e.Role = role
			assert.NoError(t, e.Validate(ctx), "role %s", role)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		e := NewEmployee("Asha Nair", "asha@billdesk.local")
		e.Role = "staff"
		err := e.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	})

	t.Run("bad email rejected", func(t *testing.T) {
		e := NewEmployee("Asha Nair", "not-an-email")
		err := e.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	})
}
