//go:build unit

package user_test

import (
	"testing"

	"sponsorship-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("admin@example.com")
	require.NoError(t, err)
	role, err := user.NewRole("admin")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed_password", role)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "admin@example.com", u.Email().String())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
}

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
		errIs error
	}{
		{name: "valid email OK", value: "ops@example.com", want: "ops@example.com"},
		{name: "normalized to lowercase", value: " Admin@Example.COM ", want: "admin@example.com"},
		{name: "empty NG", value: "", errIs: user.ErrInvalidEmail},
		{name: "missing at-sign NG", value: "adminexample.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain NG", value: "admin@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.value)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, email.String())
		})
	}
}

func TestRole(t *testing.T) {
	admin, err := user.NewRole("admin")
	require.NoError(t, err)
	assert.True(t, admin.CanProcessRequests())

	operator, err := user.NewRole("operator")
	require.NoError(t, err)
	assert.False(t, operator.CanProcessRequests())

	_, err = user.NewRole("viewer")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
