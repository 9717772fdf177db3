package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/user"
)

func baseParams() user.CreateParams {
	return user.CreateParams{
		ID:           "u-1",
		UserName:     "marta88",
		FirstName:    "Marta",
		LastName:     "Kovacs",
		Email:        " Marta@Example.COM ",
		PasswordHash: "$2a$10$hash",
		Role:         user.RoleBoth,
		Tel:          "+36 20 123 4567",
		DateOfBirth:  time.Date(1988, time.June, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		u, err := user.New(baseParams())
		require.NoError(t, err)
		assert.Equal(t, "marta@example.com", u.Email)
		assert.True(t, u.CanHost())
		assert.True(t, u.CanBook())
		assert.False(t, u.IsAdmin())
	})

	cases := []struct {
		name   string
		mutate func(*user.CreateParams)
		errIs  error
	}{
		{"missing id", func(p *user.CreateParams) { p.ID = "" }, user.ErrIDRequired},
		{"missing user name", func(p *user.CreateParams) { p.UserName = " " }, user.ErrUserNameRequired},
		{"missing last name", func(p *user.CreateParams) { p.LastName = "" }, user.ErrNameRequired},
		{"missing email", func(p *user.CreateParams) { p.Email = "" }, user.ErrEmailRequired},
		{"invalid email", func(p *user.CreateParams) { p.Email = "not-an-email" }, user.ErrEmailInvalid},
		{"missing hash", func(p *user.CreateParams) { p.PasswordHash = "" }, user.ErrPasswordHashMissing},
		{"missing tel", func(p *user.CreateParams) { p.Tel = "" }, user.ErrTelRequired},
		{"bad role", func(p *user.CreateParams) { p.Role = "landlord" }, user.ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := baseParams()
			tc.mutate(&params)
			_, err := user.New(params)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role    user.Role
		canHost bool
		canBook bool
		admin   bool
	}{
		{user.RoleHost, true, false, false},
		{user.RoleTenant, false, true, false},
		{user.RoleBoth, true, true, false},
		{user.RoleAdmin, false, false, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			u := &user.User{Role: tc.role}
			assert.Equal(t, tc.canHost, u.CanHost())
			assert.Equal(t, tc.canBook, u.CanBook())
			assert.Equal(t, tc.admin, u.IsAdmin())
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := user.ParseRole(" Both ")
	require.NoError(t, err)
	assert.Equal(t, user.RoleBoth, role)

	_, err = user.ParseRole("owner")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestMutations(t *testing.T) {
	u, err := user.New(baseParams())
	require.NoError(t, err)
	now := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, u.UpdateProfile("Marta", "Nagy", "+36 30 000 0000", now))
	assert.Equal(t, "Nagy", u.LastName)
	assert.Equal(t, now, u.UpdatedAt)

	require.NoError(t, u.UpdateEmail("new@example.com", now))
	assert.Equal(t, "new@example.com", u.Email)
	assert.ErrorIs(t, u.UpdateEmail("nope", now), user.ErrEmailInvalid)

	u.SetApproved(true, now)
	assert.True(t, u.ApprovedByAdmin)
}
