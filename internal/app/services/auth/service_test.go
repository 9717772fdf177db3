package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/services/auth"
	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
)

type fixture struct {
	svc      *auth.Service
	users    *memory.UserRepository
	sessions *memory.SessionStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := memory.NewUserRepository()
	sessions := memory.NewSessionStore()
	svc := &auth.Service{
		Users:     users,
		Sessions:  sessions,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    security.RandomTokenGenerator{},
	}
	return fixture{svc: svc, users: users, sessions: sessions}
}

func registerParams() auth.RegisterParams {
	return auth.RegisterParams{
		UserName:    "annav",
		FirstName:   "Anna",
		LastName:    "Veld",
		Email:       "Anna@Example.com",
		Password:    "s3cure-enough",
		Role:        "both",
		Tel:         "+31600000001",
		DateOfBirth: time.Date(1994, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues session", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Register(ctx, registerParams())
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		assert.Equal(t, "anna@example.com", res.User.Email)
		assert.Equal(t, domainuser.RoleBoth, res.User.Role)

		principal, err := f.svc.ResolveToken(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, principal.User.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, registerParams())
		require.NoError(t, err)

		again := registerParams()
		again.UserName = "other"
		_, err = f.svc.Register(ctx, again)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConflict))
	})

	cases := []struct {
		name   string
		mutate func(*auth.RegisterParams)
	}{
		{"short password", func(p *auth.RegisterParams) { p.Password = "short" }},
		{"password containing password", func(p *auth.RegisterParams) { p.Password = "myPassword123" }},
		{"admin self-registration", func(p *auth.RegisterParams) { p.Role = "admin" }},
		{"unknown role", func(p *auth.RegisterParams) { p.Role = "landlord" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			params := registerParams()
			tc.mutate(&params)
			_, err := f.svc.Register(ctx, params)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Register(ctx, registerParams())
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		res, err := f.svc.Login(ctx, auth.LoginParams{Email: "anna@example.com", Password: "s3cure-enough"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginParams{Email: "anna@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})

	t.Run("unknown email reads like wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginParams{Email: "ghost@example.com", Password: "whatever"})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.svc.Register(ctx, registerParams())
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, res.Token))

	_, err = f.svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestUpdateMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.svc.Register(ctx, registerParams())
	require.NoError(t, err)

	tel := "+31600000099"
	email := "anna.veld@example.com"
	updated, err := f.svc.UpdateMe(ctx, auth.UpdateMeParams{
		UserID: string(res.User.ID),
		Tel:    &tel,
		Email:  &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "+31600000099", updated.Tel)
	assert.Equal(t, "anna.veld@example.com", updated.Email)
	assert.Equal(t, "Anna", updated.FirstName)

	t.Run("weak replacement password is rejected", func(t *testing.T) {
		weak := "password1234"
		_, err := f.svc.UpdateMe(ctx, auth.UpdateMeParams{UserID: string(res.User.ID), Password: &weak})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})
}

type ownerCascade struct {
	deleted []string
}

func (o *ownerCascade) DeleteByOwner(_ context.Context, ownerID string) error {
	o.deleted = append(o.deleted, ownerID)
	return nil
}

func TestDeleteMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cascade := &ownerCascade{}
	f.svc.Places = cascade

	res, err := f.svc.Register(ctx, registerParams())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteMe(ctx, string(res.User.ID)))

	assert.Equal(t, []string{string(res.User.ID)}, cascade.deleted)
	_, err = f.users.ByID(ctx, res.User.ID)
	assert.ErrorIs(t, err, domainuser.ErrNotFound)
	_, err = f.svc.ResolveToken(ctx, res.Token)
	assert.Error(t, err)
}
