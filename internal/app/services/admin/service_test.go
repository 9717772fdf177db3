package admin_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/services/admin"
	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

func seedUser(t *testing.T, repo *memory.UserRepository, n int, role domainuser.Role) *domainuser.User {
	t.Helper()
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(fmt.Sprintf("user-%d", n)),
		UserName:     fmt.Sprintf("user%d", n),
		FirstName:    "First",
		LastName:     "Last",
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "hash",
		Role:         role,
		Tel:          "+3160000000" + fmt.Sprint(n),
		Now:          time.Date(2026, time.August, n+1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	svc := &admin.Service{Users: users}
	seedUser(t, users, 1, domainuser.RoleHost)
	seedUser(t, users, 2, domainuser.RoleTenant)
	seedUser(t, users, 3, domainuser.RoleHost)

	t.Run("filters by role", func(t *testing.T) {
		got, err := svc.ListUsers(ctx, admin.ListParams{Role: "host"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("pages with limit and skip", func(t *testing.T) {
		got, err := svc.ListUsers(ctx, admin.ListParams{SortBy: "user_name", Limit: 2, Skip: 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "user2", got[0].UserName)
	})

	t.Run("unknown sort field is rejected", func(t *testing.T) {
		_, err := svc.ListUsers(ctx, admin.ListParams{SortBy: "password_hash"})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.ListUsers(ctx, admin.ListParams{Role: "owner"})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	svc := &admin.Service{Users: users}
	u := seedUser(t, users, 1, domainuser.RoleHost)

	got, err := svc.Approve(ctx, string(u.ID))
	require.NoError(t, err)
	assert.True(t, got.ApprovedByAdmin)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Approve(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func TestBlock(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	sessions := memory.NewSessionStore()
	svc := &admin.Service{Users: users, Sessions: sessions}
	u := seedUser(t, users, 1, domainuser.RoleTenant)

	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  "tok-1",
		UserID: u.ID,
		Role:   u.Role,
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, sessions.Save(ctx, session))

	got, err := svc.Block(ctx, string(u.ID))
	require.NoError(t, err)
	assert.True(t, got.Blocked)

	_, err = sessions.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	t.Run("unblock restores access", func(t *testing.T) {
		got, err := svc.Unblock(ctx, string(u.ID))
		require.NoError(t, err)
		assert.False(t, got.Blocked)
	})
}
