package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/services/chat"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

func newService(t *testing.T) (*chat.Service, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	svc := &chat.Service{
		Conversations: memory.NewConversationRepository(),
		Users:         users,
	}
	for _, id := range []string{"user-a", "user-b"} {
		u, err := domainuser.New(domainuser.CreateParams{
			ID:           domainuser.ID(id),
			UserName:     id,
			FirstName:    "First",
			LastName:     "Last",
			Email:        id + "@example.com",
			PasswordHash: "hash",
			Role:         domainuser.RoleBoth,
			Tel:          "+31600000000",
			Now:          time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.NoError(t, users.Save(context.Background(), u))
	}
	return svc, users
}

func TestStartOrGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.StartOrGet(ctx, "user-a", "user-b")
	require.NoError(t, err)

	t.Run("second call returns the same thread either way round", func(t *testing.T) {
		again, err := svc.StartOrGet(ctx, "user-b", "user-a")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("self conversation is rejected", func(t *testing.T) {
		_, err := svc.StartOrGet(ctx, "user-a", "user-a")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})

	t.Run("unknown counterpart reports not found", func(t *testing.T) {
		_, err := svc.StartOrGet(ctx, "user-a", "ghost")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	conv, err := svc.StartOrGet(ctx, "user-a", "user-b")
	require.NoError(t, err)

	got, err := svc.Send(ctx, string(conv.ID), "user-a", "hello there")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello there", got.Messages[0].Text)

	t.Run("outsider reports not found", func(t *testing.T) {
		_, err := svc.Send(ctx, string(conv.ID), "intruder", "hi")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := svc.Send(ctx, string(conv.ID), "user-b", "   ")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.StartOrGet(ctx, "user-a", "user-b")
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user-a")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.ListMine(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}
