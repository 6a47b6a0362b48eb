package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/models"
	"heritage-archive/pkg/apperror"
)

func TestMessageService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.addProfile(t, "admin", models.RoleAdmin, true)
	store.addProfile(t, "u1", models.RoleMember, true)
	store.addProfile(t, "u2", models.RoleMember, false)
	events := &recordingPublisher{}
	svc := NewMessageService(store.messages, store.profiles, events)

	_, err := svc.Send(ctx, "u1", "  where is grandpa's photo? ")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Send(ctx, "u2", "please approve me")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	reply, err := svc.Reply(ctx, "admin", "u1", "uploaded it")
	require.NoError(t, err)
	assert.True(t, reply.IsFromAdmin)

	mine, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "where is grandpa's photo?", mine[0].Content)

	threads, err := svc.Threads(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, threads, 2)
	// u1 has the latest activity
	assert.Equal(t, "u1", threads[0].UserID)
	assert.Len(t, threads[0].Messages, 2)
	require.NotNil(t, threads[1].Profile)
	assert.Equal(t, "User u2", threads[1].Profile.FullName)

	assert.Equal(t, []string{"message_received", "message_received"}, events.types())

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Send(ctx, "u1", "   ")
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))

		_, err = svc.Send(ctx, "u1", strings.Repeat("x", maxMessageLength+1))
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))

		_, err = svc.Send(ctx, "", "hi")
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.Threads(ctx, "u1")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))

		_, err = svc.Reply(ctx, "u1", "u2", "hi")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("reply to unknown account", func(t *testing.T) {
		_, err := svc.Reply(ctx, "admin", "ghost", "hi")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewCommentService(store.comments, store.persons)

	visible := store.addPerson(t, approved(&models.Person{Name: "Visible"}))
	hidden := store.addPerson(t, &models.Person{Name: "Hidden"})

	author := &models.Profile{ID: "u1", Role: models.RoleMember, IsApproved: true}
	other := &models.Profile{ID: "u2", Role: models.RoleMember, IsApproved: true}
	admin := &models.Profile{ID: "a", Role: models.RoleAdmin, IsApproved: true}

	c1, err := svc.Create(ctx, author.ID, visible.ID, "what a smile")
	require.NoError(t, err)
	c2, err := svc.Create(ctx, author.ID, visible.ID, "second")
	require.NoError(t, err)

	_, err = svc.Create(ctx, author.ID, hidden.ID, "sneaky")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	list, err := svc.List(ctx, visible.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	err = svc.Delete(ctx, other, c1.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, author, c1.ID))
	require.NoError(t, svc.Delete(ctx, admin, c2.ID))

	err = svc.Delete(ctx, admin, c2.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestModerationLogService_Paging(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewModerationLogService(store.logs)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.logs.Create(ctx, &models.ModerationLog{
			ActorID: "a", Action: models.ActionAccountApproved, TargetType: "account", TargetID: "u",
		}))
	}

	page, total, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	first, _, err := svc.ListByAction(ctx, models.ActionAccountApproved, 0, 10)
	require.NoError(t, err)
	assert.Len(t, first, 5)

	assert.Equal(t, 0, pageOffset(0, 20))
	assert.Equal(t, 40, pageOffset(3, 20))
}
