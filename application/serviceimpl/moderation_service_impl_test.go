package serviceimpl

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/models"
	"heritage-archive/pkg/apperror"
)

type moderationFixture struct {
	store     *testStore
	persons   *countingPersons
	directory *invalidationCounter
	events    *recordingPublisher
	svc       *ModerationServiceImpl
}

func newModerationFixture(t *testing.T) *moderationFixture {
	store := newTestStore(t)
	f := &moderationFixture{
		store:     store,
		persons:   &countingPersons{PersonRepository: store.persons},
		directory: &invalidationCounter{},
		events:    &recordingPublisher{},
	}
	f.svc = NewModerationService(f.persons, store.profiles, store.logs, f.directory, f.events, nil).(*ModerationServiceImpl)

	store.addProfile(t, "admin", models.RoleAdmin, true)
	store.addProfile(t, "member", models.RoleMember, true)
	return f
}

func TestApprovePerson(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{Name: "Ruth"})

	approved, err := f.svc.ApprovePerson(ctx, "admin", p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PersonStatusApproved, approved.Status)
	assert.Equal(t, 1, f.directory.calls)

	t.Run("second approve is a no-op", func(t *testing.T) {
		again, err := f.svc.ApprovePerson(ctx, "admin", p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PersonStatusApproved, again.Status)
		assert.Equal(t, approved.Version, again.Version)
		assert.Equal(t, 1, f.persons.updates)
	})

	t.Run("writes a moderation log", func(t *testing.T) {
		logs, err := f.store.logs.ListByTarget(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, models.ActionPersonApproved, logs[0].Action)
		assert.Equal(t, "admin", logs[0].ActorID)

		var details models.ModerationDetails
		require.NoError(t, json.Unmarshal([]byte(logs[0].Details), &details))
		assert.Equal(t, "Ruth", details.TargetName)
	})

	assert.Equal(t, []string{string(models.ActionPersonApproved)}, f.events.types())
}

func TestApprovePerson_MissingTargetWritesNothing(t *testing.T) {
	f := newModerationFixture(t)

	_, err := f.svc.ApprovePerson(context.Background(), "admin", "p9")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Zero(t, f.persons.updates)
	assert.Zero(t, f.directory.calls)
	assert.Empty(t, f.events.types())
}

func TestModeration_FailsClosed(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{Name: "Pending"})

	tests := []struct {
		name     string
		actor    string
		target   string
		expected error
	}{
		{"no session", "", p.ID, apperror.ErrUnauthorized},
		{"deleted actor", "ghost", p.ID, apperror.ErrUnauthorized},
		{"member", "member", p.ID, apperror.ErrForbidden},
		{"missing id", "admin", "", apperror.ErrBadRequest},
		// role is checked before input so non-admins learn nothing
		{"member with missing id", "member", "", apperror.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ApprovePerson(ctx, tc.actor, tc.target)
			assert.True(t, errors.Is(err, tc.expected), "approve: %v", err)

			err = f.svc.RejectPerson(ctx, tc.actor, tc.target)
			assert.True(t, errors.Is(err, tc.expected), "reject: %v", err)

			_, err = f.svc.ApproveAccount(ctx, tc.actor, tc.target)
			assert.True(t, errors.Is(err, tc.expected), "approve account: %v", err)

			err = f.svc.DeleteAccount(ctx, tc.actor, tc.target)
			assert.True(t, errors.Is(err, tc.expected), "delete account: %v", err)
		})
	}

	assert.Zero(t, f.persons.updates)
	assert.Zero(t, f.persons.deletes)
}

func TestModeration_RoleIsReadFresh(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{Name: "Pending"})

	_, err := f.svc.PendingPersons(ctx, "admin", "")
	require.NoError(t, err)

	// demoted between two calls
	_, err = f.store.profiles.Update(ctx, "admin", map[string]interface{}{"role": models.RoleMember})
	require.NoError(t, err)

	_, err = f.svc.ApprovePerson(ctx, "admin", p.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestRejectPerson_DeletesRecord(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{Name: "Mistake"})

	require.NoError(t, f.svc.RejectPerson(ctx, "admin", p.ID))

	_, err := f.store.persons.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	// pending rows are not in the directory cache
	assert.Zero(t, f.directory.calls)

	logs, err := f.store.logs.ListByTarget(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionPersonRejected, logs[0].Action)

	err = f.svc.RejectPerson(ctx, "admin", p.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdatePerson(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{Name: "Yosef", Status: models.PersonStatusApproved})

	updated, err := f.svc.UpdatePerson(ctx, "admin", p.ID, map[string]interface{}{
		"nickname":   "Yossi",
		"birth_year": 1931,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Yossi", *updated.Nickname)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, 1, f.directory.calls)

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := 1
		_, err := f.svc.UpdatePerson(ctx, "admin", p.ID, map[string]interface{}{"nickname": "Joe"}, &stale)
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	t.Run("status is not editable", func(t *testing.T) {
		_, err := f.svc.UpdatePerson(ctx, "admin", p.ID, map[string]interface{}{"status": "pending"}, nil)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("empty change set", func(t *testing.T) {
		_, err := f.svc.UpdatePerson(ctx, "admin", p.ID, nil, nil)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := f.svc.UpdatePerson(ctx, "admin", p.ID, map[string]interface{}{"name": "  "}, nil)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("log lists changed fields", func(t *testing.T) {
		logs, err := f.store.logs.ListByTarget(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, logs, 1)

		var details models.ModerationDetails
		require.NoError(t, json.Unmarshal([]byte(logs[0].Details), &details))
		assert.Equal(t, []string{"birth_year", "nickname"}, details.ChangedFields)
		assert.Equal(t, 1, details.OldVersion)
		assert.Equal(t, 2, details.NewVersion)
	})
}

func TestDeletePersonImage(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := f.store.addPerson(t, &models.Person{
		Name:        "Hannah",
		ImageURL:    strPtr("https://img/portrait.jpg"),
		StoryImages: models.StringList{"https://img/a.jpg", "https://img/b.jpg"},
	})

	updated, err := f.svc.DeletePersonImage(ctx, "admin", p.ID, "https://img/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"https://img/b.jpg"}, updated.StoryImages)
	assert.True(t, updated.HasPhoto())

	_, err = f.svc.DeletePersonImage(ctx, "admin", p.ID, "https://img/a.jpg")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	cleared, err := f.svc.DeletePersonImage(ctx, "admin", p.ID, "")
	require.NoError(t, err)
	assert.False(t, cleared.HasPhoto())

	_, err = f.svc.DeletePersonImage(ctx, "admin", p.ID, "")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestAccountModeration(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	f.store.addProfile(t, "newbie", models.RoleMember, false)
	f.store.addProfile(t, "other-admin", models.RoleAdmin, true)

	pending, err := f.svc.PendingAccounts(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "newbie", pending[0].ID)

	approved, err := f.svc.ApproveAccount(ctx, "admin", "newbie")
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = f.svc.ApproveAccount(ctx, "admin", "ghost")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	t.Run("admin accounts cannot be deleted", func(t *testing.T) {
		err := f.svc.DeleteAccount(ctx, "admin", "other-admin")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))

		still, err := f.store.profiles.GetByID(ctx, "other-admin")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, still.Role)
		assert.True(t, still.IsApproved)
	})

	t.Run("admin accounts cannot be rejected", func(t *testing.T) {
		err := f.svc.RejectAccount(ctx, "admin", "other-admin")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("reject removes the local row", func(t *testing.T) {
		require.NoError(t, f.svc.RejectAccount(ctx, "admin", "newbie"))
		_, err := f.store.profiles.GetByID(ctx, "newbie")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("delete member", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteAccount(ctx, "admin", "member"))
		accounts, err := f.svc.Accounts(ctx, "admin")
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	promoted, err := f.svc.UpdateAccount(ctx, "admin", "member", map[string]interface{}{"role": "admin"})
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	_, err = f.svc.UpdateAccount(ctx, "admin", "member", map[string]interface{}{"role": "owner"})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	_, err = f.svc.UpdateAccount(ctx, "admin", "admin", map[string]interface{}{"role": "member"})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = f.svc.UpdateAccount(ctx, "admin", "member", map[string]interface{}{"email": "x@y.z"})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	renamed, err := f.svc.UpdateAccount(ctx, "admin", "admin", map[string]interface{}{"full_name": " Head Archivist "})
	require.NoError(t, err)
	assert.Equal(t, "Head Archivist", renamed.FullName)

	_, err = f.svc.UpdateAccount(ctx, "admin", "member", map[string]interface{}{"full_name": "   "})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	unchanged, err := f.store.profiles.GetByID(ctx, "member")
	require.NoError(t, err)
	assert.NotEmpty(t, unchanged.FullName)
}

func TestPendingPersons_Search(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	f.store.addPerson(t, &models.Person{Name: "Leah Stern"})
	f.store.addPerson(t, &models.Person{Name: "Moshe Stern"})
	f.store.addPerson(t, &models.Person{Name: "Approved Stern", Status: models.PersonStatusApproved})

	all, err := f.svc.PendingPersons(ctx, "admin", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	leah, err := f.svc.PendingPersons(ctx, "admin", " leah ")
	require.NoError(t, err)
	require.Len(t, leah, 1)
	assert.Equal(t, "Leah Stern", leah[0].Name)

	_, err = f.svc.PendingPersons(ctx, "member", "")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}
