package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/oauth"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/utils"
)

func TestEnsureProfile_FirstAccountBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	events := &recordingPublisher{}
	svc := NewAccountService(store.profiles, events)

	first, err := svc.EnsureProfile(ctx, services.Identity{ID: "g-1", Email: "root@x.com", FullName: "Root"})
	require.NoError(t, err)
	assert.True(t, first.IsAdmin())
	assert.True(t, first.IsApproved)

	second, err := svc.EnsureProfile(ctx, services.Identity{ID: "g-2", Email: "dana@x.com"})
	require.NoError(t, err)
	assert.False(t, second.IsAdmin())
	assert.False(t, second.IsApproved)
	assert.Equal(t, "dana", second.FullName)

	assert.Equal(t, []string{"account_registered"}, events.types())

	t.Run("existing profile is reused and refreshed", func(t *testing.T) {
		again, err := svc.EnsureProfile(ctx, services.Identity{ID: "g-2", Email: "dana@x.com", AvatarURL: "https://img/dana.png"})
		require.NoError(t, err)
		assert.False(t, again.IsApproved)
		require.NotNil(t, again.AvatarURL)
		assert.Equal(t, "https://img/dana.png", *again.AvatarURL)
		require.NotNil(t, again.LastLogin)

		count, err := store.profiles.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := svc.EnsureProfile(ctx, services.Identity{Email: "x@y.z"})
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})
}

type fakeProvider struct {
	info *oauth.GoogleUserInfo
	err  error
}

func (p *fakeProvider) GetAuthURL(state string) string {
	return "https://accounts.example/auth?state=" + state
}

func (p *fakeProvider) Authenticate(context.Context, string) (*oauth.GoogleUserInfo, error) {
	return p.info, p.err
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	provider := &fakeProvider{info: &oauth.GoogleUserInfo{ID: "g-7", Email: "eli@x.com", Name: "Eli"}}
	svc := NewAuthService(NewAccountService(store.profiles, nil), provider, "secret", time.Hour)

	assert.Contains(t, svc.GetGoogleAuthURL("abc"), "state=abc")

	token, profile, err := svc.HandleGoogleCallback(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "g-7", profile.ID)

	claims, err := utils.ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "g-7", claims.ID)

	current, err := svc.GetCurrentUser(ctx, "g-7")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, current.Role)

	t.Run("deleted profile is unauthorized", func(t *testing.T) {
		_, err := svc.GetCurrentUser(ctx, "gone")
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})

	t.Run("missing code", func(t *testing.T) {
		_, _, err := svc.HandleGoogleCallback(ctx, "")
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("provider failure", func(t *testing.T) {
		provider.err = errors.New("exchange failed")
		_, _, err := svc.HandleGoogleCallback(ctx, "code")
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})
}
