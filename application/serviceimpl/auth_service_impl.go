package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/oauth"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/utils"
)

type identityProvider interface {
	GetAuthURL(state string) string
	Authenticate(ctx context.Context, code string) (*oauth.GoogleUserInfo, error)
}

type AuthServiceImpl struct {
	accounts  services.AccountService
	provider  identityProvider
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	accounts services.AccountService,
	provider identityProvider,
	jwtSecret string,
	tokenTTL time.Duration,
) services.AuthService {
	return &AuthServiceImpl{
		accounts:  accounts,
		provider:  provider,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthServiceImpl) GetGoogleAuthURL(state string) string {
	return s.provider.GetAuthURL(state)
}

func (s *AuthServiceImpl) HandleGoogleCallback(ctx context.Context, code string) (string, *models.Profile, error) {
	if code == "" {
		return "", nil, apperror.BadRequest("missing authorization code")
	}

	info, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		return "", nil, apperror.Unauthorized(fmt.Sprintf("google sign-in failed: %v", err))
	}

	profile, err := s.accounts.EnsureProfile(ctx, services.Identity{
		ID:        info.ID,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(utils.UserContext{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  profile.FullName,
	}, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, profile, nil
}

func (s *AuthServiceImpl) GetCurrentUser(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}
	profile, err := s.accounts.GetProfile(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		// the profile was rejected or deleted after the token was issued
		return nil, apperror.Unauthorized("account no longer exists")
	}
	return profile, err
}
