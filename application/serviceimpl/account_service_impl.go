package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
)

type AccountServiceImpl struct {
	profileRepo repositories.ProfileRepository
	publisher   services.EventPublisher
}

func NewAccountService(profileRepo repositories.ProfileRepository, publisher services.EventPublisher) services.AccountService {
	return &AccountServiceImpl{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

func (s *AccountServiceImpl) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, apperror.BadRequest("account id is required")
	}
	return s.profileRepo.GetByID(ctx, id)
}

func (s *AccountServiceImpl) EnsureProfile(ctx context.Context, identity services.Identity) (*models.Profile, error) {
	if identity.ID == "" {
		return nil, apperror.BadRequest("identity has no subject")
	}

	existing, err := s.profileRepo.GetByID(ctx, identity.ID)
	if err == nil {
		return s.refresh(ctx, existing, identity), nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	// Two concurrent first-ever sign-ins can both see a count of zero and both
	// become admin. This window only exists while the table is empty.
	count, err := s.profileRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.Profile{
		ID:        identity.ID,
		FullName:  displayName(identity),
		Email:     identity.Email,
		Role:      models.RoleMember,
		LastLogin: &now,
	}
	if identity.AvatarURL != "" {
		profile.AvatarURL = &identity.AvatarURL
	}
	if count == 0 {
		profile.Role = models.RoleAdmin
		profile.IsApproved = true
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Lost a race with a parallel sign-in of the same identity.
		if again, getErr := s.profileRepo.GetByID(ctx, identity.ID); getErr == nil {
			return again, nil
		}
		return nil, err
	}

	logger.Auth("profile_created", "Provisioned profile on first sign-in", map[string]interface{}{
		"user_id":   profile.ID,
		"email":     profile.Email,
		"role":      profile.Role,
		"bootstrap": count == 0,
	})

	if !profile.IsApproved && s.publisher != nil {
		s.publisher.Publish(services.ModerationEvent{
			Type:     "account_registered",
			TargetID: profile.ID,
			Data:     map[string]interface{}{"full_name": profile.FullName, "email": profile.Email},
		})
	}

	return profile, nil
}

// refresh records the login and picks up avatar/email changes from the provider.
// Failures here never block sign-in.
func (s *AccountServiceImpl) refresh(ctx context.Context, profile *models.Profile, identity services.Identity) *models.Profile {
	fields := map[string]interface{}{"last_login": time.Now()}
	if identity.AvatarURL != "" && (profile.AvatarURL == nil || *profile.AvatarURL != identity.AvatarURL) {
		fields["avatar_url"] = identity.AvatarURL
	}
	if identity.Email != "" && identity.Email != profile.Email {
		fields["email"] = identity.Email
	}

	updated, err := s.profileRepo.Update(ctx, profile.ID, fields)
	if err != nil {
		logger.Warn(logger.CategoryAuth, "profile_refresh", "Failed to refresh profile on sign-in", map[string]interface{}{
			"user_id": profile.ID,
			"error":   err.Error(),
		})
		return profile
	}
	return updated
}

func displayName(identity services.Identity) string {
	if name := strings.TrimSpace(identity.FullName); name != "" {
		return name
	}
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return identity.Email
}
