package serviceimpl

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
)

// editablePersonColumns are the columns an admin may change through UpdatePerson.
// status and version are managed by the workflow itself.
var editablePersonColumns = map[string]bool{
	"name":                 true,
	"nickname":             true,
	"email":                true,
	"phone":                true,
	"birth_day":            true,
	"birth_month":          true,
	"birth_year":           true,
	"birth_place":          true,
	"birth_place_notes":    true,
	"death_day":            true,
	"death_month":          true,
	"death_year":           true,
	"marital_status":       true,
	"life_story":           true,
	"childhood_stories":    true,
	"story_images":         true,
	"image_url":            true,
	"father_id":            true,
	"mother_id":            true,
	"spouse_id":            true,
	"unlinked_spouse_name": true,
}

var editableAccountColumns = map[string]bool{
	"full_name":   true,
	"role":        true,
	"is_approved": true,
}

type directoryInvalidator interface {
	InvalidateDirectory(ctx context.Context)
}

type ModerationServiceImpl struct {
	personRepo  repositories.PersonRepository
	profileRepo repositories.ProfileRepository
	logRepo     repositories.ModerationLogRepository
	directory   directoryInvalidator
	publisher   services.EventPublisher
	metrics     *metrics.Metrics
}

func NewModerationService(
	personRepo repositories.PersonRepository,
	profileRepo repositories.ProfileRepository,
	logRepo repositories.ModerationLogRepository,
	directory directoryInvalidator,
	publisher services.EventPublisher,
	m *metrics.Metrics,
) services.ModerationService {
	return &ModerationServiceImpl{
		personRepo:  personRepo,
		profileRepo: profileRepo,
		logRepo:     logRepo,
		directory:   directory,
		publisher:   publisher,
		metrics:     m,
	}
}

func (s *ModerationServiceImpl) ApprovePerson(ctx context.Context, actorID, personID string) (*models.Person, error) {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if personID == "" {
		return nil, apperror.BadRequest("person id is required")
	}

	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		s.metrics.ModerationAction(string(models.ActionPersonApproved), err)
		return nil, err
	}
	if person.IsApproved() {
		return person, nil
	}

	updated, err := s.personRepo.Update(ctx, personID, map[string]interface{}{
		"status": models.PersonStatusApproved,
	}, nil)
	s.metrics.ModerationAction(string(models.ActionPersonApproved), err)
	if err != nil {
		return nil, err
	}

	s.directory.InvalidateDirectory(ctx)
	s.record(ctx, actor, models.ActionPersonApproved, "person", updated.ID,
		actor.FullName+" approved "+updated.Name,
		models.ModerationDetails{TargetName: updated.Name, NewVersion: updated.Version})
	return updated, nil
}

func (s *ModerationServiceImpl) RejectPerson(ctx context.Context, actorID, personID string) error {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return err
	}
	if personID == "" {
		return apperror.BadRequest("person id is required")
	}

	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		s.metrics.ModerationAction(string(models.ActionPersonRejected), err)
		return err
	}

	err = s.personRepo.Delete(ctx, personID)
	s.metrics.ModerationAction(string(models.ActionPersonRejected), err)
	if err != nil {
		return err
	}

	if person.IsApproved() {
		s.directory.InvalidateDirectory(ctx)
	}
	s.record(ctx, actor, models.ActionPersonRejected, "person", personID,
		actor.FullName+" rejected "+person.Name,
		models.ModerationDetails{TargetName: person.Name, OldVersion: person.Version})
	return nil
}

func (s *ModerationServiceImpl) UpdatePerson(ctx context.Context, actorID, personID string, changes map[string]interface{}, expectedVersion *int) (*models.Person, error) {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if personID == "" {
		return nil, apperror.BadRequest("person id is required")
	}
	fields, err := allowedColumns(changes, editablePersonColumns)
	if err != nil {
		return nil, err
	}
	if name, ok := fields["name"].(string); ok && strings.TrimSpace(name) == "" {
		return nil, apperror.BadRequest("name cannot be empty")
	}

	updated, err := s.personRepo.Update(ctx, personID, fields, expectedVersion)
	s.metrics.ModerationAction(string(models.ActionPersonUpdated), err)
	if err != nil {
		return nil, err
	}

	if updated.IsApproved() {
		s.directory.InvalidateDirectory(ctx)
	}
	s.record(ctx, actor, models.ActionPersonUpdated, "person", updated.ID,
		actor.FullName+" edited "+updated.Name,
		models.ModerationDetails{
			TargetName:    updated.Name,
			ChangedFields: sortedKeys(fields),
			OldVersion:    updated.Version - 1,
			NewVersion:    updated.Version,
		})
	return updated, nil
}

func (s *ModerationServiceImpl) DeletePersonImage(ctx context.Context, actorID, personID, imageURL string) (*models.Person, error) {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if personID == "" {
		return nil, apperror.BadRequest("person id is required")
	}

	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	var fields map[string]interface{}
	removed := imageURL
	if imageURL == "" {
		if !person.HasPhoto() {
			return nil, apperror.NotFound("person has no profile image")
		}
		removed = *person.ImageURL
		fields = map[string]interface{}{"image_url": nil}
	} else {
		if !person.StoryImages.Contains(imageURL) {
			return nil, apperror.NotFound("image not found in gallery")
		}
		fields = map[string]interface{}{"story_images": person.StoryImages.Without(imageURL)}
	}

	// The gallery is rewritten whole, so guard against a concurrent edit.
	version := person.Version
	updated, err := s.personRepo.Update(ctx, personID, fields, &version)
	s.metrics.ModerationAction(string(models.ActionPersonImageRemoved), err)
	if err != nil {
		return nil, err
	}

	if updated.IsApproved() {
		s.directory.InvalidateDirectory(ctx)
	}
	s.record(ctx, actor, models.ActionPersonImageRemoved, "person", updated.ID,
		actor.FullName+" removed an image from "+updated.Name,
		models.ModerationDetails{TargetName: updated.Name, ImageURL: removed, NewVersion: updated.Version})
	return updated, nil
}

func (s *ModerationServiceImpl) ApproveAccount(ctx context.Context, actorID, accountID string) (*models.Profile, error) {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, apperror.BadRequest("account id is required")
	}

	updated, err := s.profileRepo.Update(ctx, accountID, map[string]interface{}{"is_approved": true})
	s.metrics.ModerationAction(string(models.ActionAccountApproved), err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionAccountApproved, "account", updated.ID,
		actor.FullName+" approved account "+updated.FullName,
		models.ModerationDetails{TargetName: updated.FullName})
	return updated, nil
}

func (s *ModerationServiceImpl) RejectAccount(ctx context.Context, actorID, accountID string) error {
	return s.removeAccount(ctx, actorID, accountID, models.ActionAccountRejected, "rejected")
}

func (s *ModerationServiceImpl) DeleteAccount(ctx context.Context, actorID, accountID string) error {
	return s.removeAccount(ctx, actorID, accountID, models.ActionAccountDeleted, "deleted")
}

// removeAccount deletes the local profile row. The identity at the provider is
// untouched, so the person can sign in again and get a fresh pending profile.
func (s *ModerationServiceImpl) removeAccount(ctx context.Context, actorID, accountID string, action models.ModerationAction, verb string) error {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return err
	}
	if accountID == "" {
		return apperror.BadRequest("account id is required")
	}

	target, err := s.profileRepo.GetByID(ctx, accountID)
	if err != nil {
		s.metrics.ModerationAction(string(action), err)
		return err
	}
	if target.IsAdmin() {
		err = apperror.Forbidden("admin accounts cannot be " + verb)
		s.metrics.ModerationAction(string(action), err)
		return err
	}

	err = s.profileRepo.Delete(ctx, accountID)
	s.metrics.ModerationAction(string(action), err)
	if err != nil {
		return err
	}

	s.record(ctx, actor, action, "account", accountID,
		actor.FullName+" "+verb+" account "+target.FullName,
		models.ModerationDetails{TargetName: target.FullName})
	return nil
}

func (s *ModerationServiceImpl) UpdateAccount(ctx context.Context, actorID, accountID string, changes map[string]interface{}) (*models.Profile, error) {
	actor, err := requireAdmin(ctx, s.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, apperror.BadRequest("account id is required")
	}
	fields, err := allowedColumns(changes, editableAccountColumns)
	if err != nil {
		return nil, err
	}
	if raw, ok := fields["full_name"]; ok {
		name := strings.TrimSpace(toString(raw))
		if name == "" {
			return nil, apperror.BadRequest("full name cannot be empty")
		}
		fields["full_name"] = name
	}

	details := models.ModerationDetails{ChangedFields: sortedKeys(fields)}
	if raw, ok := fields["role"]; ok {
		role := models.Role(toString(raw))
		if role != models.RoleAdmin && role != models.RoleMember {
			return nil, apperror.BadRequest("role must be admin or member")
		}
		if accountID == actor.ID && role != models.RoleAdmin {
			return nil, apperror.Forbidden("admins cannot remove their own admin role")
		}
		fields["role"] = role
		details.Role = string(role)
	}

	updated, err := s.profileRepo.Update(ctx, accountID, fields)
	s.metrics.ModerationAction(string(models.ActionAccountUpdated), err)
	if err != nil {
		return nil, err
	}

	details.TargetName = updated.FullName
	s.record(ctx, actor, models.ActionAccountUpdated, "account", updated.ID,
		actor.FullName+" updated account "+updated.FullName, details)
	return updated, nil
}

func (s *ModerationServiceImpl) PendingPersons(ctx context.Context, actorID, search string) ([]models.Person, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
		return nil, err
	}
	return s.personRepo.List(ctx, models.PersonFilter{
		Status: models.PersonStatusPending,
		Search: strings.TrimSpace(search),
		Sort:   models.SortByCreatedDesc,
	})
}

func (s *ModerationServiceImpl) PendingAccounts(ctx context.Context, actorID string) ([]models.Profile, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
		return nil, err
	}
	return s.profileRepo.ListPending(ctx)
}

func (s *ModerationServiceImpl) Accounts(ctx context.Context, actorID string) ([]models.Profile, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
		return nil, err
	}
	return s.profileRepo.ListAll(ctx)
}

// record writes the moderation log and notifies connected admins. The action
// already happened, so failures are only logged.
func (s *ModerationServiceImpl) record(ctx context.Context, actor *models.Profile, action models.ModerationAction, targetType, targetID, message string, details models.ModerationDetails) {
	logger.Moderation(string(action), message, map[string]interface{}{
		"actor_id":  actor.ID,
		"target_id": targetID,
	})

	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
	if err := s.logRepo.Create(ctx, &models.ModerationLog{
		ActorID:    actor.ID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Message:    message,
		Details:    string(payload),
	}); err != nil {
		logger.ModerationError("log_write", "Failed to write moderation log", err, map[string]interface{}{
			"action":    action,
			"target_id": targetID,
		})
	}

	if s.publisher != nil {
		s.publisher.Publish(services.ModerationEvent{
			Type:     string(action),
			TargetID: targetID,
			ActorID:  actor.ID,
			Data:     map[string]interface{}{"message": message},
		})
	}
}

func allowedColumns(changes map[string]interface{}, allowed map[string]bool) (map[string]interface{}, error) {
	if len(changes) == 0 {
		return nil, apperror.BadRequest("no fields to update")
	}
	fields := make(map[string]interface{}, len(changes))
	for column, value := range changes {
		if !allowed[column] {
			return nil, apperror.BadRequest("field " + column + " cannot be updated")
		}
		fields[column] = value
	}
	return fields, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case models.Role:
		return string(t)
	case *string:
		if t != nil {
			return *t
		}
	}
	return ""
}
