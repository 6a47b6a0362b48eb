package serviceimpl

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"heritage-archive/domain/kinship"
	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
)

const directoryCacheKey = "family:directory:v1"

type PersonServiceImpl struct {
	personRepo  repositories.PersonRepository
	messageRepo repositories.MessageRepository
	logRepo     repositories.ModerationLogRepository
	cache       services.CacheService
	publisher   services.EventPublisher
	metrics     *metrics.Metrics
	cacheTTL    time.Duration
}

func NewPersonService(
	personRepo repositories.PersonRepository,
	messageRepo repositories.MessageRepository,
	logRepo repositories.ModerationLogRepository,
	cache services.CacheService,
	publisher services.EventPublisher,
	m *metrics.Metrics,
	cacheTTL time.Duration,
) services.PersonService {
	return &PersonServiceImpl{
		personRepo:  personRepo,
		messageRepo: messageRepo,
		logRepo:     logRepo,
		cache:       cache,
		publisher:   publisher,
		metrics:     m,
		cacheTTL:    cacheTTL,
	}
}

func (s *PersonServiceImpl) ListDirectory(ctx context.Context, filter services.DirectoryFilter) ([]services.DirectoryEntry, error) {
	entries, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return filterDirectory(entries, filter), nil
}

// loadDirectory returns every approved person with direct child counts,
// served from cache when possible. Counts only consider approved children.
func (s *PersonServiceImpl) loadDirectory(ctx context.Context) ([]services.DirectoryEntry, error) {
	var cached []services.DirectoryEntry
	hit, err := s.cache.Get(ctx, directoryCacheKey, &cached)
	if err != nil {
		logger.Warn(logger.CategoryCache, "directory_get", "Directory cache read failed", map[string]interface{}{"error": err.Error()})
	}
	s.metrics.CacheLookup(hit)
	if hit {
		return cached, nil
	}

	population, err := s.personRepo.List(ctx, models.PersonFilter{
		Status: models.PersonStatusApproved,
		Sort:   models.SortByName,
	})
	if err != nil {
		return nil, err
	}

	counts := kinship.DescendantCounts(population)
	entries := make([]services.DirectoryEntry, len(population))
	for i := range population {
		entries[i] = services.DirectoryEntry{
			Person:        population[i],
			ChildrenCount: counts[population[i].ID],
		}
	}

	if err := s.cache.Set(ctx, directoryCacheKey, entries, s.cacheTTL); err != nil {
		logger.Warn(logger.CategoryCache, "directory_set", "Directory cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return entries, nil
}

func (s *PersonServiceImpl) InvalidateDirectory(ctx context.Context) {
	if err := s.cache.Delete(ctx, directoryCacheKey); err != nil {
		logger.Warn(logger.CategoryCache, "directory_invalidate", "Directory cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func filterDirectory(entries []services.DirectoryEntry, filter services.DirectoryFilter) []services.DirectoryEntry {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" && !filter.HasStory && !filter.HasPhoto {
		return entries
	}

	out := make([]services.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		p := &e.Person
		if filter.HasStory && !p.HasStory() {
			continue
		}
		if filter.HasPhoto && !p.HasPhoto() {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(p *models.Person, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if p.Nickname != nil && strings.Contains(strings.ToLower(*p.Nickname), search) {
		return true
	}
	return p.BirthPlace != nil && strings.Contains(strings.ToLower(*p.BirthPlace), search)
}

func (s *PersonServiceImpl) GetProfile(ctx context.Context, viewer *models.Profile, id string) (*services.PersonProfile, error) {
	if id == "" {
		return nil, apperror.BadRequest("person id is required")
	}

	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin := viewer != nil && viewer.IsAdmin()
	if !person.IsApproved() && !isAdmin {
		// pending rows look exactly like missing ones to members
		return nil, apperror.NotFound("person " + id + " not found")
	}

	var refs []string
	for _, ref := range []*string{person.FatherID, person.MotherID, person.SpouseID} {
		if ref != nil && *ref != "" {
			refs = append(refs, *ref)
		}
	}
	related, err := s.personRepo.GetByIDs(ctx, refs)
	if err != nil {
		return nil, err
	}

	childStatus := models.PersonStatusApproved
	if isAdmin {
		childStatus = ""
	}
	children, err := s.personRepo.GetChildren(ctx, person.ID, childStatus)
	if err != nil {
		return nil, err
	}

	population := visiblePopulation(isAdmin, *person, related, children)
	return &services.PersonProfile{
		Person:    person,
		Relatives: kinship.ResolveRelatives(person, population),
	}, nil
}

// visiblePopulation merges rows by id, keeping first occurrence, and drops
// unapproved rows for non-admin viewers so hidden relatives resolve to nothing.
func visiblePopulation(isAdmin bool, target models.Person, groups ...[]models.Person) []models.Person {
	seen := map[string]struct{}{target.ID: {}}
	out := []models.Person{target}
	for _, group := range groups {
		for _, p := range group {
			if !isAdmin && !p.IsApproved() {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func (s *PersonServiceImpl) Submit(ctx context.Context, viewer *models.Profile, person *models.Person) (*models.Person, error) {
	if viewer == nil {
		return nil, apperror.Unauthorized("authentication required")
	}
	if !viewer.CanContribute() {
		return nil, apperror.Forbidden("account is pending approval")
	}
	if person == nil || strings.TrimSpace(person.Name) == "" {
		return nil, apperror.BadRequest("name is required")
	}

	person.ID = ""
	person.Name = strings.TrimSpace(person.Name)
	person.Status = models.PersonStatusPending
	person.Version = 0
	person.CreatedByID = &viewer.ID
	createdBy := viewer.FullName
	person.CreatedBy = &createdBy

	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	logger.Info(logger.CategoryFamily, "person_submitted", "New family member submitted for review", map[string]interface{}{
		"person_id": person.ID,
		"user_id":   viewer.ID,
	})

	details, _ := json.Marshal(models.ModerationDetails{TargetName: person.Name})
	if err := s.logRepo.Create(ctx, &models.ModerationLog{
		ActorID:    viewer.ID,
		Action:     models.ActionPersonSubmitted,
		TargetType: "person",
		TargetID:   person.ID,
		Message:    viewer.FullName + " submitted " + person.Name,
		Details:    string(details),
	}); err != nil {
		logger.Warn(logger.CategoryModeration, "log_write", "Failed to record submission", map[string]interface{}{"error": err.Error()})
	}

	if s.publisher != nil {
		s.publisher.Publish(services.ModerationEvent{
			Type:     string(models.ActionPersonSubmitted),
			TargetID: person.ID,
			ActorID:  viewer.ID,
			Data:     map[string]interface{}{"name": person.Name},
		})
	}

	return person, nil
}

func (s *PersonServiceImpl) Dashboard(ctx context.Context, viewer *models.Profile) (*services.Dashboard, error) {
	if viewer == nil {
		return nil, apperror.Unauthorized("authentication required")
	}

	mine, err := s.personRepo.List(ctx, models.PersonFilter{
		CreatedByID: viewer.ID,
		Sort:        models.SortByCreatedDesc,
	})
	if err != nil {
		return nil, err
	}

	entries, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	population := make([]models.Person, len(entries))
	for i := range entries {
		population[i] = entries[i].Person
	}

	account := kinship.Account{Email: viewer.Email, DisplayName: viewer.FullName}
	self := kinship.FindSelf(account, population)

	var relatives []services.LabeledRelative
	if self != nil {
		for _, r := range kinship.FirstDegreeRelatives(self, population) {
			relatives = append(relatives, services.LabeledRelative{
				Person: r,
				Label:  kinship.LabelRelationship(self, r),
			})
		}
	}

	ownIDs := make([]string, len(mine))
	for i := range mine {
		ownIDs[i] = mine[i].ID
	}

	messages, err := s.messageRepo.ListByUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	return &services.Dashboard{
		Profile:       viewer,
		Self:          self,
		Relatives:     relatives,
		MySubmissions: mine,
		Suggestions:   kinship.Suggestions(account, population, ownIDs, self),
		Messages:      messages,
	}, nil
}
