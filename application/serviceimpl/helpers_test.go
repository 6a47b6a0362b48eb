package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/postgres"
)

type testStore struct {
	db       *gorm.DB
	persons  repositories.PersonRepository
	profiles repositories.ProfileRepository
	messages repositories.MessageRepository
	comments repositories.CommentRepository
	logs     repositories.ModerationLogRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testStore{
		db:       db,
		persons:  postgres.NewPersonRepository(db),
		profiles: postgres.NewProfileRepository(db),
		messages: postgres.NewMessageRepository(db),
		comments: postgres.NewCommentRepository(db),
		logs:     postgres.NewModerationLogRepository(db),
	}
}

func (s *testStore) addProfile(t *testing.T, id string, role models.Role, approved bool) *models.Profile {
	t.Helper()
	p := &models.Profile{ID: id, FullName: "User " + id, Email: id + "@example.com", Role: role, IsApproved: approved}
	require.NoError(t, s.profiles.Create(context.Background(), p))
	return p
}

func (s *testStore) addPerson(t *testing.T, p *models.Person) *models.Person {
	t.Helper()
	require.NoError(t, s.persons.Create(context.Background(), p))
	return p
}

// countingPersons records writes so tests can assert that nothing was written.
type countingPersons struct {
	repositories.PersonRepository
	mu      sync.Mutex
	updates int
	deletes int
}

func (c *countingPersons) Update(ctx context.Context, id string, fields map[string]interface{}, expectedVersion *int) (*models.Person, error) {
	c.mu.Lock()
	c.updates++
	c.mu.Unlock()
	return c.PersonRepository.Update(ctx, id, fields, expectedVersion)
}

func (c *countingPersons) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	c.deletes++
	c.mu.Unlock()
	return c.PersonRepository.Delete(ctx, id)
}

// memoryCache is a CacheService that round-trips values through JSON like Redis does.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []services.ModerationEvent
}

func (p *recordingPublisher) Publish(event services.ModerationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type invalidationCounter struct{ calls int }

func (i *invalidationCounter) InvalidateDirectory(context.Context) { i.calls++ }

func strPtr(s string) *string { return &s }
