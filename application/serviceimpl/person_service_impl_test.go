package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/kinship"
	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/apperror"
)

type personFixture struct {
	store  *testStore
	cache  *memoryCache
	events *recordingPublisher
	svc    *PersonServiceImpl
}

func newPersonFixture(t *testing.T) *personFixture {
	store := newTestStore(t)
	f := &personFixture{
		store:  store,
		cache:  newMemoryCache(),
		events: &recordingPublisher{},
	}
	f.svc = NewPersonService(store.persons, store.messages, store.logs, f.cache, f.events, nil, time.Minute).(*PersonServiceImpl)
	return f
}

func approved(p *models.Person) *models.Person {
	p.Status = models.PersonStatusApproved
	return p
}

func TestListDirectory(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)

	grandpa := f.store.addPerson(t, approved(&models.Person{Name: "Avraham"}))
	father := f.store.addPerson(t, approved(&models.Person{Name: "Yitzhak", FatherID: &grandpa.ID, LifeStory: strPtr("born in the valley")}))
	f.store.addPerson(t, approved(&models.Person{Name: "Yaakov", FatherID: &father.ID, ImageURL: strPtr("https://img/y.jpg")}))
	f.store.addPerson(t, approved(&models.Person{Name: "Esav", FatherID: &father.ID, BirthPlace: strPtr("Beer Sheva")}))
	f.store.addPerson(t, &models.Person{Name: "Pending child", FatherID: &father.ID})

	entries, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Person.Name] = e.ChildrenCount
	}
	// grandchildren never count and pending children are not in the population
	assert.Equal(t, map[string]int{"Avraham": 1, "Yitzhak": 2, "Yaakov": 0, "Esav": 0}, counts)
	assert.Equal(t, "Avraham", entries[0].Person.Name)

	t.Run("served from cache", func(t *testing.T) {
		f.store.addPerson(t, approved(&models.Person{Name: "Late arrival"}))
		cached, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{})
		require.NoError(t, err)
		assert.Len(t, cached, 4)
		assert.Equal(t, 1, f.cache.sets)

		f.svc.InvalidateDirectory(ctx)
		fresh, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{})
		require.NoError(t, err)
		assert.Len(t, fresh, 5)
	})

	t.Run("filters", func(t *testing.T) {
		stories, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{HasStory: true})
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, "Yitzhak", stories[0].Person.Name)

		photos, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{HasPhoto: true})
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "Yaakov", photos[0].Person.Name)

		byPlace, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{Search: "beer"})
		require.NoError(t, err)
		require.Len(t, byPlace, 1)
		assert.Equal(t, "Esav", byPlace[0].Person.Name)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)
	member := &models.Profile{ID: "m", Role: models.RoleMember, IsApproved: true}
	admin := &models.Profile{ID: "a", Role: models.RoleAdmin, IsApproved: true}

	dad := f.store.addPerson(t, approved(&models.Person{Name: "Dad"}))
	mom := f.store.addPerson(t, &models.Person{Name: "Mom (pending)"})
	target := f.store.addPerson(t, approved(&models.Person{
		Name:               "Target",
		FatherID:           &dad.ID,
		MotherID:           &mom.ID,
		UnlinkedSpouseName: strPtr("Someone Outside"),
	}))
	f.store.addPerson(t, approved(&models.Person{Name: "Kid", MotherID: &target.ID}))
	f.store.addPerson(t, &models.Person{Name: "Pending kid", FatherID: &target.ID})

	t.Run("member sees approved relatives only", func(t *testing.T) {
		profile, err := f.svc.GetProfile(ctx, member, target.ID)
		require.NoError(t, err)
		require.NotNil(t, profile.Relatives.Father)
		assert.Equal(t, "Dad", profile.Relatives.Father.Name)
		assert.Nil(t, profile.Relatives.Mother)
		assert.Nil(t, profile.Relatives.Spouse)
		require.NotNil(t, profile.Relatives.UnlinkedSpouseName)
		assert.Equal(t, "Someone Outside", *profile.Relatives.UnlinkedSpouseName)
		require.Len(t, profile.Relatives.Children, 1)
		assert.Equal(t, "Kid", profile.Relatives.Children[0].Name)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		profile, err := f.svc.GetProfile(ctx, admin, target.ID)
		require.NoError(t, err)
		require.NotNil(t, profile.Relatives.Mother)
		assert.Len(t, profile.Relatives.Children, 2)
	})

	t.Run("pending person is not found for members", func(t *testing.T) {
		_, err := f.svc.GetProfile(ctx, member, mom.ID)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))

		got, err := f.svc.GetProfile(ctx, admin, mom.ID)
		require.NoError(t, err)
		assert.Equal(t, mom.ID, got.Person.ID)
	})

	t.Run("self reference resolves without looping", func(t *testing.T) {
		loop := f.store.addPerson(t, approved(&models.Person{Name: "Loop"}))
		_, err := f.store.persons.Update(ctx, loop.ID, map[string]interface{}{"father_id": loop.ID}, nil)
		require.NoError(t, err)

		profile, err := f.svc.GetProfile(ctx, member, loop.ID)
		require.NoError(t, err)
		require.NotNil(t, profile.Relatives.Father)
		assert.Equal(t, loop.ID, profile.Relatives.Father.ID)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)
	viewer := &models.Profile{ID: "u1", FullName: "Dana Cohen", Role: models.RoleMember, IsApproved: true}

	created, err := f.svc.Submit(ctx, viewer, &models.Person{
		ID:     "forged",
		Name:   "  Great Aunt Sara ",
		Status: models.PersonStatusApproved,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "forged", created.ID)
	assert.Equal(t, "Great Aunt Sara", created.Name)
	assert.Equal(t, models.PersonStatusPending, created.Status)
	require.NotNil(t, created.CreatedByID)
	assert.Equal(t, "u1", *created.CreatedByID)
	assert.Equal(t, []string{string(models.ActionPersonSubmitted)}, f.events.types())

	t.Run("unapproved accounts cannot submit", func(t *testing.T) {
		pending := &models.Profile{ID: "u2", Role: models.RoleMember}
		_, err := f.svc.Submit(ctx, pending, &models.Person{Name: "x"})
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, viewer, &models.Person{Name: " "})
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("no session", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, nil, &models.Person{Name: "x"})
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)
	viewer := &models.Profile{ID: "u1", FullName: "Dana", Email: "dana@x.com", Role: models.RoleMember, IsApproved: true}

	dad := f.store.addPerson(t, approved(&models.Person{Name: "Dad"}))
	me := f.store.addPerson(t, approved(&models.Person{Name: "Dana Cohen", Email: strPtr("DANA@X.COM"), FatherID: &dad.ID}))
	f.store.addPerson(t, approved(&models.Person{Name: "Brother", FatherID: &dad.ID}))
	f.store.addPerson(t, approved(&models.Person{Name: "Dana Levi"}))

	own, err := f.svc.Submit(ctx, viewer, &models.Person{Name: "Dana's draft"})
	require.NoError(t, err)

	require.NoError(t, f.store.messages.Create(ctx, &models.Message{UserID: "u1", Content: "hello"}))

	dash, err := f.svc.Dashboard(ctx, viewer)
	require.NoError(t, err)

	require.NotNil(t, dash.Self)
	assert.Equal(t, me.ID, dash.Self.ID)

	labels := map[string]kinship.Label{}
	for _, r := range dash.Relatives {
		labels[r.Person.Name] = r.Label
	}
	assert.Equal(t, map[string]kinship.Label{"Dad": kinship.LabelFather, "Brother": kinship.LabelSibling}, labels)

	require.Len(t, dash.MySubmissions, 1)
	assert.Equal(t, own.ID, dash.MySubmissions[0].ID)

	var suggested []string
	for _, s := range dash.Suggestions {
		suggested = append(suggested, s.Name)
	}
	assert.Equal(t, []string{"Dana Levi"}, suggested)
	assert.Len(t, dash.Messages, 1)
}
