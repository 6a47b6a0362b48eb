package serviceimpl

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
)

func TestMaintenance_RefreshReviewQueue(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)
	m := metrics.New()
	jobs := NewMaintenanceJobs(f.store.persons, f.store.profiles, f.svc, m)

	f.store.addPerson(t, approved(&models.Person{Name: "Visible"}))
	f.store.addPerson(t, &models.Person{Name: "Waiting one"})
	f.store.addPerson(t, &models.Person{Name: "Waiting two"})
	f.store.addProfile(t, "admin", models.RoleAdmin, true)
	f.store.addProfile(t, "newcomer", models.RoleMember, false)

	persons, accounts, err := jobs.RefreshReviewQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), persons)
	assert.Equal(t, int64(1), accounts)

	series, err := testutil.GatherAndCount(m.Registry(), "heritage_archive_review_queue_size")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestMaintenance_WarmDirectory(t *testing.T) {
	ctx := context.Background()
	f := newPersonFixture(t)
	jobs := NewMaintenanceJobs(f.store.persons, f.store.profiles, f.svc, nil)

	f.store.addPerson(t, approved(&models.Person{Name: "First"}))
	n, err := jobs.WarmDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// a row written behind the cache's back appears after the next warm-up
	f.store.addPerson(t, approved(&models.Person{Name: "Second"}))
	cached, err := f.svc.ListDirectory(ctx, services.DirectoryFilter{})
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	n, err = jobs.WarmDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, f.cache.sets)
}
