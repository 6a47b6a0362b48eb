package serviceimpl

import (
	"context"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
)

// MaintenanceJobs are the periodic tasks the scheduler runs.
type MaintenanceJobs struct {
	personRepo  repositories.PersonRepository
	profileRepo repositories.ProfileRepository
	persons     services.PersonService
	metrics     *metrics.Metrics
}

func NewMaintenanceJobs(
	personRepo repositories.PersonRepository,
	profileRepo repositories.ProfileRepository,
	persons services.PersonService,
	m *metrics.Metrics,
) *MaintenanceJobs {
	return &MaintenanceJobs{
		personRepo:  personRepo,
		profileRepo: profileRepo,
		persons:     persons,
		metrics:     m,
	}
}

// RefreshReviewQueue counts pending submissions and accounts and publishes
// them as gauges.
func (j *MaintenanceJobs) RefreshReviewQueue(ctx context.Context) (int64, int64, error) {
	persons, err := j.personRepo.Count(ctx, models.PersonFilter{Status: models.PersonStatusPending})
	if err != nil {
		return 0, 0, err
	}
	accounts, err := j.profileRepo.CountPending(ctx)
	if err != nil {
		return 0, 0, err
	}

	j.metrics.SetReviewQueue(persons, accounts)
	return persons, accounts, nil
}

// WarmDirectory drops the cached directory and rebuilds it, so rows changed
// outside the API show up within one schedule period.
func (j *MaintenanceJobs) WarmDirectory(ctx context.Context) (int, error) {
	j.persons.InvalidateDirectory(ctx)
	entries, err := j.persons.ListDirectory(ctx, services.DirectoryFilter{})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
