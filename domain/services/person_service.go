package services

import (
	"context"

	"heritage-archive/domain/kinship"
	"heritage-archive/domain/models"
)

type DirectoryFilter struct {
	Search   string
	HasStory bool
	HasPhoto bool
}

type DirectoryEntry struct {
	Person        models.Person
	ChildrenCount int
}

type PersonProfile struct {
	Person    *models.Person
	Relatives kinship.Relatives
}

type LabeledRelative struct {
	Person *models.Person
	Label  kinship.Label
}

type Dashboard struct {
	Profile       *models.Profile
	Self          *models.Person
	Relatives     []LabeledRelative
	MySubmissions []models.Person
	Suggestions   []*models.Person
	Messages      []models.Message
}

type PersonService interface {
	// ListDirectory returns approved persons by name with their direct child counts.
	ListDirectory(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error)

	// GetProfile returns a person with resolved relatives. Non-admin viewers
	// only see approved persons and approved relatives.
	GetProfile(ctx context.Context, viewer *models.Profile, id string) (*PersonProfile, error)

	// Submit stores a new person in pending status on behalf of viewer.
	Submit(ctx context.Context, viewer *models.Profile, person *models.Person) (*models.Person, error)

	Dashboard(ctx context.Context, viewer *models.Profile) (*Dashboard, error)

	InvalidateDirectory(ctx context.Context)
}
