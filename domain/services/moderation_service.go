package services

import (
	"context"

	"heritage-archive/domain/models"
)

// ModerationService holds every admin-only write. Each call loads the actor's
// profile and checks the admin role again; nothing is trusted from earlier calls.
type ModerationService interface {
	ApprovePerson(ctx context.Context, actorID, personID string) (*models.Person, error)
	// RejectPerson deletes the submission.
	RejectPerson(ctx context.Context, actorID, personID string) error
	UpdatePerson(ctx context.Context, actorID, personID string, changes map[string]interface{}, expectedVersion *int) (*models.Person, error)
	// DeletePersonImage clears the profile image when imageURL is empty,
	// otherwise removes that URL from the gallery.
	DeletePersonImage(ctx context.Context, actorID, personID, imageURL string) (*models.Person, error)

	ApproveAccount(ctx context.Context, actorID, accountID string) (*models.Profile, error)
	// RejectAccount deletes the local profile row only.
	RejectAccount(ctx context.Context, actorID, accountID string) error
	UpdateAccount(ctx context.Context, actorID, accountID string, changes map[string]interface{}) (*models.Profile, error)
	// DeleteAccount refuses to delete admin accounts.
	DeleteAccount(ctx context.Context, actorID, accountID string) error

	PendingPersons(ctx context.Context, actorID, search string) ([]models.Person, error)
	PendingAccounts(ctx context.Context, actorID string) ([]models.Profile, error)
	Accounts(ctx context.Context, actorID string) ([]models.Profile, error)
}
