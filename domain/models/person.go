package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonStatus string

const (
	PersonStatusPending  PersonStatus = "pending"
	PersonStatusApproved PersonStatus = "approved"
)

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

// Person is one entry in the family archive. Relationship references are not
// foreign keys: they may dangle, point at an unapproved row, or even at the row itself.
type Person struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	Name     string `gorm:"not null;index"`
	Nickname *string
	Email    *string `gorm:"index"`
	Phone    *string

	BirthDay        *int
	BirthMonth      *int
	BirthYear       *int
	BirthPlace      *string
	BirthPlaceNotes *string
	DeathDay        *int
	DeathMonth      *int
	DeathYear       *int
	MaritalStatus   MaritalStatus `gorm:"type:varchar(20);default:'single'"`

	LifeStory        *string    `gorm:"type:text"`
	ChildhoodStories StringList `gorm:"type:text"`
	StoryImages      StringList `gorm:"type:text"`
	ImageURL         *string

	FatherID           *string `gorm:"type:varchar(36);index"`
	MotherID           *string `gorm:"type:varchar(36);index"`
	SpouseID           *string `gorm:"type:varchar(36)"`
	UnlinkedSpouseName *string

	CreatedByID *string `gorm:"type:varchar(128);index"`
	CreatedBy   *string

	Status  PersonStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Version int          `gorm:"not null;default:1"`

	CreatedDate time.Time `gorm:"autoCreateTime"`
	UpdatedDate time.Time `gorm:"autoUpdateTime"`
}

func (Person) TableName() string {
	return "family_members"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = PersonStatusPending
	}
	if p.MaritalStatus == "" {
		p.MaritalStatus = MaritalSingle
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}

// IsAlive reports whether no death year is on record.
func (p *Person) IsAlive() bool {
	return p.DeathYear == nil
}

func (p *Person) IsApproved() bool {
	return p.Status == PersonStatusApproved
}

// HasStory reports a non-empty life story.
func (p *Person) HasStory() bool {
	return p.LifeStory != nil && *p.LifeStory != ""
}

// HasPhoto reports a profile image.
func (p *Person) HasPhoto() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// PersonSort selects the ordering of person listings.
type PersonSort string

const (
	SortByName        PersonSort = "name"
	SortByNameDesc    PersonSort = "name_desc"
	SortByCreatedDesc PersonSort = "created_desc"
	SortByCreatedAsc  PersonSort = "created_asc"
)

// PersonFilter narrows a person query. Zero values mean "no constraint".
type PersonFilter struct {
	Status      PersonStatus
	CreatedByID string
	Search      string
	HasStory    bool
	HasPhoto    bool
	Sort        PersonSort
}
