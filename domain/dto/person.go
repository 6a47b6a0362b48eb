package dto

import "time"

type PersonResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Nickname           *string   `json:"nickname,omitempty"`
	Email              *string   `json:"email,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	BirthDay           *int      `json:"birth_day,omitempty"`
	BirthMonth         *int      `json:"birth_month,omitempty"`
	BirthYear          *int      `json:"birth_year,omitempty"`
	BirthPlace         *string   `json:"birth_place,omitempty"`
	BirthPlaceNotes    *string   `json:"birth_place_notes,omitempty"`
	DeathDay           *int      `json:"death_day,omitempty"`
	DeathMonth         *int      `json:"death_month,omitempty"`
	DeathYear          *int      `json:"death_year,omitempty"`
	HebrewBirthDate    *string   `json:"hebrew_birth_date"`
	HebrewDeathDate    *string   `json:"hebrew_death_date"`
	IsAlive            bool      `json:"is_alive"`
	MaritalStatus      string    `json:"marital_status"`
	LifeStory          *string   `json:"life_story,omitempty"`
	ChildhoodStories   []string  `json:"childhood_stories"`
	StoryImages        []string  `json:"story_images"`
	ImageURL           *string   `json:"image_url,omitempty"`
	FatherID           *string   `json:"father_id,omitempty"`
	MotherID           *string   `json:"mother_id,omitempty"`
	SpouseID           *string   `json:"spouse_id,omitempty"`
	UnlinkedSpouseName *string   `json:"unlinked_spouse_name,omitempty"`
	CreatedByID        *string   `json:"created_by_id,omitempty"`
	CreatedBy          *string   `json:"created_by,omitempty"`
	Status             string    `json:"status"`
	Version            int       `json:"version"`
	CreatedDate        time.Time `json:"created_date"`
	UpdatedDate        time.Time `json:"updated_date"`
}

// PersonSummary is the compact form used for relatives and lists.
type PersonSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Nickname  *string `json:"nickname,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	BirthYear *int    `json:"birth_year,omitempty"`
	DeathYear *int    `json:"death_year,omitempty"`
	IsAlive   bool    `json:"is_alive"`
	Status    string  `json:"status"`
}

type DirectoryEntryResponse struct {
	PersonSummary
	BirthPlace    *string `json:"birth_place,omitempty"`
	HasStory      bool    `json:"has_story"`
	HasPhoto      bool    `json:"has_photo"`
	ChildrenCount int     `json:"children_count"`
}

type RelativesResponse struct {
	Father             *PersonSummary  `json:"father"`
	Mother             *PersonSummary  `json:"mother"`
	Spouse             *PersonSummary  `json:"spouse"`
	UnlinkedSpouseName *string         `json:"unlinked_spouse_name,omitempty"`
	Children           []PersonSummary `json:"children"`
}

type PersonProfileResponse struct {
	Person    PersonResponse    `json:"person"`
	Relatives RelativesResponse `json:"relatives"`
}

type DirectoryQuery struct {
	Search   string `query:"search" validate:"max=100"`
	HasStory bool   `query:"has_story"`
	HasPhoto bool   `query:"has_photo"`
}

type CreatePersonRequest struct {
	Name               string   `json:"name" validate:"required,max=200"`
	Nickname           *string  `json:"nickname" validate:"omitempty,max=100"`
	Email              *string  `json:"email" validate:"omitempty,email"`
	Phone              *string  `json:"phone" validate:"omitempty,max=40"`
	BirthDay           *int     `json:"birth_day" validate:"omitempty,min=1,max=31"`
	BirthMonth         *int     `json:"birth_month" validate:"omitempty,min=1,max=12"`
	BirthYear          *int     `json:"birth_year" validate:"omitempty,min=1,max=9999"`
	BirthPlace         *string  `json:"birth_place" validate:"omitempty,max=200"`
	BirthPlaceNotes    *string  `json:"birth_place_notes"`
	DeathDay           *int     `json:"death_day" validate:"omitempty,min=1,max=31"`
	DeathMonth         *int     `json:"death_month" validate:"omitempty,min=1,max=12"`
	DeathYear          *int     `json:"death_year" validate:"omitempty,min=1,max=9999"`
	MaritalStatus      string   `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	LifeStory          *string  `json:"life_story"`
	ChildhoodStories   []string `json:"childhood_stories" validate:"omitempty,dive,max=2000"`
	StoryImages        []string `json:"story_images" validate:"omitempty,dive,url"`
	ImageURL           *string  `json:"image_url" validate:"omitempty,url"`
	FatherID           *string  `json:"father_id"`
	MotherID           *string  `json:"mother_id"`
	SpouseID           *string  `json:"spouse_id"`
	UnlinkedSpouseName *string  `json:"unlinked_spouse_name" validate:"omitempty,max=200"`
}

// UpdatePersonRequest is a partial update. Absent fields are left alone; an
// empty string on a reference or text field clears it. IsAlive=true clears
// the death date. ExpectedVersion enables the optimistic concurrency check.
type UpdatePersonRequest struct {
	Name               *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Nickname           *string   `json:"nickname" validate:"omitempty,max=100"`
	Email              *string   `json:"email" validate:"omitempty,max=200"`
	Phone              *string   `json:"phone" validate:"omitempty,max=40"`
	BirthDay           *int      `json:"birth_day" validate:"omitempty,min=0,max=31"`
	BirthMonth         *int      `json:"birth_month" validate:"omitempty,min=0,max=12"`
	BirthYear          *int      `json:"birth_year" validate:"omitempty,min=0,max=9999"`
	BirthPlace         *string   `json:"birth_place" validate:"omitempty,max=200"`
	BirthPlaceNotes    *string   `json:"birth_place_notes"`
	DeathDay           *int      `json:"death_day" validate:"omitempty,min=0,max=31"`
	DeathMonth         *int      `json:"death_month" validate:"omitempty,min=0,max=12"`
	DeathYear          *int      `json:"death_year" validate:"omitempty,min=0,max=9999"`
	IsAlive            *bool     `json:"is_alive"`
	MaritalStatus      *string   `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	LifeStory          *string   `json:"life_story"`
	ChildhoodStories   *[]string `json:"childhood_stories"`
	StoryImages        *[]string `json:"story_images"`
	ImageURL           *string   `json:"image_url"`
	FatherID           *string   `json:"father_id"`
	MotherID           *string   `json:"mother_id"`
	SpouseID           *string   `json:"spouse_id"`
	UnlinkedSpouseName *string   `json:"unlinked_spouse_name" validate:"omitempty,max=200"`
	ExpectedVersion    *int      `json:"expected_version" validate:"omitempty,min=1"`
}

type DeleteImageRequest struct {
	// Empty clears the profile image; otherwise the gallery entry with this URL is removed.
	ImageURL string `json:"image_url"`
}

type SuggestionResponse struct {
	PersonSummary
	Email *string `json:"email,omitempty"`
}

type RelativeResponse struct {
	PersonSummary
	Relationship string `json:"relationship"`
}

type DashboardResponse struct {
	Profile       *ProfileResponse     `json:"profile"`
	Self          *PersonSummary       `json:"self"`
	Relatives     []RelativeResponse   `json:"relatives"`
	MySubmissions []PersonSummary      `json:"my_submissions"`
	Suggestions   []SuggestionResponse `json:"suggestions"`
	Messages      []MessageResponse    `json:"messages"`
}
