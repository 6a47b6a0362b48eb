package dto

import (
	"testing"
	"time"

	"github.com/hebcal/hebcal-go/hdate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/kinship"
	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
)

func str(s string) *string { return &s }
func num(n int) *int { return &n }

func TestUpdatePersonRequest_ToColumns(t *testing.T) {
	alive := true
	stories := []string{"the orchard"}
	req := UpdatePersonRequest{
		Name:             str("  Miriam "),
		Nickname:         str(""),
		FatherID:         str("p-1"),
		BirthYear:        num(0),
		DeathYear:        num(1990),
		IsAlive:          &alive,
		ChildhoodStories: &stories,
	}

	cols := req.ToColumns()

	assert.Equal(t, "Miriam", cols["name"])
	assert.Nil(t, cols["nickname"])
	assert.Contains(t, cols, "nickname")
	assert.Equal(t, "p-1", *cols["father_id"].(*string))
	assert.Nil(t, cols["birth_year"])
	// is_alive wins over a death year in the same request
	assert.Nil(t, cols["death_year"])
	assert.Contains(t, cols, "death_day")
	assert.Equal(t, models.StringList{"the orchard"}, cols["childhood_stories"])

	assert.NotContains(t, cols, "mother_id")
	assert.NotContains(t, cols, "story_images")
}

func TestUpdatePersonRequest_EmptyIsEmpty(t *testing.T) {
	assert.Empty(t, (&UpdatePersonRequest{}).ToColumns())
}

func TestCreatePersonRequest_ToModel(t *testing.T) {
	req := CreatePersonRequest{Name: " Sara ", Nickname: str(" "), MotherID: str("m-1")}
	p := req.ToModel()
	assert.Equal(t, "Sara", p.Name)
	assert.Nil(t, p.Nickname)
	require.NotNil(t, p.MotherID)
	assert.Equal(t, "m-1", *p.MotherID)
	assert.Empty(t, p.Status)
}

func TestPersonProfileToResponse(t *testing.T) {
	dad := &models.Person{ID: "d", Name: "Dad", Status: models.PersonStatusApproved}
	kid := &models.Person{ID: "k", Name: "Kid", DeathYear: num(2001)}
	resp := PersonProfileToResponse(&services.PersonProfile{
		Person: &models.Person{ID: "t", Name: "Target"},
		Relatives: kinship.Relatives{
			Father:   dad,
			Children: []*models.Person{kid},
		},
	})

	assert.Equal(t, "t", resp.Person.ID)
	assert.True(t, resp.Person.IsAlive)
	assert.Equal(t, []string{}, resp.Person.StoryImages)
	require.NotNil(t, resp.Relatives.Father)
	assert.Equal(t, "Dad", resp.Relatives.Father.Name)
	assert.Nil(t, resp.Relatives.Mother)
	require.Len(t, resp.Relatives.Children, 1)
	assert.False(t, resp.Relatives.Children[0].IsAlive)
}

func TestDirectoryToResponse(t *testing.T) {
	entries := []services.DirectoryEntry{
		{Person: models.Person{ID: "a", Name: "A", LifeStory: str("x")}, ChildrenCount: 3},
	}
	resp := DirectoryToResponse(entries)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].HasStory)
	assert.False(t, resp[0].HasPhoto)
	assert.Equal(t, 3, resp[0].ChildrenCount)
}

func TestPersonToResponse_HebrewDates(t *testing.T) {
	p := &models.Person{
		ID:         "p-1",
		Name:       "Miriam",
		BirthDay:   num(13),
		BirthMonth: num(11),
		BirthYear:  num(2008),
		DeathMonth: num(3),
		DeathYear:  num(2020),
	}

	resp := PersonToResponse(p)
	require.NotNil(t, resp.HebrewBirthDate)
	assert.Equal(t, hdate.FromGregorian(2008, time.November, 13).Gematriya(), *resp.HebrewBirthDate)
	assert.NotEmpty(t, *resp.HebrewBirthDate)
	assert.Nil(t, resp.HebrewDeathDate, "death day is unknown")
}

func TestHebrewDate_Invalid(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day *int
	}{
		{"missing year", nil, num(5), num(1)},
		{"missing month", num(1950), nil, num(1)},
		{"missing day", num(1950), num(5), nil},
		{"zero year", num(0), num(5), num(1)},
		{"month out of range", num(1950), num(13), num(1)},
		{"day out of range", num(1950), num(2), num(30)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, HebrewDate(tc.year, tc.month, tc.day))
		})
	}

	assert.NotEqual(t, *HebrewDate(num(1950), num(5), num(1)), *HebrewDate(num(1950), num(5), num(2)))
}
