package dto

import (
	"strings"

	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
)

func PersonToResponse(p *models.Person) *PersonResponse {
	if p == nil {
		return nil
	}
	return &PersonResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Nickname:           p.Nickname,
		Email:              p.Email,
		Phone:              p.Phone,
		BirthDay:           p.BirthDay,
		BirthMonth:         p.BirthMonth,
		BirthYear:          p.BirthYear,
		BirthPlace:         p.BirthPlace,
		BirthPlaceNotes:    p.BirthPlaceNotes,
		DeathDay:           p.DeathDay,
		DeathMonth:         p.DeathMonth,
		DeathYear:          p.DeathYear,
		HebrewBirthDate:    HebrewDate(p.BirthYear, p.BirthMonth, p.BirthDay),
		HebrewDeathDate:    HebrewDate(p.DeathYear, p.DeathMonth, p.DeathDay),
		IsAlive:            p.IsAlive(),
		MaritalStatus:      string(p.MaritalStatus),
		LifeStory:          p.LifeStory,
		ChildhoodStories:   nonNil(p.ChildhoodStories),
		StoryImages:        nonNil(p.StoryImages),
		ImageURL:           p.ImageURL,
		FatherID:           p.FatherID,
		MotherID:           p.MotherID,
		SpouseID:           p.SpouseID,
		UnlinkedSpouseName: p.UnlinkedSpouseName,
		CreatedByID:        p.CreatedByID,
		CreatedBy:          p.CreatedBy,
		Status:             string(p.Status),
		Version:            p.Version,
		CreatedDate:        p.CreatedDate,
		UpdatedDate:        p.UpdatedDate,
	}
}

func PersonsToResponse(persons []models.Person) []PersonResponse {
	result := make([]PersonResponse, len(persons))
	for i := range persons {
		result[i] = *PersonToResponse(&persons[i])
	}
	return result
}

func PersonToSummary(p *models.Person) *PersonSummary {
	if p == nil {
		return nil
	}
	return &PersonSummary{
		ID:        p.ID,
		Name:      p.Name,
		Nickname:  p.Nickname,
		ImageURL:  p.ImageURL,
		BirthYear: p.BirthYear,
		DeathYear: p.DeathYear,
		IsAlive:   p.IsAlive(),
		Status:    string(p.Status),
	}
}

func PersonsToSummaries(persons []models.Person) []PersonSummary {
	result := make([]PersonSummary, len(persons))
	for i := range persons {
		result[i] = *PersonToSummary(&persons[i])
	}
	return result
}

func DirectoryToResponse(entries []services.DirectoryEntry) []DirectoryEntryResponse {
	result := make([]DirectoryEntryResponse, len(entries))
	for i := range entries {
		p := &entries[i].Person
		result[i] = DirectoryEntryResponse{
			PersonSummary: *PersonToSummary(p),
			BirthPlace:    p.BirthPlace,
			HasStory:      p.HasStory(),
			HasPhoto:      p.HasPhoto(),
			ChildrenCount: entries[i].ChildrenCount,
		}
	}
	return result
}

func PersonProfileToResponse(profile *services.PersonProfile) *PersonProfileResponse {
	rel := profile.Relatives
	children := make([]PersonSummary, len(rel.Children))
	for i, c := range rel.Children {
		children[i] = *PersonToSummary(c)
	}
	return &PersonProfileResponse{
		Person: *PersonToResponse(profile.Person),
		Relatives: RelativesResponse{
			Father:             PersonToSummary(rel.Father),
			Mother:             PersonToSummary(rel.Mother),
			Spouse:             PersonToSummary(rel.Spouse),
			UnlinkedSpouseName: rel.UnlinkedSpouseName,
			Children:           children,
		},
	}
}

func DashboardToResponse(d *services.Dashboard) *DashboardResponse {
	relatives := make([]RelativeResponse, len(d.Relatives))
	for i, r := range d.Relatives {
		relatives[i] = RelativeResponse{
			PersonSummary: *PersonToSummary(r.Person),
			Relationship:  string(r.Label),
		}
	}

	suggestions := make([]SuggestionResponse, len(d.Suggestions))
	for i, s := range d.Suggestions {
		suggestions[i] = SuggestionResponse{
			PersonSummary: *PersonToSummary(s),
			Email:         s.Email,
		}
	}

	return &DashboardResponse{
		Profile:       ProfileToResponse(d.Profile),
		Self:          PersonToSummary(d.Self),
		Relatives:     relatives,
		MySubmissions: PersonsToSummaries(d.MySubmissions),
		Suggestions:   suggestions,
		Messages:      MessagesToResponse(d.Messages),
	}
}

// ToModel builds a new submission. Status and ownership are set by the service.
func (r *CreatePersonRequest) ToModel() *models.Person {
	return &models.Person{
		Name:               strings.TrimSpace(r.Name),
		Nickname:           blankToNil(r.Nickname),
		Email:              blankToNil(r.Email),
		Phone:              blankToNil(r.Phone),
		BirthDay:           r.BirthDay,
		BirthMonth:         r.BirthMonth,
		BirthYear:          r.BirthYear,
		BirthPlace:         blankToNil(r.BirthPlace),
		BirthPlaceNotes:    blankToNil(r.BirthPlaceNotes),
		DeathDay:           r.DeathDay,
		DeathMonth:         r.DeathMonth,
		DeathYear:          r.DeathYear,
		MaritalStatus:      models.MaritalStatus(r.MaritalStatus),
		LifeStory:          blankToNil(r.LifeStory),
		ChildhoodStories:   models.StringList(r.ChildhoodStories),
		StoryImages:        models.StringList(r.StoryImages),
		ImageURL:           blankToNil(r.ImageURL),
		FatherID:           blankToNil(r.FatherID),
		MotherID:           blankToNil(r.MotherID),
		SpouseID:           blankToNil(r.SpouseID),
		UnlinkedSpouseName: blankToNil(r.UnlinkedSpouseName),
	}
}

// ToColumns converts the request into a column map for a partial update.
// Empty strings and zero date parts become NULL.
func (r *UpdatePersonRequest) ToColumns() map[string]interface{} {
	cols := make(map[string]interface{})

	if r.Name != nil {
		cols["name"] = strings.TrimSpace(*r.Name)
	}
	if r.MaritalStatus != nil {
		cols["marital_status"] = *r.MaritalStatus
	}

	setText := func(column string, v *string) {
		if v != nil {
			cols[column] = blankToNil(v)
		}
	}
	setText("nickname", r.Nickname)
	setText("email", r.Email)
	setText("phone", r.Phone)
	setText("birth_place", r.BirthPlace)
	setText("birth_place_notes", r.BirthPlaceNotes)
	setText("life_story", r.LifeStory)
	setText("image_url", r.ImageURL)
	setText("father_id", r.FatherID)
	setText("mother_id", r.MotherID)
	setText("spouse_id", r.SpouseID)
	setText("unlinked_spouse_name", r.UnlinkedSpouseName)

	setNumber := func(column string, v *int) {
		if v != nil {
			cols[column] = zeroToNil(v)
		}
	}
	setNumber("birth_day", r.BirthDay)
	setNumber("birth_month", r.BirthMonth)
	setNumber("birth_year", r.BirthYear)
	setNumber("death_day", r.DeathDay)
	setNumber("death_month", r.DeathMonth)
	setNumber("death_year", r.DeathYear)

	if r.IsAlive != nil && *r.IsAlive {
		cols["death_day"] = nil
		cols["death_month"] = nil
		cols["death_year"] = nil
	}

	if r.ChildhoodStories != nil {
		cols["childhood_stories"] = models.StringList(*r.ChildhoodStories)
	}
	if r.StoryImages != nil {
		cols["story_images"] = models.StringList(*r.StoryImages)
	}

	return cols
}

func ProfileToResponse(p *models.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		Email:      p.Email,
		Role:       string(p.Role),
		IsApproved: p.IsApproved,
		AvatarURL:  p.AvatarURL,
		LastLogin:  p.LastLogin,
		CreatedAt:  p.CreatedAt,
	}
}

func ProfilesToResponse(profiles []models.Profile) []ProfileResponse {
	result := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		result[i] = *ProfileToResponse(&profiles[i])
	}
	return result
}

func (r *UpdateAccountRequest) ToColumns() map[string]interface{} {
	cols := make(map[string]interface{})
	if r.FullName != nil {
		cols["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Role != nil {
		cols["role"] = *r.Role
	}
	if r.IsApproved != nil {
		cols["is_approved"] = *r.IsApproved
	}
	return cols
}

func MessageToResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Content:     m.Content,
		IsFromAdmin: m.IsFromAdmin,
		CreatedAt:   m.CreatedAt,
	}
}

func MessagesToResponse(messages []models.Message) []MessageResponse {
	result := make([]MessageResponse, len(messages))
	for i := range messages {
		result[i] = *MessageToResponse(&messages[i])
	}
	return result
}

func ThreadsToResponse(threads []services.MessageThread) []MessageThreadResponse {
	result := make([]MessageThreadResponse, len(threads))
	for i, t := range threads {
		result[i] = MessageThreadResponse{
			UserID:   t.UserID,
			Messages: MessagesToResponse(t.Messages),
		}
		if t.Profile != nil {
			result[i].FullName = t.Profile.FullName
			result[i].Email = t.Profile.Email
		}
	}
	return result
}

func CommentToResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		MemberID:  c.MemberID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.Profile != nil {
		resp.AuthorName = c.Profile.FullName
	}
	return resp
}

func CommentsToResponse(comments []models.Comment) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i := range comments {
		result[i] = *CommentToResponse(&comments[i])
	}
	return result
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func zeroToNil(n *int) *int {
	if n == nil || *n == 0 {
		return nil
	}
	return n
}

func nonNil(list models.StringList) []string {
	if list == nil {
		return []string{}
	}
	return list
}
