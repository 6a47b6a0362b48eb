package kinship

import (
	"strings"

	"heritage-archive/domain/models"
)

// Account is the signed-in identity used for self matching.
type Account struct {
	Email       string
	DisplayName string
}

// FindSelf picks the person that most likely represents account. An email
// match (case-insensitive) always beats a name match; within each rule the
// first member in population order wins. The result is a hint for the UI and
// must never be used for access decisions.
func FindSelf(account Account, population []models.Person) *models.Person {
	for i := range population {
		if emailMatches(account, &population[i]) {
			return &population[i]
		}
	}
	for i := range population {
		if nameMatches(account, &population[i]) {
			return &population[i]
		}
	}
	return nil
}

// Suggestions lists members matching account by email or name that the
// viewer did not add themselves and that are not the identified self.
func Suggestions(account Account, population []models.Person, ownIDs []string, self *models.Person) []*models.Person {
	own := make(map[string]struct{}, len(ownIDs))
	for _, id := range ownIDs {
		own[id] = struct{}{}
	}

	suggestions := make([]*models.Person, 0)
	for i := range population {
		p := &population[i]
		if self != nil && p.ID == self.ID {
			continue
		}
		if _, mine := own[p.ID]; mine {
			continue
		}
		if emailMatches(account, p) || nameMatches(account, p) {
			suggestions = append(suggestions, p)
		}
	}
	return suggestions
}

func emailMatches(account Account, p *models.Person) bool {
	email := strings.TrimSpace(account.Email)
	if email == "" || p.Email == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*p.Email), email)
}

func nameMatches(account Account, p *models.Person) bool {
	name := strings.TrimSpace(account.DisplayName)
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(name))
}
