// Package kinship derives family relationships from a flat set of person rows.
//
// Every function here looks exactly one hop away from its target (parents,
// spouse, direct children, shared-parent siblings). Nothing walks the graph
// transitively, so malformed data with cycles, self references or dangling
// ids cannot make these functions loop; such references simply resolve to
// nothing. Absence is a normal result and none of these functions fail.
package kinship

import (
	"heritage-archive/domain/models"
)

// Relatives is the one-hop relationship bundle for a single person.
type Relatives struct {
	Father             *models.Person
	Mother             *models.Person
	Spouse             *models.Person
	UnlinkedSpouseName *string // only set when the person has no spouse_id
	Children           []*models.Person
}

// ResolveRelatives returns the parents, spouse and children of target as found
// in population. A reference to an id that is not in population (unknown, or
// filtered out because it is not visible to the viewer) yields nil.
func ResolveRelatives(target *models.Person, population []models.Person) Relatives {
	var rel Relatives
	if target == nil {
		return rel
	}

	byID := index(population)
	rel.Father = lookup(byID, target.FatherID)
	rel.Mother = lookup(byID, target.MotherID)

	if target.SpouseID != nil {
		rel.Spouse = lookup(byID, target.SpouseID)
	} else if target.UnlinkedSpouseName != nil && *target.UnlinkedSpouseName != "" {
		rel.UnlinkedSpouseName = target.UnlinkedSpouseName
	}

	rel.Children = Children(target.ID, population)
	return rel
}

// Children returns the members whose father or mother is id, in population order.
func Children(id string, population []models.Person) []*models.Person {
	children := make([]*models.Person, 0)
	if id == "" {
		return children
	}
	for i := range population {
		if isChildOf(&population[i], id) {
			children = append(children, &population[i])
		}
	}
	return children
}

// SharesParent reports whether a and b have the same non-null father or the
// same non-null mother. Two missing parents are never a match.
func SharesParent(a, b *models.Person) bool {
	if a == nil || b == nil {
		return false
	}
	return sameRef(a.FatherID, b.FatherID) || sameRef(a.MotherID, b.MotherID)
}

// Siblings returns every other member sharing a non-null parent with target.
func Siblings(target *models.Person, population []models.Person) []*models.Person {
	siblings := make([]*models.Person, 0)
	if target == nil {
		return siblings
	}
	for i := range population {
		p := &population[i]
		if p.ID == target.ID {
			continue
		}
		if SharesParent(target, p) {
			siblings = append(siblings, p)
		}
	}
	return siblings
}

// CountDirectDescendants counts the members whose father or mother is id.
// Grandchildren are not included.
func CountDirectDescendants(id string, population []models.Person) int {
	if id == "" {
		return 0
	}
	count := 0
	for i := range population {
		if isChildOf(&population[i], id) {
			count++
		}
	}
	return count
}

// DescendantCounts computes CountDirectDescendants for the whole population in
// one pass. Ids with no children are present with a zero count; references to
// ids outside the population are ignored.
func DescendantCounts(population []models.Person) map[string]int {
	counts := make(map[string]int, len(population))
	for i := range population {
		counts[population[i].ID] = 0
	}
	for i := range population {
		p := &population[i]
		if p.FatherID != nil {
			if _, ok := counts[*p.FatherID]; ok {
				counts[*p.FatherID]++
			}
		}
		// A row listing the same id as both parents is still one child.
		if p.MotherID != nil && !sameRef(p.FatherID, p.MotherID) {
			if _, ok := counts[*p.MotherID]; ok {
				counts[*p.MotherID]++
			}
		}
	}
	return counts
}

// FirstDegreeRelatives returns parents, children, spouse (linked from either
// side) and siblings of self, in population order, excluding self.
func FirstDegreeRelatives(self *models.Person, population []models.Person) []*models.Person {
	relatives := make([]*models.Person, 0)
	if self == nil {
		return relatives
	}
	for i := range population {
		p := &population[i]
		if p.ID == self.ID {
			continue
		}
		if LabelRelationship(self, p) != LabelRelative {
			relatives = append(relatives, p)
		}
	}
	return relatives
}

func isChildOf(p *models.Person, id string) bool {
	return (p.FatherID != nil && *p.FatherID == id) || (p.MotherID != nil && *p.MotherID == id)
}

func sameRef(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

func refersTo(ref *string, id string) bool {
	return ref != nil && id != "" && *ref == id
}

func index(population []models.Person) map[string]*models.Person {
	byID := make(map[string]*models.Person, len(population))
	for i := range population {
		// keep the first occurrence so lookups follow population order
		if _, ok := byID[population[i].ID]; !ok {
			byID[population[i].ID] = &population[i]
		}
	}
	return byID
}

func lookup(byID map[string]*models.Person, ref *string) *models.Person {
	if ref == nil || *ref == "" {
		return nil
	}
	return byID[*ref]
}
