package kinship

import "heritage-archive/domain/models"

// Label names how another person relates to self.
type Label string

const (
	LabelFather   Label = "father"
	LabelMother   Label = "mother"
	LabelSpouse   Label = "spouse"
	LabelChild    Label = "child"
	LabelSibling  Label = "sibling"
	LabelRelative Label = "relative"
)

// LabelRelationship classifies other relative to self. Rules are checked in a
// fixed order and the first match wins, so malformed rows that satisfy several
// rules still get a deterministic label.
func LabelRelationship(self, other *models.Person) Label {
	if self == nil || other == nil {
		return LabelRelative
	}
	switch {
	case refersTo(self.FatherID, other.ID):
		return LabelFather
	case refersTo(self.MotherID, other.ID):
		return LabelMother
	case refersTo(self.SpouseID, other.ID) || refersTo(other.SpouseID, self.ID):
		return LabelSpouse
	case isChildOf(other, self.ID) && self.ID != "":
		return LabelChild
	case SharesParent(self, other):
		return LabelSibling
	default:
		return LabelRelative
	}
}
