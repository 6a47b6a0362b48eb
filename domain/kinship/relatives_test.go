package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-archive/domain/models"
)

func ref(s string) *string { return &s }

func person(id string, opts ...func(*models.Person)) models.Person {
	p := models.Person{ID: id, Name: id, Status: models.PersonStatusApproved}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func father(id string) func(*models.Person) { return func(p *models.Person) { p.FatherID = ref(id) } }
func mother(id string) func(*models.Person) { return func(p *models.Person) { p.MotherID = ref(id) } }
func spouse(id string) func(*models.Person) { return func(p *models.Person) { p.SpouseID = ref(id) } }

func ids(people []*models.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func TestSharesParent(t *testing.T) {
	tests := []struct {
		name     string
		a, b     models.Person
		expected bool
	}{
		{"both parents null", person("p1"), person("p2"), false},
		{"same father", person("a", father("f")), person("b", father("f")), true},
		{"same mother only", person("a", mother("m")), person("b", mother("m"), father("x")), true},
		{"father null on one side", person("a", father("f")), person("b"), false},
		{"different parents", person("a", father("f1"), mother("m1")), person("b", father("f2"), mother("m2")), false},
		{"empty string refs are not a parent", person("a", father("")), person("b", father("")), false},
		{"father of one equals mother of other", person("a", father("x")), person("b", mother("x")), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SharesParent(&tc.a, &tc.b))
			assert.Equal(t, tc.expected, SharesParent(&tc.b, &tc.a))
		})
	}

	assert.False(t, SharesParent(nil, &models.Person{ID: "x"}))
}

func TestResolveRelatives(t *testing.T) {
	population := []models.Person{
		person("dad"),
		person("mom"),
		person("wife"),
		person("me", father("dad"), mother("mom"), spouse("wife")),
		person("kid1", father("me")),
		person("kid2", mother("me")),
		person("grandkid", father("kid1")),
	}

	rel := ResolveRelatives(&population[3], population)

	require.NotNil(t, rel.Father)
	require.NotNil(t, rel.Mother)
	require.NotNil(t, rel.Spouse)
	assert.Equal(t, "dad", rel.Father.ID)
	assert.Equal(t, "mom", rel.Mother.ID)
	assert.Equal(t, "wife", rel.Spouse.ID)
	assert.Nil(t, rel.UnlinkedSpouseName)
	assert.Equal(t, []string{"kid1", "kid2"}, ids(rel.Children))
}

func TestResolveRelatives_MissingReferences(t *testing.T) {
	t.Run("null references", func(t *testing.T) {
		target := person("solo")
		rel := ResolveRelatives(&target, []models.Person{target})

		assert.Nil(t, rel.Father)
		assert.Nil(t, rel.Mother)
		assert.Nil(t, rel.Spouse)
		assert.Empty(t, rel.Children)
	})

	t.Run("parent filtered out of population", func(t *testing.T) {
		// the father exists in the store but is pending, so it was not handed in
		target := person("child", father("hidden-dad"), mother("mom"))
		population := []models.Person{person("mom"), target}

		rel := ResolveRelatives(&population[1], population)
		assert.Nil(t, rel.Father)
		require.NotNil(t, rel.Mother)
		assert.Equal(t, "mom", rel.Mother.ID)
	})

	t.Run("unlinked spouse name fallback", func(t *testing.T) {
		target := person("me")
		target.UnlinkedSpouseName = ref("Ruth")

		rel := ResolveRelatives(&target, []models.Person{target})
		assert.Nil(t, rel.Spouse)
		require.NotNil(t, rel.UnlinkedSpouseName)
		assert.Equal(t, "Ruth", *rel.UnlinkedSpouseName)
	})

	t.Run("dangling spouse id does not fall back to name", func(t *testing.T) {
		target := person("me", spouse("ghost"))
		target.UnlinkedSpouseName = ref("Ruth")

		rel := ResolveRelatives(&target, []models.Person{target})
		assert.Nil(t, rel.Spouse)
		assert.Nil(t, rel.UnlinkedSpouseName)
	})

	t.Run("nil target", func(t *testing.T) {
		rel := ResolveRelatives(nil, []models.Person{person("a")})
		assert.Nil(t, rel.Father)
		assert.Empty(t, rel.Children)
	})
}

func TestResolveRelatives_Cycles(t *testing.T) {
	population := []models.Person{
		person("a", father("b")),
		person("b", father("a")),
		person("self", father("self"), spouse("self")),
	}

	rel := ResolveRelatives(&population[0], population)
	require.NotNil(t, rel.Father)
	assert.Equal(t, "b", rel.Father.ID)
	assert.Equal(t, []string{"b"}, ids(rel.Children))

	selfRel := ResolveRelatives(&population[2], population)
	require.NotNil(t, selfRel.Father)
	assert.Equal(t, "self", selfRel.Father.ID)
	assert.Equal(t, []string{"self"}, ids(selfRel.Children))
}

func TestChildren_MatchesEitherParentColumn(t *testing.T) {
	population := []models.Person{
		person("x"),
		person("c1", father("x")),
		person("c2", mother("x")),
		person("c3", father("y"), mother("z")),
		person("c4", father("x"), mother("x")),
	}

	for i := range population {
		for j := range population {
			a, b := &population[i], &population[j]
			isChild := (b.FatherID != nil && *b.FatherID == a.ID) || (b.MotherID != nil && *b.MotherID == a.ID)
			assert.Equal(t, isChild, contains(ids(Children(a.ID, population)), b.ID), "%s -> %s", a.ID, b.ID)
		}
	}
}

func TestSiblings(t *testing.T) {
	population := []models.Person{
		person("p1"),
		person("p2"),
		person("a", father("f")),
		person("b", father("f")),
		person("c", mother("m")),
		person("d", mother("m"), father("g")),
	}

	t.Run("null parents are never siblings", func(t *testing.T) {
		assert.Empty(t, Siblings(&population[0], population))
		assert.False(t, SharesParent(&population[0], &population[1]))
	})

	t.Run("shared father excludes self", func(t *testing.T) {
		assert.Equal(t, []string{"b"}, ids(Siblings(&population[2], population)))
	})

	t.Run("shared mother", func(t *testing.T) {
		assert.Equal(t, []string{"d"}, ids(Siblings(&population[4], population)))
	})
}

func TestCountDirectDescendants(t *testing.T) {
	t.Run("two children of f1", func(t *testing.T) {
		population := []models.Person{person("c1", father("f1")), person("c2", father("f1"))}
		assert.Equal(t, 2, CountDirectDescendants("f1", population))
	})

	t.Run("grandchildren are not counted", func(t *testing.T) {
		population := []models.Person{
			person("root"),
			person("child", father("root")),
			person("grandchild", father("child")),
		}
		assert.Equal(t, 1, CountDirectDescendants("root", population))
		assert.Equal(t, 1, CountDirectDescendants("child", population))
		assert.Equal(t, 0, CountDirectDescendants("grandchild", population))
	})

	t.Run("same id as both parents counts once", func(t *testing.T) {
		population := []models.Person{person("c", father("x"), mother("x"))}
		assert.Equal(t, 1, CountDirectDescendants("x", population))
	})

	t.Run("empty id", func(t *testing.T) {
		assert.Equal(t, 0, CountDirectDescendants("", []models.Person{person("c", father(""))}))
	})
}

func TestDescendantCounts_AgreesWithCount(t *testing.T) {
	population := []models.Person{
		person("root"),
		person("a", father("root")),
		person("b", mother("root")),
		person("c", father("a"), mother("a")),
		person("d", father("missing")),
		person("loop", father("loop")),
	}

	counts := DescendantCounts(population)
	for _, p := range population {
		assert.Equal(t, CountDirectDescendants(p.ID, population), counts[p.ID], p.ID)
	}
	assert.Equal(t, 2, counts["root"])
	assert.NotContains(t, counts, "missing")
}

func TestLabelRelationship(t *testing.T) {
	self := person("me", father("dad"), mother("mom"), spouse("wife"))

	tests := []struct {
		name     string
		other    models.Person
		expected Label
	}{
		{"father", person("dad"), LabelFather},
		{"mother", person("mom"), LabelMother},
		{"spouse by self reference", person("wife"), LabelSpouse},
		{"spouse by other reference", person("husband2", spouse("me")), LabelSpouse},
		{"child via father", person("kid", father("me")), LabelChild},
		{"child via mother", person("kid", mother("me")), LabelChild},
		{"sibling", person("bro", father("dad")), LabelSibling},
		{"stranger", person("x"), LabelRelative},
		// father rule outranks the spouse rule for malformed rows
		{"father and spouse", person("dad", spouse("me")), LabelFather},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LabelRelationship(&self, &tc.other))
		})
	}

	t.Run("orphans are not siblings", func(t *testing.T) {
		a, b := person("a"), person("b")
		assert.Equal(t, LabelRelative, LabelRelationship(&a, &b))
	})
}

func TestFirstDegreeRelatives(t *testing.T) {
	population := []models.Person{
		person("dad"),
		person("me", father("dad")),
		person("bro", father("dad")),
		person("wife", spouse("me")),
		person("kid", mother("wife"), father("me")),
		person("cousin", father("uncle")),
		person("orphan"),
	}

	got := FirstDegreeRelatives(&population[1], population)
	assert.Equal(t, []string{"dad", "bro", "wife", "kid"}, ids(got))
	assert.Empty(t, FirstDegreeRelatives(nil, population))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
