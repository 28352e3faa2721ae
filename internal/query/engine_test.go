package query

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"genmap/internal/gedcom"
)

const familyFixture = `0 @I1@ INDI
1 NAME John /Doe/
1 SEX M
1 BIRT
2 DATE 12 JAN 1900
2 PLAC Springfield, Illinois
1 DEAT
2 DATE 3 MAR 1975
2 PLAC Chicago, Illinois
1 FAMS @F1@
0 @I2@ INDI
1 NAME Mary /Smith/
1 SEX F
1 BIRT
2 DATE 1904
2 PLAC Boston, Massachusetts
1 FAMS @F1@
0 @I3@ INDI
1 NAME Peter /Doe/
1 SEX M
1 BIRT
2 DATE 2 FEB 1926
1 FAMC @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 MARR
2 DATE 5 JUN 1925
2 PLAC Springfield, Illinois
`

func newTestEngine(t *testing.T, in string) *Engine {
	t.Helper()
	tree, err := gedcom.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return NewEngine(tree)
}

func matchIDs(matches []*gedcom.Individual) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestFindPerson(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"surname", "doe", []string{"I1", "I3"}},
		{"case insensitive", "DOE", []string{"I1", "I3"}},
		{"given name", "mary", []string{"I2"}},
		{"full name", "john doe", []string{"I1"}},
		{"no match", "archibald", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchIDs(e.FindPerson(tt.query))
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindPerson(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFindPersonExactSet(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	// The result set is exactly the individuals whose cleaned name contains
	// the query, nothing more and nothing less.
	query := "doe"
	got := map[string]bool{}
	for _, m := range e.FindPerson(query) {
		got[m.ID] = true
	}
	for _, id := range e.Tree().IndividualIDs() {
		ind := e.Tree().Individuals[id]
		want := strings.Contains(strings.ToLower(ind.Name), query)
		if got[id] != want {
			t.Errorf("Membership of %s = %v, want %v", id, got[id], want)
		}
	}
}

func TestPersonDetails(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	details, err := e.PersonDetails("I1")
	if err != nil {
		t.Fatalf("PersonDetails failed: %v", err)
	}
	if details.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", details.Name, "John Doe")
	}
	if !slices.Equal(details.SpouseNames, []string{"Mary Smith"}) {
		t.Errorf("SpouseNames = %v, want [Mary Smith]", details.SpouseNames)
	}
	if !slices.Equal(details.ChildrenNames, []string{"Peter Doe"}) {
		t.Errorf("ChildrenNames = %v, want [Peter Doe]", details.ChildrenNames)
	}
	if len(details.ParentNames) != 0 {
		t.Errorf("ParentNames = %v, want empty", details.ParentNames)
	}

	child, err := e.PersonDetails("@I3@")
	if err != nil {
		t.Fatalf("PersonDetails with wrapped id failed: %v", err)
	}
	if !slices.Equal(child.ParentNames, []string{"John Doe", "Mary Smith"}) {
		t.Errorf("ParentNames = %v, want [John Doe Mary Smith]", child.ParentNames)
	}
}

func TestPersonDetailsNotFound(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	_, err := e.PersonDetails("I99")
	if err == nil {
		t.Fatal("Expected error for unknown id")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Error = %v, want ErrNotFound", err)
	}
}

func TestSearchByLocation(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"birth and marriage place", "springfield", []string{"I1", "I2"}},
		{"death place", "chicago", []string{"I1"}},
		{"birth place only", "boston", []string{"I2"}},
		{"case insensitive", "SPRINGFIELD", []string{"I1", "I2"}},
		{"no match", "paris", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := e.SearchByLocation(tt.query)
			ids := make([]string, 0, len(matches))
			for _, m := range matches {
				ids = append(ids, m.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("SearchByLocation(%q) = %v, want %v", tt.query, ids, tt.want)
			}
		})
	}
}

func TestSearchByLocationMarriageContext(t *testing.T) {
	e := newTestEngine(t, familyFixture)

	matches := e.SearchByLocation("springfield")
	if len(matches) != 2 {
		t.Fatalf("Got %d matches, want 2", len(matches))
	}
	// Mary's own places are in Boston; she matches through the marriage.
	mary := matches[1]
	if mary.ID != "I2" {
		t.Fatalf("matches[1].ID = %s, want I2", mary.ID)
	}
	if mary.MarriagePlace != "Springfield, Illinois" {
		t.Errorf("MarriagePlace = %q, want Springfield, Illinois", mary.MarriagePlace)
	}
	if mary.BirthPlace != "Boston, Massachusetts" {
		t.Errorf("BirthPlace = %q, want Boston, Massachusetts", mary.BirthPlace)
	}
}
