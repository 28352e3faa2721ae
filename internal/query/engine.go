// Package query answers searches and aggregations over a parsed GEDCOM tree.
package query

import (
	"errors"
	"fmt"
	"strings"

	"genmap/internal/gedcom"
	"genmap/util"
)

// ErrNotFound is returned when an identifier matches no individual.
var ErrNotFound = errors.New("person not found")

// Engine runs queries against a resolved dataset.
type Engine struct {
	tree *gedcom.Tree
}

// NewEngine wraps a parsed and resolved tree.
func NewEngine(tree *gedcom.Tree) *Engine {
	return &Engine{tree: tree}
}

// Tree exposes the underlying dataset.
func (e *Engine) Tree() *gedcom.Tree { return e.tree }

// FindPerson returns individuals whose name contains the query,
// case-insensitively, in xref order.
func (e *Engine) FindPerson(query string) []*gedcom.Individual {
	needle := strings.ToLower(query)
	var out []*gedcom.Individual
	for _, id := range e.tree.IndividualIDs() {
		ind := e.tree.Individuals[id]
		if strings.Contains(strings.ToLower(ind.Name), needle) {
			out = append(out, ind)
		}
	}
	return out
}

// PersonDetails is an individual with the names of their resolved relatives.
type PersonDetails struct {
	*gedcom.Individual
	ParentNames   []string `json:"parent_names"`
	SpouseNames   []string `json:"spouse_names"`
	ChildrenNames []string `json:"children_names"`
}

// PersonDetails looks up one individual. The id may carry its @ wrappers.
// Returns ErrNotFound when no such record exists.
func (e *Engine) PersonDetails(id string) (*PersonDetails, error) {
	ind, ok := e.tree.Individuals[util.CleanXref(id)]
	if !ok {
		return nil, fmt.Errorf("person %q: %w", id, ErrNotFound)
	}
	return &PersonDetails{
		Individual:    ind,
		ParentNames:   e.namesOf(ind.Parents),
		SpouseNames:   e.namesOf(ind.Spouses),
		ChildrenNames: e.namesOf(ind.Children),
	}, nil
}

// namesOf maps identifiers to display names, falling back to the identifier
// itself when a record is missing or unnamed.
func (e *Engine) namesOf(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if ind := e.tree.Individuals[id]; ind != nil && ind.Name != "" {
			names = append(names, ind.Name)
			continue
		}
		names = append(names, id)
	}
	return names
}

// LocationMatch pairs an individual with their place fields. MarriagePlace is
// set only when the match came through a family's marriage record.
type LocationMatch struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BirthPlace    string `json:"birth_place,omitempty"`
	DeathPlace    string `json:"death_place,omitempty"`
	MarriagePlace string `json:"marriage_place,omitempty"`
}

// SearchByLocation returns individuals whose birth or death place contains
// the query, plus the spouses of families married in a matching place.
// Case-insensitive, deduplicated, in xref order.
func (e *Engine) SearchByLocation(query string) []LocationMatch {
	needle := strings.ToLower(query)
	contains := func(place string) bool {
		return place != "" && strings.Contains(strings.ToLower(place), needle)
	}

	marriagePlace := make(map[string]string)
	for _, famID := range e.tree.FamilyIDs() {
		fam := e.tree.Families[famID]
		if !contains(fam.Marriage.Place) {
			continue
		}
		for _, id := range []string{fam.Husband, fam.Wife} {
			if _, ok := e.tree.Individuals[id]; !ok {
				continue
			}
			if _, dup := marriagePlace[id]; !dup {
				marriagePlace[id] = fam.Marriage.Place
			}
		}
	}

	var out []LocationMatch
	for _, id := range e.tree.IndividualIDs() {
		ind := e.tree.Individuals[id]
		mp := marriagePlace[id]
		if !contains(ind.Birth.Place) && !contains(ind.Death.Place) && mp == "" {
			continue
		}
		out = append(out, LocationMatch{
			ID:            ind.ID,
			Name:          ind.Name,
			BirthPlace:    ind.Birth.Place,
			DeathPlace:    ind.Death.Place,
			MarriagePlace: mp,
		})
	}
	return out
}
