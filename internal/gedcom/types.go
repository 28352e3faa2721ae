package gedcom

import (
	"encoding/json"
	"io"
	"slices"

	"genmap/util"
)

// EventDetail holds the date and place of a life event.
type EventDetail struct {
	Date  string `json:"date,omitempty"`
	Place string `json:"place,omitempty"`
}

// Individual represents one INDI record.
type Individual struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Surname          string      `json:"surname,omitempty"`
	Gender           string      `json:"gender,omitempty"` // M, F or empty
	Birth            EventDetail `json:"birth"`
	Death            EventDetail `json:"death"`
	Occupation       string      `json:"occupation,omitempty"`
	Notes            []string    `json:"notes,omitempty"`
	Media            []string    `json:"media,omitempty"`
	FamiliesAsChild  []string    `json:"families_as_child,omitempty"`
	FamiliesAsSpouse []string    `json:"families_as_spouse,omitempty"`

	// Derived by Resolve from family records, never read from the file.
	Parents  []string `json:"parents"`
	Spouses  []string `json:"spouses"`
	Children []string `json:"children"`
}

// Family represents one FAM record.
type Family struct {
	ID       string      `json:"id"`
	Husband  string      `json:"husband,omitempty"`
	Wife     string      `json:"wife,omitempty"`
	Children []string    `json:"children"`
	Marriage EventDetail `json:"marriage"`
	Divorced bool        `json:"divorced"`
	Notes    []string    `json:"notes,omitempty"`
}

const (
	TagIndividual = "INDI"
	TagFamily     = "FAM"
)

// Summary describes one parse run.
type Summary struct {
	TotalIndividuals int    `json:"total_individuals"`
	TotalFamilies    int    `json:"total_families"`
	SkippedLines     int    `json:"skipped_lines,omitempty"`
	ParsedAt         string `json:"parsed_at"`
}

// Tree is a fully parsed GEDCOM dataset.
type Tree struct {
	Individuals map[string]*Individual `json:"individuals"`
	Families    map[string]*Family     `json:"families"`
	Summary     Summary                `json:"summary"`
}

// NewTree returns an empty dataset ready for the parser.
func NewTree() *Tree {
	return &Tree{
		Individuals: make(map[string]*Individual),
		Families:    make(map[string]*Family),
	}
}

// IndividualIDs returns every individual identifier in xref order.
func (t *Tree) IndividualIDs() []string {
	ids := make([]string, 0, len(t.Individuals))
	for id := range t.Individuals {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, util.CompareXrefs)
	return ids
}

// FamilyIDs returns every family identifier in xref order.
func (t *Tree) FamilyIDs() []string {
	ids := make([]string, 0, len(t.Families))
	for id := range t.Families {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, util.CompareXrefs)
	return ids
}

// WriteJSON writes the dataset as indented JSON.
func (t *Tree) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
