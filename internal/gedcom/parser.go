package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"genmap/util"
)

// Sub-field sections a level-1 tag can open inside the current record.
const (
	sectionNone     = ""
	sectionBirth    = "birth"
	sectionDeath    = "death"
	sectionMarriage = "marriage"
	sectionMedia    = "media"
	sectionNote     = "note"
)

type parser struct {
	tree    *Tree
	indi    *Individual // open INDI record, nil while inside FAM or header records
	fam     *Family     // open FAM record
	section string
	lineNo  int
	skipped int
}

// ParseFile parses the GEDCOM file at path into a resolved dataset.
func ParseFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GEDCOM file: %w", err)
	}
	defer f.Close()

	tree, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tree, nil
}

// Parse reads GEDCOM text from r, builds the individual and family records,
// resolves their relationship links and fills in the run summary. Malformed
// lines are logged, counted and skipped; they never abort the parse.
func Parse(r io.Reader) (*Tree, error) {
	p := &parser{tree: NewTree()}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.lineNo++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		line, err := ParseLine(raw)
		if err != nil {
			p.skipped++
			log.Printf("[parse] line %d skipped: %v", p.lineNo, err)
			continue
		}
		p.apply(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	p.tree.Resolve()
	p.tree.Summary = Summary{
		TotalIndividuals: len(p.tree.Individuals),
		TotalFamilies:    len(p.tree.Families),
		SkippedLines:     p.skipped,
		ParsedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	return p.tree, nil
}

func (p *parser) apply(ln Line) {
	switch {
	case ln.Level == 0:
		p.openRecord(ln)
	case ln.Level == 1 && p.indi != nil:
		p.individualField(ln)
	case ln.Level == 1 && p.fam != nil:
		p.familyField(ln)
	case ln.Level == 2 && p.section != sectionNone:
		p.subField(ln)
	}
}

// openRecord starts a new INDI or FAM record. Level-0 lines without an xref
// (HEAD, TRLR, submitter records) close the current record and are otherwise
// ignored, as are records of unknown kinds.
func (p *parser) openRecord(ln Line) {
	p.indi, p.fam, p.section = nil, nil, sectionNone
	if ln.XRef == "" {
		return
	}
	switch ln.Tag {
	case TagIndividual:
		ind := newIndividual(ln.XRef)
		p.tree.Individuals[ind.ID] = ind
		p.indi = ind
	case TagFamily:
		fam := newFamily(ln.XRef)
		p.tree.Families[fam.ID] = fam
		p.fam = fam
	}
}

// individualField applies a level-1 line inside an INDI record. Every level-1
// tag closes the previously open sub-field section.
func (p *parser) individualField(ln Line) {
	p.section = sectionNone
	switch ln.Tag {
	case "NAME":
		p.indi.Name = CleanName(ln.Value)
		if s := surnameOf(ln.Value); s != "" {
			p.indi.Surname = s
		}
	case "SEX":
		p.indi.Gender = ln.Value
	case "OCCU":
		p.indi.Occupation = ln.Value
	case "BIRT":
		p.section = sectionBirth
	case "DEAT":
		p.section = sectionDeath
	case "OBJE":
		p.section = sectionMedia
	case "NOTE":
		p.section = sectionNote
		if ln.Value != "" {
			p.indi.Notes = append(p.indi.Notes, ln.Value)
		}
	case "FAMC":
		p.indi.FamiliesAsChild = appendUnique(p.indi.FamiliesAsChild, util.CleanXref(ln.Value))
	case "FAMS":
		p.indi.FamiliesAsSpouse = appendUnique(p.indi.FamiliesAsSpouse, util.CleanXref(ln.Value))
	}
}

// familyField applies a level-1 line inside a FAM record.
func (p *parser) familyField(ln Line) {
	p.section = sectionNone
	switch ln.Tag {
	case "HUSB":
		p.fam.Husband = util.CleanXref(ln.Value)
	case "WIFE":
		p.fam.Wife = util.CleanXref(ln.Value)
	case "CHIL":
		p.fam.Children = appendUnique(p.fam.Children, util.CleanXref(ln.Value))
	case "MARR":
		p.section = sectionMarriage
	case "DIV", "SEP":
		p.fam.Divorced = true
	case "NOTE":
		p.section = sectionNote
		if ln.Value != "" {
			p.fam.Notes = append(p.fam.Notes, ln.Value)
		}
	}
}

// subField applies a level-2 line to the open sub-field section.
func (p *parser) subField(ln Line) {
	switch p.section {
	case sectionBirth:
		setEventField(&p.indi.Birth, ln)
	case sectionDeath:
		setEventField(&p.indi.Death, ln)
	case sectionMarriage:
		setEventField(&p.fam.Marriage, ln)
	case sectionMedia:
		if ln.Tag == "FILE" && ln.Value != "" {
			p.indi.Media = append(p.indi.Media, ln.Value)
		}
	case sectionNote:
		p.continueNote(ln)
	}
}

func setEventField(ev *EventDetail, ln Line) {
	switch ln.Tag {
	case "DATE":
		ev.Date = ln.Value
	case "PLAC":
		ev.Place = ln.Value
	}
}

// continueNote extends the last note of the open record: CONT starts a new
// line, CONC concatenates directly.
func (p *parser) continueNote(ln Line) {
	if ln.Tag != "CONT" && ln.Tag != "CONC" {
		return
	}
	var notes *[]string
	switch {
	case p.indi != nil:
		notes = &p.indi.Notes
	case p.fam != nil:
		notes = &p.fam.Notes
	default:
		return
	}
	if len(*notes) == 0 {
		*notes = append(*notes, ln.Value)
		return
	}
	last := len(*notes) - 1
	if ln.Tag == "CONT" {
		(*notes)[last] += "\n" + ln.Value
	} else {
		(*notes)[last] += ln.Value
	}
}

func newIndividual(id string) *Individual {
	return &Individual{
		ID:       id,
		Parents:  []string{},
		Spouses:  []string{},
		Children: []string{},
	}
}

func newFamily(id string) *Family {
	return &Family{ID: id, Children: []string{}}
}
