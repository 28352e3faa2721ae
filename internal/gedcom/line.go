package gedcom

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one GEDCOM line split into level, optional xref, tag and value.
// Record openers carry the record kind in the tag position: "0 @I1@ INDI"
// yields {Level: 0, XRef: "I1", Tag: "INDI"}.
type Line struct {
	Level int
	XRef  string
	Tag   string
	Value string
}

// ParseLine splits a single GEDCOM line of the shape
// "<level> <tag-or-id> [value]". Lines with fewer than two fields or a
// non-numeric level are malformed.
func ParseLine(raw string) (Line, error) {
	fields := strings.SplitN(strings.TrimSpace(raw), " ", 3)
	if len(fields) < 2 {
		return Line{}, fmt.Errorf("malformed line %q: want level and tag", raw)
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil {
		return Line{}, fmt.Errorf("malformed line %q: bad level: %w", raw, err)
	}

	rest := ""
	if len(fields) == 3 {
		rest = fields[2]
	}

	ln := Line{Level: level}
	if isXref(fields[1]) {
		ln.XRef = strings.Trim(fields[1], "@")
		tagAndValue := strings.SplitN(rest, " ", 2)
		ln.Tag = tagAndValue[0]
		if len(tagAndValue) == 2 {
			ln.Value = strings.TrimSpace(tagAndValue[1])
		}
	} else {
		ln.Tag = fields[1]
		ln.Value = strings.TrimSpace(rest)
	}
	ln.Tag = strings.ToUpper(ln.Tag)
	return ln, nil
}

func isXref(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "@") && strings.HasSuffix(s, "@")
}

// CleanName strips the surname slash markers from a raw NAME value, so
// "John /Doe/" becomes "John Doe".
func CleanName(raw string) string {
	parts := strings.Split(raw, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// surnameOf returns the slash-delimited surname span of a raw NAME value,
// empty when the value carries no complete marker pair.
func surnameOf(raw string) string {
	i := strings.Index(raw, "/")
	j := strings.LastIndex(raw, "/")
	if i < 0 || j <= i {
		return ""
	}
	return strings.TrimSpace(raw[i+1 : j])
}
