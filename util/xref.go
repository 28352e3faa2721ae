package util

import "strings"

// CleanXref strips the @ wrappers and surrounding space from a GEDCOM
// cross-reference identifier, so "@I42@" and "I42" both yield "I42".
func CleanXref(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "@")
}

// XrefNum returns the numeric portion of an identifier such as I42 or F7.
// Identifiers without digits count as zero.
func XrefNum(id string) int {
	n := 0
	for _, r := range id {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// CompareXrefs orders identifiers numerically (I2 before I10), falling back
// to lexical order when the numbers match.
func CompareXrefs(a, b string) int {
	if d := XrefNum(a) - XrefNum(b); d != 0 {
		return d
	}
	return strings.Compare(a, b)
}
