package util

import (
	"strconv"
	"strings"
)

// YearOf extracts the year from a GEDCOM date value such as "12 JAN 1900",
// "ABT 1850" or "1900". GEDCOM dates put the year last, so the last token
// that parses as a three- or four-digit number wins.
func YearOf(date string) (int, bool) {
	fields := strings.Fields(date)
	for i := len(fields) - 1; i >= 0; i-- {
		tok := fields[i]
		if len(tok) < 3 || len(tok) > 4 {
			continue
		}
		year, err := strconv.Atoi(tok)
		if err != nil || year <= 0 {
			continue
		}
		return year, true
	}
	return 0, false
}
