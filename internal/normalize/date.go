package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// canonicalDateRe matches the target jj/mm/aaaa representation.
var canonicalDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// dateLayouts are tried in order after separator normalization. Day-first
// comes first so ambiguous values like 05/03/2020 resolve as 5 March.
var dateLayouts = []string{
	"02/01/2006",
	"2006/01/02",
	"01/02/2006",
}

// lenientDateLayouts is the last-chance parse chain for unpadded or
// spelled-out dates.
var lenientDateLayouts = []string{
	"2/1/2006",
	"2006/1/2",
	"1/2/2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Date normalizes a date to jj/mm/aaaa. Separators "." and "-" are folded
// to "/" first, so 15-03-1990 and 15.03.1990 parse through the same
// layouts. When correct is false the value passes through untouched, but
// strict mode still requires the final form to be canonical.
func Date(s string, correct, strict bool) Outcome {
	s = strings.TrimSpace(s)
	if s == "" {
		return ok("")
	}

	v := s
	parsed := true
	if correct {
		v, parsed = reformatDate(s)
	}

	if strict && !canonicalDateRe.MatchString(v) {
		return fail(v, fmt.Sprintf("Date invalide '%s'", s))
	}
	if correct && !parsed {
		return warn(v, fmt.Sprintf("Date invalide '%s'", s))
	}
	return ok(v)
}

// reformatDate returns the canonical form and whether parsing succeeded.
// On total failure the original string comes back unchanged.
func reformatDate(s string) (string, bool) {
	v := strings.ReplaceAll(s, ".", "/")
	v = strings.ReplaceAll(v, "-", "/")

	if canonicalDateRe.MatchString(v) {
		return v, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006"), true
		}
	}
	for _, layout := range lenientDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006"), true
		}
	}
	return s, false
}
