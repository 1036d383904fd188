package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Civility hint sets. Lowercase compare; "m." is listed because trimming
// keeps the dot.
var (
	femaleHints = map[string]bool{
		"mme": true, "madame": true, "mlle": true, "mademoiselle": true,
		"f": true, "femme": true,
	}
	maleHints = map[string]bool{
		"m": true, "mr": true, "monsieur": true, "h": true, "homme": true,
		"m.": true,
	}
)

// Civility normalizes a salutation to "M." or "Mme". Unrecognized values
// pass through trimmed so the operator can see what the source carried.
func Civility(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	low := strings.ToLower(s)
	switch {
	case femaleHints[low]:
		return "Mme"
	case maleHints[low]:
		return "M."
	case strings.Contains(low, "madame"):
		return "Mme"
	case strings.Contains(low, "monsieur"):
		return "M."
	}
	return s
}

var titleCaser = cases.Title(language.French)

// FirstName title-cases a first name ("jean-pierre" → "Jean-Pierre").
func FirstName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// Surname uppercases a family name when the uppercase option is enabled.
func Surname(s string, uppercase bool) string {
	s = strings.TrimSpace(s)
	if s == "" || !uppercase {
		return s
	}
	return strings.ToUpper(s)
}
