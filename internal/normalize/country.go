package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sells-group/import-formatter/internal/infer"
)

// Country normalizes a country value to an ISO alpha-2 code. Two-letter
// inputs are taken as codes already; names go through the lookup table.
// On a lookup miss the first two uppercased characters are kept as a
// best-effort code (non-strict only).
func Country(s string, strict bool) Outcome {
	s = strings.TrimSpace(s)
	if s == "" {
		return ok("")
	}

	if len(s) == 2 && isAlpha(s) {
		return ok(strings.ToUpper(s))
	}

	if code, found := infer.CountryToISO2(s); found {
		return ok(code)
	}

	msg := fmt.Sprintf("Pays non reconnu '%s'", s)
	if strict {
		return fail(s, msg)
	}
	upper := []rune(strings.ToUpper(s))
	if len(upper) >= 2 {
		return warn(string(upper[:2]), msg)
	}
	return warn(string(upper), msg)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
