package normalize

import (
	"fmt"
	"strings"
)

// Phone strips a number to digits and folds the French international
// prefixes (+33 / 0033) back to the national leading zero. A national
// number that is not exactly 10 digits is suspect.
func Phone(s string, strict bool) Outcome {
	s = strings.TrimSpace(s)
	digits := digitsOnly(s)
	if digits == "" {
		return ok("")
	}

	if strings.HasPrefix(digits, "33") && len(digits) == 11 {
		digits = "0" + digits[2:]
	} else if strings.HasPrefix(digits, "0033") && len(digits) == 13 {
		digits = "0" + digits[4:]
	}

	if strings.HasPrefix(digits, "0") && len(digits) != 10 {
		msg := fmt.Sprintf("Téléphone suspect '%s' (%d chiffres)", s, len(digits))
		if strict {
			return fail(digits, msg)
		}
		return warn(digits, msg)
	}
	return ok(digits)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
