package normalize

import (
	"fmt"
	"strings"
)

const siretLength = 14

// SIRET strips a company registration number to digits and validates the
// Luhn checksum over the full 14 digits. The digit-stripped value is
// returned even when the checksum fails, so the output file stays usable
// for operator review.
func SIRET(s string, strict bool) Outcome {
	s = strings.TrimSpace(s)
	digits := digitsOnly(s)
	if digits == "" {
		return ok("")
	}

	if len(digits) != siretLength || !luhnValid(digits) {
		msg := fmt.Sprintf("SIRET invalide '%s'", s)
		if strict {
			return fail(digits, msg)
		}
		return warn(digits, msg)
	}
	return ok(digits)
}

// luhnValid runs the mod-10 checksum, doubling from the parity-matched
// position so it works for any length, not just 14.
func luhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	parity := len(digits) % 2
	total := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		total += d
	}
	return total%10 == 0
}
