package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRe accepts local@domain.tld with dot-separated domain labels and a
// TLD of at least two letters.
var emailRe = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// Email lowercases an address and checks its shape. Suspect addresses are
// still returned lowercased; only strict mode rejects them.
func Email(s string, strict bool) Outcome {
	s = strings.TrimSpace(s)
	if s == "" {
		return ok("")
	}

	v := strings.ToLower(s)
	if !emailRe.MatchString(v) {
		msg := fmt.Sprintf("Email suspect '%s'", s)
		if strict {
			return fail(v, msg)
		}
		return warn(v, msg)
	}
	return ok(v)
}
