package normalize

import (
	"fmt"
	"strings"
)

var (
	truthyValues = map[string]bool{
		"oui": true, "o": true, "yes": true, "y": true, "1": true,
		"true": true, "vrai": true, "x": true,
	}
	falsyValues = map[string]bool{
		"non": true, "n": true, "no": true, "0": true,
		"false": true, "faux": true, "": true,
	}
)

// Bool normalizes a yes/no value to "1"/"0". Empty maps to "0" since the
// import platform treats the flags as unset-means-no. Unrecognized values
// pass through with a warning.
func Bool(s string) Outcome {
	s = strings.TrimSpace(s)
	low := strings.ToLower(s)
	switch {
	case truthyValues[low]:
		return ok("1")
	case falsyValues[low]:
		return ok("0")
	}
	return warn(s, fmt.Sprintf("Valeur Oui/Non non reconnue '%s'", s))
}
