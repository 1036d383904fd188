// Package normalize converts raw cell values into the canonical
// representation of their field kind. Every function trims its input and
// returns a tagged Outcome instead of raising: strict-mode rejections set
// Failure, advisory deviations append to Warnings, and the caller decides
// what a failure means for the row.
package normalize

// Outcome is the result of normalizing one cell.
type Outcome struct {
	Value    string
	Warnings []string
	// Failure is the rejection message when strict mode refuses the value.
	// Empty means the value (possibly with warnings) is usable.
	Failure string
}

func ok(v string) Outcome {
	return Outcome{Value: v}
}

func warn(v string, msg string) Outcome {
	return Outcome{Value: v, Warnings: []string{msg}}
}

func fail(v string, msg string) Outcome {
	return Outcome{Value: v, Failure: msg}
}
