package process

import "github.com/sells-group/import-formatter/internal/model"

// SentinelUserTypeMissing is the literal token embedded in the error
// raised when a row has no resolvable user type under the require-choice
// policy. The caller collects an operator decision, then re-runs with
// DefaultUserType set and RequireUserTypeChoice cleared.
const SentinelUserTypeMissing = "TYPE_UTILISATEUR_MANQUANT"

// Result is the outcome of processing one source table. Table holds the
// template header row, the "-" marker row, then one row per source row
// that carried data; diagnostics are ordered by source row.
type Result struct {
	Table    [][]string
	Stats    model.Stats
	Errors   []string
	Warnings []string
	// NeedsUserTypeChoice reports that at least one sentinel error fired,
	// so callers never have to grep Errors for the token.
	NeedsUserTypeChoice bool
}
