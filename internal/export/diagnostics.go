package export

import (
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Diagnostic is one run message, flattened for the diagnostics CSV.
type Diagnostic struct {
	Severity string `csv:"severite"`
	Message  string `csv:"message"`
}

// Diagnostics merges a run's errors and warnings, errors first.
func Diagnostics(errors, warnings []string) []Diagnostic {
	out := make([]Diagnostic, 0, len(errors)+len(warnings))
	for _, e := range errors {
		out = append(out, Diagnostic{Severity: "erreur", Message: e})
	}
	for _, w := range warnings {
		out = append(out, Diagnostic{Severity: "avertissement", Message: w})
	}
	return out
}

// WriteDiagnostics writes the diagnostics CSV next to the output file.
func WriteDiagnostics(path string, diags []Diagnostic) error {
	data, err := csvutil.Marshal(diags)
	if err != nil {
		return eris.Wrap(err, "export: marshal diagnostics")
	}
	return eris.Wrap(os.WriteFile(path, data, 0o644), "export: write diagnostics")
}
