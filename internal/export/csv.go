// Package export writes formatted tables and their run artifacts: the
// import file itself (CSV or XLSX), an HTML report, and a machine-readable
// diagnostics CSV.
package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// WriteCSV writes the table rows to path with a leading UTF-8 BOM so
// Excel opens the accents correctly.
func WriteCSV(path string, rows [][]string, separator rune) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	if _, err := f.WriteString("\xef\xbb\xbf"); err != nil {
		return eris.Wrap(err, "export: write bom")
	}

	w := csv.NewWriter(f)
	if separator != 0 {
		w.Comma = separator
	}
	if err := w.WriteAll(rows); err != nil {
		return eris.Wrap(err, "export: write rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return eris.Wrap(f.Close(), "export: close csv")
}
