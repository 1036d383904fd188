// Package fetcher reads source spreadsheets into tables: delimited text
// with separator sniffing and charset decoding, XLSX via tealeg.
package fetcher

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/import-formatter/internal/model"
)

// Separator candidates, tried in order; the first one that yields more
// than one header column wins.
var csvSeparators = []rune{',', ';', '\t', '|'}

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	// Charset names an IANA encoding to decode before parsing ("latin1",
	// "windows-1252", ...). Empty means UTF-8.
	Charset string
	// Separator forces a field separator instead of sniffing.
	Separator rune
}

// ReadCSV reads a delimited text file into a table. The first record is
// the header; data rows are padded to the header width.
func ReadCSV(path string, opts CSVOptions) (model.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "csv: read file")
	}

	text, err := decodeCharset(raw, opts.Charset)
	if err != nil {
		return model.Table{}, err
	}

	seps := csvSeparators
	if opts.Separator != 0 {
		seps = []rune{opts.Separator}
	}

	var records [][]string
	for _, sep := range seps {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = sep
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		recs, err := r.ReadAll()
		if err != nil || len(recs) == 0 {
			continue
		}
		if len(recs[0]) > 1 {
			records = recs
			break
		}
		if records == nil {
			// Keep a single-column parse in case no separator does better.
			records = recs
		}
	}
	if records == nil {
		return model.Table{}, eris.Errorf("csv: no parsable rows in %s", path)
	}

	return tableFromRecords(records), nil
}

func decodeCharset(raw []byte, charset string) (string, error) {
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return "", eris.Wrapf(err, "csv: unknown charset %q", charset)
		}
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", eris.Wrapf(err, "csv: decode %s", charset)
		}
		raw = decoded
	}
	// Excel exports often lead with a UTF-8 BOM.
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	return string(raw), nil
}

func tableFromRecords(records [][]string) model.Table {
	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		copy(row, rec)
		rows = append(rows, row)
	}
	return model.Table{Columns: columns, Rows: rows}
}
