package fetcher

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/import-formatter/internal/model"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0, the first sheet
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a worksheet into a table. The first row is the header;
// data rows are padded to the header width.
func ReadXLSX(path string, opts XLSXOptions) (model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return model.Table{}, err
	}
	if len(sheet.Rows) == 0 {
		return model.Table{}, eris.Errorf("xlsx: sheet %q is empty", sheet.Name)
	}

	header := rowToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		padded := make([]string, len(header))
		copy(padded, rowToStrings(row))
		rows = append(rows, padded)
	}

	return model.Table{Columns: header, Rows: rows}, nil
}

// Read dispatches on the file extension: .xlsx goes through tealeg,
// everything else is treated as delimited text.
func Read(path string, csvOpts CSVOptions, xlsxOpts XLSXOptions) (model.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, xlsxOpts)
	}
	return ReadCSV(path, csvOpts)
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (%d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
