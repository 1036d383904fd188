// Package model holds the shared records passed between the readers, the
// processing engine, and the run store.
package model

// Table is an in-memory source spreadsheet: ordered column names plus raw
// cell rows. Rows may be shorter than Columns when trailing cells are empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Stats aggregates one processing run.
type Stats struct {
	TotalRows       int `json:"total_rows"`
	ValidRows       int `json:"valid_rows"`
	CorrectedFields int `json:"corrected_fields"`
}
