package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

const (
	importSheetName   = "Import Utilisateur"
	userTypeSheetName = "Type_Utilisateur"
)

// userTypeReference documents the platform codes on a second sheet so the
// operator reviewing the workbook does not need the manual.
var userTypeReference = [][]string{
	{"Code", "Libellé"},
	{"1", "Diplômé"},
	{"5", "Étudiant"},
}

// WriteXLSX writes the table rows to a workbook with the import sheet
// first and the user-type reference sheet second.
func WriteXLSX(path string, rows [][]string) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(importSheetName)
	if err != nil {
		return eris.Wrap(err, "export: add import sheet")
	}
	fillSheet(sheet, rows)

	ref, err := f.AddSheet(userTypeSheetName)
	if err != nil {
		return eris.Wrap(err, "export: add reference sheet")
	}
	fillSheet(ref, userTypeReference)

	return eris.Wrap(f.Save(path), "export: save xlsx")
}

func fillSheet(sheet *xlsx.Sheet, rows [][]string) {
	for _, row := range rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}
}
