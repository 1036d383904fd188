package process

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/schema"
)

func fieldName(idx int) string { return schema.Fields[idx].Name }

func TestRunHappyPath(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Naissance", "Pays"},
		Rows: [][]string{
			{"jean", "dupont", "15-03-1990", "France"},
		},
	}
	mapping := mapper.AutoMap(table.Columns)

	res := Run(table, mapping, DefaultOptions())

	require.Len(t, res.Table, 3) // header, marker, one data row
	assert.Equal(t, schema.Names(), res.Table[0])
	for _, v := range res.Table[1] {
		assert.Equal(t, "-", v)
	}

	row := res.Table[2]
	assert.Equal(t, "M.", row[schema.IdxCivility]) // inferred from "jean"
	assert.Equal(t, "Jean", row[schema.IdxFirstName])
	assert.Equal(t, "DUPONT", row[schema.IdxBirthName])
	assert.Equal(t, "15/03/1990", row[6])
	assert.Equal(t, "FR", row[21])

	assert.Equal(t, 1, res.Stats.TotalRows)
	assert.Equal(t, 1, res.Stats.ValidRows)
	assert.Equal(t, 4, res.Stats.CorrectedFields)
	assert.Empty(t, res.Errors)
	assert.False(t, res.NeedsUserTypeChoice)
}

func TestRunMissingRequiredField(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom"},
		Rows: [][]string{
			{"jean", ""},
		},
	}
	res := Run(table, mapper.AutoMap(table.Columns), DefaultOptions())

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Ligne 2:")
	assert.Contains(t, res.Errors[0], "Prénom/Nom manquant")
	assert.Equal(t, 1, res.Stats.TotalRows)
	assert.Equal(t, 0, res.Stats.ValidRows)
	// The row is still emitted for operator review.
	assert.Len(t, res.Table, 3)
}

func TestRunEmptyRowSkipped(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom"},
		Rows: [][]string{
			{"jean", "dupont"},
			{"", "  "},
		},
	}
	res := Run(table, mapper.AutoMap(table.Columns), DefaultOptions())

	assert.Equal(t, 2, res.Stats.TotalRows)
	assert.Equal(t, 1, res.Stats.ValidRows)
	assert.Len(t, res.Table, 3) // empty row not emitted
	assert.Empty(t, res.Errors)
}

func TestRunUserTypeSentinel(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Type"},
		Rows: [][]string{
			{"jean", "dupont", "membre associé"},
		},
	}
	mapping := mapper.AutoMap(table.Columns)

	opts := DefaultOptions()
	opts.RequireUserTypeChoice = true
	res := Run(table, mapping, opts)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], SentinelUserTypeMissing+": type d'utilisateur non renseigné")
	assert.True(t, res.NeedsUserTypeChoice)
	assert.Equal(t, 0, res.Stats.ValidRows)

	// Operator decides, the run is repeated with a default.
	opts.RequireUserTypeChoice = false
	opts.DefaultUserType = "1"
	res = Run(table, mapping, opts)

	assert.Empty(t, res.Errors)
	assert.False(t, res.NeedsUserTypeChoice)
	assert.Equal(t, "1", res.Table[2][schema.IdxUserType])
	assert.Equal(t, 1, res.Stats.ValidRows)
}

func TestRunUserTypeInference(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Type"},
		Rows: [][]string{
			{"jean", "dupont", "Diplômé 2020"},
			{"marie", "durand", "Étudiante"},
			{"paul", "martin", "5"},
		},
	}
	res := Run(table, mapper.AutoMap(table.Columns), DefaultOptions())

	assert.Equal(t, "1", res.Table[2][schema.IdxUserType])
	assert.Equal(t, "5", res.Table[3][schema.IdxUserType])
	assert.Equal(t, "5", res.Table[4][schema.IdxUserType])
	assert.Equal(t, 3, res.Stats.ValidRows)
}

func TestRunUserTypeValueMap(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Type"},
		Rows: [][]string{
			{"jean", "dupont", "promo 99"},
		},
	}
	opts := DefaultOptions()
	opts.UserTypeValues = map[string]string{"promo 99": "1"}
	res := Run(table, mapper.AutoMap(table.Columns), opts)

	assert.Equal(t, "1", res.Table[2][schema.IdxUserType])
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, strings.Join(res.Warnings, "\n"), "mapping")
}

func TestRunCompanyFallback(t *testing.T) {
	// No user-type column mapped at all, but company data is present.
	mapping := mapper.Mapping{
		fieldName(schema.IdxFirstName):   "Prenom",
		fieldName(schema.IdxBirthName):   "Nom",
		fieldName(schema.IdxCompanyName): "Entreprise",
	}
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Entreprise"},
		Rows: [][]string{
			{"jean", "dupont", "ACME SA"},
			{"marie", "durand", ""},
		},
	}
	res := Run(table, mapping, DefaultOptions())

	assert.Equal(t, "1", res.Table[2][schema.IdxUserType])
	assert.Equal(t, "", res.Table[3][schema.IdxUserType])
}

func TestRunStrictFailureAbortsRow(t *testing.T) {
	mapping := mapper.Mapping{
		fieldName(schema.IdxFirstName): "Prenom",
		fieldName(schema.IdxBirthName): "Nom",
		"Email personnel 1":            "Email",
		"Adresse personnelle - Pays (ISO - 2 lettres)": "Pays",
	}
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Email", "Pays"},
		Rows: [][]string{
			{"jean", "dupont", "pas-un-email", "France"},
		},
	}
	opts := DefaultOptions()
	opts.Strict = true
	res := Run(table, mapping, opts)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Email suspect")
	assert.Equal(t, 0, res.Stats.ValidRows)

	// Fields before the failure are kept, fields after stay empty.
	row := res.Table[2]
	assert.Equal(t, "Jean", row[schema.IdxFirstName])
	assert.Equal(t, "", row[21]) // country never reached
}

func TestRunBoolFieldsDefaultToZero(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom"},
		Rows: [][]string{
			{"jean", "dupont"},
		},
	}
	res := Run(table, mapper.AutoMap(table.Columns), DefaultOptions())

	// NPAI and diploma flags read "0" on rows that carry data.
	row := res.Table[2]
	assert.Equal(t, "0", row[14])
	assert.Equal(t, "0", row[22])
}

func TestRunCivilityFallback(t *testing.T) {
	mapping := mapper.Mapping{
		fieldName(schema.IdxFirstName): "Prenom",
		fieldName(schema.IdxBirthName): "Nom",
	}
	table := model.Table{
		Columns: []string{"Prenom", "Nom"},
		Rows: [][]string{
			{"Claude", "dupont"}, // unisex, no inference possible
		},
	}
	opts := DefaultOptions()
	opts.CivilityFallback = "M."
	res := Run(table, mapping, opts)

	assert.Equal(t, "M.", res.Table[2][schema.IdxCivility])
	assert.Contains(t, strings.Join(res.Warnings, "\n"), "Civilité par défaut")
}

func TestRunCivilityContradictionKeepsSourceValue(t *testing.T) {
	mapping := mapper.Mapping{
		fieldName(schema.IdxCivility):  "Civilite",
		fieldName(schema.IdxFirstName): "Prenom",
		fieldName(schema.IdxBirthName): "Nom",
	}
	table := model.Table{
		Columns: []string{"Civilite", "Prenom", "Nom"},
		Rows: [][]string{
			// "Mme." is no recognized salutation spelling, but it still
			// contradicts the male guess from "pierre", so the guess is
			// dropped and the source value survives for operator review.
			{"Mme.", "pierre", "dupont"},
		},
	}
	res := Run(table, mapping, DefaultOptions())

	assert.Equal(t, "Mme.", res.Table[2][schema.IdxCivility])
	assert.NotContains(t, strings.Join(res.Warnings, "\n"), "remplacée")
}

func TestRunWarningsCarryRowNumbers(t *testing.T) {
	table := model.Table{
		Columns: []string{"Prenom", "Nom", "Naissance"},
		Rows: [][]string{
			{"jean", "dupont", "pas une date"},
			{"marie", "durand", "aussi fausse"},
		},
	}
	res := Run(table, mapper.AutoMap(table.Columns), DefaultOptions())

	joined := strings.Join(res.Warnings, "\n")
	assert.Contains(t, joined, "Ligne 2: Date invalide")
	assert.Contains(t, joined, "Ligne 3: Date invalide")
}
