package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/schema"
)

func fieldName(idx int) string { return schema.Fields[idx].Name }

func TestDetectUserTypeColumn(t *testing.T) {
	typeField := fieldName(schema.IdxUserType)

	tests := []struct {
		name    string
		table   model.Table
		mapping mapper.Mapping
		wantSrc string
	}{
		{
			name: "one hit in five reaches the threshold",
			table: model.Table{
				Columns: []string{"Prenom", "Statut"},
				Rows: [][]string{
					{"jean", "Diplômé 2020"},
					{"marie", "membre"},
					{"paul", "membre"},
					{"lucie", "membre"},
					{"hugo", "membre"},
				},
			},
			mapping: mapper.Mapping{fieldName(schema.IdxFirstName): "Prenom"},
			wantSrc: "Statut",
		},
		{
			name: "one hit in six stays below the threshold",
			table: model.Table{
				Columns: []string{"Prenom", "Statut"},
				Rows: [][]string{
					{"jean", "Diplômé 2020"},
					{"marie", "membre"},
					{"paul", "membre"},
					{"lucie", "membre"},
					{"hugo", "membre"},
					{"emma", "membre"},
				},
			},
			mapping: mapper.Mapping{fieldName(schema.IdxFirstName): "Prenom"},
			wantSrc: "",
		},
		{
			name: "mapped type column is never overridden",
			table: model.Table{
				Columns: []string{"Type", "Statut"},
				Rows: [][]string{
					{"1", "Étudiant"},
					{"5", "Étudiant"},
				},
			},
			mapping: mapper.Mapping{typeField: "Type"},
			wantSrc: "Type",
		},
		{
			name: "columns already used by the mapping are skipped",
			table: model.Table{
				Columns: []string{"Statut"},
				Rows: [][]string{
					{"Étudiante"},
					{"Étudiant"},
				},
			},
			mapping: mapper.Mapping{fieldName(schema.IdxCompanyName): "Statut"},
			wantSrc: "",
		},
		{
			name: "best-scoring candidate wins",
			table: model.Table{
				Columns: []string{"Notes", "Statut"},
				Rows: [][]string{
					{"ancien contact", "Étudiant"},
					{"relance", "Diplômé"},
					{"relance", "Étudiante"},
				},
			},
			mapping: mapper.Mapping{},
			wantSrc: "Statut",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detectUserTypeColumn(tt.table, tt.mapping)
			assert.Equal(t, tt.wantSrc, tt.mapping[typeField])
		})
	}
}
