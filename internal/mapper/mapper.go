// Package mapper guesses which source column feeds each template field.
// The result is a suggestion: operators may edit it before processing.
package mapper

import (
	"strings"

	"github.com/sells-group/import-formatter/internal/schema"
)

// Mapping associates a template field name with a source column name.
// At most one source column per field; the auto-mapper also never assigns
// the same source column to two fields.
type Mapping map[string]string

// Keyword match scores. An exact (case-insensitive) keyword hit
// short-circuits the column's keyword list; prefix/suffix and substring
// hits decay with keyword rank so earlier keywords win ties.
const (
	scoreExact  = 100
	scorePrefix = 60
	scoreSubstr = 30
)

// AutoMap maps source columns onto template fields in three passes:
// exact name matches, keyword scoring, then a generic-surname fallback.
// Pure function of the column list; identical input yields an identical
// mapping.
func AutoMap(columns []string) Mapping {
	mapping := make(Mapping)
	used := make(map[string]bool, len(columns))

	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}

	// Exact pass: template names present verbatim in the source.
	for _, f := range schema.Fields {
		if colSet[f.Name] {
			mapping[f.Name] = f.Name
			used[f.Name] = true
		}
	}

	// Keyword pass: best-scoring unused column per field, first column wins
	// ties (strict inequality below).
	for _, f := range schema.Fields {
		kws := schema.Keywords[f.Name]
		if len(kws) == 0 {
			continue
		}
		if _, ok := mapping[f.Name]; ok {
			continue
		}

		best, bestScore := "", 0
		for _, col := range columns {
			if used[col] {
				continue
			}
			if score := scoreColumn(strings.ToLower(col), kws); score > bestScore {
				best, bestScore = col, score
			}
		}
		if best != "" {
			mapping[f.Name] = best
			used[best] = true
		}
	}

	// Generic-surname fallback: a bare "nom"/"name" column pairs with an
	// already-mapped first name.
	surname := schema.Fields[schema.IdxBirthName].Name
	firstName := schema.Fields[schema.IdxFirstName].Name
	if _, ok := mapping[surname]; !ok {
		if _, ok := mapping[firstName]; ok {
			for _, col := range columns {
				if used[col] {
					continue
				}
				if low := strings.ToLower(col); low == "nom" || low == "name" {
					mapping[surname] = col
					used[col] = true
					break
				}
			}
		}
	}

	return mapping
}

// scoreColumn scores one lowercased source column against a keyword list.
func scoreColumn(low string, kws []string) int {
	score := 0
	for i, kw := range kws {
		if low == kw {
			return scoreExact
		}
		if strings.HasPrefix(low, kw) || strings.HasSuffix(low, kw) {
			if s := scorePrefix - i; s > score {
				score = s
			}
		}
		if strings.Contains(low, kw) {
			if s := scoreSubstr - i; s > score {
				score = s
			}
		}
	}
	return score
}
