// Package process turns a source table plus a column mapping into the
// import template, one row at a time: gather the mapped raw values,
// normalize each field by kind, complete the user type under the
// configured policy, then enforce the required fields. Failures are scoped
// to their row; the run always continues.
package process

import (
	"fmt"
	"strings"

	"github.com/sells-group/import-formatter/internal/infer"
	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/normalize"
	"github.com/sells-group/import-formatter/internal/schema"
)

// markerValue fills the separator row between the header and the data.
const markerValue = "-"

// Run processes every row of the table under the mapping and options.
// The mapping, options and user-type value map are read-only for the whole
// run; rows are independent of each other.
func Run(table model.Table, mapping mapper.Mapping, opts Options) *Result {
	if opts.Guesser == nil {
		opts.Guesser = infer.DefaultGuesser()
	}

	res := &Result{
		Table: [][]string{schema.Names(), markerRow()},
	}

	colIdx := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		if _, ok := colIdx[c]; !ok {
			colIdx[c] = i
		}
	}

	for i, cells := range table.Rows {
		res.Stats.TotalRows++

		p := rowProcessor{
			// Row numbers in diagnostics are 1-based and account for the
			// source header row, matching what the operator sees in Excel.
			num:     i + 2,
			opts:    &opts,
			mapping: mapping,
			res:     res,
		}
		p.gather(cells, colIdx)
		p.normalizeFields()
		p.completeUserType()
		p.validate()
	}

	return res
}

func markerRow() []string {
	row := make([]string, len(schema.Fields))
	for i := range row {
		row[i] = markerValue
	}
	return row
}

// rowProcessor carries one row through its states. No state transitions
// backward: gather → normalize → type completion → validation → emit/skip.
type rowProcessor struct {
	num     int
	opts    *Options
	mapping mapper.Mapping
	res     *Result

	raw     []string
	out     []string
	hasData bool
	// errored marks the row invalid (strict failure, sentinel, or missing
	// required field); the row is still emitted when it has data.
	errored bool
	// aborted stops the field loop after a strict failure; fields already
	// written stay as they are.
	aborted bool
}

// gather fetches the raw cell for every template field from its mapped
// source column. Unmapped fields and absent columns read as empty.
func (p *rowProcessor) gather(cells []string, colIdx map[string]int) {
	p.raw = make([]string, len(schema.Fields))
	p.out = make([]string, len(schema.Fields))

	for fi, f := range schema.Fields {
		src, ok := p.mapping[f.Name]
		if !ok {
			continue
		}
		ci, ok := colIdx[src]
		if !ok || ci >= len(cells) {
			continue
		}
		p.raw[fi] = cells[ci]
		if strings.TrimSpace(cells[ci]) != "" {
			p.hasData = true
		}
	}
}

// normalizeFields applies the kind-specific normalizer to every field in
// template order, accumulating the corrected-field count.
func (p *rowProcessor) normalizeFields() {
	firstNameRaw := strings.TrimSpace(p.raw[schema.IdxFirstName])

	for fi, f := range schema.Fields {
		s := strings.TrimSpace(p.raw[fi])
		v := p.normalizeField(fi, f, s, firstNameRaw)
		if p.aborted {
			return
		}
		p.out[fi] = v
		if v != s && s != "" {
			p.res.Stats.CorrectedFields++
		}
	}
}

func (p *rowProcessor) normalizeField(fi int, f schema.Field, s, firstNameRaw string) string {
	switch f.Kind {
	case schema.KindCivility:
		return p.civility(s, firstNameRaw)
	case schema.KindFirstName:
		return normalize.FirstName(s)
	case schema.KindSurname:
		return normalize.Surname(s, p.opts.UppercaseSurnames)
	case schema.KindUserType:
		return p.userType(s)
	case schema.KindDate:
		return p.outcome(normalize.Date(s, p.opts.CorrectDates, p.opts.Strict))
	case schema.KindEmail:
		return p.outcome(normalize.Email(s, p.opts.Strict))
	case schema.KindBool:
		if s == "" && !p.hasData {
			return ""
		}
		return p.outcome(normalize.Bool(s))
	case schema.KindCountry:
		return p.outcome(normalize.Country(s, p.opts.Strict))
	case schema.KindPhone:
		return p.outcome(normalize.Phone(s, p.opts.Strict))
	case schema.KindSIRET:
		return p.outcome(normalize.SIRET(s, p.opts.Strict))
	default:
		return s
	}
}

// outcome unwraps a normalizer result: warnings are logged with the row
// number, a failure marks the row errored and aborts its remaining fields.
func (p *rowProcessor) outcome(o normalize.Outcome) string {
	for _, w := range o.Warnings {
		p.warnf("%s", w)
	}
	if o.Failure != "" {
		p.res.Errors = append(p.res.Errors, fmt.Sprintf("Ligne %d: %s", p.num, o.Failure))
		p.errored = true
		p.aborted = true
	}
	return o.Value
}

// civility normalizes the salutation and falls back to first-name
// inference, then the configured default.
func (p *rowProcessor) civility(s, firstNameRaw string) string {
	v := normalize.Civility(s)
	if v == "M." || v == "Mme" {
		return v
	}

	if p.opts.AutoInferCivility && firstNameRaw != "" {
		deduced, conf := infer.CivilityFromFirstName(firstNameRaw, s, p.opts.Guesser)
		if deduced != "" {
			if s == "" {
				p.warnf("Civilité déduite du prénom '%s' → '%s' (confiance: %s)", firstNameRaw, deduced, conf)
			} else {
				p.warnf("Civilité '%s' remplacée par '%s' (déduite du prénom, confiance: %s)", s, deduced, conf)
			}
			return deduced
		}
	}

	if v == "" && p.opts.CivilityFallback != "" {
		p.warnf("Civilité par défaut '%s' appliquée", p.opts.CivilityFallback)
		return p.opts.CivilityFallback
	}
	return v
}

// userType resolves the type code: already-correct values pass, then the
// operator value map, then keyword inference. When the column was never
// mapped at all, non-empty company data weakly suggests a graduate.
func (p *rowProcessor) userType(s string) string {
	if s == infer.UserTypeGraduate || s == infer.UserTypeStudent {
		return s
	}

	if mapped, ok := p.opts.UserTypeValues[s]; ok && s != "" {
		if mapped != s {
			p.warnf("Type d'utilisateur '%s' → '%s' (mapping)", s, mapped)
		}
		return mapped
	}

	if !p.opts.AutoInferUserType {
		return s
	}

	if sug := infer.SuggestUserType(s); sug != "" {
		p.warnf("Type d'utilisateur '%s' → '%s' (déduit)", s, sug)
		return sug
	}

	if _, mapped := p.mapping[schema.Fields[schema.IdxUserType].Name]; !mapped {
		hasCompany := strings.TrimSpace(p.raw[schema.IdxCompanyName]) != "" ||
			strings.TrimSpace(p.raw[schema.IdxSIRET]) != ""
		if hasCompany {
			return infer.UserTypeGraduate
		}
	}
	return s
}

// completeUserType applies the post-normalization policy for rows whose
// user type is still not an import code.
func (p *rowProcessor) completeUserType() {
	if !p.hasData {
		return
	}
	v := p.out[schema.IdxUserType]
	if v == infer.UserTypeGraduate || v == infer.UserTypeStudent {
		return
	}

	switch {
	case p.opts.RequireUserTypeChoice && p.opts.DefaultUserType == "":
		p.res.Errors = append(p.res.Errors, fmt.Sprintf(
			"Ligne %d: %s: type d'utilisateur non renseigné, choix opérateur requis",
			p.num, SentinelUserTypeMissing))
		p.res.NeedsUserTypeChoice = true
		p.errored = true
	case p.opts.DefaultUserType != "":
		p.out[schema.IdxUserType] = p.opts.DefaultUserType
		p.warnf("Type d'utilisateur '%s' → '%s' (valeur de repli)", v, p.opts.DefaultUserType)
	}
}

// validate enforces the required fields and emits the row. Rows without
// any data count toward the total but are never emitted.
func (p *rowProcessor) validate() {
	if !p.hasData {
		return
	}

	if p.out[schema.IdxFirstName] == "" || p.out[schema.IdxBirthName] == "" {
		p.res.Errors = append(p.res.Errors, fmt.Sprintf("Ligne %d: Prénom/Nom manquant", p.num))
		p.errored = true
	}
	if !p.errored {
		p.res.Stats.ValidRows++
	}

	row := make([]string, len(p.out))
	copy(row, p.out)
	p.res.Table = append(p.res.Table, row)
}

func (p *rowProcessor) warnf(format string, args ...any) {
	p.res.Warnings = append(p.res.Warnings,
		fmt.Sprintf("Ligne %d: ", p.num)+fmt.Sprintf(format, args...))
}
