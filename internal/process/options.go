package process

import "github.com/sells-group/import-formatter/internal/infer"

// Options configures one processing run. The zero value disables every
// correction; DefaultOptions matches what operators want nearly always.
type Options struct {
	// CorrectDates reformats date fields to jj/mm/aaaa.
	CorrectDates bool
	// UppercaseSurnames uppercases the two surname fields.
	UppercaseSurnames bool
	// AutoInferCivility fills an empty or unusable civility from the first
	// name when the guesser is confident enough to answer.
	AutoInferCivility bool
	// AutoInferUserType applies keyword inference to free-text type labels.
	AutoInferUserType bool
	// Strict turns suspect dates, emails, countries, phones and SIRETs
	// into row-level errors instead of warnings.
	Strict bool
	// CivilityFallback ("M." or "Mme") fills civility when normalization
	// and inference both came up empty. Empty disables the fallback.
	CivilityFallback string
	// DefaultUserType ("1" or "5") is applied to rows whose user type is
	// still unresolved after normalization and inference.
	DefaultUserType string
	// RequireUserTypeChoice raises the sentinel error for unresolved user
	// types instead of silently leaving them. Only meaningful while
	// DefaultUserType is unset.
	RequireUserTypeChoice bool
	// UserTypeValues maps raw type labels to codes, as configured by the
	// operator for this file. Checked before keyword inference.
	UserTypeValues map[string]string
	// Guesser overrides the gender source for civility inference.
	// Nil means infer.DefaultGuesser.
	Guesser infer.GenderGuesser
}

// DefaultOptions returns the standard correction set.
func DefaultOptions() Options {
	return Options{
		CorrectDates:      true,
		UppercaseSurnames: true,
		AutoInferCivility: true,
		AutoInferUserType: true,
	}
}
