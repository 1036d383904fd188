// Package infer holds the heuristics that fill in values the source file
// never states directly: civility from first names, user-type codes from
// free-text labels, ISO country codes from country names.
package infer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Confidence qualifies an inferred value. Tiers are advisory metadata for
// operator review; they never change the normalization result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = ""
)

// Gender is a guesser verdict.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderFemale
	GenderMale
)

// GenderGuesser resolves a normalized first name to a likely gender.
// Implementations range from curated lookup tables to statistical sources;
// the engine only depends on this interface.
type GenderGuesser interface {
	Guess(firstName string) (Gender, Confidence)
}

// Chain tries guessers in order and keeps the first non-unknown verdict.
type Chain []GenderGuesser

func (c Chain) Guess(firstName string) (Gender, Confidence) {
	for _, g := range c {
		if gender, conf := g.Guess(firstName); gender != GenderUnknown {
			return gender, conf
		}
	}
	return GenderUnknown, ConfidenceNone
}

// DefaultGuesser is the curated tables backed by the suffix heuristic.
func DefaultGuesser() GenderGuesser {
	return Chain{TableGuesser{}, SuffixGuesser{}}
}

// Curated first-name sets. Keys are normalized (lowercase, no diacritics).
var (
	femaleFirstNames = map[string]bool{
		"marie": true, "claire": true, "camille": true, "julie": true,
		"emma": true, "lea": true, "anna": true, "anne": true, "chloe": true,
		"sarah": true, "laura": true, "pauline": true, "juliette": true,
		"manon": true, "lisa": true, "ines": true, "lucie": true, "eva": true,
		"sophie": true, "charlotte": true, "alice": true, "margaux": true,
		"mathilde": true, "amelie": true, "elodie": true, "celine": true,
		"audrey": true, "caroline": true, "nathalie": true, "isabelle": true,
		"catherine": true, "valerie": true, "sandrine": true, "virginie": true,
	}
	maleFirstNames = map[string]bool{
		"pierre": true, "paul": true, "jean": true, "louis": true,
		"lucas": true, "nathan": true, "thomas": true, "hugo": true,
		"arthur": true, "leo": true, "maxime": true, "antoine": true,
		"julien": true, "mathieu": true, "alexandre": true, "baptiste": true,
		"nicolas": true, "yanis": true, "francois": true, "philippe": true,
		"olivier": true, "laurent": true, "christophe": true, "sebastien": true,
		"guillaume": true, "vincent": true, "romain": true, "benjamin": true,
		"david": true, "kevin": true, "florian": true, "quentin": true,
	}
	// Names carried by both genders; the table guesser refuses to guess.
	unisexFirstNames = map[string]bool{
		"claude": true, "dominique": true, "alix": true, "sacha": true,
		"charlie": true, "lou": true, "noa": true, "eden": true,
		"ange": true, "swann": true, "morgan": true,
	}
)

// TableGuesser answers from the curated sets with high confidence. Unisex
// names short-circuit to no verdict so a weaker guesser cannot override.
type TableGuesser struct{}

func (TableGuesser) Guess(firstName string) (Gender, Confidence) {
	switch {
	case unisexFirstNames[firstName]:
		return GenderUnknown, ConfidenceNone
	case femaleFirstNames[firstName]:
		return GenderFemale, ConfidenceHigh
	case maleFirstNames[firstName]:
		return GenderMale, ConfidenceHigh
	}
	return GenderUnknown, ConfidenceNone
}

// Typical French name endings. Checked female-first; longer endings earn
// medium confidence, single letters only low.
var (
	femaleEndings = []string{"ienne", "iane", "ette", "elle", "ine", "ie", "a", "e"}
	maleEndings   = []string{"el", "en", "o", "i", "y", "l", "n", "r", "s"}
)

// SuffixGuesser is the fallback when the curated tables miss: French first
// names skew female on vowel-heavy endings and male on consonant endings.
type SuffixGuesser struct{}

func (SuffixGuesser) Guess(firstName string) (Gender, Confidence) {
	if firstName == "" {
		return GenderUnknown, ConfidenceNone
	}
	for _, suffix := range femaleEndings {
		if strings.HasSuffix(firstName, suffix) {
			return GenderFemale, suffixConfidence(suffix)
		}
	}
	for _, suffix := range maleEndings {
		if strings.HasSuffix(firstName, suffix) {
			return GenderMale, suffixConfidence(suffix)
		}
	}
	return GenderUnknown, ConfidenceNone
}

func suffixConfidence(suffix string) Confidence {
	if len(suffix) >= 3 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeFirstName prepares a first name for lookup: keep the first token
// of compound names (space- or hyphen-separated), strip diacritics,
// lowercase.
func NormalizeFirstName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, " -"); i >= 0 {
		s = s[:i]
	}
	stripped, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return stripped
}

// Civility literals recognized as contradiction evidence in a sibling
// cell. Token match inside a longer value counts too ("Mme Dupont",
// "Mr X"), covering spellings the strict salutation normalizer passes
// through unresolved.
var (
	femaleHintTokens = map[string]bool{
		"mme": true, "mme.": true, "madame": true,
		"mlle": true, "mlle.": true, "mademoiselle": true,
		"f": true, "femme": true,
	}
	maleHintTokens = map[string]bool{
		"m": true, "m.": true, "mr": true, "mr.": true,
		"monsieur": true, "h": true, "homme": true,
	}
)

// hintGender reads a gender verdict out of a free-text civility cell.
func hintGender(hint string) Gender {
	low := strings.ToLower(hint)
	if strings.Contains(low, "mademoiselle") || strings.Contains(low, "madame") {
		return GenderFemale
	}
	if strings.Contains(low, "monsieur") {
		return GenderMale
	}
	for _, tok := range strings.Fields(low) {
		switch {
		case femaleHintTokens[tok]:
			return GenderFemale
		case maleHintTokens[tok]:
			return GenderMale
		}
	}
	return GenderUnknown
}

// CivilityFromFirstName deduces "M." or "Mme" from a first name. A
// civility literal elsewhere in the row that contradicts the guess
// suppresses it entirely; conflicting evidence is worse than no guess.
func CivilityFromFirstName(firstName, siblingHint string, guesser GenderGuesser) (string, Confidence) {
	name := NormalizeFirstName(firstName)
	if name == "" || unisexFirstNames[name] {
		return "", ConfidenceNone
	}
	if guesser == nil {
		guesser = DefaultGuesser()
	}

	gender, conf := guesser.Guess(name)
	if gender == GenderUnknown {
		return "", ConfidenceNone
	}

	switch hintGender(siblingHint) {
	case GenderFemale:
		if gender == GenderMale {
			return "", ConfidenceNone
		}
	case GenderMale:
		if gender == GenderFemale {
			return "", ConfidenceNone
		}
	}

	if gender == GenderFemale {
		return "Mme", conf
	}
	return "M.", conf
}
