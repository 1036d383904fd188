package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFirstName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jean", "jean"},
		{"Chloé", "chloe"},
		{"JEAN-PIERRE", "jean"},
		{"Marie Claire", "marie"},
		{"  Amélie  ", "amelie"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFirstName(tt.in))
		})
	}
}

func TestTableGuesser(t *testing.T) {
	g := TableGuesser{}

	gender, conf := g.Guess("marie")
	assert.Equal(t, GenderFemale, gender)
	assert.Equal(t, ConfidenceHigh, conf)

	gender, conf = g.Guess("pierre")
	assert.Equal(t, GenderMale, gender)
	assert.Equal(t, ConfidenceHigh, conf)

	gender, _ = g.Guess("zzyzx")
	assert.Equal(t, GenderUnknown, gender)

	// Unisex names never get a table verdict.
	gender, _ = g.Guess("dominique")
	assert.Equal(t, GenderUnknown, gender)
}

func TestSuffixGuesser(t *testing.T) {
	g := SuffixGuesser{}

	gender, conf := g.Guess("fabienne")
	assert.Equal(t, GenderFemale, gender)
	assert.Equal(t, ConfidenceMedium, conf)

	gender, conf = g.Guess("marco")
	assert.Equal(t, GenderMale, gender)
	assert.Equal(t, ConfidenceLow, conf)

	gender, _ = g.Guess("")
	assert.Equal(t, GenderUnknown, gender)
}

func TestCivilityFromFirstName(t *testing.T) {
	civ, conf := CivilityFromFirstName("Marie", "", nil)
	assert.Equal(t, "Mme", civ)
	assert.Equal(t, ConfidenceHigh, conf)

	civ, conf = CivilityFromFirstName("Jean-Pierre", "", nil)
	assert.Equal(t, "M.", civ)
	assert.Equal(t, ConfidenceHigh, conf)

	// Unisex: no guess at all, not even from the suffix fallback.
	civ, conf = CivilityFromFirstName("Claude", "", nil)
	assert.Equal(t, "", civ)
	assert.Equal(t, ConfidenceNone, conf)

	// Unknown name falls through to the suffix heuristic.
	civ, _ = CivilityFromFirstName("Fabienne", "", nil)
	assert.Equal(t, "Mme", civ)
}

func TestCivilityContradictionSuppressed(t *testing.T) {
	// A female guess contradicted by an explicit "monsieur" is dropped.
	civ, conf := CivilityFromFirstName("Marie", "cher monsieur", nil)
	assert.Equal(t, "", civ)
	assert.Equal(t, ConfidenceNone, conf)

	civ, _ = CivilityFromFirstName("Pierre", "madame", nil)
	assert.Equal(t, "", civ)

	// Abbreviated literals inside a longer cell count as evidence too.
	civ, _ = CivilityFromFirstName("Pierre", "Mme.", nil)
	assert.Equal(t, "", civ)

	civ, _ = CivilityFromFirstName("Marie", "Mr X", nil)
	assert.Equal(t, "", civ)

	// Agreement keeps the guess.
	civ, _ = CivilityFromFirstName("Marie", "madame", nil)
	assert.Equal(t, "Mme", civ)

	civ, _ = CivilityFromFirstName("Pierre", "Mr Dupont", nil)
	assert.Equal(t, "M.", civ)
}

func TestChainStopsAtFirstVerdict(t *testing.T) {
	g := Chain{TableGuesser{}, SuffixGuesser{}}

	// "kevin" is curated male; the suffix rule would also answer but the
	// table wins with high confidence.
	gender, conf := g.Guess("kevin")
	assert.Equal(t, GenderMale, gender)
	assert.Equal(t, ConfidenceHigh, conf)
}
