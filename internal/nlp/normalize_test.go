package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkaranikas/komanda/internal/nlp"
)

func TestNormalizeFoldsAccentsCaseAndPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Μύθος", "μυθοσ"},
		{"ΜΥΘΟΣ", "μυθοσ"},
		{"Αρνίσια παϊδάκια", "αρνισια παιδακια"},
		{"  χωριάτικη,   σαλάτα!! ", "χωριατικη σαλατα"},
		{"Crème brûlée", "creme brulee"},
		{"2x Μύθος", "2x μυθοσ"},
		{"τί;", "τι"},
		{"", ""},
		{"   ", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nlp.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Μύθος", "ΜΥΘΟΣ", "κ Αρνίσια παϊδάκια", "2kg παϊδάκια",
		"Crème brûlée!!", "   ", "", "500ml ρακί (διπλό)", "τσιπούρα\tσχάρας\nμε λαδολέμονο",
	}
	for _, in := range inputs {
		once := nlp.Normalize(in)
		assert.Equal(t, once, nlp.Normalize(once), "input %q", in)
	}
}

func TestNormalizeAgreesAcrossSigmaForms(t *testing.T) {
	// All-caps tickets must land on the same key as mixed case, even though
	// plain lowercasing turns a trailing Σ into σ instead of ς.
	assert.Equal(t, nlp.Normalize("Μύθος"), nlp.Normalize("ΜΥΘΟΣ"))
	assert.Equal(t, nlp.Normalize("πατάτες"), nlp.Normalize("ΠΑΤΑΤΕΣ"))
}

func TestStripAccentsKeepsCaseAndSpacing(t *testing.T) {
	assert.Equal(t, "Μυθος", nlp.StripAccents("Μύθος"))
	assert.Equal(t, "παιδακια", nlp.StripAccents("παϊδάκια"))
	assert.Equal(t, "creme  brulee", nlp.StripAccents("crème  brûlée"))
}

func TestExtractNoteSplitsParenthetical(t *testing.T) {
	base, note := nlp.ExtractNote("Μύθος (χωρίς πάγο)")
	assert.Equal(t, "Μύθος", base)
	assert.Equal(t, "χωρίς πάγο", note)
}

func TestExtractNoteJoinsMultipleSpans(t *testing.T) {
	base, note := nlp.ExtractNote("ρακί (κρύο) (διπλό)")
	assert.Equal(t, "ρακί", base)
	assert.Equal(t, "κρύο, διπλό", note)
}

func TestExtractNoteEdgeCases(t *testing.T) {
	base, note := nlp.ExtractNote("  χωριάτικη  ")
	assert.Equal(t, "χωριάτικη", base)
	assert.Empty(t, note)

	base, note = nlp.ExtractNote("ρακί (  )")
	assert.Equal(t, "ρακί", base)
	assert.Empty(t, note)

	// An unclosed parenthesis is not a note, the text stays whole.
	base, note = nlp.ExtractNote("μύθος (παγωμένο")
	assert.Equal(t, "μύθος (παγωμένο", base)
	assert.Empty(t, note)
}
