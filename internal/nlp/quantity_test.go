package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkaranikas/komanda/internal/nlp"
)

func TestParseQuantityGrammar(t *testing.T) {
	cases := []struct {
		in         string
		quantity   float64
		unit       nlp.Unit
		token      string
		multiplier float64
		item       string
	}{
		{"2 μυθος", 2, nlp.UnitNone, "", 2, "μυθος"},
		{"  3 μυθος  ", 3, nlp.UnitNone, "", 3, "μυθος"},
		{"2kg παιδακια", 2, nlp.UnitWeight, "kg", 2, "παιδακια"},
		{"1κ αρνισια παιδακια", 1, nlp.UnitWeight, "κ", 1, "αρνισια παιδακια"},
		{"2κιλα πατατες", 2, nlp.UnitWeight, "κιλα", 2, "πατατες"},
		{"1.5κιλο κοντοσουβλι", 1.5, nlp.UnitWeight, "κιλο", 1.5, "κοντοσουβλι"},
		{"0.5κ κιμας", 0.5, nlp.UnitWeight, "κ", 0.5, "κιμας"},
		{"1λτ κρασι χυμα", 1, nlp.UnitLiter, "λτ", 1, "κρασι χυμα"},
		{"2lt πορτοκαλαδα", 2, nlp.UnitLiter, "lt", 2, "πορτοκαλαδα"},
		{"1l coca cola", 1, nlp.UnitLiter, "l", 1, "coca cola"},
		{"3λ νερο", 3, nlp.UnitLiter, "λ", 3, "νερο"},
		{"500ml ρακι", 500, nlp.UnitMilliliter, "ml", 2, "ρακι"},
		{"250ml κρασι", 250, nlp.UnitMilliliter, "ml", 1, "κρασι"},
		{"125ml ουζο", 125, nlp.UnitMilliliter, "ml", 0.5, "ουζο"},
	}
	for _, tc := range cases {
		got := nlp.ParseQuantity(tc.in)
		assert.Equal(t, tc.quantity, got.Quantity, "quantity of %q", tc.in)
		assert.Equal(t, tc.unit, got.Unit, "unit of %q", tc.in)
		assert.Equal(t, tc.token, got.UnitToken, "unit token of %q", tc.in)
		assert.InDelta(t, tc.multiplier, got.Multiplier, 1e-9, "multiplier of %q", tc.in)
		assert.Equal(t, tc.item, got.Item, "item of %q", tc.in)
	}
}

func TestParseQuantityFoldsUnitCase(t *testing.T) {
	got := nlp.ParseQuantity("2KG μπριζολες")
	assert.Equal(t, nlp.UnitWeight, got.Unit)
	assert.Equal(t, "KG", got.UnitToken)

	got = nlp.ParseQuantity("2ΚΙΛΑ ΠΑΤΑΤΕΣ")
	assert.Equal(t, nlp.UnitWeight, got.Unit)
	assert.Equal(t, "ΠΑΤΑΤΕΣ", got.Item)
}

func TestParseQuantityDetachedTokenIsItemText(t *testing.T) {
	// Only a unit glued to the number counts; "λ" on its own belongs to the
	// item description.
	got := nlp.ParseQuantity("2 λ κρασι")
	assert.Equal(t, float64(2), got.Quantity)
	assert.Equal(t, nlp.UnitNone, got.Unit)
	assert.Equal(t, "λ κρασι", got.Item)
}

func TestParseQuantityDefaultsToSinglePortion(t *testing.T) {
	for _, in := range []string{"χωριατικη", "2", "1,5κ κιμας", ""} {
		got := nlp.ParseQuantity(in)
		assert.Equal(t, float64(1), got.Quantity, "quantity of %q", in)
		assert.Equal(t, nlp.UnitNone, got.Unit, "unit of %q", in)
		assert.Equal(t, float64(1), got.Multiplier, "multiplier of %q", in)
	}

	got := nlp.ParseQuantity("χωριατικη")
	assert.Equal(t, "χωριατικη", got.Item)
	got = nlp.ParseQuantity("  2  ")
	assert.Equal(t, "2", got.Item)
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "", nlp.UnitNone.String())
	assert.Equal(t, "kg", nlp.UnitWeight.String())
	assert.Equal(t, "lt", nlp.UnitLiter.String())
	assert.Equal(t, "ml", nlp.UnitMilliliter.String())
}
