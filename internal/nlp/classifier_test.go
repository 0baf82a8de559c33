package nlp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaranikas/komanda/internal/nlp"
)

func newClassifier() *nlp.Classifier {
	return nlp.New(nlp.DefaultConfig())
}

// houseMenu is the smallest menu that exercises every matching path: an
// exact-name drink plus a dish family split between kilo and portion pricing.
func houseMenu() nlp.MenuSnapshot {
	return nlp.MenuSnapshot{
		"Ποτά": {
			{ID: "beer01", Name: "Μύθος", Price: 4.00, Category: "drinks"},
		},
		"Της ώρας": {
			{ID: "lamb_kg", Name: "κ Αρνίσια παϊδάκια", Price: 40.00, Category: "grill"},
			{ID: "lamb_portion", Name: "Αρνίσια παϊδάκια", Price: 15.00, Category: "grill"},
		},
	}
}

func classifyOne(t *testing.T, c *nlp.Classifier, menu nlp.MenuSnapshot, text string, corrections []nlp.Correction) nlp.ClassifiedLine {
	t.Helper()
	lines := c.ClassifyOrder(text, menu, corrections)
	require.Len(t, lines, 1)
	return lines[0]
}

func TestClassifyExactNameScoresPerfect(t *testing.T) {
	line := classifyOne(t, newClassifier(), houseMenu(), "2 μυθος", nil)

	assert.True(t, line.Resolved())
	assert.Equal(t, "beer01", line.MenuID)
	assert.Equal(t, "Μύθος", line.MenuName)
	assert.Equal(t, "drinks", line.Category)
	assert.Equal(t, float64(2), line.Quantity)
	assert.Empty(t, line.Unit)
	assert.InDelta(t, 2, line.Multiplier, 1e-9)
	assert.Equal(t, int64(400), line.UnitPriceCents)
	assert.Equal(t, int64(800), line.LineTotalCents)
	assert.InDelta(t, 1, line.Score, 1e-9)
}

func TestClassifyWeightUnitPicksKiloPricing(t *testing.T) {
	line := classifyOne(t, newClassifier(), houseMenu(), "2kg παιδακια", nil)

	assert.Equal(t, "lamb_kg", line.MenuID)
	assert.Equal(t, "grill", line.Category)
	assert.Equal(t, "kg", line.Unit)
	assert.InDelta(t, 2, line.Multiplier, 1e-9)
	assert.Equal(t, int64(8000), line.LineTotalCents)

	line = classifyOne(t, newClassifier(), houseMenu(), "1κ παιδακια", nil)
	assert.Equal(t, "lamb_kg", line.MenuID)
	assert.Equal(t, int64(4000), line.LineTotalCents)
}

func TestClassifyNoUnitPicksPortionPricing(t *testing.T) {
	line := classifyOne(t, newClassifier(), houseMenu(), "2 παιδακια", nil)

	assert.Equal(t, "lamb_portion", line.MenuID)
	assert.Equal(t, "grill", line.Category)
	assert.Empty(t, line.Unit)
	assert.InDelta(t, 2, line.Multiplier, 1e-9)
	assert.Equal(t, int64(3000), line.LineTotalCents)
}

func TestClassifyUnitSteersExactFamilyName(t *testing.T) {
	// The portion entry's verbatim name with a weight unit in front must
	// still land on the kilo-priced sibling.
	line := classifyOne(t, newClassifier(), houseMenu(), "1κ αρνισια παιδακια", nil)
	assert.Equal(t, "lamb_kg", line.MenuID)
	assert.Equal(t, int64(4000), line.LineTotalCents)

	line = classifyOne(t, newClassifier(), houseMenu(), "2 αρνισια παιδακια", nil)
	assert.Equal(t, "lamb_portion", line.MenuID)
	assert.Equal(t, int64(3000), line.LineTotalCents)
}

func TestClassifyNoteStaysOutOfMatching(t *testing.T) {
	line := classifyOne(t, newClassifier(), houseMenu(), "2 μυθος (χωρίς πάγο)", nil)

	assert.Equal(t, "2 μυθος (χωρίς πάγο)", line.Text)
	assert.Equal(t, "χωρίς πάγο", line.Note)
	assert.Equal(t, "beer01", line.MenuID)
	assert.Equal(t, int64(800), line.LineTotalCents)
	assert.InDelta(t, 1, line.Score, 1e-9)
}

func TestClassifyUnknownLineFallsBackToStems(t *testing.T) {
	line := classifyOne(t, newClassifier(), houseMenu(), "1 αγνωστο πιατο", nil)

	assert.False(t, line.Resolved())
	assert.Empty(t, line.MenuID)
	assert.Equal(t, "kitchen", line.Category)
	assert.Zero(t, line.UnitPriceCents)
	assert.Zero(t, line.LineTotalCents)
	assert.InDelta(t, 1, line.Multiplier, 1e-9)

	line = classifyOne(t, newClassifier(), houseMenu(), "1 ψητο λαυρακι", nil)
	assert.False(t, line.Resolved())
	assert.Equal(t, "grill", line.Category)
}

func TestClassifyOverrideWinsWhileTargetOnMenu(t *testing.T) {
	now := time.Now()
	corrections := []nlp.Correction{
		// Older fix for the same normalized text, must lose to the newer one.
		{RawText: "2 Μύθος (παγωμένο)", PredictedMenuID: "beer01", CorrectedMenuID: "beer01", CreatedAt: now.Add(-time.Hour)},
		{RawText: "2 μυθος", PredictedMenuID: "beer01", CorrectedMenuID: "lamb_portion", CreatedAt: now},
	}

	line := classifyOne(t, newClassifier(), houseMenu(), "2 μυθος", corrections)

	assert.Equal(t, "lamb_portion", line.MenuID)
	assert.Equal(t, "grill", line.Category)
	assert.InDelta(t, 1, line.Score, 1e-9)
	assert.Equal(t, int64(3000), line.LineTotalCents)
}

func TestClassifyStaleOverrideFallsThrough(t *testing.T) {
	corrections := []nlp.Correction{
		{RawText: "2 μυθος", CorrectedMenuID: "retired99", CreatedAt: time.Now()},
	}

	line := classifyOne(t, newClassifier(), houseMenu(), "2 μυθος", corrections)

	assert.Equal(t, "beer01", line.MenuID)
	assert.Equal(t, int64(800), line.LineTotalCents)
}

func TestBuildOverridesNewestWinsAndSkipsUnusable(t *testing.T) {
	now := time.Now()
	rules := nlp.BuildOverrides([]nlp.Correction{
		{RawText: "2 μυθος", CorrectedMenuID: "lamb_portion", CreatedAt: now},
		{RawText: "2 ΜΥΘΟΣ", CorrectedMenuID: "beer01", CreatedAt: now.Add(-time.Hour)},
		{RawText: "χωρις στοχο", CorrectedMenuID: "", CreatedAt: now},
		{RawText: "(μονο σημειωση)", CorrectedMenuID: "beer01", CreatedAt: now},
	})

	assert.Equal(t, 1, rules.Len())

	id, ok := rules.Lookup(nlp.Normalize("2 Μύθος"))
	require.True(t, ok)
	assert.Equal(t, "lamb_portion", id)

	_, ok = rules.Lookup(nlp.Normalize("χωρις στοχο"))
	assert.False(t, ok)
}

func TestClassifyPreservesLineOrderAndDropsBlanks(t *testing.T) {
	text := "2 μυθος\n\n   \n1κ παιδακια\n1 αγνωστο πιατο"

	lines := newClassifier().ClassifyOrder(text, houseMenu(), nil)

	require.Len(t, lines, 3)
	assert.Equal(t, "2 μυθος", lines[0].Text)
	assert.Equal(t, "beer01", lines[0].MenuID)
	assert.Equal(t, "1κ παιδακια", lines[1].Text)
	assert.Equal(t, "lamb_kg", lines[1].MenuID)
	assert.Equal(t, "1 αγνωστο πιατο", lines[2].Text)
	assert.False(t, lines[2].Resolved())
}

func TestClassifyEmptyMenuStillRoutesByStems(t *testing.T) {
	lines := newClassifier().ClassifyOrder("2 μπυρες\n1 ψητο λαυρακι", nlp.MenuSnapshot{}, nil)

	require.Len(t, lines, 2)
	assert.False(t, lines[0].Resolved())
	assert.Equal(t, "drinks", lines[0].Category)
	assert.InDelta(t, 2, lines[0].Multiplier, 1e-9)
	assert.Zero(t, lines[0].LineTotalCents)
	assert.False(t, lines[1].Resolved())
	assert.Equal(t, "grill", lines[1].Category)

	lines = newClassifier().ClassifyOrder("2 μυθος", nil, nil)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Resolved())
	assert.Equal(t, "kitchen", lines[0].Category)
}

func TestClassifyIsDeterministic(t *testing.T) {
	// Zero-value config backfills the defaults.
	c := nlp.New(nlp.Config{})
	text := "2 μυθος\n2kg παιδακια\n1 αγνωστο πιατο\n500ml ρακι"

	first := c.ClassifyOrder(text, houseMenu(), nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, c.ClassifyOrder(text, houseMenu(), nil))
	}
}

func TestClassifyRaisingThresholdNeverAddsMatches(t *testing.T) {
	strictCfg := nlp.DefaultConfig()
	strictCfg.MatchThreshold = 0.9
	strictCfg.FamilyMatchThreshold = 0.9

	loose := newClassifier()
	strict := nlp.New(strictCfg)

	inputs := []string{"2 μυθος", "1 μιθος", "2 παιδακια", "1 αγνωστο πιατο"}
	for _, in := range inputs {
		looseLine := classifyOne(t, loose, houseMenu(), in, nil)
		strictLine := classifyOne(t, strict, houseMenu(), in, nil)
		if strictLine.Resolved() {
			require.True(t, looseLine.Resolved(), "strict matched %q but loose did not", in)
			assert.Equal(t, looseLine.MenuID, strictLine.MenuID, "input %q", in)
		}
	}

	// The one-letter typo clears only the default threshold.
	assert.True(t, classifyOne(t, loose, houseMenu(), "1 μιθος", nil).Resolved())
	assert.False(t, classifyOne(t, strict, houseMenu(), "1 μιθος", nil).Resolved())
}

func TestClassifyTieBreaksToLongerName(t *testing.T) {
	menu := nlp.MenuSnapshot{
		"Συνοδευτικά": {
			{ID: "p1", Name: "Πατάτες", Price: 3.50},
			{ID: "p2", Name: "Πατάτες φούρνου", Price: 4.00},
		},
	}

	line := classifyOne(t, newClassifier(), menu, "1 πατατε", nil)
	assert.Equal(t, "p2", line.MenuID)
}

func TestClassifyMilliliterScalesAgainstReferencePour(t *testing.T) {
	menu := nlp.MenuSnapshot{
		"Ποτά": {
			{ID: "raki", Name: "Ρακί (250ml)", Price: 3.00, Category: "drinks"},
		},
	}

	line := classifyOne(t, newClassifier(), menu, "500ml ρακι", nil)
	assert.Equal(t, "raki", line.MenuID)
	assert.Equal(t, "ml", line.Unit)
	assert.Equal(t, float64(500), line.Quantity)
	assert.InDelta(t, 2, line.Multiplier, 1e-9)
	assert.Equal(t, int64(600), line.LineTotalCents)

	// No unit still matches the measure-priced pour, one reference portion.
	line = classifyOne(t, newClassifier(), menu, "ρακι", nil)
	assert.Equal(t, "raki", line.MenuID)
	assert.InDelta(t, 1, line.Multiplier, 1e-9)
	assert.Equal(t, int64(300), line.LineTotalCents)
}
