package factories_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaranikas/komanda/internal/factories"
	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

func TestOrderTextLinesAlwaysClassify(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := &models.Config{TypoRate: 0.2, OffMenuRate: 0.05}
	menu := factories.NewMenuFactory(rng).CreateMenu()
	waiters := factories.NewWaiterFactory(rng)
	tickets := factories.NewTicketFactory(cfg, menu, rng)
	engine := nlp.New(nlp.DefaultConfig())

	resolved, total := 0, 0
	for i := 0; i < 200; i++ {
		waiter := waiters.CreateWaiter()
		text := tickets.OrderText(waiter)
		require.NotEmpty(t, text)

		lines := engine.ClassifyOrder(text, menu, nil)
		require.Len(t, lines, len(strings.Split(text, "\n")))
		for _, line := range lines {
			assert.NotEmpty(t, line.Category, "line %q got no category", line.Text)
			assert.Greater(t, line.Multiplier, 0.0)
			total++
			if line.Resolved() {
				resolved++
			}
		}
	}

	// Noise should not drown the matcher: the large majority of generated
	// lines still resolve to a menu entry.
	assert.Greater(t, float64(resolved)/float64(total), 0.75,
		"resolved %d of %d generated lines", resolved, total)
}

func TestAmendTextStaysClassifiable(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cfg := &models.Config{TypoRate: 0.1, OffMenuRate: 0.0, AmendRate: 1}
	menu := factories.NewMenuFactory(rng).CreateMenu()
	waiters := factories.NewWaiterFactory(rng)
	tickets := factories.NewTicketFactory(cfg, menu, rng)
	engine := nlp.New(nlp.DefaultConfig())

	for i := 0; i < 100; i++ {
		waiter := waiters.CreateWaiter()
		text := tickets.OrderText(waiter)
		amended := tickets.AmendText(text, waiter)
		require.NotEmpty(t, amended)

		for _, line := range engine.ClassifyOrder(amended, menu, nil) {
			assert.NotEmpty(t, line.Category)
		}
	}
}

func TestCreateMenuCoversAllStations(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	menu := factories.NewMenuFactory(rng).CreateMenu()
	engine := nlp.New(nlp.DefaultConfig())
	ix := engine.BuildIndex(menu)

	seen := map[string]bool{}
	for _, entry := range ix.Entries() {
		seen[entry.Category] = true
		assert.Greater(t, entry.PriceCents, int64(0), "item %s has no price", entry.Name)
	}
	assert.True(t, seen[nlp.CategoryKitchen])
	assert.True(t, seen[nlp.CategoryGrill])
	assert.True(t, seen[nlp.CategoryDrinks])
}

func TestCreateWaiterBiasWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	wf := factories.NewWaiterFactory(rng)
	for i := 0; i < 50; i++ {
		w := wf.CreateWaiter()
		require.NotEmpty(t, w.ID)
		require.NotEmpty(t, w.Name)
		assert.GreaterOrEqual(t, w.TypoBias, 0.5)
		assert.LessOrEqual(t, w.TypoBias, 1.5)
	}
}
