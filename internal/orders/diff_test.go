package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/dkaranikas/komanda/internal/orders"
)

func pendingLine(id, text, category string, multiplier float64, totalCents int64) models.TicketLine {
	return models.TicketLine{
		ID:       id,
		TicketID: "t1",
		ClassifiedLine: nlp.ClassifiedLine{
			Text:           text,
			Category:       category,
			Multiplier:     multiplier,
			LineTotalCents: totalCents,
		},
		Status: models.LineStatusPending,
	}
}

func incomingLine(text, category string, multiplier float64, totalCents int64) nlp.ClassifiedLine {
	return nlp.ClassifiedLine{
		Text:           text,
		Category:       category,
		Multiplier:     multiplier,
		LineTotalCents: totalCents,
	}
}

func TestDiffKeepsIdenticalLines(t *testing.T) {
	existing := []models.TicketLine{
		pendingLine("a", "χωριατικη", "kitchen", 1, 650),
	}
	res := orders.Diff(existing, []nlp.ClassifiedLine{
		incomingLine("χωριατικη", "kitchen", 1, 650),
	})

	require.Len(t, res.Kept, 1)
	assert.Equal(t, "a", res.Kept[0].ID)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Cancelled)
}

func TestDiffMatchIgnoresAccentsAndCase(t *testing.T) {
	existing := []models.TicketLine{
		pendingLine("a", "Χωριάτικη", "kitchen", 1, 650),
	}
	res := orders.Diff(existing, []nlp.ClassifiedLine{
		incomingLine("χωριατικη", "kitchen", 1, 650),
	})

	// Same line up to accents, but the raw text changed, so it counts as
	// an update that keeps the original id.
	require.Len(t, res.Updated, 1)
	assert.Equal(t, "a", res.Updated[0].ID)
	assert.Equal(t, "χωριατικη", res.Updated[0].Text)
	assert.Empty(t, res.Kept)
	assert.Empty(t, res.Cancelled)
}

func TestDiffQuantityEditUpdatesInPlace(t *testing.T) {
	existing := []models.TicketLine{
		pendingLine("a", "2 μυθος", "drinks", 2, 800),
	}
	res := orders.Diff(existing, []nlp.ClassifiedLine{
		incomingLine("3 μυθος", "drinks", 3, 1200),
	})

	// Different normalized text means no match: the old line goes, a new
	// one arrives.
	require.Len(t, res.Created, 1)
	require.Len(t, res.Cancelled, 1)
	assert.Equal(t, "a", res.Cancelled[0].ID)
	assert.Equal(t, models.LineStatusCancelled, res.Cancelled[0].Status)
	assert.Equal(t, float64(3), res.Created[0].Multiplier)
	assert.NotEmpty(t, res.Created[0].ID)
}

func TestDiffCategoryMismatchDoesNotMatch(t *testing.T) {
	existing := []models.TicketLine{
		pendingLine("a", "ρετσινα", "drinks", 1, 450),
	}
	res := orders.Diff(existing, []nlp.ClassifiedLine{
		incomingLine("ρετσινα", "kitchen", 1, 450),
	})

	assert.Len(t, res.Created, 1)
	assert.Len(t, res.Cancelled, 1)
	assert.Empty(t, res.Kept)
}

func TestDiffFirstUnusedWinsForDuplicates(t *testing.T) {
	existing := []models.TicketLine{
		pendingLine("a", "μυθος", "drinks", 1, 400),
		pendingLine("b", "μυθος", "drinks", 1, 400),
	}
	res := orders.Diff(existing, []nlp.ClassifiedLine{
		incomingLine("μυθος", "drinks", 1, 400),
	})

	require.Len(t, res.Kept, 1)
	assert.Equal(t, "a", res.Kept[0].ID)
	require.Len(t, res.Cancelled, 1)
	assert.Equal(t, "b", res.Cancelled[0].ID)
}

func TestDiffSkipsNonPendingLines(t *testing.T) {
	served := pendingLine("a", "παιδακια", "grill", 1, 1200)
	served.Status = models.LineStatusDone
	existing := []models.TicketLine{
		served,
		pendingLine("b", "πατατες", "kitchen", 1, 350),
	}

	res := orders.Diff(existing, nil)

	// The done line neither matches nor cancels; only the pending one is
	// cancelled by an empty resubmission.
	require.Len(t, res.Cancelled, 1)
	assert.Equal(t, "b", res.Cancelled[0].ID)
	assert.Empty(t, res.Kept)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Created)
}

func TestApplyRewritesTicket(t *testing.T) {
	ticket := &models.Ticket{ID: "t1", Status: models.TicketStatusPending}
	ticket.Lines = []models.TicketLine{
		pendingLine("a", "χωριατικη", "kitchen", 1, 650),
		pendingLine("b", "μυθος", "drinks", 1, 400),
	}
	ticket.RecalcTotal()
	require.Equal(t, int64(1050), ticket.TotalCents)

	res := orders.Diff(ticket.Lines, []nlp.ClassifiedLine{
		incomingLine("χωριατικη", "kitchen", 1, 650),
		incomingLine("2 ρετσινα", "drinks", 2, 900),
	})
	orders.Apply(ticket, res)

	require.Len(t, ticket.Lines, 3)
	assert.Equal(t, models.LineStatusCancelled, ticket.Lines[1].Status)
	created := ticket.Lines[2]
	assert.Equal(t, "t1", created.TicketID)
	assert.Equal(t, "2 ρετσινα", created.Text)
	// 650 kept + 900 created; the cancelled beer no longer counts.
	assert.Equal(t, int64(1550), ticket.TotalCents)
}
