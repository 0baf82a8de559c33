// Package orders reconciles a table's pending ticket lines against a
// resubmitted order text.
package orders

import (
	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/lucsky/cuid"
)

// DiffResult partitions a replacement order. Created lines carry fresh ids
// and no ticket id until applied; Updated lines keep their id with the new
// classification; Kept lines are untouched; Cancelled lines are the pending
// leftovers nothing in the new text matched.
type DiffResult struct {
	Created   []models.TicketLine
	Updated   []models.TicketLine
	Kept      []models.TicketLine
	Cancelled []models.TicketLine
}

// Diff matches incoming classified lines against a ticket's existing lines.
// Only pending lines participate; lines already preparing, ready or done are
// invisible to the reconciliation. A match is the first unused pending line
// with the same normalized text and category. A matched line whose raw text
// changed (a quantity edit, usually) is updated in place; an identical one
// is kept; pending lines left unmatched are cancelled.
func Diff(existing []models.TicketLine, incoming []nlp.ClassifiedLine) DiffResult {
	var res DiffResult
	used := make([]bool, len(existing))

	for _, line := range incoming {
		norm := nlp.Normalize(line.Text)
		matched := -1
		for i, old := range existing {
			if used[i] || old.Status != models.LineStatusPending {
				continue
			}
			if nlp.Normalize(old.Text) == norm && old.Category == line.Category {
				matched = i
				break
			}
		}

		if matched == -1 {
			res.Created = append(res.Created, models.TicketLine{
				ID:             cuid.New(),
				ClassifiedLine: line,
				Status:         models.LineStatusPending,
			})
			continue
		}

		used[matched] = true
		old := existing[matched]
		if old.Text != line.Text {
			updated := old
			updated.ClassifiedLine = line
			res.Updated = append(res.Updated, updated)
		} else {
			res.Kept = append(res.Kept, old)
		}
	}

	for i, old := range existing {
		if used[i] || old.Status != models.LineStatusPending {
			continue
		}
		cancelled := old
		cancelled.Status = models.LineStatusCancelled
		res.Cancelled = append(res.Cancelled, cancelled)
	}

	return res
}

// Apply rewrites the ticket's lines with the reconciliation outcome and
// recomputes the total. Non-pending lines ride through unchanged.
func Apply(ticket *models.Ticket, res DiffResult) {
	updated := make(map[string]models.TicketLine, len(res.Updated))
	for _, line := range res.Updated {
		updated[line.ID] = line
	}
	cancelled := make(map[string]models.TicketLine, len(res.Cancelled))
	for _, line := range res.Cancelled {
		cancelled[line.ID] = line
	}

	lines := make([]models.TicketLine, 0, len(ticket.Lines)+len(res.Created))
	for _, line := range ticket.Lines {
		if repl, ok := updated[line.ID]; ok {
			lines = append(lines, repl)
			continue
		}
		if repl, ok := cancelled[line.ID]; ok {
			lines = append(lines, repl)
			continue
		}
		lines = append(lines, line)
	}
	for _, line := range res.Created {
		line.TicketID = ticket.ID
		lines = append(lines, line)
	}

	ticket.Lines = lines
	ticket.RecalcTotal()
}
