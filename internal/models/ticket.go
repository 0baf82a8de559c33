package models

import (
	"time"

	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/lucsky/cuid"
)

// Ticket is one table's order slip: the raw text the waiter keyed in plus
// the classified lines derived from it.
type Ticket struct {
	ID         string       `json:"id"`
	Table      int          `json:"table"`
	WaiterID   string       `json:"waiter_id"`
	Text       string       `json:"text"`
	Status     string       `json:"status"`
	TotalCents int64        `json:"total_cents"`
	CreatedAt  time.Time    `json:"created_at"`
	Lines      []TicketLine `json:"lines,omitempty"`
}

// TicketLine is one classified line persisted under a ticket.
type TicketLine struct {
	ID       string `json:"id"`
	TicketID string `json:"ticket_id"`
	nlp.ClassifiedLine
	Status string `json:"status"`
}

// NewTicket builds a pending ticket from classified lines.
func NewTicket(table int, waiterID, text string, lines []nlp.ClassifiedLine, at time.Time) *Ticket {
	ticket := &Ticket{
		ID:        cuid.New(),
		Table:     table,
		WaiterID:  waiterID,
		Text:      text,
		Status:    TicketStatusPending,
		CreatedAt: at,
	}
	for _, line := range lines {
		ticket.Lines = append(ticket.Lines, TicketLine{
			ID:             cuid.New(),
			TicketID:       ticket.ID,
			ClassifiedLine: line,
			Status:         LineStatusPending,
		})
	}
	ticket.RecalcTotal()
	return ticket
}

// RecalcTotal recomputes the ticket total from its non-cancelled lines.
func (t *Ticket) RecalcTotal() {
	var total int64
	for _, line := range t.Lines {
		if line.Status == LineStatusCancelled {
			continue
		}
		total += line.LineTotalCents
	}
	t.TotalCents = total
}
