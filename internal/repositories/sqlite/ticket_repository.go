package sqlite

import (
	"context"
	"database/sql"

	"github.com/dkaranikas/komanda/internal/models"
)

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tickets (id, table_no, waiter_id, text, status, total_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ticket.ID,
		ticket.Table,
		ticket.WaiterID,
		ticket.Text,
		ticket.Status,
		ticket.TotalCents,
		formatTime(ticket.CreatedAt),
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ticket_lines (
			id, ticket_id, text, note, category, menu_id, menu_name,
			unit_price_cents, qty, unit, multiplier, line_total_cents, score, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range ticket.Lines {
		if _, err := stmt.ExecContext(ctx,
			line.ID,
			line.TicketID,
			line.Text,
			line.Note,
			line.Category,
			line.MenuID,
			line.MenuName,
			line.UnitPriceCents,
			line.Quantity,
			line.Unit,
			line.Multiplier,
			line.LineTotalCents,
			line.Score,
			line.Status,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
