package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkaranikas/komanda/internal/models"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// Create persists the ticket and its lines in one transaction, lines via
// CopyFrom.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO tickets (id, table_no, waiter_id, text, status, total_cents, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	if _, err := tx.Exec(ctx, query,
		ticket.ID,
		ticket.Table,
		ticket.WaiterID,
		ticket.Text,
		ticket.Status,
		ticket.TotalCents,
		ticket.CreatedAt,
	); err != nil {
		return err
	}

	lines := ticket.Lines
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"ticket_lines"},
		[]string{
			"id", "ticket_id", "text", "note", "category", "menu_id",
			"menu_name", "unit_price_cents", "qty", "unit", "multiplier",
			"line_total_cents", "score", "status",
		},
		pgx.CopyFromSlice(len(lines), func(i int) ([]interface{}, error) {
			return []interface{}{
				lines[i].ID,
				lines[i].TicketID,
				lines[i].Text,
				lines[i].Note,
				lines[i].Category,
				lines[i].MenuID,
				lines[i].MenuName,
				lines[i].UnitPriceCents,
				lines[i].Quantity,
				lines[i].Unit,
				lines[i].Multiplier,
				lines[i].LineTotalCents,
				lines[i].Score,
				lines[i].Status,
			}, nil
		}),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
