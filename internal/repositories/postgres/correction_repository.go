package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkaranikas/komanda/internal/nlp"
)

type CorrectionRepository struct {
	pool *pgxpool.Pool
}

func NewCorrectionRepository(pool *pgxpool.Pool) *CorrectionRepository {
	return &CorrectionRepository{pool: pool}
}

func (r *CorrectionRepository) Add(ctx context.Context, correction *nlp.Correction) error {
	query := `
        INSERT INTO corrections (id, raw_text, predicted_item_id, corrected_item_id, user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.pool.Exec(ctx, query,
		correction.ID,
		correction.RawText,
		correction.PredictedMenuID,
		correction.CorrectedMenuID,
		correction.CorrectedBy,
		correction.CreatedAt,
	)
	return err
}

// ListRecent returns corrections newest first, the order the override
// builder expects.
func (r *CorrectionRepository) ListRecent(ctx context.Context, limit int) ([]nlp.Correction, error) {
	query := `
        SELECT id, raw_text, predicted_item_id, corrected_item_id, user_id, created_at
        FROM corrections
        ORDER BY created_at DESC, id DESC
    `
	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []nlp.Correction
	for rows.Next() {
		var c nlp.Correction
		if err := rows.Scan(
			&c.ID,
			&c.RawText,
			&c.PredictedMenuID,
			&c.CorrectedMenuID,
			&c.CorrectedBy,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}
