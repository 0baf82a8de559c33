package sqlite

import (
	"context"
	"database/sql"

	"github.com/dkaranikas/komanda/internal/nlp"
)

type CorrectionRepository struct {
	db *sql.DB
}

func NewCorrectionRepository(db *sql.DB) *CorrectionRepository {
	return &CorrectionRepository{db: db}
}

func (r *CorrectionRepository) Add(ctx context.Context, correction *nlp.Correction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO corrections (id, raw_text, predicted_item_id, corrected_item_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		correction.ID,
		correction.RawText,
		correction.PredictedMenuID,
		correction.CorrectedMenuID,
		correction.CorrectedBy,
		formatTime(correction.CreatedAt),
	)
	return err
}

func (r *CorrectionRepository) ListRecent(ctx context.Context, limit int) ([]nlp.Correction, error) {
	query := `
		SELECT id, raw_text, predicted_item_id, corrected_item_id, user_id, created_at
		FROM corrections
		ORDER BY created_at DESC, id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []nlp.Correction
	for rows.Next() {
		var c nlp.Correction
		var createdAt string
		if err := rows.Scan(
			&c.ID,
			&c.RawText,
			&c.PredictedMenuID,
			&c.CorrectedMenuID,
			&c.CorrectedBy,
			&createdAt,
		); err != nil {
			return nil, err
		}
		c.CreatedAt = parseTime(createdAt)
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}
