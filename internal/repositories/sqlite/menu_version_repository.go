package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"github.com/lucsky/cuid"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

type MenuVersionRepository struct {
	db *sql.DB
}

func NewMenuVersionRepository(db *sql.DB) *MenuVersionRepository {
	return &MenuVersionRepository{db: db}
}

func (r *MenuVersionRepository) Create(ctx context.Context, version *models.MenuVersion) error {
	snapshot, err := json.Marshal(version.Snapshot)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO menu_versions (id, hash, created_at, created_by, snapshot) VALUES (?, ?, ?, ?, ?)`,
		version.ID,
		version.Hash,
		formatTime(version.CreatedAt),
		version.CreatedBy,
		string(snapshot),
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO menu_items (id, version_id, external_id, name, price_cents, section, category, station, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	sections := make([]string, 0, len(version.Snapshot))
	for name := range version.Snapshot {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	position := 0
	for _, section := range sections {
		for _, item := range version.Snapshot[section] {
			if _, err := stmt.ExecContext(ctx,
				cuid.New(),
				version.ID,
				item.ID,
				item.Name,
				nlp.EurosToCents(item.Price),
				section,
				item.Category,
				item.Station,
				position,
			); err != nil {
				return err
			}
			position++
		}
	}

	return tx.Commit()
}

func (r *MenuVersionRepository) Latest(ctx context.Context) (*models.MenuVersion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, hash, created_at, created_by, snapshot
		FROM menu_versions
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)

	version := &models.MenuVersion{}
	var createdAt, snapshot string
	err := row.Scan(&version.ID, &version.Hash, &createdAt, &version.CreatedBy, &snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	version.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(snapshot), &version.Snapshot); err != nil {
		return nil, err
	}
	return version, nil
}
