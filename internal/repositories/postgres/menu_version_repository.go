package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

type MenuVersionRepository struct {
	pool *pgxpool.Pool
}

func NewMenuVersionRepository(pool *pgxpool.Pool) *MenuVersionRepository {
	return &MenuVersionRepository{pool: pool}
}

type itemRow struct {
	externalID string
	name       string
	priceCents int64
	section    string
	category   string
	station    string
}

// Create writes the version row plus one flat row per item; items go in
// with CopyFrom since a full menu is a few hundred rows.
func (r *MenuVersionRepository) Create(ctx context.Context, version *models.MenuVersion) error {
	snapshot, err := json.Marshal(version.Snapshot)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO menu_versions (id, hash, created_at, created_by, snapshot)
        VALUES ($1, $2, $3, $4, $5)
    `
	if _, err := tx.Exec(ctx, query,
		version.ID,
		version.Hash,
		version.CreatedAt,
		version.CreatedBy,
		snapshot,
	); err != nil {
		return err
	}

	rows := flattenItems(version.Snapshot)
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{"id", "version_id", "external_id", "name", "price_cents", "section", "category", "station", "position"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]interface{}, error) {
			return []interface{}{
				cuid.New(),
				version.ID,
				rows[i].externalID,
				rows[i].name,
				rows[i].priceCents,
				rows[i].section,
				rows[i].category,
				rows[i].station,
				i,
			}, nil
		}),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Latest returns the most recent version, or (nil, nil) before first seed.
func (r *MenuVersionRepository) Latest(ctx context.Context) (*models.MenuVersion, error) {
	query := `
        SELECT id, hash, created_at, created_by, snapshot
        FROM menu_versions
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `
	version := &models.MenuVersion{}
	var snapshot []byte
	err := r.pool.QueryRow(ctx, query).Scan(
		&version.ID,
		&version.Hash,
		&version.CreatedAt,
		&version.CreatedBy,
		&snapshot,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &version.Snapshot); err != nil {
		return nil, err
	}
	return version, nil
}

func flattenItems(menu nlp.MenuSnapshot) []itemRow {
	sections := make([]string, 0, len(menu))
	for name := range menu {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	var rows []itemRow
	for _, section := range sections {
		for _, item := range menu[section] {
			rows = append(rows, itemRow{
				externalID: item.ID,
				name:       item.Name,
				priceCents: nlp.EurosToCents(item.Price),
				section:    section,
				category:   item.Category,
				station:    item.Station,
			})
		}
	}
	return rows
}
