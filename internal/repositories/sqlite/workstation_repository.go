package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkaranikas/komanda/internal/models"
)

type WorkstationRepository struct {
	db *sql.DB
}

func NewWorkstationRepository(db *sql.DB) *WorkstationRepository {
	return &WorkstationRepository{db: db}
}

func (r *WorkstationRepository) Create(ctx context.Context, station *models.Workstation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workstations (id, name, slug, color, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		station.ID,
		station.Name,
		station.Slug,
		station.Color,
		station.Active,
		formatTime(station.CreatedAt),
	)
	return err
}

func (r *WorkstationRepository) GetAll(ctx context.Context, includeInactive bool) ([]*models.Workstation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, color, active, created_at
		FROM workstations
		WHERE active OR ?
		ORDER BY created_at, slug
	`, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []*models.Workstation
	for rows.Next() {
		station, err := scanWorkstation(rows.Scan)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	return stations, rows.Err()
}

func (r *WorkstationRepository) GetBySlug(ctx context.Context, slug string) (*models.Workstation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, color, active, created_at
		FROM workstations
		WHERE slug = ?
	`, slug)

	station, err := scanWorkstation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return station, nil
}

func (r *WorkstationRepository) Deactivate(ctx context.Context, slug string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE workstations SET active = FALSE WHERE slug = ?`, slug)
	return err
}

func scanWorkstation(scan func(dest ...any) error) (*models.Workstation, error) {
	station := &models.Workstation{}
	var createdAt string
	if err := scan(
		&station.ID,
		&station.Name,
		&station.Slug,
		&station.Color,
		&station.Active,
		&createdAt,
	); err != nil {
		return nil, err
	}
	station.CreatedAt = parseTime(createdAt)
	return station, nil
}
