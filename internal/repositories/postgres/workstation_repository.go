package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkaranikas/komanda/internal/models"
)

type WorkstationRepository struct {
	pool *pgxpool.Pool
}

func NewWorkstationRepository(pool *pgxpool.Pool) *WorkstationRepository {
	return &WorkstationRepository{pool: pool}
}

func (r *WorkstationRepository) Create(ctx context.Context, station *models.Workstation) error {
	query := `
        INSERT INTO workstations (id, name, slug, color, active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.pool.Exec(ctx, query,
		station.ID,
		station.Name,
		station.Slug,
		station.Color,
		station.Active,
		station.CreatedAt,
	)
	return err
}

func (r *WorkstationRepository) GetAll(ctx context.Context, includeInactive bool) ([]*models.Workstation, error) {
	query := `
        SELECT id, name, slug, color, active, created_at
        FROM workstations
        WHERE active OR $1
        ORDER BY created_at, slug
    `
	rows, err := r.pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []*models.Workstation
	for rows.Next() {
		station := &models.Workstation{}
		if err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Slug,
			&station.Color,
			&station.Active,
			&station.CreatedAt,
		); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	return stations, rows.Err()
}

func (r *WorkstationRepository) GetBySlug(ctx context.Context, slug string) (*models.Workstation, error) {
	query := `
        SELECT id, name, slug, color, active, created_at
        FROM workstations
        WHERE slug = $1
    `
	station := &models.Workstation{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&station.ID,
		&station.Name,
		&station.Slug,
		&station.Color,
		&station.Active,
		&station.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return station, nil
}

func (r *WorkstationRepository) Deactivate(ctx context.Context, slug string) error {
	_, err := r.pool.Exec(ctx, `UPDATE workstations SET active = FALSE WHERE slug = $1`, slug)
	return err
}
