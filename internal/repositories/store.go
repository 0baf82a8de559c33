package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/repositories/postgres"
	"github.com/dkaranikas/komanda/internal/repositories/sqlite"
)

// Store bundles one backend's repositories behind a single handle.
type Store struct {
	MenuVersions MenuVersionRepository
	Corrections  CorrectionRepository
	Workstations WorkstationRepository
	Tickets      TicketRepository

	close func()
}

// Open connects the configured backend and ensures its schema. It returns
// an error when no backend is configured; callers that can run without
// persistence should check Config.DatabaseBackend first.
func Open(ctx context.Context, cfg *models.Config) (*Store, error) {
	switch cfg.DatabaseBackend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensuring postgres schema: %w", err)
		}
		return &Store{
			MenuVersions: postgres.NewMenuVersionRepository(pool),
			Corrections:  postgres.NewCorrectionRepository(pool),
			Workstations: postgres.NewWorkstationRepository(pool),
			Tickets:      postgres.NewTicketRepository(pool),
			close:        pool.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		return &Store{
			MenuVersions: sqlite.NewMenuVersionRepository(db),
			Corrections:  sqlite.NewCorrectionRepository(db),
			Workstations: sqlite.NewWorkstationRepository(db),
			Tickets:      sqlite.NewTicketRepository(db),
			close:        func() { db.Close() },
		}, nil

	case "":
		return nil, fmt.Errorf("no database backend configured")
	}
	return nil, fmt.Errorf("unknown database backend %q", cfg.DatabaseBackend)
}

// Close releases the backend connection.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}
