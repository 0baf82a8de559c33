package repositories

import (
	"context"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

// MenuVersionRepository stores immutable menu snapshots. Latest returns
// (nil, nil) when no version has been seeded yet.
type MenuVersionRepository interface {
	Create(ctx context.Context, version *models.MenuVersion) error
	Latest(ctx context.Context) (*models.MenuVersion, error)
}

// CorrectionRepository records waiter fixes. ListRecent returns newest
// first, ready to feed the override builder; a non-positive limit returns
// everything.
type CorrectionRepository interface {
	Add(ctx context.Context, correction *nlp.Correction) error
	ListRecent(ctx context.Context, limit int) ([]nlp.Correction, error)
}

// WorkstationRepository is the routing-station registry. GetBySlug returns
// (nil, nil) when the slug is unknown; Deactivate soft-deletes.
type WorkstationRepository interface {
	Create(ctx context.Context, station *models.Workstation) error
	GetAll(ctx context.Context, includeInactive bool) ([]*models.Workstation, error)
	GetBySlug(ctx context.Context, slug string) (*models.Workstation, error)
	Deactivate(ctx context.Context, slug string) error
}

// TicketRepository persists a classified ticket with its lines.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
}
