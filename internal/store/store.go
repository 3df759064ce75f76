package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/model"
)

// Store is the persistence bridge between the pure engine and recorded
// facts: week scores, rosters, and saved projections. Point figures are
// rounded to two decimals on the way in; this is an output boundary.
type Store interface {
	// Week scores
	SaveWeekScore(ctx context.Context, score model.PlayerWeekScore) error
	WeekScores(ctx context.Context, playerID string) ([]model.PlayerWeekScore, error)
	AllWeekScores(ctx context.Context, week int) ([]model.PlayerWeekScore, error)

	// Rosters
	SaveRoster(ctx context.Context, slots []model.RosterSlot) error
	Rosters(ctx context.Context) ([]model.RosterSlot, error)

	// Projections
	SaveProjection(ctx context.Context, p model.Projection) error
	Projections(ctx context.Context, week int) ([]model.Projection, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
}
