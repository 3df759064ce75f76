package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/gridiron-labs/bestball/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; satisfied by pgxmock
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS week_scores (
	player_id TEXT NOT NULL,
	week      INTEGER NOT NULL,
	points    DOUBLE PRECISION NOT NULL,
	breakdown JSONB NOT NULL,
	PRIMARY KEY (player_id, week)
);

CREATE TABLE IF NOT EXISTS roster_slots (
	id           TEXT PRIMARY KEY,
	owner        TEXT NOT NULL,
	slot         TEXT NOT NULL,
	player       JSONB NOT NULL,
	substitution JSONB
);

CREATE TABLE IF NOT EXISTS projections (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	week       INTEGER NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_week_scores_week ON week_scores(week);
CREATE INDEX IF NOT EXISTS idx_roster_slots_owner ON roster_slots(owner);
CREATE INDEX IF NOT EXISTS idx_projections_week ON projections(week);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveWeekScore(ctx context.Context, score model.PlayerWeekScore) error {
	breakdown, err := json.Marshal(score.Breakdown)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal breakdown")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO week_scores (player_id, week, points, breakdown) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (player_id, week) DO UPDATE SET points = EXCLUDED.points, breakdown = EXCLUDED.breakdown`,
		score.PlayerID, score.Week, model.Round2(score.Points), breakdown,
	)
	return eris.Wrap(err, "postgres: save week score")
}

func (s *PostgresStore) WeekScores(ctx context.Context, playerID string) ([]model.PlayerWeekScore, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, week, points, breakdown FROM week_scores WHERE player_id = $1 ORDER BY week`,
		playerID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query week scores")
	}
	defer rows.Close()

	return scanPgWeekScores(rows)
}

func (s *PostgresStore) AllWeekScores(ctx context.Context, week int) ([]model.PlayerWeekScore, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, week, points, breakdown FROM week_scores WHERE week = $1 ORDER BY player_id`,
		week,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query week scores")
	}
	defer rows.Close()

	return scanPgWeekScores(rows)
}

func scanPgWeekScores(rows pgx.Rows) ([]model.PlayerWeekScore, error) {
	var scores []model.PlayerWeekScore
	for rows.Next() {
		var s model.PlayerWeekScore
		var breakdown []byte
		if err := rows.Scan(&s.PlayerID, &s.Week, &s.Points, &breakdown); err != nil {
			return nil, eris.Wrap(err, "postgres: scan week score")
		}
		if err := json.Unmarshal(breakdown, &s.Breakdown); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal breakdown")
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate week scores")
	}
	return scores, nil
}

func (s *PostgresStore) SaveRoster(ctx context.Context, slots []model.RosterSlot) error {
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		player, err := json.Marshal(slot.Player)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal player")
		}
		var substitution []byte
		if slot.Substitution != nil {
			substitution, err = json.Marshal(slot.Substitution)
			if err != nil {
				return eris.Wrap(err, "postgres: marshal substitution")
			}
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO roster_slots (id, owner, slot, player, substitution) VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner, slot = EXCLUDED.slot,
			 player = EXCLUDED.player, substitution = EXCLUDED.substitution`,
			slot.ID, slot.Owner, string(slot.Slot), player, substitution,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: save roster slot")
		}
	}
	return nil
}

func (s *PostgresStore) Rosters(ctx context.Context) ([]model.RosterSlot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner, slot, player, substitution FROM roster_slots ORDER BY owner, slot`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query rosters")
	}
	defer rows.Close()

	var slots []model.RosterSlot
	for rows.Next() {
		var slot model.RosterSlot
		var slotName string
		var player, substitution []byte
		if err := rows.Scan(&slot.ID, &slot.Owner, &slotName, &player, &substitution); err != nil {
			return nil, eris.Wrap(err, "postgres: scan roster slot")
		}
		slot.Slot = model.SlotName(slotName)
		if err := json.Unmarshal(player, &slot.Player); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal player")
		}
		if len(substitution) > 0 {
			var sub model.Substitution
			if err := json.Unmarshal(substitution, &sub); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal substitution")
			}
			slot.Substitution = &sub
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate rosters")
	}
	return slots, nil
}

func (s *PostgresStore) SaveProjection(ctx context.Context, p model.Projection) error {
	p.Points = model.Round2(p.Points)
	p.Low = model.Round2(p.Low)
	p.High = model.Round2(p.High)
	data, err := json.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal projection")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO projections (id, player_id, week, data) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), p.PlayerID, p.Week, data,
	)
	return eris.Wrap(err, "postgres: save projection")
}

func (s *PostgresStore) Projections(ctx context.Context, week int) ([]model.Projection, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM projections WHERE week = $1 ORDER BY created_at DESC`,
		week,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: query projections")
	}
	defer rows.Close()

	var projections []model.Projection
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan projection")
		}
		var p model.Projection
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal projection")
		}
		projections = append(projections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate projections")
	}
	return projections, nil
}
