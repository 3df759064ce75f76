package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gridiron-labs/bestball/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS week_scores (
	player_id TEXT NOT NULL,
	week      INTEGER NOT NULL,
	points    REAL NOT NULL,
	breakdown TEXT NOT NULL,
	PRIMARY KEY (player_id, week)
);

CREATE TABLE IF NOT EXISTS roster_slots (
	id           TEXT PRIMARY KEY,
	owner        TEXT NOT NULL,
	slot         TEXT NOT NULL,
	player       TEXT NOT NULL,
	substitution TEXT
);

CREATE TABLE IF NOT EXISTS projections (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	week       INTEGER NOT NULL,
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_week_scores_week ON week_scores(week);
CREATE INDEX IF NOT EXISTS idx_roster_slots_owner ON roster_slots(owner);
CREATE INDEX IF NOT EXISTS idx_projections_week ON projections(week);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveWeekScore(ctx context.Context, score model.PlayerWeekScore) error {
	breakdown, err := json.Marshal(score.Breakdown)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal breakdown")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO week_scores (player_id, week, points, breakdown) VALUES (?, ?, ?, ?)
		 ON CONFLICT (player_id, week) DO UPDATE SET points = excluded.points, breakdown = excluded.breakdown`,
		score.PlayerID, score.Week, model.Round2(score.Points), string(breakdown),
	)
	return eris.Wrap(err, "sqlite: save week score")
}

func (s *SQLiteStore) WeekScores(ctx context.Context, playerID string) ([]model.PlayerWeekScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, week, points, breakdown FROM week_scores WHERE player_id = ? ORDER BY week`,
		playerID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query week scores")
	}
	defer rows.Close()

	return scanWeekScores(rows)
}

func (s *SQLiteStore) AllWeekScores(ctx context.Context, week int) ([]model.PlayerWeekScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, week, points, breakdown FROM week_scores WHERE week = ? ORDER BY player_id`,
		week,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query week scores")
	}
	defer rows.Close()

	return scanWeekScores(rows)
}

func scanWeekScores(rows *sql.Rows) ([]model.PlayerWeekScore, error) {
	var scores []model.PlayerWeekScore
	for rows.Next() {
		var s model.PlayerWeekScore
		var breakdown string
		if err := rows.Scan(&s.PlayerID, &s.Week, &s.Points, &breakdown); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan week score")
		}
		if err := json.Unmarshal([]byte(breakdown), &s.Breakdown); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal breakdown")
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate week scores")
	}
	return scores, nil
}

func (s *SQLiteStore) SaveRoster(ctx context.Context, slots []model.RosterSlot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin roster tx")
	}
	defer tx.Rollback()

	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		player, err := json.Marshal(slot.Player)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal player")
		}
		var substitution any
		if slot.Substitution != nil {
			raw, err := json.Marshal(slot.Substitution)
			if err != nil {
				return eris.Wrap(err, "sqlite: marshal substitution")
			}
			substitution = string(raw)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO roster_slots (id, owner, slot, player, substitution) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET owner = excluded.owner, slot = excluded.slot,
			 player = excluded.player, substitution = excluded.substitution`,
			slot.ID, slot.Owner, string(slot.Slot), string(player), substitution,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: save roster slot")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit roster")
}

func (s *SQLiteStore) Rosters(ctx context.Context) ([]model.RosterSlot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, slot, player, substitution FROM roster_slots ORDER BY owner, slot`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query rosters")
	}
	defer rows.Close()

	var slots []model.RosterSlot
	for rows.Next() {
		var slot model.RosterSlot
		var slotName, player string
		var substitution sql.NullString
		if err := rows.Scan(&slot.ID, &slot.Owner, &slotName, &player, &substitution); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan roster slot")
		}
		slot.Slot = model.SlotName(slotName)
		if err := json.Unmarshal([]byte(player), &slot.Player); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal player")
		}
		if substitution.Valid {
			var sub model.Substitution
			if err := json.Unmarshal([]byte(substitution.String), &sub); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal substitution")
			}
			slot.Substitution = &sub
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rosters")
	}
	return slots, nil
}

func (s *SQLiteStore) SaveProjection(ctx context.Context, p model.Projection) error {
	p.Points = model.Round2(p.Points)
	p.Low = model.Round2(p.Low)
	p.High = model.Round2(p.High)
	data, err := json.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal projection")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projections (id, player_id, week, data) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), p.PlayerID, p.Week, string(data),
	)
	return eris.Wrap(err, "sqlite: save projection")
}

func (s *SQLiteStore) Projections(ctx context.Context, week int) ([]model.Projection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM projections WHERE week = ? ORDER BY created_at DESC`,
		week,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query projections")
	}
	defer rows.Close()

	var projections []model.Projection
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan projection")
		}
		var p model.Projection
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal projection")
		}
		projections = append(projections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate projections")
	}
	return projections, nil
}
