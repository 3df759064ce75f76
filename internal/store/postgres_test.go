package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/bestball/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit
// testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS week_scores").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveWeekScore(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	score := model.PlayerWeekScore{PlayerID: "p-mahomes", Week: 1, Points: 21.1667}
	breakdown, err := json.Marshal(score.Breakdown)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO week_scores").
		WithArgs("p-mahomes", 1, 21.17, breakdown).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, s.SaveWeekScore(context.Background(), score))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_WeekScores(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	var b model.Breakdown
	b.Add(model.CategoryRushYards, 7.5)
	breakdown, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT player_id, week, points, breakdown FROM week_scores").
		WithArgs("p-pacheco").
		WillReturnRows(pgxmock.NewRows([]string{"player_id", "week", "points", "breakdown"}).
			AddRow("p-pacheco", 1, 7.5, breakdown).
			AddRow("p-pacheco", 2, 11.25, breakdown))

	scores, err := s.WeekScores(context.Background(), "p-pacheco")
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 7.5, scores[0].Points)
	assert.Equal(t, 2, scores[1].Week)
	assert.Equal(t, 7.5, scores[0].Breakdown.Categories[model.CategoryRushYards])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveRoster(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	slot := model.RosterSlot{
		ID:     "alice/QB",
		Owner:  "Alice",
		Slot:   model.SlotQB,
		Player: model.Player{ID: "p-mahomes", Name: "Patrick Mahomes", Position: model.PositionQB, Team: "KC"},
	}
	player, err := json.Marshal(slot.Player)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO roster_slots").
		WithArgs("alice/QB", "Alice", "QB", player, []byte(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, s.SaveRoster(context.Background(), []model.RosterSlot{slot}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Rosters(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	player, err := json.Marshal(model.Player{ID: "p-pacheco", Position: model.PositionRB, Team: "KC"})
	require.NoError(t, err)
	sub, err := json.Marshal(model.Substitution{
		EffectiveWeek: 2,
		Player:        model.Player{ID: "p-perine", Position: model.PositionRB, Team: "KC"},
	})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, owner, slot, player, substitution FROM roster_slots").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner", "slot", "player", "substitution"}).
			AddRow("alice/RB1", "Alice", "RB1", player, sub).
			AddRow("alice/QB", "Alice", "QB", player, []byte(nil)))

	slots, err := s.Rosters(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	require.NotNil(t, slots[0].Substitution)
	assert.Equal(t, "p-perine", slots[0].Substitution.Player.ID)
	assert.Equal(t, 2, slots[0].Substitution.EffectiveWeek)
	assert.Nil(t, slots[1].Substitution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveProjection(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO projections").
		WithArgs(pgxmock.AnyArg(), "p-kelce", 2, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveProjection(context.Background(), model.Projection{
		PlayerID: "p-kelce",
		Position: model.PositionTE,
		Week:     2,
		Points:   13.3333,
		Source:   model.SourceBlended,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Projections(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	data, err := json.Marshal(model.Projection{PlayerID: "p-kelce", Week: 2, Points: 13.33})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data FROM projections").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(data))

	got, err := s.Projections(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-kelce", got[0].PlayerID)
	assert.Equal(t, 13.33, got[0].Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}
