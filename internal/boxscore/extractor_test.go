package boxscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/rules"
)

func testRules(t *testing.T) rules.Rules {
	t.Helper()
	r, err := rules.FromConfig(config.ScoringConfig{
		PassYardsPerPoint: 30,
		RushYardsPerPoint: 12,
		RecYardsPerPoint:  12,
		PassTD:            6,
		RushTD:            6,
		RecTD:             6,
		Reception:         0.5,
		Interception:      -2,
		FumbleLost:        -2,
		TwoPoint:          2,
		ExtraPoint:        1,
		MissedXP:          -1,
		FieldGoalBands: []config.Band{
			{UpTo: 39, Points: 3},
			{UpTo: 49, Points: 4},
			{UpTo: 50, Points: 5},
		},
		Sack:            1,
		DefInterception: 2,
		FumbleRecovery:  2,
		DefTD:           6,
		Safety:          2,
		PointsAllowedBands: []config.Band{
			{UpTo: 0, Points: 10},
			{UpTo: 6, Points: 7},
			{UpTo: 13, Points: 4},
			{UpTo: 20, Points: 1},
			{UpTo: 27, Points: 0},
			{UpTo: 34, Points: -1},
			{UpTo: 35, Points: -4},
		},
	})
	require.NoError(t, err)
	return r
}

func testDocument() Document {
	return Document{
		Competitors: []Competitor{
			{ID: "1", Abbreviation: "KC", DisplayName: "Kansas City Chiefs", Score: 27, HomeAway: "home"},
			{ID: "2", Abbreviation: "BUF", DisplayName: "Buffalo Bills", Score: 24, HomeAway: "away"},
		},
		Teams: []TeamStats{
			{
				TeamID: "1",
				Categories: []Category{
					{
						Name:   "passing",
						Labels: []string{"C/ATT", "YDS", "TD", "INT"},
						Athletes: []AthleteLine{
							{Name: "Patrick Mahomes", Values: []string{"26/39", "275", "2", "1"}},
						},
					},
					{
						Name:   "rushing",
						Labels: []string{"CAR", "YDS", "TD"},
						Athletes: []AthleteLine{
							{Name: "Isiah Pacheco", Values: []string{"18", "89", "1"}},
							{Name: "Patrick Mahomes", Values: []string{"4", "21", "0"}},
						},
					},
					{
						Name:   "receiving",
						Labels: []string{"REC", "YDS", "TD"},
						Athletes: []AthleteLine{
							{Name: "Travis Kelce", Values: []string{"8", "95", "1"}},
						},
					},
					{
						Name:   "kicking",
						Labels: []string{"FG", "XP"},
						Athletes: []AthleteLine{
							{Name: "Harrison Butker", Values: []string{"2/2", "3/4"}},
						},
					},
				},
				SackYardsLost:       "2-15",
				InterceptionsThrown: 1,
				FumblesLost:         0,
				DefensiveTDs:        0,
				Safeties:            0,
			},
			{
				TeamID: "2",
				Categories: []Category{
					{
						Name:   "passing",
						Labels: []string{"C/ATT", "YDS", "TD", "INT"},
						Athletes: []AthleteLine{
							{Name: "Josh Allen", Values: []string{"29/44", "304", "3", "0"}},
						},
					},
					{
						Name:   "fumbles",
						Labels: []string{"FUM", "LOST"},
						Athletes: []AthleteLine{
							{Name: "James Cook", Values: []string{"1", "1"}},
						},
					},
				},
				SackYardsLost:       "3-21",
				InterceptionsThrown: 0,
				FumblesLost:         1,
				DefensiveTDs:        1,
				Safeties:            0,
			},
		},
		ScoringPlays: []ScoringPlay{
			{TeamID: "1", TypeText: "Field Goal", Text: "Harrison Butker 52 Yd Field Goal"},
			{TeamID: "1", TypeText: "Field Goal", Text: "Harrison Butker 33 Yd Field Goal"},
			{TeamID: "1", TypeText: "Field Goal", Text: "Harrison Butker 45 Yd Field Goal Missed"},
			{TeamID: "2", TypeText: "Touchdown", Text: "James Cook 4 Yd Run (Josh Allen Pass to Dawson Knox for Two-Point Conversion)"},
		},
	}
}

func TestExtract_CategoryTables(t *testing.T) {
	res := New(testRules(t)).Extract(testDocument())

	mahomes, ok := res.Players["patrick mahomes"]
	require.True(t, ok, "players keyed by normalized name")
	assert.Equal(t, 275, mahomes.PassYards)
	assert.Equal(t, 2, mahomes.PassTDs)
	assert.Equal(t, 1, mahomes.Interceptions)
	assert.Equal(t, 21, mahomes.RushYards, "rushing row accumulates onto the same line")

	kelce := res.Players["travis kelce"]
	require.NotNil(t, kelce)
	assert.Equal(t, 8, kelce.Receptions)
	assert.Equal(t, 95, kelce.RecYards)
	assert.Equal(t, 1, kelce.RecTDs)

	cook := res.Players["james cook"]
	require.NotNil(t, cook)
	assert.Equal(t, 1, cook.FumblesLost)
}

func TestExtract_Kicking(t *testing.T) {
	res := New(testRules(t)).Extract(testDocument())

	butker := res.Players["harrison butker"]
	require.NotNil(t, butker)
	assert.Equal(t, 3, butker.XPMade)
	assert.Equal(t, 4, butker.XPAttempted)
	// 52-yarder (5) + 33-yarder (3); the missed 45-yarder credits nothing.
	assert.Equal(t, 8.0, butker.FieldGoalPoints)
}

func TestExtract_TwoPointConversion(t *testing.T) {
	res := New(testRules(t)).Extract(testDocument())

	// Passer and receiver both credited; the rusher of the touchdown is
	// named in the same text and picks it up too.
	assert.Equal(t, 1, res.Players["josh allen"].TwoPointConversions)
	assert.Equal(t, 1, res.Players["james cook"].TwoPointConversions)
}

func TestExtract_FailedTwoPointNotCredited(t *testing.T) {
	doc := testDocument()
	doc.ScoringPlays = []ScoringPlay{
		{TeamID: "2", TypeText: "Touchdown", Text: "Josh Allen Two-Point Conversion Failed"},
	}
	res := New(testRules(t)).Extract(doc)

	assert.Equal(t, 0, res.Players["josh allen"].TwoPointConversions)
}

func TestExtract_UnmatchedKickerReported(t *testing.T) {
	doc := testDocument()
	doc.ScoringPlays = append(doc.ScoringPlays, ScoringPlay{
		TeamID: "2", TypeText: "Field Goal", Text: "Tyler Bass 41 Yd Field Goal",
	})
	res := New(testRules(t)).Extract(doc)

	assert.Equal(t, 1, res.Unmatched, "kicker absent from the tables is counted, not an error")
}

func TestExtract_Defenses(t *testing.T) {
	res := New(testRules(t)).Extract(testDocument())

	kc, ok := res.Defenses["kc dst"]
	require.True(t, ok)
	assert.Equal(t, 3, kc.Sacks, "from the opponent's compound sacks-yards string")
	assert.Equal(t, 0, kc.Interceptions, "opponent threw none")
	assert.Equal(t, 1, kc.FumbleRecoveries)
	assert.Equal(t, 24, kc.PointsAllowed, "opponent's final score")

	// Same line reachable under full name and bare abbreviation.
	assert.Same(t, kc, res.Defenses["kansas city chiefs"])
	assert.Same(t, kc, res.Defenses["kc"])

	buf := res.Defenses["buf dst"]
	require.NotNil(t, buf)
	assert.Equal(t, 2, buf.Sacks)
	assert.Equal(t, 1, buf.Interceptions)
	assert.Equal(t, 1, buf.DefensiveTDs)
	assert.Equal(t, 27, buf.PointsAllowed)
}

func TestExtract_DefensesRequireTwoCompetitors(t *testing.T) {
	doc := testDocument()
	doc.Competitors = doc.Competitors[:1]
	res := New(testRules(t)).Extract(doc)

	assert.Empty(t, res.Defenses)
}

func TestFieldGoalDistance(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Harrison Butker 52 Yd Field Goal", 52},
		{"Butker 33-yard field goal", 33},
		{"Butker field goal from 45", 45},
		{"Butker field goal", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fieldGoalDistance(tt.text), "text %q", tt.text)
	}
}

func TestSplitMadeAttempted(t *testing.T) {
	made, attempted := splitMadeAttempted("3/4")
	assert.Equal(t, 3, made)
	assert.Equal(t, 4, attempted)

	made, attempted = splitMadeAttempted("2")
	assert.Equal(t, 2, made)
	assert.Equal(t, 2, attempted, "bare number treated as all attempts made")
}

func TestSackCount(t *testing.T) {
	assert.Equal(t, 3, sackCount("3-21"))
	assert.Equal(t, 0, sackCount(""))
	assert.Equal(t, 0, sackCount("garbage"))
}

func TestExtract_MalformedCellsAreZero(t *testing.T) {
	doc := Document{
		Competitors: []Competitor{{ID: "1", Abbreviation: "KC"}, {ID: "2", Abbreviation: "BUF"}},
		Teams: []TeamStats{{
			TeamID: "1",
			Categories: []Category{{
				Name:   "passing",
				Labels: []string{"YDS", "TD"},
				Athletes: []AthleteLine{
					{Name: "QB One", Values: []string{"--", "1"}},
				},
			}},
		}},
	}
	res := New(testRules(t)).Extract(doc)

	qb := res.Players["qb one"]
	require.NotNil(t, qb)
	assert.Equal(t, 0, qb.PassYards)
	assert.Equal(t, 1, qb.PassTDs)
}

