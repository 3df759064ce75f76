package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "bestball.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)

	// Half-PPR scoring defaults.
	assert.Equal(t, 30.0, cfg.Scoring.PassYardsPerPoint)
	assert.Equal(t, 12.0, cfg.Scoring.RushYardsPerPoint)
	assert.Equal(t, 0.5, cfg.Scoring.Reception)
	assert.Equal(t, -1.0, cfg.Scoring.MissedXP)
	require.Len(t, cfg.Scoring.FieldGoalBands, 3)
	assert.Equal(t, 39, cfg.Scoring.FieldGoalBands[0].UpTo)
	assert.Equal(t, 5.0, cfg.Scoring.FieldGoalBands[2].Points)
	require.Len(t, cfg.Scoring.PointsAllowedBands, 7)
	assert.Equal(t, 10.0, cfg.Scoring.PointsAllowedBands[0].Points)

	assert.Equal(t, 0.60, cfg.Blend.BasePropWeight)
	assert.Equal(t, 2, cfg.Blend.MinPropCount)
	assert.Equal(t, 0.8, cfg.Blend.RecencyDecay)
	assert.Equal(t, 0.30, cfg.Blend.MinPropWeight)
	assert.Equal(t, 0.90, cfg.Blend.MaxPropWeight)

	assert.Equal(t, 0.8, cfg.Match.MinSimilarity)
	assert.Equal(t, []int{6, 10, 12, 13}, cfg.Bracket.EliminatedThresholds)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BESTBALL_STORE_DRIVER", "postgres")
	t.Setenv("BESTBALL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/bestball
blend:
  base_prop_weight: 0.55
scoring:
  reception: 1.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 0.55, cfg.Blend.BasePropWeight)
	assert.Equal(t, 1.0, cfg.Scoring.Reception, "full PPR override")
	assert.Equal(t, 0.05, cfg.Blend.PerPropBonus, "untouched keys keep defaults")
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level", Format: "json"}))
}
