package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Blend   BlendConfig   `yaml:"blend" mapstructure:"blend"`
	Match   MatchConfig   `yaml:"match" mapstructure:"match"`
	Bracket BracketConfig `yaml:"bracket" mapstructure:"bracket"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// Band is one threshold band of a banded lookup table. UpTo is the
// inclusive upper bound. The final band of a table is always open-ended
// and its UpTo is ignored.
type Band struct {
	UpTo   int     `yaml:"up_to" mapstructure:"up_to"`
	Points float64 `yaml:"points" mapstructure:"points"`
}

// ScoringConfig holds every point value and threshold of a league rule set.
// Multiple rule sets can coexist, so none of these are package constants.
type ScoringConfig struct {
	PassYardsPerPoint float64 `yaml:"pass_yards_per_point" mapstructure:"pass_yards_per_point"`
	RushYardsPerPoint float64 `yaml:"rush_yards_per_point" mapstructure:"rush_yards_per_point"`
	RecYardsPerPoint  float64 `yaml:"rec_yards_per_point" mapstructure:"rec_yards_per_point"`

	PassTD float64 `yaml:"pass_td" mapstructure:"pass_td"`
	RushTD float64 `yaml:"rush_td" mapstructure:"rush_td"`
	RecTD  float64 `yaml:"rec_td" mapstructure:"rec_td"`

	Reception    float64 `yaml:"reception" mapstructure:"reception"`
	Interception float64 `yaml:"interception" mapstructure:"interception"`
	FumbleLost   float64 `yaml:"fumble_lost" mapstructure:"fumble_lost"`
	TwoPoint     float64 `yaml:"two_point" mapstructure:"two_point"`
	ExtraPoint   float64 `yaml:"extra_point" mapstructure:"extra_point"`
	MissedXP     float64 `yaml:"missed_xp" mapstructure:"missed_xp"`

	FieldGoalBands []Band `yaml:"field_goal_bands" mapstructure:"field_goal_bands"`

	Sack            float64 `yaml:"sack" mapstructure:"sack"`
	DefInterception float64 `yaml:"def_interception" mapstructure:"def_interception"`
	FumbleRecovery  float64 `yaml:"fumble_recovery" mapstructure:"fumble_recovery"`
	DefTD           float64 `yaml:"def_td" mapstructure:"def_td"`
	Safety          float64 `yaml:"safety" mapstructure:"safety"`

	PointsAllowedBands []Band `yaml:"points_allowed_bands" mapstructure:"points_allowed_bands"`
}

// BlendConfig configures the adaptive projection blender.
type BlendConfig struct {
	BasePropWeight       float64 `yaml:"base_prop_weight" mapstructure:"base_prop_weight"`
	PerPropBonus         float64 `yaml:"per_prop_bonus" mapstructure:"per_prop_bonus"`
	PerPropBonusCap      float64 `yaml:"per_prop_bonus_cap" mapstructure:"per_prop_bonus_cap"`
	FreshnessBonus       float64 `yaml:"freshness_bonus" mapstructure:"freshness_bonus"`
	FreshnessWindowHours float64 `yaml:"freshness_window_hours" mapstructure:"freshness_window_hours"`
	ThinHistoryShift     float64 `yaml:"thin_history_shift" mapstructure:"thin_history_shift"`
	MinPropWeight        float64 `yaml:"min_prop_weight" mapstructure:"min_prop_weight"`
	MaxPropWeight        float64 `yaml:"max_prop_weight" mapstructure:"max_prop_weight"`
	MinPropCount         int     `yaml:"min_prop_count" mapstructure:"min_prop_count"`
	RecencyDecay         float64 `yaml:"recency_decay" mapstructure:"recency_decay"`
}

// MatchConfig configures the player/team name matcher.
type MatchConfig struct {
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"`
}

// BracketConfig configures current-round detection from elimination counts.
type BracketConfig struct {
	// EliminatedThresholds holds eliminated-team counts, one per bracket
	// round in play order; reaching threshold i places the season in the
	// round that follows Rounds()[i].
	EliminatedThresholds []int `yaml:"eliminated_thresholds" mapstructure:"eliminated_thresholds"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BESTBALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "bestball.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)

	// Half-PPR league defaults.
	v.SetDefault("scoring.pass_yards_per_point", 30.0)
	v.SetDefault("scoring.rush_yards_per_point", 12.0)
	v.SetDefault("scoring.rec_yards_per_point", 12.0)
	v.SetDefault("scoring.pass_td", 6.0)
	v.SetDefault("scoring.rush_td", 6.0)
	v.SetDefault("scoring.rec_td", 6.0)
	v.SetDefault("scoring.reception", 0.5)
	v.SetDefault("scoring.interception", -2.0)
	v.SetDefault("scoring.fumble_lost", -2.0)
	v.SetDefault("scoring.two_point", 2.0)
	v.SetDefault("scoring.extra_point", 1.0)
	v.SetDefault("scoring.missed_xp", -1.0)
	v.SetDefault("scoring.field_goal_bands", []map[string]any{
		{"up_to": 39, "points": 3.0},
		{"up_to": 49, "points": 4.0},
		{"up_to": 50, "points": 5.0},
	})
	v.SetDefault("scoring.sack", 1.0)
	v.SetDefault("scoring.def_interception", 2.0)
	v.SetDefault("scoring.fumble_recovery", 2.0)
	v.SetDefault("scoring.def_td", 6.0)
	v.SetDefault("scoring.safety", 2.0)
	v.SetDefault("scoring.points_allowed_bands", []map[string]any{
		{"up_to": 0, "points": 10.0},
		{"up_to": 6, "points": 7.0},
		{"up_to": 13, "points": 4.0},
		{"up_to": 20, "points": 1.0},
		{"up_to": 27, "points": 0.0},
		{"up_to": 34, "points": -1.0},
		{"up_to": 35, "points": -4.0},
	})

	v.SetDefault("blend.base_prop_weight", 0.60)
	v.SetDefault("blend.per_prop_bonus", 0.05)
	v.SetDefault("blend.per_prop_bonus_cap", 0.15)
	v.SetDefault("blend.freshness_bonus", 0.05)
	v.SetDefault("blend.freshness_window_hours", 24.0)
	v.SetDefault("blend.thin_history_shift", 0.10)
	v.SetDefault("blend.min_prop_weight", 0.30)
	v.SetDefault("blend.max_prop_weight", 0.90)
	v.SetDefault("blend.min_prop_count", 2)
	v.SetDefault("blend.recency_decay", 0.8)

	v.SetDefault("match.min_similarity", 0.8)

	v.SetDefault("bracket.eliminated_thresholds", []int{6, 10, 12, 13})
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
