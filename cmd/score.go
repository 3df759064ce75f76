package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/boxscore"
	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/points"
	"github.com/gridiron-labs/bestball/internal/roster"
	"github.com/gridiron-labs/bestball/internal/rules"
	"github.com/gridiron-labs/bestball/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score <boxscore.json>",
	Short: "Score a box score under the configured rule set",
	Long: `Extracts raw stat lines from a provider box-score document and applies
the configured scoring rules.

Field goals and two-point conversions are recovered from scoring-play text;
defense lines are derived from the opponent's giveaways and the final score.

With --save, roster players are matched against the extracted lines by
normalized name and their week scores recorded; box-score players that
match no roster player are reported as unmatched, never as an error.

Examples:
  # Print every scored line from a game
  score wk1_kc_buf.json --week 1

  # Record week scores for rostered players
  score wk1_kc_buf.json --week 1 --save

  # Export to CSV
  score wk1_kc_buf.json --week 1 --format csv --output scores.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.Int("week", 1, "playoff week the box score belongs to")
	f.Bool("save", false, "record week scores for rostered players")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(scoreCmd)
}

type scoredLine struct {
	Name      string
	Defense   bool
	Breakdown model.Breakdown
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	week, _ := cmd.Flags().GetInt("week")
	save, _ := cmd.Flags().GetBool("save")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	r, err := rules.FromConfig(cfg.Scoring)
	if err != nil {
		return err
	}

	doc, err := loadDocument(args[0])
	if err != nil {
		return eris.Wrap(err, "score: load box score")
	}

	res := boxscore.New(r).Extract(doc)

	lines := make([]scoredLine, 0, len(res.Players))
	for _, line := range res.Players {
		lines = append(lines, scoredLine{Name: line.Name, Breakdown: points.Calculate(line, r)})
	}
	seen := make(map[*model.RawDefenseLine]bool)
	for _, def := range res.Defenses {
		if seen[def] {
			continue
		}
		seen[def] = true
		lines = append(lines, scoredLine{
			Name:      def.Abbreviation + " DST",
			Defense:   true,
			Breakdown: points.CalculateDefense(def, r),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Breakdown.Total > lines[j].Breakdown.Total })

	if err := writeScores(lines, format, outputPath); err != nil {
		return err
	}

	zap.L().Info("score: box score extracted",
		zap.Int("players", len(res.Players)),
		zap.Int("unmatched_plays", res.Unmatched),
	)

	if !save {
		return nil
	}
	return saveWeekScores(ctx, res, r, week)
}

// saveWeekScores matches rostered players against the extracted lines and
// records their week scores under stable player ids.
func saveWeekScores(ctx context.Context, res boxscore.Result, r rules.Rules, week int) error {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	slots, err := st.Rosters(ctx)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return eris.New("score: no rosters loaded; run `bestball rosters` first")
	}

	playerKeys := make([]string, 0, len(res.Players))
	for key := range res.Players {
		playerKeys = append(playerKeys, key)
	}
	sort.Strings(playerKeys)

	matcher := match.New(cfg.Match.MinSimilarity)
	saved, unmatched := 0, 0

	for _, slot := range slots {
		active := roster.Active(slot, week)

		var breakdown model.Breakdown
		if active.Position == model.PositionDST {
			def, ok := res.Defenses[match.Normalize(active.Name)]
			if !ok {
				def, ok = res.Defenses[match.Normalize(active.Team)]
			}
			if !ok {
				continue // defense not in this game
			}
			breakdown = points.CalculateDefense(def, r)
		} else {
			key, kind, ok := matcher.Match(active.Name, playerKeys)
			if !ok {
				unmatched++
				continue
			}
			if kind != match.KindExact {
				zap.L().Debug("score: non-exact player match",
					zap.String("roster_name", active.Name),
					zap.String("matched_key", key),
					zap.String("kind", kind.String()),
				)
			}
			breakdown = points.Calculate(res.Players[key], r)
		}

		err := st.SaveWeekScore(ctx, model.PlayerWeekScore{
			PlayerID:  active.ID,
			Week:      week,
			Points:    breakdown.Total,
			Breakdown: breakdown,
		})
		if err != nil {
			return err
		}
		saved++
	}

	zap.L().Info("score: week scores recorded",
		zap.Int("week", week),
		zap.Int("saved", saved),
		zap.Int("unmatched_players", unmatched),
	)
	fmt.Printf("saved %d week scores (%d roster players unmatched)\n", saved, unmatched)
	return nil
}

func writeScores(lines []scoredLine, format, outputPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create %s", outputPath)
		}
		defer f.Close()
		out = f
	}

	if format == "csv" {
		w := csv.NewWriter(out)
		if err := w.Write([]string{"name", "type", "points"}); err != nil {
			return eris.Wrap(err, "score: write csv header")
		}
		for _, l := range lines {
			kind := "player"
			if l.Defense {
				kind = "defense"
			}
			rec := []string{l.Name, kind, strconv.FormatFloat(model.Round2(l.Breakdown.Total), 'f', 2, 64)}
			if err := w.Write(rec); err != nil {
				return eris.Wrap(err, "score: write csv row")
			}
		}
		w.Flush()
		return eris.Wrap(w.Error(), "score: flush csv")
	}

	fmt.Fprintf(out, "%-28s %8s\n", "NAME", "POINTS")
	for _, l := range lines {
		fmt.Fprintf(out, "%-28s %8.2f\n", l.Name, model.Round2(l.Breakdown.Total))
	}
	return nil
}
