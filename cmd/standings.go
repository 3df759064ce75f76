package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridiron-labs/bestball/internal/bracket"
	"github.com/gridiron-labs/bestball/internal/engine"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/projection"
	"github.com/gridiron-labs/bestball/internal/rules"
	"github.com/gridiron-labs/bestball/internal/store"
)

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Rank owners by actual points plus remaining bracket EV",
	Long: `Evaluates every roster slot for the given week: combined actual points,
the blended projection for the upcoming round, and the expected value of
the rest of the bracket. Owners are ranked by total value.

The current round is derived from the elimination count in the season
context file; --round overrides it.

Examples:
  standings --week 2 --context season.json --props props.json
  standings --week 3 --context season.json --format xlsx --output standings.xlsx`,
	RunE: runStandings,
}

func init() {
	f := standingsCmd.Flags()
	f.Int("week", 1, "playoff week to evaluate")
	f.Int("round", 0, "bracket round override (1, 2, 3, or 5)")
	f.String("props", "", "prop lines file (JSON)")
	f.String("context", "", "season context file (JSON)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	f.Int("concurrency", 8, "parallel score loads")

	rootCmd.AddCommand(standingsCmd)
}

func runStandings(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	week, _ := cmd.Flags().GetInt("week")
	roundFlag, _ := cmd.Flags().GetInt("round")
	propsPath, _ := cmd.Flags().GetString("props")
	contextPath, _ := cmd.Flags().GetString("context")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("standings: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("standings: --format xlsx requires --output")
	}

	r, err := rules.FromConfig(cfg.Scoring)
	if err != nil {
		return err
	}

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
		return eris.New("standings: no rosters loaded; run `bestball rosters` first")
	}

	sc, err := loadSeasonContext(contextPath)
	if err != nil {
		return eris.Wrap(err, "standings: load season context")
	}
	lines, err := loadPropLines(propsPath)
	if err != nil {
		return eris.Wrap(err, "standings: load props")
	}

	scores, err := loadScores(ctx, st, slots, concurrency)
	if err != nil {
		return err
	}

	round := resolveRound(sc, roundFlag)
	eng := engine.New(r, projection.NewBlender(cfg.Blend))
	standings := eng.Standings(slots, sc.engineInputs(week, round, scores, propsByPlayer(lines)))

	zap.L().Info("standings: evaluated",
		zap.Int("week", week),
		zap.Int("round", int(round)),
		zap.Int("owners", len(standings)),
		zap.Int("slots", len(slots)),
	)

	return writeStandings(standings, format, outputPath)
}

// resolveRound derives the current bracket round from the elimination
// count, honoring an explicit override.
func resolveRound(sc seasonContext, roundFlag int) model.BracketRound {
	var override *model.BracketRound
	if roundFlag != 0 {
		r := model.BracketRound(roundFlag)
		override = &r
	} else if sc.Round != 0 {
		r := model.BracketRound(sc.Round)
		override = &r
	}
	return bracket.CurrentRound(cfg.Bracket, len(sc.Eliminated), override)
}

// loadScores fans out one store read per distinct player id across the
// rosters, bounded by concurrency.
func loadScores(ctx context.Context, st store.Store, slots []model.RosterSlot, concurrency int) (map[string][]model.PlayerWeekScore, error) {
	ids := make(map[string]bool)
	for _, slot := range slots {
		ids[slot.Player.ID] = true
		if slot.Substitution != nil {
			ids[slot.Substitution.Player.ID] = true
		}
	}
	ordered := make([]string, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	scores := make(map[string][]model.PlayerWeekScore, len(ordered))

	for _, id := range ordered {
		g.Go(func() error {
			recorded, err := st.WeekScores(gctx, id)
			if err != nil {
				return err
			}
			if len(recorded) == 0 {
				return nil
			}
			mu.Lock()
			scores[id] = recorded
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func standingsRows(standings []engine.OwnerStanding) [][]string {
	rows := [][]string{{"rank", "owner", "actual", "remaining_ev", "total", "alive_slots"}}
	for i, s := range standings {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Owner,
			strconv.FormatFloat(model.Round2(s.ActualPoints), 'f', 2, 64),
			strconv.FormatFloat(model.Round2(s.RemainingEV), 'f', 2, 64),
			strconv.FormatFloat(model.Round2(s.TotalValue), 'f', 2, 64),
			strconv.Itoa(s.AliveSlots),
		})
	}
	return rows
}

func writeStandings(standings []engine.OwnerStanding, format, outputPath string) error {
	if format == "xlsx" {
		return writeStandingsXLSX(standings, outputPath)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "standings: create %s", outputPath)
		}
		defer f.Close()
		out = f
	}

	rows := standingsRows(standings)
	if format == "csv" {
		w := csv.NewWriter(out)
		if err := w.WriteAll(rows); err != nil {
			return eris.Wrap(err, "standings: write csv")
		}
		return nil
	}

	fmt.Fprintf(out, "%-4s %-20s %10s %12s %10s %6s\n",
		"RANK", "OWNER", "ACTUAL", "REMAINING", "TOTAL", "ALIVE")
	for _, row := range rows[1:] {
		fmt.Fprintf(out, "%-4s %-20s %10s %12s %10s %6s\n",
			row[0], row[1], row[2], row[3], row[4], row[5])
	}
	return nil
}

// writeStandingsXLSX writes a summary sheet plus one per-slot detail sheet
// per owner.
func writeStandingsXLSX(standings []engine.OwnerStanding, outputPath string) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Standings")
	if err != nil {
		return eris.Wrap(err, "standings: add summary sheet")
	}
	for _, row := range standingsRows(standings) {
		r := summary.AddRow()
		for _, v := range row {
			r.AddCell().Value = v
		}
	}

	detail, err := f.AddSheet("Slots")
	if err != nil {
		return eris.Wrap(err, "standings: add detail sheet")
	}
	header := detail.AddRow()
	for _, v := range []string{"owner", "slot", "player", "position", "actual", "projected", "low", "high", "confidence", "remaining_ev", "eliminated"} {
		header.AddCell().Value = v
	}
	for _, s := range standings {
		for _, res := range s.Slots {
			r := detail.AddRow()
			r.AddCell().Value = s.Owner
			r.AddCell().Value = string(res.Slot.Slot)
			r.AddCell().Value = res.ActivePlayer.Name
			r.AddCell().Value = string(res.ActivePlayer.Position)
			r.AddCell().Value = strconv.FormatFloat(model.Round2(res.ActualPoints), 'f', 2, 64)
			r.AddCell().Value = strconv.FormatFloat(model.Round2(res.Projection.Points), 'f', 2, 64)
			r.AddCell().Value = strconv.FormatFloat(model.Round2(res.Projection.Low), 'f', 2, 64)
			r.AddCell().Value = strconv.FormatFloat(model.Round2(res.Projection.High), 'f', 2, 64)
			r.AddCell().Value = string(res.Projection.Confidence)
			r.AddCell().Value = strconv.FormatFloat(model.Round2(res.Remaining.Total), 'f', 2, 64)
			r.AddCell().Value = strconv.FormatBool(res.Eliminated)
		}
	}

	return eris.Wrapf(f.Save(outputPath), "standings: save %s", outputPath)
}
