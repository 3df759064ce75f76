package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/projection"
	"github.com/gridiron-labs/bestball/internal/props"
	"github.com/gridiron-labs/bestball/internal/roster"
	"github.com/gridiron-labs/bestball/internal/rules"
	"github.com/gridiron-labs/bestball/internal/store"
)

var projectCmd = &cobra.Command{
	Use:   "project <player-id>",
	Short: "Project one rostered player's week points",
	Long: `Blends the player's sportsbook prop lines with their recorded playoff
history into a single point projection, then applies the venue weather
adjustment from the season context file.

The player must appear on a loaded roster; history is pooled across the
slot's original player and substitute at the substitution boundary.

Examples:
  project p-mahomes --week 2 --props props.json --context season.json
  project p-mahomes --week 2 --props props.json --save`,
	Args: cobra.ExactArgs(1),
	RunE: runProject,
}

func init() {
	f := projectCmd.Flags()
	f.Int("week", 1, "playoff week to project")
	f.String("props", "", "prop lines file (JSON)")
	f.String("context", "", "season context file with weather reports (JSON)")
	f.Bool("save", false, "record the projection in the store")
	f.Bool("json", false, "emit the full projection as JSON")

	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	playerID := args[0]
	week, _ := cmd.Flags().GetInt("week")
	propsPath, _ := cmd.Flags().GetString("props")
	contextPath, _ := cmd.Flags().GetString("context")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	slot, ok, err := findSlot(ctx, st, playerID, week)
	if err != nil {
		return err
	}
	if !ok {
		return eris.Errorf("project: player %s is not on any roster", playerID)
	}
	active := roster.Active(slot, week)

	history, err := slotHistory(ctx, st, slot)
	if err != nil {
		return err
	}

	lines, err := loadPropLines(propsPath)
	if err != nil {
		return eris.Wrap(err, "project: load props")
	}
	r, err := rules.FromConfig(cfg.Scoring)
	if err != nil {
		return err
	}

	var propEst *props.Estimate
	if grouped := propsByPlayer(lines)[active.ID]; len(grouped) > 0 {
		est := props.Aggregate(grouped, active.Position, r)
		propEst = &est
	}

	sc, err := loadSeasonContext(contextPath)
	if err != nil {
		return eris.Wrap(err, "project: load season context")
	}
	var weather *model.WeatherReport
	for team, w := range sc.Weather {
		if match.Normalize(team) == match.Normalize(active.Team) {
			weather = w
			break
		}
	}

	blender := projection.NewBlender(cfg.Blend)
	proj := blender.Project(projection.Input{
		PlayerID: active.ID,
		Position: active.Position,
		Week:     week,
		Props:    propEst,
		History:  history,
		Weather:  weather,
	})

	if save {
		if err := st.SaveProjection(ctx, proj); err != nil {
			return err
		}
		zap.L().Info("project: projection recorded",
			zap.String("player_id", active.ID),
			zap.Int("week", week),
		)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(proj), "project: encode projection")
	}

	fmt.Printf("%s (%s, %s) week %d\n", active.Name, active.Position, active.Team, week)
	fmt.Printf("  points      %.2f  (%.2f - %.2f)\n", model.Round2(proj.Points), model.Round2(proj.Low), model.Round2(proj.High))
	fmt.Printf("  source      %s\n", proj.Source)
	fmt.Printf("  confidence  %s (%.0f)\n", proj.Confidence, proj.Score)
	fmt.Printf("  weights     props %.2f / history %.2f\n", proj.PropWeight, proj.HistoricalWeight)
	if proj.WeatherMultiplier != 1.0 {
		fmt.Printf("  weather     x%.2f\n", proj.WeatherMultiplier)
	}
	return nil
}

// findSlot locates the roster slot whose active player for the week has the
// given id; the original player's id also matches before the boundary.
func findSlot(ctx context.Context, st store.Store, playerID string, week int) (model.RosterSlot, bool, error) {
	slots, err := st.Rosters(ctx)
	if err != nil {
		return model.RosterSlot{}, false, err
	}
	for _, slot := range slots {
		if roster.Active(slot, week).ID == playerID || slot.Player.ID == playerID {
			return slot, true, nil
		}
	}
	return model.RosterSlot{}, false, nil
}

// slotHistory pools recorded scores for both players bound to a slot and
// filters them at the substitution boundary.
func slotHistory(ctx context.Context, st store.Store, slot model.RosterSlot) ([]model.PlayerWeekScore, error) {
	pooled, err := st.WeekScores(ctx, slot.Player.ID)
	if err != nil {
		return nil, err
	}
	if slot.Substitution != nil && slot.Substitution.Player.ID != slot.Player.ID {
		more, err := st.WeekScores(ctx, slot.Substitution.Player.ID)
		if err != nil {
			return nil, err
		}
		pooled = append(pooled, more...)
	}
	return roster.CombinedHistory(slot, pooled), nil
}
