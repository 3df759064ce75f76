package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/store"
)

var rostersCmd = &cobra.Command{
	Use:   "rosters <rosters.yaml>",
	Short: "Load owner rosters into the store",
	Long: `Reads a roster definition file and upserts every slot.

Example file:

  owners:
    - name: Alice
      slots:
        - slot: QB
          player: {id: p-mahomes, name: Patrick Mahomes, position: QB, team: KC}
        - slot: RB1
          player: {id: p-pacheco, name: Isiah Pacheco, position: RB, team: KC}
          substitution:
            effective_week: 2
            reason: injury
            player: {id: p-perine, name: Samaje Perine, position: RB, team: KC}`,
	Args: cobra.ExactArgs(1),
	RunE: runRosters,
}

func init() {
	rootCmd.AddCommand(rostersCmd)
}

// YAML shapes with explicit tags; model types carry JSON tags only.
type rosterFile struct {
	Owners []struct {
		Name  string `yaml:"name"`
		Slots []struct {
			Slot         string     `yaml:"slot"`
			Player       yamlPlayer `yaml:"player"`
			Substitution *struct {
				EffectiveWeek int        `yaml:"effective_week"`
				Reason        string     `yaml:"reason"`
				Player        yamlPlayer `yaml:"player"`
			} `yaml:"substitution"`
		} `yaml:"slots"`
	} `yaml:"owners"`
}

type yamlPlayer struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Team     string `yaml:"team"`
}

func (p yamlPlayer) toModel() (model.Player, error) {
	pos := model.Position(p.Position)
	if !pos.Valid() {
		return model.Player{}, eris.Errorf("rosters: unknown position %q for %s", p.Position, p.Name)
	}
	return model.Player{ID: p.ID, Name: p.Name, Position: pos, Team: p.Team}, nil
}

func runRosters(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return eris.Wrapf(err, "rosters: read %s", args[0])
	}
	var file rosterFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return eris.Wrapf(err, "rosters: parse %s", args[0])
	}

	var slots []model.RosterSlot
	for _, owner := range file.Owners {
		for _, s := range owner.Slots {
			player, err := s.Player.toModel()
			if err != nil {
				return err
			}
			slot := model.RosterSlot{
				ID:     owner.Name + "/" + s.Slot,
				Owner:  owner.Name,
				Slot:   model.SlotName(s.Slot),
				Player: player,
			}
			if s.Substitution != nil {
				sub, err := s.Substitution.Player.toModel()
				if err != nil {
					return err
				}
				slot.Substitution = &model.Substitution{
					EffectiveWeek: s.Substitution.EffectiveWeek,
					Reason:        s.Substitution.Reason,
					Player:        sub,
				}
			}
			slots = append(slots, slot)
		}
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	if err := st.SaveRoster(ctx, slots); err != nil {
		return err
	}

	fmt.Printf("loaded %d roster slots for %d owners\n", len(slots), len(file.Owners))
	return nil
}
