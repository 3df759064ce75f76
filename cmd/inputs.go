package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/gridiron-labs/bestball/internal/boxscore"
	"github.com/gridiron-labs/bestball/internal/engine"
	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
)

// seasonContext is the externally derived bracket state the engine
// consumes: win probabilities, elimination results, byes, and weather.
type seasonContext struct {
	Week       int                             `json:"week"`
	Round      int                             `json:"round,omitempty"`
	Eliminated []string                        `json:"eliminated"`
	Byes       []string                        `json:"byes"`
	WinProbs   []model.WinProbability          `json:"win_probs"`
	Weather    map[string]*model.WeatherReport `json:"weather"`
}

func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return eris.Wrapf(err, "parse %s", path)
	}
	return nil
}

func loadDocument(path string) (boxscore.Document, error) {
	var doc boxscore.Document
	err := loadJSON(path, &doc)
	return doc, err
}

func loadPropLines(path string) ([]model.PropLine, error) {
	var lines []model.PropLine
	if path == "" {
		return nil, nil
	}
	err := loadJSON(path, &lines)
	return lines, err
}

// propsByPlayer groups prop lines by player id.
func propsByPlayer(lines []model.PropLine) map[string][]model.PropLine {
	out := make(map[string][]model.PropLine)
	for _, l := range lines {
		out[l.PlayerID] = append(out[l.PlayerID], l)
	}
	return out
}

func loadSeasonContext(path string) (seasonContext, error) {
	var sc seasonContext
	if path == "" {
		return sc, nil
	}
	err := loadJSON(path, &sc)
	return sc, err
}

// engineInputs converts the context file into engine inputs, normalizing
// every team key.
func (sc seasonContext) engineInputs(week int, round model.BracketRound, scores map[string][]model.PlayerWeekScore, props map[string][]model.PropLine) engine.Inputs {
	weather := make(map[string]*model.WeatherReport, len(sc.Weather))
	for team, w := range sc.Weather {
		weather[match.Normalize(team)] = w
	}

	winProbs := make(map[string]map[model.BracketRound]float64)
	for _, wp := range sc.WinProbs {
		team := match.Normalize(wp.Team)
		if winProbs[team] == nil {
			winProbs[team] = make(map[model.BracketRound]float64)
		}
		winProbs[team][wp.Round] = wp.Probability
	}

	eliminated := make(model.TeamSet, len(sc.Eliminated))
	for _, t := range sc.Eliminated {
		eliminated[match.Normalize(t)] = true
	}
	byes := make(model.TeamSet, len(sc.Byes))
	for _, t := range sc.Byes {
		byes[match.Normalize(t)] = true
	}

	return engine.Inputs{
		Week:       week,
		Round:      round,
		Scores:     scores,
		Props:      props,
		Weather:    weather,
		WinProbs:   winProbs,
		Eliminated: eliminated,
		Byes:       byes,
	}
}
