// Package bracket converts projections and per-round win probabilities into
// single-week and cumulative rest-of-bracket expected value.
package bracket

import (
	"github.com/gridiron-labs/bestball/internal/config"
	"github.com/gridiron-labs/bestball/internal/model"
)

// defaultWinProbability applies when a team is alive, not on a bye, and no
// sportsbook line is available.
const defaultWinProbability = 0.5

// WinProbs looks up a team's win probability for a round; the second return
// is false when no probability is available.
type WinProbs func(round model.BracketRound) (float64, bool)

// RoundEV is one remaining round's contribution.
type RoundEV struct {
	Round model.BracketRound `json:"round"`
	// AdvanceProb is the cumulative probability the team plays and wins
	// this round.
	AdvanceProb float64 `json:"advance_prob"`
	EV          float64 `json:"ev"`
	Bye         bool    `json:"bye,omitempty"`
}

// RemainingEV is the rest-of-bracket composition for one player.
type RemainingEV struct {
	Rounds []RoundEV `json:"rounds"`
	Total  float64   `json:"total"`
	// ChampionshipProb is the probability of winning the final round, nil
	// once the team is eliminated.
	ChampionshipProb *float64 `json:"championship_prob,omitempty"`
}

// byeSkipsRound isolates the bye special case: a top seed skips the Wild
// Card round only. If the bracket structure ever changes, this is the one
// place to generalize.
func byeSkipsRound(round model.BracketRound) bool {
	return round == model.RoundWildCard
}

// WeekEV computes a single week's expected value: projection times win
// probability. Returns nil once the team is eliminated (no further scoring
// possible). A Wild Card bye plays no game, so it contributes zero.
func WeekEV(points float64, round model.BracketRound, prob *float64, eliminated, bye bool) *float64 {
	if eliminated {
		return nil
	}
	if bye && byeSkipsRound(round) {
		zero := 0.0
		return &zero
	}
	p := defaultWinProbability
	if prob != nil {
		p = *prob
	}
	ev := points * p
	return &ev
}

// Remaining composes win probabilities across the remaining elimination
// rounds. The cumulative advance probability starts at 1.0 and multiplies
// through each round's win probability; a Wild Card bye holds it constant
// and contributes no EV.
func Remaining(points float64, from model.BracketRound, probs WinProbs, eliminated, bye bool) RemainingEV {
	if eliminated {
		return RemainingEV{}
	}

	var out RemainingEV
	cumulative := 1.0

	for _, round := range model.RoundsFrom(from) {
		if bye && byeSkipsRound(round) {
			out.Rounds = append(out.Rounds, RoundEV{
				Round:       round,
				AdvanceProb: cumulative,
				Bye:         true,
			})
			continue
		}

		p := defaultWinProbability
		if wp, ok := probs(round); ok {
			p = wp
		}

		advance := cumulative * p
		ev := points * advance
		out.Rounds = append(out.Rounds, RoundEV{
			Round:       round,
			AdvanceProb: advance,
			EV:          ev,
		})
		out.Total += ev
		cumulative = advance
	}

	champ := cumulative
	out.ChampionshipProb = &champ
	return out
}

// CurrentRound maps an eliminated-team count onto the round now in play:
// reaching a threshold completes the corresponding round. A non-nil
// override wins unconditionally (manual correction path).
func CurrentRound(cfg config.BracketConfig, eliminatedCount int, override *model.BracketRound) model.BracketRound {
	if override != nil && override.Valid() {
		return *override
	}

	rounds := model.Rounds()
	for i, threshold := range cfg.EliminatedThresholds {
		if i >= len(rounds) {
			break
		}
		if eliminatedCount < threshold {
			return rounds[i]
		}
	}
	return model.RoundSuperBowl
}
