// Package boxscore normalizes provider box-score documents into canonical
// per-player and per-team raw stat lines.
package boxscore

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/rules"
)

// Result holds extraction output. Players and Defenses are keyed by
// normalized name; each defense line is additionally stored under its
// abbreviation and "ABBR DST" keys.
type Result struct {
	Players  map[string]*model.RawStatLine
	Defenses map[string]*model.RawDefenseLine
	// Unmatched counts scoring plays whose player could not be credited.
	// Reported to the caller, never raised as an error.
	Unmatched int
}

// Extractor turns a Document into raw stat lines. Field-goal points are
// banded at extraction time, so the extractor carries the rule set.
type Extractor struct {
	rules rules.Rules
}

// New creates an Extractor for the given rule set.
func New(r rules.Rules) *Extractor {
	return &Extractor{rules: r}
}

// categoryKind is the closed set of stat tables the extractor understands.
type categoryKind int

const (
	catUnknown categoryKind = iota
	catPassing
	catRushing
	catReceiving
	catFumbles
	catKicking
)

func parseCategory(name string) categoryKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "passing":
		return catPassing
	case "rushing":
		return catRushing
	case "receiving":
		return catReceiving
	case "fumbles":
		return catFumbles
	case "kicking":
		return catKicking
	}
	return catUnknown
}

// Extract normalizes a full box score document.
func (e *Extractor) Extract(doc Document) Result {
	res := Result{
		Players:  make(map[string]*model.RawStatLine),
		Defenses: make(map[string]*model.RawDefenseLine),
	}

	abbrevs := make(map[string]string, len(doc.Competitors))
	for _, c := range doc.Competitors {
		abbrevs[c.ID] = c.Abbreviation
	}

	for _, team := range doc.Teams {
		for _, cat := range team.Categories {
			e.extractCategory(&res, cat, abbrevs[team.TeamID])
		}
	}

	for _, play := range doc.ScoringPlays {
		e.extractScoringPlay(&res, play)
	}

	e.extractDefenses(&res, doc)

	return res
}

// line returns the accumulating stat line for a player, creating it on
// first sight.
func (r *Result) line(name, team string) *model.RawStatLine {
	key := match.Normalize(name)
	if l, ok := r.Players[key]; ok {
		return l
	}
	l := &model.RawStatLine{Name: name, Team: team}
	r.Players[key] = l
	return l
}

// extractCategory walks one labeled table, resolving each column to a stat
// field by exact label match. Unmapped labels are ignored.
func (e *Extractor) extractCategory(res *Result, cat Category, team string) {
	kind := parseCategory(cat.Name)
	if kind == catUnknown {
		return
	}

	for _, ath := range cat.Athletes {
		if strings.TrimSpace(ath.Name) == "" {
			continue
		}
		line := res.line(ath.Name, team)
		for i, label := range cat.Labels {
			if i >= len(ath.Values) {
				break
			}
			applyStat(line, kind, strings.ToUpper(strings.TrimSpace(label)), ath.Values[i])
		}
	}
}

// applyStat maps one (category, label) cell onto the stat line.
func applyStat(line *model.RawStatLine, kind categoryKind, label, value string) {
	switch kind {
	case catPassing:
		switch label {
		case "YDS":
			line.PassYards += atoi(value)
		case "TD":
			line.PassTDs += atoi(value)
		case "INT":
			line.Interceptions += atoi(value)
		}
	case catRushing:
		switch label {
		case "YDS":
			line.RushYards += atoi(value)
		case "TD":
			line.RushTDs += atoi(value)
		}
	case catReceiving:
		switch label {
		case "REC":
			line.Receptions += atoi(value)
		case "YDS":
			line.RecYards += atoi(value)
		case "TD":
			line.RecTDs += atoi(value)
		}
	case catFumbles:
		if label == "LOST" {
			line.FumblesLost += atoi(value)
		}
	case catKicking:
		if label == "XP" || label == "PAT" {
			made, attempted := splitMadeAttempted(value)
			line.XPMade += made
			line.XPAttempted += attempted
		}
	}
}

// splitMadeAttempted parses a "made/attempted" compound like "3/3". A bare
// number is treated as made with attempted = made.
func splitMadeAttempted(v string) (made, attempted int) {
	parts := strings.SplitN(strings.TrimSpace(v), "/", 2)
	made = atoi(parts[0])
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		attempted = atoi(parts[1])
	} else {
		attempted = made
	}
	return made, attempted
}

// atoi parses an integer stat cell; anything unparseable is zero, since
// absence of data is modeled as zero rather than an error.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

var (
	fgMissedRe = regexp.MustCompile(`(?i)\b(missed|blocked|no good)\b`)

	// Distance patterns, in preference order.
	fgYdRe   = regexp.MustCompile(`(?i)\b(\d{1,3})\s*yd\b`)
	fgYardRe = regexp.MustCompile(`(?i)\b(\d{1,3})\s*[- ]?yard\b`)
	fgNumRe  = regexp.MustCompile(`\b(\d{1,3})\b`)

	twoPtFailRe = regexp.MustCompile(`(?i)\b(failed|fails|unsuccessful|incomplete|intercepted|no good)\b`)
)

// extractScoringPlay recovers field goals and two-point conversions, which
// never appear in the categorized tables, from free-text play descriptions.
func (e *Extractor) extractScoringPlay(res *Result, play ScoringPlay) {
	typeLower := strings.ToLower(play.TypeText)
	textLower := strings.ToLower(play.Text)

	if strings.Contains(typeLower, "field goal") {
		e.creditFieldGoal(res, play)
	}

	if isTwoPointText(textLower) {
		if twoPtFailRe.MatchString(textLower) {
			return
		}
		e.creditTwoPoint(res, play.Text)
	}
}

func isTwoPointText(lower string) bool {
	if !strings.Contains(lower, "conversion") {
		return false
	}
	return strings.Contains(lower, "two-point") ||
		strings.Contains(lower, "two point") ||
		strings.Contains(lower, "2-pt")
}

// creditFieldGoal credits a made field goal's banded points to the kicker,
// identified by last-name substring against players already seen in the
// categorized tables. A kicker the tables never mentioned cannot be
// credited.
func (e *Extractor) creditFieldGoal(res *Result, play ScoringPlay) {
	if fgMissedRe.MatchString(play.Text) {
		return
	}

	distance := fieldGoalDistance(play.Text)
	points := e.rules.FieldGoalPoints(distance)

	// Deterministic candidate order: map iteration must not decide who is
	// credited when two last names appear in one play.
	keys := make([]string, 0, len(res.Players))
	for key := range res.Players {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	normText := match.Normalize(play.Text)
	for _, key := range keys {
		last := match.LastName(key)
		if last != "" && strings.Contains(normText, last) {
			res.Players[key].FieldGoalPoints += points
			return
		}
	}

	res.Unmatched++
	zap.L().Debug("boxscore: field goal kicker not matched",
		zap.String("text", play.Text),
	)
}

// fieldGoalDistance extracts the kick distance via three pattern fallbacks.
// Zero (unparseable) defaults into the lowest band downstream.
func fieldGoalDistance(text string) int {
	for _, re := range []*regexp.Regexp{fgYdRe, fgYardRe, fgNumRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return atoi(m[1])
		}
	}
	return 0
}

// creditTwoPoint credits a successful conversion to every known player whose
// normalized name appears in the play text. The passer and the
// receiver/rusher both earn the conversion.
func (e *Extractor) creditTwoPoint(res *Result, text string) {
	normText := match.Normalize(text)
	credited := false
	for key, line := range res.Players {
		if key != "" && strings.Contains(normText, key) {
			line.TwoPointConversions++
			credited = true
		}
	}
	if !credited {
		res.Unmatched++
	}
}

// extractDefenses derives one defense line per competitor from the
// opponent's giveaway stats and final score, storing it under full name,
// abbreviation, and "ABBR DST" keys.
func (e *Extractor) extractDefenses(res *Result, doc Document) {
	if len(doc.Competitors) != 2 {
		return
	}

	stats := make(map[string]TeamStats, len(doc.Teams))
	for _, t := range doc.Teams {
		stats[t.TeamID] = t
	}

	for i, comp := range doc.Competitors {
		opp := doc.Competitors[1-i]
		own := stats[comp.ID]
		oppStats := stats[opp.ID]

		line := &model.RawDefenseLine{
			Team:             comp.DisplayName,
			Abbreviation:     comp.Abbreviation,
			Sacks:            sackCount(oppStats.SackYardsLost),
			Interceptions:    oppStats.InterceptionsThrown,
			FumbleRecoveries: oppStats.FumblesLost,
			DefensiveTDs:     own.DefensiveTDs,
			Safeties:         own.Safeties,
			PointsAllowed:    opp.Score,
		}

		for _, key := range []string{
			comp.DisplayName,
			comp.Abbreviation,
			comp.Abbreviation + " DST",
		} {
			res.Defenses[match.Normalize(key)] = line
		}
	}
}

// sackCount reads the integer before the first '-' of a compound
// "sacks-yards" string like "3-21".
func sackCount(sackYards string) int {
	before, _, _ := strings.Cut(strings.TrimSpace(sackYards), "-")
	return atoi(before)
}
