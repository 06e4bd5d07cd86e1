package analysis

import (
	"errors"
	"fmt"

	"zoebot/internal/champion"
	"zoebot/internal/riot"
)

// ErrMalformedMatch is returned when the match payload cannot support an
// analysis at all (no participants).
var ErrMalformedMatch = errors.New("match has no participants")

// MatchSummary is the complete analysis bundle for one player in one match.
// It is what the scoring prompt is built from, and its JSON form is what gets
// archived.
type MatchSummary struct {
	MatchID             string            `json:"matchId"`
	GameDuration        int               `json:"gameDuration"` // seconds
	GameDurationMinutes float64           `json:"gameDurationMinutes"`
	GameMode            string            `json:"gameMode"`
	Win                 bool              `json:"win"`
	TargetName          string            `json:"targetPlayer"`
	Teammates           []PlayerMetrics   `json:"teammates"`
	Matchups            []LaneMatchup     `json:"laneMatchups"`
	Timeline            *TimelineInsights `json:"timeline_insights,omitempty"`
}

// BuildSummary assembles the full analysis bundle for the target player. The
// timeline may be nil; the summary then simply carries no timeline insights.
// The target missing from the match or an empty participant list is a hard
// error.
func BuildSummary(match *riot.MatchResponse, timeline *riot.TimelineResponse, targetPUUID string, catalog *champion.Catalog) (*MatchSummary, error) {
	if match == nil {
		return nil, ErrMalformedMatch
	}
	if len(match.Info.Participants) == 0 {
		return nil, fmt.Errorf("building summary for %s: %w", match.Metadata.MatchID, ErrMalformedMatch)
	}

	roster := BuildRoster(match.Info.Participants)
	target, ok := roster.ByPUUID(targetPUUID)
	if !ok {
		return nil, fmt.Errorf("building summary for %s: %w", match.Metadata.MatchID, ErrTargetNotInMatch)
	}

	minutes := DurationMinutes(match.Info.GameDuration)

	var team, enemies []PlayerMetrics
	for _, p := range match.Info.Participants {
		m := ExtractMetrics(p, minutes, catalog)
		if p.TeamID == target.TeamID {
			team = append(team, m)
		} else {
			enemies = append(enemies, m)
		}
	}

	return &MatchSummary{
		MatchID:             match.Metadata.MatchID,
		GameDuration:        match.Info.GameDuration,
		GameDurationMinutes: round1(minutes),
		GameMode:            match.Info.GameMode,
		Win:                 target.Win,
		TargetName:          target.Name,
		Teammates:           team,
		Matchups:            BuildMatchups(team, enemies),
		Timeline:            AnalyzeTimeline(timeline, roster, target.TeamID),
	}, nil
}
