package analysis

import (
	"math"
	"strconv"

	"zoebot/internal/riot"
)

// Timeline event types we care about.
const (
	eventChampionKill   = "CHAMPION_KILL"
	eventEliteMonster   = "ELITE_MONSTER_KILL"
	eventPlateDestroyed = "TURRET_PLATE_DESTROYED"
)

const (
	// Checkpoint frames are matched within this tolerance (minutes).
	checkpointTolerance = 0.5

	// Caps keep the downstream prompt bounded.
	maxTeamDeaths = 5
	maxTeamKills  = 10
)

// goldCheckpoints are the elapsed-time marks (minutes) snapshotted from the
// frame stream. Only the 10-minute differential is surfaced in the bundle.
var goldCheckpoints = []int{5, 10, 15}

// KillEvent is a champion kill with names resolved and time in minutes.
type KillEvent struct {
	TimeMin        float64  `json:"time_min"`
	Killer         string   `json:"killer"`
	KillerID       int      `json:"killer_id"`
	Victim         string   `json:"victim"`
	VictimID       int      `json:"victim_id"`
	Assists        []string `json:"assists,omitempty"`
	Bounty         int      `json:"bounty"`
	ShutdownBounty int      `json:"shutdown_bounty"`
	KillStreak     int      `json:"kill_streak"`
}

// DeathEvent is a target-team death.
type DeathEvent struct {
	TimeMin float64 `json:"time_min"`
	Player  string  `json:"player"`
	Role    string  `json:"position"`
	Killer  string  `json:"killer"`
}

// ObjectiveEvent is an elite monster kill by either team.
type ObjectiveEvent struct {
	TimeMin        float64 `json:"time_min"`
	MonsterType    string  `json:"monster_type"`
	MonsterSubType string  `json:"monster_subtype,omitempty"`
	Killer         string  `json:"killer"`
	KillerTeam     int     `json:"killer_team"`
}

// GoldDiff is one target-team participant's gold standing versus the same-role
// opponent at a checkpoint.
type GoldDiff struct {
	Gold         int    `json:"gold"`
	OpponentGold int    `json:"opponent_gold"`
	Diff         int    `json:"diff"`
	Role         string `json:"position"`
}

// TimelineInsights is the derived timeline bundle. Every view is computed from
// the same ordered event list and frame snapshots.
type TimelineInsights struct {
	FirstBlood     *KillEvent          `json:"first_blood,omitempty"`
	TeamDeaths     []DeathEvent        `json:"deaths_timeline"`
	TeamKills      []KillEvent         `json:"kills_timeline"`
	Objectives     []ObjectiveEvent    `json:"objective_kills"`
	PlatesTaken    int                 `json:"turret_plates_destroyed"`
	PlatesLost     int                 `json:"turret_plates_lost"`
	GoldDiffAt10   map[string]GoldDiff `json:"gold_diff_10min"`
	TeamDeathsBy10 int                 `json:"total_team_deaths_by_10min"`
}

// AnalyzeTimeline derives insights from the raw timeline for the given target
// team. A nil or frameless timeline yields nil: degraded analysis without
// timeline data is expected, not an error.
func AnalyzeTimeline(tl *riot.TimelineResponse, roster *Roster, targetTeam int) *TimelineInsights {
	if tl == nil || len(tl.Info.Frames) == 0 {
		return nil
	}

	insights := &TimelineInsights{
		GoldDiffAt10: make(map[string]GoldDiff),
	}

	// checkpoint minute -> participant id -> total gold
	goldSnapshots := make(map[int]map[int]int)

	for _, frame := range tl.Info.Frames {
		frameMin := float64(frame.Timestamp) / 1000 / 60

		// Snapshot the first frame that lands inside each checkpoint window.
		for _, mark := range goldCheckpoints {
			if math.Abs(frameMin-float64(mark)) >= checkpointTolerance {
				continue
			}
			if _, exists := goldSnapshots[mark]; exists {
				continue
			}
			snapshot := make(map[int]int, len(frame.ParticipantFrames))
			for pidStr, pf := range frame.ParticipantFrames {
				pid, err := strconv.Atoi(pidStr)
				if err != nil {
					continue
				}
				snapshot[pid] = pf.TotalGold
			}
			goldSnapshots[mark] = snapshot
		}

		for _, event := range frame.Events {
			eventMin := round1(float64(event.Timestamp) / 1000 / 60)

			switch event.Type {
			case eventChampionKill:
				kill := KillEvent{
					TimeMin:        eventMin,
					Killer:         roster.NameOf(event.KillerID),
					KillerID:       event.KillerID,
					Victim:         roster.NameOf(event.VictimID),
					VictimID:       event.VictimID,
					Bounty:         event.Bounty,
					ShutdownBounty: event.ShutdownBounty,
					KillStreak:     event.KillStreakLength,
				}
				for _, assistID := range event.AssistingParticipantIDs {
					kill.Assists = append(kill.Assists, roster.NameOf(assistID))
				}

				if insights.FirstBlood == nil {
					fb := kill
					insights.FirstBlood = &fb
				}

				if roster.TeamOf(event.VictimID) == targetTeam {
					if eventMin <= 10 {
						insights.TeamDeathsBy10++
					}
					if len(insights.TeamDeaths) < maxTeamDeaths {
						insights.TeamDeaths = append(insights.TeamDeaths, DeathEvent{
							TimeMin: eventMin,
							Player:  roster.NameOf(event.VictimID),
							Role:    roster.RoleOf(event.VictimID),
							Killer:  roster.NameOf(event.KillerID),
						})
					}
				}

				if roster.TeamOf(event.KillerID) == targetTeam && len(insights.TeamKills) < maxTeamKills {
					insights.TeamKills = append(insights.TeamKills, kill)
				}

			case eventEliteMonster:
				insights.Objectives = append(insights.Objectives, ObjectiveEvent{
					TimeMin:        eventMin,
					MonsterType:    event.MonsterType,
					MonsterSubType: event.MonsterSubType,
					Killer:         roster.NameOf(event.KillerID),
					KillerTeam:     roster.TeamOf(event.KillerID),
				})

			case eventPlateDestroyed:
				// event.TeamID is the team whose plate was destroyed
				if event.TeamID != targetTeam {
					insights.PlatesTaken++
				} else {
					insights.PlatesLost++
				}
			}
		}
	}

	if gold10, ok := goldSnapshots[10]; ok {
		insights.GoldDiffAt10 = goldDifferential(gold10, roster, targetTeam)
	}

	return insights
}

// goldDifferential computes, per target-team participant, gold at the
// checkpoint minus the same-role opponent's gold. Participants without a
// same-role opponent are absent from the result, not zeroed.
func goldDifferential(gold map[int]int, roster *Roster, targetTeam int) map[string]GoldDiff {
	team := roster.TeamMembers(targetTeam)
	var enemies []ParticipantRecord
	for _, rec := range roster.Records {
		if rec.TeamID != targetTeam {
			enemies = append(enemies, rec)
		}
	}

	enemyRoles := make([]string, len(enemies))
	for i := range enemies {
		enemyRoles[i] = enemies[i].Role
	}

	diffs := make(map[string]GoldDiff, len(team))
	for _, rec := range team {
		j := opponentIndex(rec.Role, enemyRoles)
		if j < 0 {
			continue
		}
		playerGold := gold[rec.ID]
		oppGold := gold[enemies[j].ID]
		diffs[rec.Name] = GoldDiff{
			Gold:         playerGold,
			OpponentGold: oppGold,
			Diff:         playerGold - oppGold,
			Role:         rec.Role,
		}
	}
	return diffs
}
