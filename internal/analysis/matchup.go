package analysis

// LaneMatchup pairs one target-team participant with the opposing participant
// sharing the same role label. Opponent is nil when no opposing participant
// carries the role (unusual game modes, failed role detection).
type LaneMatchup struct {
	Player   *PlayerMetrics `json:"player"`
	Opponent *PlayerMetrics `json:"opponent,omitempty"`
}

// opponentIndex returns the index of the first role in roles equal to role, or
// -1 if none matches. This scan-in-enumeration-order rule is the single source
// of truth for lane pairing; the gold-differential computation in timeline.go
// uses it too.
func opponentIndex(role string, roles []string) int {
	for i, r := range roles {
		if r == role {
			return i
		}
	}
	return -1
}

// BuildMatchups produces one LaneMatchup per target-team participant, scanning
// the enemy list in its original order for the first same-role participant.
// Deterministic: identical inputs yield identical pairings, nil slots included.
func BuildMatchups(team, enemies []PlayerMetrics) []LaneMatchup {
	enemyRoles := make([]string, len(enemies))
	for i := range enemies {
		enemyRoles[i] = enemies[i].Role
	}

	matchups := make([]LaneMatchup, 0, len(team))
	for i := range team {
		m := LaneMatchup{Player: &team[i]}
		if j := opponentIndex(team[i].Role, enemyRoles); j >= 0 {
			m.Opponent = &enemies[j]
		}
		matchups = append(matchups, m)
	}
	return matchups
}
