package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"zoebot/internal/champion"
	"zoebot/internal/riot"
)

const championFixture = `{
	"version": "14.1.1",
	"data": {
		"Jinx":   {"name": "Jinx", "tags": ["Marksman"], "info": {"attack": 9, "defense": 2, "magic": 4}},
		"Malphite": {"name": "Malphite", "tags": ["Tank", "Fighter"], "info": {"attack": 5, "defense": 9, "magic": 7}},
		"Zyra":   {"name": "Zyra", "tags": ["Mage", "Support"], "info": {"attack": 4, "defense": 3, "magic": 8}}
	}
}`

func testCatalog(t *testing.T) *champion.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "champion.json")
	if err := os.WriteFile(path, []byte(championFixture), 0o644); err != nil {
		t.Fatalf("writing champion fixture: %v", err)
	}
	catalog, err := champion.LoadFile(path)
	if err != nil {
		t.Fatalf("loading champion fixture: %v", err)
	}
	return catalog
}

func makeParticipant(id int, name string, teamID int, role, champ string, win bool) riot.Participant {
	return riot.Participant{
		ParticipantID:  id,
		PUUID:          "puuid-" + name,
		RiotIDGameName: name,
		TeamID:         teamID,
		TeamPosition:   role,
		ChampionName:   champ,
		Win:            win,
	}
}

// makeFullMatch builds a standard 5v5 with team 100 winning. The target used
// throughout the tests is Alice (puuid-Alice, participant 1, BOTTOM, Jinx).
func makeFullMatch(durationSeconds int) *riot.MatchResponse {
	return &riot.MatchResponse{
		Metadata: riot.MatchMetadata{MatchID: "VN2_100200300"},
		Info: riot.MatchInfo{
			GameDuration: durationSeconds,
			GameMode:     "CLASSIC",
			Participants: []riot.Participant{
				makeParticipant(1, "Alice", 100, RoleBottom, "Jinx", true),
				makeParticipant(2, "Bob", 100, RoleTop, "Malphite", true),
				makeParticipant(3, "Carol", 100, RoleJungle, "Zyra", true),
				makeParticipant(4, "Dave", 100, RoleMiddle, "Zyra", true),
				makeParticipant(5, "Erin", 100, RoleUtility, "Zyra", true),
				makeParticipant(6, "Frank", 200, RoleBottom, "Jinx", false),
				makeParticipant(7, "Grace", 200, RoleTop, "Malphite", false),
				makeParticipant(8, "Heidi", 200, RoleJungle, "Zyra", false),
				makeParticipant(9, "Ivan", 200, RoleMiddle, "Zyra", false),
				makeParticipant(10, "Judy", 200, RoleUtility, "Zyra", false),
			},
		},
	}
}

func killEvent(tsMillis int64, killerID, victimID int) riot.TimelineEvent {
	return riot.TimelineEvent{
		Type:      "CHAMPION_KILL",
		Timestamp: tsMillis,
		KillerID:  killerID,
		VictimID:  victimID,
	}
}
