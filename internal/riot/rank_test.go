package riot

import "testing"

func TestTierOrder(t *testing.T) {
	expectedOrder := []string{
		"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
		"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
	}

	for i := 0; i < len(expectedOrder)-1; i++ {
		current := expectedOrder[i]
		next := expectedOrder[i+1]
		if TierOrder[current] >= TierOrder[next] {
			t.Errorf("Tier order incorrect: %s (%d) should be less than %s (%d)",
				current, TierOrder[current], next, TierOrder[next])
		}
	}
}

func TestDivisionOrder(t *testing.T) {
	if DivisionOrder["IV"] >= DivisionOrder["III"] {
		t.Error("IV should be lower than III")
	}
	if DivisionOrder["III"] >= DivisionOrder["II"] {
		t.Error("III should be lower than II")
	}
	if DivisionOrder["II"] >= DivisionOrder["I"] {
		t.Error("II should be lower than I")
	}
}

func TestRankScore(t *testing.T) {
	tests := []struct {
		name              string
		tierA, divA       string
		lpA               int
		tierB, divB       string
		lpB               int
		wantAHigherOrSame bool
	}{
		{"higher tier wins", "DIAMOND", "IV", 0, "EMERALD", "I", 99, true},
		{"higher division wins within tier", "GOLD", "I", 0, "GOLD", "II", 99, true},
		{"lp breaks ties", "GOLD", "II", 50, "GOLD", "II", 10, true},
		{"unknown tier scores lowest", "GOLD", "IV", 0, "INVALID", "I", 99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := RankScore(tt.tierA, tt.divA, tt.lpA)
			b := RankScore(tt.tierB, tt.divB, tt.lpB)
			if (a > b) != tt.wantAHigherOrSame {
				t.Errorf("RankScore(%s %s %d) = %d vs RankScore(%s %s %d) = %d",
					tt.tierA, tt.divA, tt.lpA, a, tt.tierB, tt.divB, tt.lpB, b)
			}
		})
	}
}

func TestBuildRankInfoPrefersSolo(t *testing.T) {
	entries := []LeagueEntry{
		{QueueType: "RANKED_FLEX_SR", Tier: "DIAMOND", Rank: "I", LeaguePoints: 90, Wins: 10, Losses: 10},
		{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 40, Wins: 30, Losses: 20},
	}

	info := BuildRankInfo("puuid-1", "Alice", entries)

	if info.QueueType != "RANKED_SOLO_5x5" {
		t.Errorf("QueueType = %q, want solo even when flex is higher", info.QueueType)
	}
	if info.Tier != "GOLD" || info.Division != "II" || info.LP != 40 {
		t.Errorf("rank = %s %s %d, want GOLD II 40", info.Tier, info.Division, info.LP)
	}
	if info.TotalGames != 50 {
		t.Errorf("TotalGames = %d, want 50", info.TotalGames)
	}
	if info.WinRate != 60 {
		t.Errorf("WinRate = %v, want 60", info.WinRate)
	}
}

func TestBuildRankInfoFlexFallback(t *testing.T) {
	entries := []LeagueEntry{
		{QueueType: "RANKED_FLEX_SR", Tier: "SILVER", Rank: "III", LeaguePoints: 20},
	}

	info := BuildRankInfo("puuid-1", "Alice", entries)
	if info.Tier != "SILVER" {
		t.Errorf("Tier = %q, want flex SILVER when no solo entry", info.Tier)
	}
}

func TestBuildRankInfoUnranked(t *testing.T) {
	info := BuildRankInfo("puuid-1", "Alice", nil)

	if info.Tier != "UNRANKED" {
		t.Errorf("Tier = %q, want UNRANKED", info.Tier)
	}
	if info.SortValue != 0 {
		t.Errorf("SortValue = %d, want 0", info.SortValue)
	}
}
