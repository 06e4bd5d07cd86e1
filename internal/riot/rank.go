package riot

// Tier order for comparison (higher index = higher rank)
var TierOrder = map[string]int{
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

// Division order (higher index = higher rank within tier)
var DivisionOrder = map[string]int{
	"IV":  1,
	"III": 2,
	"II":  3,
	"I":   4,
}

// RankInfo is a player's consolidated ranked standing, used for sorting.
type RankInfo struct {
	Name       string
	PUUID      string
	QueueType  string
	Tier       string
	Division   string
	LP         int
	Wins       int
	Losses     int
	WinRate    float64
	HotStreak  bool
	TotalGames int
	// SortValue collapses tier/division/LP into one comparable number.
	SortValue int
}

// BuildRankInfo consolidates league entries into a RankInfo. Solo queue is
// preferred over flex; a player with neither is reported as UNRANKED with a
// zero sort value.
func BuildRankInfo(puuid, name string, entries []LeagueEntry) *RankInfo {
	var solo, flex *LeagueEntry
	for i := range entries {
		switch entries[i].QueueType {
		case "RANKED_SOLO_5x5":
			solo = &entries[i]
		case "RANKED_FLEX_SR":
			flex = &entries[i]
		}
	}

	entry := solo
	if entry == nil {
		entry = flex
	}

	info := &RankInfo{
		Name:  name,
		PUUID: puuid,
	}

	if entry == nil {
		info.Tier = "UNRANKED"
		return info
	}

	info.QueueType = entry.QueueType
	info.Tier = entry.Tier
	info.Division = entry.Rank
	info.LP = entry.LeaguePoints
	info.Wins = entry.Wins
	info.Losses = entry.Losses
	info.HotStreak = entry.HotStreak
	info.TotalGames = entry.Wins + entry.Losses
	info.SortValue = RankScore(entry.Tier, entry.Rank, entry.LeaguePoints)

	if info.TotalGames > 0 {
		info.WinRate = float64(entry.Wins) / float64(info.TotalGames) * 100
	}

	return info
}

// RankScore converts tier/division/LP into a single comparable number.
// Unknown tiers and divisions score zero for their component.
func RankScore(tier, division string, lp int) int {
	return TierOrder[tier]*1000 + DivisionOrder[division]*100 + lp
}
