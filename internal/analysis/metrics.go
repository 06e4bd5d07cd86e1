package analysis

import (
	"math"

	"zoebot/internal/champion"
	"zoebot/internal/riot"
)

// PlayerMetrics is the derived statistics record for one participant. Rate
// stats are recomputed here from raw counters; share stats come from the
// pre-computed fractions Riot stores and are converted to 0-100 percentages
// without range validation.
type PlayerMetrics struct {
	// Identity
	ChampionName    string   `json:"championName"`
	ChampionTags    []string `json:"championTags"`
	ChampionAttack  int      `json:"championAttack"`
	ChampionDefense int      `json:"championDefense"`
	ChampionMagic   int      `json:"championMagic"`
	Name            string   `json:"riotIdGameName"`
	Role            string   `json:"teamPosition"`
	Win             bool     `json:"win"`

	// Combat
	Kills               int     `json:"kills"`
	Deaths              int     `json:"deaths"`
	Assists             int     `json:"assists"`
	KDA                 float64 `json:"kda"`
	KillParticipation   float64 `json:"killParticipation"` // percent
	Takedowns           int     `json:"takedowns"`
	SoloKills           int     `json:"soloKills"`
	LargestKillingSpree int     `json:"largestKillingSpree"`
	TimeSpentDead       int     `json:"timeSpentDead"` // seconds

	// Damage
	TotalDamageToChampions int     `json:"totalDamageDealtToChampions"`
	DamagePerMinute        float64 `json:"damagePerMinute"`
	TeamDamageShare        float64 `json:"teamDamagePercentage"` // percent
	TotalDamageTaken       int     `json:"totalDamageTaken"`
	DamageTakenShare       float64 `json:"damageTakenOnTeamPercentage"` // percent
	DamageSelfMitigated    int     `json:"damageSelfMitigated"`
	TimeCCingOthers        int     `json:"timeCCingOthers"`

	// Economy
	TotalCS               int     `json:"totalCS"`
	CSPerMinute           float64 `json:"csPerMinute"`
	GoldEarned            int     `json:"goldEarned"`
	GoldPerMinute         float64 `json:"goldPerMinute"`
	LaneMinionsFirst10Min int     `json:"laneMinionsFirst10Minutes"`
	ChampLevel            int     `json:"champLevel"`

	// Objectives
	DragonTakedowns    int `json:"dragonTakedowns"`
	BaronTakedowns     int `json:"baronTakedowns"`
	TurretTakedowns    int `json:"turretTakedowns"`
	DamageToObjectives int `json:"damageDealtToObjectives"`

	// Vision
	VisionScore          int     `json:"visionScore"`
	VisionScorePerMinute float64 `json:"visionScorePerMinute"`
	WardsPlaced          int     `json:"wardsPlaced"`
	ControlWardsPlaced   int     `json:"controlWardsPlaced"`
	WardsKilled          int     `json:"wardsKilled"`
}

// DurationMinutes converts a raw game duration in seconds to minutes, floored
// at 1 to keep per-minute rates defined for aborted matches.
func DurationMinutes(durationSeconds int) float64 {
	minutes := float64(durationSeconds) / 60.0
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ExtractMetrics computes a PlayerMetrics record from one raw participant.
// It never fails: missing raw fields are zero, and a champion absent from the
// catalog degrades to an empty tag set with mid-range attribute stats.
func ExtractMetrics(p riot.Participant, minutes float64, catalog *champion.Catalog) PlayerMetrics {
	tags, attack, defense, magic := catalog.Lookup(p.ChampionName)
	totalCS := p.TotalMinionsKilled + p.NeutralMinionsKilled

	return PlayerMetrics{
		ChampionName:    p.ChampionName,
		ChampionTags:    tags,
		ChampionAttack:  attack,
		ChampionDefense: defense,
		ChampionMagic:   magic,
		Name:            p.RiotIDGameName,
		Role:            p.TeamPosition,
		Win:             p.Win,

		Kills:               p.Kills,
		Deaths:              p.Deaths,
		Assists:             p.Assists,
		KDA:                 round2(p.Challenges.KDA),
		KillParticipation:   toPercent(p.Challenges.KillParticipation),
		Takedowns:           p.Challenges.Takedowns,
		SoloKills:           p.Challenges.SoloKills,
		LargestKillingSpree: p.LargestKillingSpree,
		TimeSpentDead:       p.TotalTimeSpentDead,

		TotalDamageToChampions: p.TotalDamageDealtToChampions,
		DamagePerMinute:        math.Round(float64(p.TotalDamageDealtToChampions) / minutes),
		TeamDamageShare:        toPercent(p.Challenges.TeamDamagePercentage),
		TotalDamageTaken:       p.TotalDamageTaken,
		DamageTakenShare:       toPercent(p.Challenges.DamageTakenOnTeamPct),
		DamageSelfMitigated:    p.DamageSelfMitigated,
		TimeCCingOthers:        p.TimeCCingOthers,

		TotalCS:               totalCS,
		CSPerMinute:           round1(float64(totalCS) / minutes),
		GoldEarned:            p.GoldEarned,
		GoldPerMinute:         math.Round(float64(p.GoldEarned) / minutes),
		LaneMinionsFirst10Min: p.Challenges.LaneMinionsFirst10Min,
		ChampLevel:            p.ChampLevel,

		DragonTakedowns:    p.Challenges.DragonTakedowns,
		BaronTakedowns:     p.Challenges.BaronTakedowns,
		TurretTakedowns:    p.Challenges.TurretTakedowns,
		DamageToObjectives: p.DamageDealtToObjectives,

		VisionScore:          p.VisionScore,
		VisionScorePerMinute: round2(float64(p.VisionScore) / minutes),
		WardsPlaced:          p.WardsPlaced,
		ControlWardsPlaced:   p.Challenges.ControlWardsPlaced,
		WardsKilled:          p.WardsKilled,
	}
}

// toPercent converts a stored 0.0-1.0 share to a 0-100 percentage rounded to
// one decimal. Values outside the nominal range pass through untouched; the
// upstream source is trusted verbatim here.
func toPercent(fraction float64) float64 {
	return math.Round(fraction*1000) / 10
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
