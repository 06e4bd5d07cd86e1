package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchResponse represents the response from /lol/match/v5/matches/{matchId}
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// Participant is one player's raw entry in a match. Fields absent from the
// upstream payload decode to their zero values; nothing here is validated.
type Participant struct {
	ParticipantID      int    `json:"participantId"`
	PUUID              string `json:"puuid"`
	RiotIDGameName     string `json:"riotIdGameName"`
	RiotIDTagline      string `json:"riotIdTagline"`
	ChampionName       string `json:"championName"`
	TeamID             int    `json:"teamId"`
	TeamPosition       string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	IndividualPosition string `json:"individualPosition"`
	Win                bool   `json:"win"`

	Kills               int `json:"kills"`
	Deaths              int `json:"deaths"`
	Assists             int `json:"assists"`
	ChampLevel          int `json:"champLevel"`
	LargestKillingSpree int `json:"largestKillingSpree"`
	TotalTimeSpentDead  int `json:"totalTimeSpentDead"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`
	DamageSelfMitigated         int `json:"damageSelfMitigated"`
	DamageDealtToObjectives     int `json:"damageDealtToObjectives"`
	TimeCCingOthers             int `json:"timeCCingOthers"`

	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`
	GoldEarned           int `json:"goldEarned"`

	VisionScore int `json:"visionScore"`
	WardsPlaced int `json:"wardsPlaced"`
	WardsKilled int `json:"wardsKilled"`

	Challenges Challenges `json:"challenges"`
}

// Challenges is the pre-computed stats block Riot attaches to each participant.
// Share values are fractions in [0,1] as delivered; they are not range-checked.
type Challenges struct {
	KDA                   float64 `json:"kda"`
	KillParticipation     float64 `json:"killParticipation"`
	Takedowns             int     `json:"takedowns"`
	SoloKills             int     `json:"soloKills"`
	TeamDamagePercentage  float64 `json:"teamDamagePercentage"`
	DamageTakenOnTeamPct  float64 `json:"damageTakenOnTeamPercentage"`
	LaneMinionsFirst10Min int     `json:"laneMinionsFirst10Minutes"`
	DragonTakedowns       int     `json:"dragonTakedowns"`
	BaronTakedowns        int     `json:"baronTakedowns"`
	TurretTakedowns       int     `json:"turretTakedowns"`
	ControlWardsPlaced    int     `json:"controlWardsPlaced"`
}

// TimelineResponse represents the response from /lol/match/v5/matches/{matchId}/timeline
type TimelineResponse struct {
	Metadata TimelineMetadata `json:"metadata"`
	Info     TimelineInfo     `json:"info"`
}

type TimelineMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type TimelineInfo struct {
	FrameInterval int             `json:"frameInterval"`
	Frames        []TimelineFrame `json:"frames"`
}

// TimelineFrame is one periodic snapshot: per-participant state plus every
// event that happened since the previous frame, in chronological order.
type TimelineFrame struct {
	Timestamp         int64                       `json:"timestamp"` // ms from match start
	Events            []TimelineEvent             `json:"events"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
}

type TimelineEvent struct {
	Type                    string `json:"type"`
	Timestamp               int64  `json:"timestamp"` // ms from match start
	ParticipantID           int    `json:"participantId,omitempty"`
	KillerID                int    `json:"killerId,omitempty"`
	VictimID                int    `json:"victimId,omitempty"`
	AssistingParticipantIDs []int  `json:"assistingParticipantIds,omitempty"`
	Bounty                  int    `json:"bounty,omitempty"`
	ShutdownBounty          int    `json:"shutdownBounty,omitempty"`
	KillStreakLength        int    `json:"killStreakLength,omitempty"`
	MonsterType             string `json:"monsterType,omitempty"`
	MonsterSubType          string `json:"monsterSubType,omitempty"`
	LaneType                string `json:"laneType,omitempty"`
	TeamID                  int    `json:"teamId,omitempty"`
}

type ParticipantFrame struct {
	ParticipantID       int `json:"participantId"`
	TotalGold           int `json:"totalGold"`
	MinionsKilled       int `json:"minionsKilled"`
	JungleMinionsKilled int `json:"jungleMinionsKilled"`
}

// LeagueEntry represents a ranked entry from /lol/league/v4/entries/by-puuid
type LeagueEntry struct {
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`
	Rank         string `json:"rank"` // I, II, III, IV
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}
