// Package analysis derives the per-player comparison payload sent to the
// scoring service from a raw match record and its optional timeline. All of it
// is pure computation over already-fetched data; nothing in this package does
// I/O or holds mutable state across calls.
package analysis

import (
	"errors"

	"zoebot/internal/riot"
)

// ErrTargetNotInMatch is returned when the requested player does not appear in
// the match's participant list. Callers must treat this as a hard stop.
var ErrTargetNotInMatch = errors.New("target player not found in match participants")

// Role labels as delivered by the match API. Real data can contain duplicates
// within a team, or RoleUnknown, and nothing here assumes otherwise.
const (
	RoleTop     = "TOP"
	RoleJungle  = "JUNGLE"
	RoleMiddle  = "MIDDLE"
	RoleBottom  = "BOTTOM"
	RoleUtility = "UTILITY"
	RoleUnknown = "UNKNOWN"
)

// ParticipantRecord is one player's identity within a single match.
type ParticipantRecord struct {
	ID       int    // match-local participant id (1-10)
	PUUID    string // globally stable player id
	Name     string // display name
	TeamID   int    // 100 or 200
	Role     string // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY or UNKNOWN
	Champion string
	Win      bool
}

// Roster maps a match's raw participant list into stable identity records,
// preserving the original enumeration order.
type Roster struct {
	Records []ParticipantRecord

	byID    map[int]int    // participant id -> index into Records
	byPUUID map[string]int // puuid -> index into Records
}

// BuildRoster resolves a raw participant list into a Roster.
func BuildRoster(participants []riot.Participant) *Roster {
	r := &Roster{
		Records: make([]ParticipantRecord, 0, len(participants)),
		byID:    make(map[int]int, len(participants)),
		byPUUID: make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		rec := ParticipantRecord{
			ID:       p.ParticipantID,
			PUUID:    p.PUUID,
			Name:     p.RiotIDGameName,
			TeamID:   p.TeamID,
			Role:     p.TeamPosition,
			Champion: p.ChampionName,
			Win:      p.Win,
		}
		r.byID[rec.ID] = len(r.Records)
		r.byPUUID[rec.PUUID] = len(r.Records)
		r.Records = append(r.Records, rec)
	}
	return r
}

// ByID returns the record for a match-local participant id.
func (r *Roster) ByID(id int) (ParticipantRecord, bool) {
	i, ok := r.byID[id]
	if !ok {
		return ParticipantRecord{}, false
	}
	return r.Records[i], true
}

// ByPUUID returns the record for a persistent player id.
func (r *Roster) ByPUUID(puuid string) (ParticipantRecord, bool) {
	i, ok := r.byPUUID[puuid]
	if !ok {
		return ParticipantRecord{}, false
	}
	return r.Records[i], true
}

// NameOf returns the display name for a participant id, or "" if unknown.
func (r *Roster) NameOf(id int) string {
	rec, _ := r.ByID(id)
	return rec.Name
}

// RoleOf returns the role label for a participant id, or "" if unknown.
func (r *Roster) RoleOf(id int) string {
	rec, _ := r.ByID(id)
	return rec.Role
}

// TeamOf returns the team id for a participant id, or 0 if unknown.
func (r *Roster) TeamOf(id int) int {
	rec, _ := r.ByID(id)
	return rec.TeamID
}

// TeamForPUUID resolves which team the target player belongs to. If the player
// is not in the match, it reports ErrTargetNotInMatch rather than a partial
// result.
func (r *Roster) TeamForPUUID(puuid string) (int, error) {
	rec, ok := r.ByPUUID(puuid)
	if !ok {
		return 0, ErrTargetNotInMatch
	}
	return rec.TeamID, nil
}

// TeamMembers returns the records on the given team, preserving enumeration
// order.
func (r *Roster) TeamMembers(teamID int) []ParticipantRecord {
	var members []ParticipantRecord
	for _, rec := range r.Records {
		if rec.TeamID == teamID {
			members = append(members, rec)
		}
	}
	return members
}
