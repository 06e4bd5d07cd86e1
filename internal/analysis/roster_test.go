package analysis

import (
	"errors"
	"testing"
)

func TestBuildRosterPreservesOrder(t *testing.T) {
	match := makeFullMatch(1800)
	roster := BuildRoster(match.Info.Participants)

	if len(roster.Records) != 10 {
		t.Fatalf("Records length = %d, want 10", len(roster.Records))
	}
	for i, rec := range roster.Records {
		if rec.ID != i+1 {
			t.Errorf("Records[%d].ID = %d, want %d", i, rec.ID, i+1)
		}
	}
}

func TestRosterLookups(t *testing.T) {
	match := makeFullMatch(1800)
	roster := BuildRoster(match.Info.Participants)

	rec, ok := roster.ByID(6)
	if !ok {
		t.Fatal("ByID(6) not found")
	}
	if rec.Name != "Frank" || rec.TeamID != 200 {
		t.Errorf("ByID(6) = %q team %d, want Frank team 200", rec.Name, rec.TeamID)
	}

	rec, ok = roster.ByPUUID("puuid-Alice")
	if !ok {
		t.Fatal("ByPUUID(puuid-Alice) not found")
	}
	if rec.ID != 1 || rec.Role != RoleBottom {
		t.Errorf("ByPUUID(puuid-Alice) = id %d role %q, want id 1 role BOTTOM", rec.ID, rec.Role)
	}

	if _, ok := roster.ByID(42); ok {
		t.Error("ByID(42) found, want miss")
	}
	if name := roster.NameOf(42); name != "" {
		t.Errorf("NameOf(42) = %q, want empty", name)
	}
	if team := roster.TeamOf(42); team != 0 {
		t.Errorf("TeamOf(42) = %d, want 0", team)
	}
}

func TestTeamForPUUID(t *testing.T) {
	match := makeFullMatch(1800)
	roster := BuildRoster(match.Info.Participants)

	team, err := roster.TeamForPUUID("puuid-Judy")
	if err != nil {
		t.Fatalf("TeamForPUUID(puuid-Judy) error: %v", err)
	}
	if team != 200 {
		t.Errorf("TeamForPUUID(puuid-Judy) = %d, want 200", team)
	}

	_, err = roster.TeamForPUUID("puuid-nobody")
	if !errors.Is(err, ErrTargetNotInMatch) {
		t.Errorf("TeamForPUUID(puuid-nobody) error = %v, want ErrTargetNotInMatch", err)
	}
}

func TestTeamMembers(t *testing.T) {
	match := makeFullMatch(1800)
	roster := BuildRoster(match.Info.Participants)

	members := roster.TeamMembers(100)
	if len(members) != 5 {
		t.Fatalf("TeamMembers(100) length = %d, want 5", len(members))
	}
	// Enumeration order must survive the filter.
	wantNames := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	for i, rec := range members {
		if rec.Name != wantNames[i] {
			t.Errorf("TeamMembers(100)[%d].Name = %q, want %q", i, rec.Name, wantNames[i])
		}
	}
}
