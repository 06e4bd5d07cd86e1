package analysis

import (
	"errors"
	"testing"

	"zoebot/internal/riot"
)

func TestBuildSummary(t *testing.T) {
	catalog := testCatalog(t)
	match := makeFullMatch(1500)

	summary, err := BuildSummary(match, nil, "puuid-Alice", catalog)
	if err != nil {
		t.Fatalf("BuildSummary() error: %v", err)
	}

	if summary.MatchID != "VN2_100200300" {
		t.Errorf("MatchID = %q, want VN2_100200300", summary.MatchID)
	}
	if summary.GameDuration != 1500 {
		t.Errorf("GameDuration = %d, want 1500", summary.GameDuration)
	}
	if summary.GameDurationMinutes != 25 {
		t.Errorf("GameDurationMinutes = %v, want 25", summary.GameDurationMinutes)
	}
	if !summary.Win {
		t.Error("Win = false, want true")
	}
	if summary.TargetName != "Alice" {
		t.Errorf("TargetName = %q, want Alice", summary.TargetName)
	}
	if len(summary.Teammates) != 5 {
		t.Errorf("Teammates length = %d, want 5", len(summary.Teammates))
	}
	if len(summary.Matchups) != 5 {
		t.Errorf("Matchups length = %d, want 5", len(summary.Matchups))
	}
	if summary.Timeline != nil {
		t.Error("Timeline != nil, want nil when no timeline was supplied")
	}
}

func TestBuildSummaryEnemyTeamTarget(t *testing.T) {
	catalog := testCatalog(t)
	match := makeFullMatch(1500)

	summary, err := BuildSummary(match, nil, "puuid-Frank", catalog)
	if err != nil {
		t.Fatalf("BuildSummary() error: %v", err)
	}
	if summary.Win {
		t.Error("Win = true, want false for the losing side")
	}
	if summary.Teammates[0].Name != "Frank" {
		t.Errorf("Teammates[0] = %q, want Frank", summary.Teammates[0].Name)
	}
}

func TestBuildSummaryTargetNotInMatch(t *testing.T) {
	match := makeFullMatch(1500)

	_, err := BuildSummary(match, nil, "puuid-stranger", testCatalog(t))
	if !errors.Is(err, ErrTargetNotInMatch) {
		t.Errorf("error = %v, want ErrTargetNotInMatch", err)
	}
}

func TestBuildSummaryMalformedMatch(t *testing.T) {
	catalog := testCatalog(t)

	_, err := BuildSummary(nil, nil, "puuid-Alice", catalog)
	if !errors.Is(err, ErrMalformedMatch) {
		t.Errorf("nil match error = %v, want ErrMalformedMatch", err)
	}

	empty := &riot.MatchResponse{Metadata: riot.MatchMetadata{MatchID: "VN2_0"}}
	_, err = BuildSummary(empty, nil, "puuid-Alice", catalog)
	if !errors.Is(err, ErrMalformedMatch) {
		t.Errorf("empty participants error = %v, want ErrMalformedMatch", err)
	}
}

func TestBuildSummaryAttachesTimeline(t *testing.T) {
	catalog := testCatalog(t)
	match := makeFullMatch(1500)

	tl := &riot.TimelineResponse{Info: riot.TimelineInfo{Frames: []riot.TimelineFrame{
		{Timestamp: 180000, Events: []riot.TimelineEvent{killEvent(150000, 1, 6)}},
	}}}

	summary, err := BuildSummary(match, tl, "puuid-Alice", catalog)
	if err != nil {
		t.Fatalf("BuildSummary() error: %v", err)
	}
	if summary.Timeline == nil {
		t.Fatal("Timeline is nil, want insights")
	}
	if summary.Timeline.FirstBlood == nil || summary.Timeline.FirstBlood.Killer != "Alice" {
		t.Error("timeline first blood should record Alice's kill")
	}
}
