package analysis

import "testing"

func metricsWithRole(name, role string) PlayerMetrics {
	return PlayerMetrics{Name: name, Role: role}
}

func TestBuildMatchupsPairsByRole(t *testing.T) {
	team := []PlayerMetrics{
		metricsWithRole("Alice", RoleBottom),
		metricsWithRole("Bob", RoleTop),
		metricsWithRole("Carol", RoleJungle),
	}
	enemies := []PlayerMetrics{
		metricsWithRole("Grace", RoleTop),
		metricsWithRole("Frank", RoleBottom),
		metricsWithRole("Heidi", RoleJungle),
	}

	matchups := BuildMatchups(team, enemies)
	if len(matchups) != 3 {
		t.Fatalf("matchups length = %d, want 3", len(matchups))
	}

	wantOpponents := map[string]string{
		"Alice": "Frank",
		"Bob":   "Grace",
		"Carol": "Heidi",
	}
	for _, m := range matchups {
		if m.Opponent == nil {
			t.Errorf("matchup for %s has nil opponent", m.Player.Name)
			continue
		}
		if want := wantOpponents[m.Player.Name]; m.Opponent.Name != want {
			t.Errorf("opponent of %s = %s, want %s", m.Player.Name, m.Opponent.Name, want)
		}
	}
}

func TestBuildMatchupsDuplicateRolePicksFirst(t *testing.T) {
	team := []PlayerMetrics{metricsWithRole("Erin", RoleUtility)}
	enemies := []PlayerMetrics{
		metricsWithRole("Ivan", RoleMiddle),
		metricsWithRole("Judy", RoleUtility),
		metricsWithRole("Mallory", RoleUtility),
	}

	matchups := BuildMatchups(team, enemies)
	if matchups[0].Opponent == nil {
		t.Fatal("opponent is nil, want Judy")
	}
	if matchups[0].Opponent.Name != "Judy" {
		t.Errorf("opponent = %s, want Judy (first same-role in enemy order)", matchups[0].Opponent.Name)
	}
}

func TestBuildMatchupsMissingRole(t *testing.T) {
	team := []PlayerMetrics{
		metricsWithRole("Alice", RoleBottom),
		metricsWithRole("Bob", RoleUnknown),
	}
	enemies := []PlayerMetrics{metricsWithRole("Frank", RoleBottom)}

	matchups := BuildMatchups(team, enemies)
	if matchups[0].Opponent == nil || matchups[0].Opponent.Name != "Frank" {
		t.Error("Alice should pair with Frank")
	}
	if matchups[1].Opponent != nil {
		t.Errorf("Bob's opponent = %v, want nil (no UNKNOWN role on enemy team)", matchups[1].Opponent.Name)
	}
}

func TestBuildMatchupsEmptyInputs(t *testing.T) {
	if matchups := BuildMatchups(nil, nil); len(matchups) != 0 {
		t.Errorf("matchups for empty teams = %d entries, want 0", len(matchups))
	}
}
