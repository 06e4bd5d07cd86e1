package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"zoebot/internal/analysis"
)

func testSummary() *analysis.MatchSummary {
	return &analysis.MatchSummary{
		MatchID:             "VN2_100200300",
		GameDuration:        1500,
		GameDurationMinutes: 25,
		GameMode:            "CLASSIC",
		Win:                 true,
		TargetName:          "Alice",
		Teammates: []analysis.PlayerMetrics{
			{Name: "Alice", ChampionName: "Jinx", Role: "BOTTOM"},
		},
	}
}

func TestAnalyzeMatch(t *testing.T) {
	verdict := `{"players":[{"champion":"Jinx","player_name":"Alice","position":"ADC","score":8.5,"vs_opponent":"won lane","role_analysis":"good","highlight":"triple kill","weakness":"positioning","comment":"solid","timeline_analysis":"ahead early"}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %d entries, want system + user", len(req.Messages))
		}
		if !strings.Contains(req.Messages[1].Content, "Target player: Alice") {
			t.Error("user prompt missing target player line")
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_schema" {
			t.Error("request missing json_schema response format")
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": verdict}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	result, err := client.AnalyzeMatch(context.Background(), testSummary())
	if err != nil {
		t.Fatalf("AnalyzeMatch() error: %v", err)
	}

	if len(result.Players) != 1 {
		t.Fatalf("Players length = %d, want 1", len(result.Players))
	}
	if result.Players[0].PlayerName != "Alice" || result.Players[0].Score != 8.5 {
		t.Errorf("verdict = %s score %v, want Alice score 8.5",
			result.Players[0].PlayerName, result.Players[0].Score)
	}
}

func TestAnalyzeMatchNoKey(t *testing.T) {
	client := NewClient("", "http://unused", "test-model")
	_, err := client.AnalyzeMatch(context.Background(), testSummary())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestAnalyzeMatchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	if _, err := client.AnalyzeMatch(context.Background(), testSummary()); err == nil {
		t.Error("expected error on 503, got nil")
	}
}

func TestExtractJSON(t *testing.T) {
	want := `{"players":[]}`

	tests := []struct {
		name    string
		content string
	}{
		{"raw json", `{"players":[]}`},
		{"json fence", "```json\n{\"players\":[]}\n```"},
		{"bare fence", "```\n{\"players\":[]}\n```"},
		{"prose wrapped", `Here you go: {"players":[]} hope that helps`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.content); got != want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.content, got, want)
			}
		})
	}
}

func TestBuildUserPromptIncludesTimeline(t *testing.T) {
	summary := testSummary()
	summary.Timeline = &analysis.TimelineInsights{
		FirstBlood: &analysis.KillEvent{TimeMin: 2.5, Killer: "Alice", Victim: "Frank"},
		GoldDiffAt10: map[string]analysis.GoldDiff{
			"Alice": {Diff: 300, Role: "BOTTOM"},
		},
		PlatesTaken:    3,
		PlatesLost:     1,
		TeamDeathsBy10: 2,
	}

	prompt := buildUserPrompt(summary)
	if !strings.Contains(prompt, "First blood: Alice killed Frank at 2.5 min") {
		t.Error("prompt missing first blood line")
	}
	if !strings.Contains(prompt, "Alice: +300 gold (BOTTOM)") {
		t.Error("prompt missing gold diff line")
	}
	if !strings.Contains(prompt, "team took 3, lost 1") {
		t.Error("prompt missing plate line")
	}
}

func TestScoreEmoji(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{9.5, "🌟"}, {8, "🌟"}, {7, "✅"}, {5, "⚠️"}, {2, "❌"},
	}
	for _, tt := range tests {
		if got := ScoreEmoji(tt.score); got != tt.want {
			t.Errorf("ScoreEmoji(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
