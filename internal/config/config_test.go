package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RIOT_BASE_URL_MATCH", "")
	t.Setenv("AI_MODEL", "")
	t.Setenv("POLL_INTERVAL", "")

	cfg := Load()

	if cfg.RiotBaseURLMatch != "https://sea.api.riotgames.com" {
		t.Errorf("RiotBaseURLMatch = %q", cfg.RiotBaseURLMatch)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Errorf("AIModel = %q", cfg.AIModel)
	}
	if cfg.PollInterval != time.Minute {
		t.Errorf("PollInterval = %s, want 1m", cfg.PollInterval)
	}
	if cfg.RedisKeyTracked != "zoebot:tracked_players" {
		t.Errorf("RedisKeyTracked = %q", cfg.RedisKeyTracked)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AI_MODEL", "gpt-4o")
	t.Setenv("POLL_INTERVAL", "30s")

	cfg := Load()

	if cfg.AIModel != "gpt-4o" {
		t.Errorf("AIModel = %q, want gpt-4o", cfg.AIModel)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %s, want 30s", cfg.PollInterval)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")

	if cfg := Load(); cfg.PollInterval != time.Minute {
		t.Errorf("PollInterval = %s, want fallback 1m", cfg.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"all required present", Config{DiscordToken: "d", RiotAPIKey: "r", AIAPIKey: "a"}, false},
		{"missing discord token", Config{RiotAPIKey: "r", AIAPIKey: "a"}, true},
		{"missing riot key", Config{DiscordToken: "d", AIAPIKey: "a"}, true},
		{"missing ai key", Config{DiscordToken: "d", RiotAPIKey: "r"}, true},
		{"optional backends absent is fine", Config{DiscordToken: "d", RiotAPIKey: "r", AIAPIKey: "a", TursoURL: "", UpstashRedisRESTURL: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
