// Package config reads bot configuration from the environment, with .env
// support for local development.
package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the bot reads at startup.
type Config struct {
	// Discord
	DiscordToken string

	// Riot API
	RiotAPIKey          string
	RiotBaseURLAccount  string
	RiotBaseURLMatch    string
	RiotBaseURLPlatform string

	// Scoring service (OpenAI-compatible)
	AIAPIKey string
	AIAPIURL string
	AIModel  string

	// Upstash Redis (tracked-player persistence)
	UpstashRedisRESTURL   string
	UpstashRedisRESTToken string
	RedisKeyTracked       string

	// Turso (analysis archive)
	TursoURL       string
	TursoAuthToken string

	// Static data
	ChampionDataPath string

	// Operation
	PollInterval time.Duration
	HealthAddr   string
}

// Load reads configuration from the environment. A .env file is loaded first
// when one exists nearby.
func Load() *Config {
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded .env from: %s", path)
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		RiotAPIKey:          os.Getenv("RIOT_API_KEY"),
		RiotBaseURLAccount:  getEnvOrDefault("RIOT_BASE_URL_ACCOUNT", "https://asia.api.riotgames.com"),
		RiotBaseURLMatch:    getEnvOrDefault("RIOT_BASE_URL_MATCH", "https://sea.api.riotgames.com"),
		RiotBaseURLPlatform: getEnvOrDefault("RIOT_BASE_URL_PLATFORM", "https://vn2.api.riotgames.com"),

		AIAPIKey: os.Getenv("AI_API_KEY"),
		AIAPIURL: getEnvOrDefault("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIModel:  getEnvOrDefault("AI_MODEL", "gpt-4o-mini"),

		UpstashRedisRESTURL:   os.Getenv("UPSTASH_REDIS_REST_URL"),
		UpstashRedisRESTToken: os.Getenv("UPSTASH_REDIS_REST_TOKEN"),
		RedisKeyTracked:       getEnvOrDefault("REDIS_KEY_TRACKED_PLAYERS", "zoebot:tracked_players"),

		TursoURL:       os.Getenv("TURSO_DATABASE_URL"),
		TursoAuthToken: os.Getenv("TURSO_AUTH_TOKEN"),

		ChampionDataPath: getEnvOrDefault("CHAMPION_DATA_PATH", "data/champion.json"),

		PollInterval: getEnvDuration("POLL_INTERVAL", 1*time.Minute),
		HealthAddr:   getEnvOrDefault("HEALTH_ADDR", ":8080"),
	}
}

// Validate checks the settings the bot cannot run without. Optional backends
// (Redis, Turso) are allowed to be absent.
func (c *Config) Validate() error {
	var missing []string

	if c.DiscordToken == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if c.RiotAPIKey == "" {
		missing = append(missing, "RIOT_API_KEY")
	}
	if c.AIAPIKey == "" {
		missing = append(missing, "AI_API_KEY")
	}

	if len(missing) > 0 {
		log.Println("Config errors:")
		for _, name := range missing {
			log.Printf("  - %s is missing", name)
		}
		return errors.New("configuration validation failed")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
