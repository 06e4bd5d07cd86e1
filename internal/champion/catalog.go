// Package champion provides the static Data Dragon champion catalog used to
// attach class tags and base attribute stats to match participants.
package champion

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

const (
	versionsURL     = "https://ddragon.leagueoflegends.com/api/versions.json"
	championDataURL = "https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/champion.json"

	// Placeholder attribute value when a champion is missing from the catalog
	defaultStat = 5
)

// Info is one champion's catalog entry.
type Info struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"` // e.g. ["Marksman"], ["Tank", "Fighter"]
	Info struct {
		Attack  int `json:"attack"` // 1-10 scale
		Defense int `json:"defense"`
		Magic   int `json:"magic"`
	} `json:"info"`
}

// dataFile mirrors Data Dragon's champion.json envelope.
type dataFile struct {
	Version string          `json:"version"`
	Data    map[string]Info `json:"data"`
}

// Catalog is a read-only lookup from champion identifier to tags and stats.
// Load it once at startup; lookups are safe for concurrent use afterwards.
type Catalog struct {
	entries map[string]Info
}

// Empty returns a catalog with no entries; every lookup degrades to defaults.
func Empty() *Catalog {
	return &Catalog{entries: make(map[string]Info)}
}

// LoadFile loads a champion.json from disk.
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open champion data: %w", err)
	}
	defer file.Close()

	var data dataFile
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse champion data: %w", err)
	}

	return &Catalog{entries: data.Data}, nil
}

// Fetch downloads champion.json from the Data Dragon CDN, discovering the
// latest patch version first.
func Fetch(ctx context.Context) (*Catalog, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	version, err := latestVersion(ctx, client)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf(championDataURL, version), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("champion data fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("champion data fetch returned status %d", resp.StatusCode)
	}

	var data dataFile
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse champion data: %w", err)
	}

	return &Catalog{entries: data.Data}, nil
}

// Load loads the catalog from path if the file exists, otherwise falls back to
// fetching from the CDN. It never fails hard: on error an empty catalog is
// returned so the analysis pipeline can still run with placeholder metadata.
func Load(ctx context.Context, path string) *Catalog {
	if path != "" {
		if catalog, err := LoadFile(path); err == nil {
			return catalog
		}
	}
	catalog, err := Fetch(ctx)
	if err != nil {
		return Empty()
	}
	return catalog
}

// Lookup returns the tags and attack/defense/magic stats for a champion.
// Unknown champions get an empty tag set and mid-range stats.
func (c *Catalog) Lookup(championName string) (tags []string, attack, defense, magic int) {
	if champ, ok := c.entries[championName]; ok {
		return champ.Tags, champ.Info.Attack, champ.Info.Defense, champ.Info.Magic
	}
	return []string{}, defaultStat, defaultStat, defaultStat
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// latestVersion fetches the current Data Dragon patch version.
func latestVersion(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", versionsURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("version fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version fetch returned status %d", resp.StatusCode)
	}

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("failed to parse versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions returned")
	}
	return versions[0], nil
}
