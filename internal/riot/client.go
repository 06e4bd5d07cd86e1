// Package riot is a rate-limited client for the Riot Games match-v5 and
// account-v1 APIs.
package riot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	// Rate limits for a dev key (conservative values to be safe)
	requestsPerSecond = 15 // actual: 20
	requestsPer2Min   = 90 // actual: 100

	defaultTimeout = 15 * time.Second
)

// Client is a rate-limited Riot API client. Safe for concurrent use.
type Client struct {
	apiKey          string
	baseURLAccount  string
	baseURLMatch    string
	baseURLPlatform string
	httpClient      *http.Client

	// Sliding windows for rate limiting
	mu          sync.Mutex
	shortWindow []time.Time // requests in the last second
	longWindow  []time.Time // requests in the last 2 minutes
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the regional base URLs (also used by tests).
func WithBaseURLs(account, match, platform string) Option {
	return func(c *Client) {
		if account != "" {
			c.baseURLAccount = account
		}
		if match != "" {
			c.baseURLMatch = match
		}
		if platform != "" {
			c.baseURLPlatform = platform
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Riot API client.
func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		apiKey:          apiKey,
		baseURLAccount:  "https://asia.api.riotgames.com",
		baseURLMatch:    "https://sea.api.riotgames.com",
		baseURLPlatform: "https://vn2.api.riotgames.com",
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// waitForRateLimit blocks until another request is allowed or ctx is done.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		c.mu.Lock()

		now := time.Now()
		c.shortWindow = pruneBefore(c.shortWindow, now.Add(-1*time.Second))
		c.longWindow = pruneBefore(c.longWindow, now.Add(-2*time.Minute))

		var wait time.Duration
		if len(c.shortWindow) >= requestsPerSecond {
			wait = c.shortWindow[0].Add(time.Second).Sub(now) + 100*time.Millisecond
		} else if len(c.longWindow) >= requestsPer2Min {
			wait = c.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
		}

		if wait <= 0 {
			c.shortWindow = append(c.shortWindow, now)
			c.longWindow = append(c.longWindow, now)
			c.mu.Unlock()
			return nil
		}

		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// pruneBefore drops timestamps at or before cutoff from the window.
func pruneBefore(window []time.Time, cutoff time.Time) []time.Time {
	kept := window[:0]
	for _, t := range window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// doRequest makes a rate-limited GET request and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	if err := c.waitForRateLimit(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		waitDuration := 10 * time.Second
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				waitDuration = time.Duration(seconds) * time.Second
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitDuration):
			return c.doRequest(ctx, reqURL, result)
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("API returned %d - check if the API key is valid", resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("API returned 404 - player/match may not exist")
	default:
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine).
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	reqURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURLAccount, url.PathEscape(gameName), url.PathEscape(tagLine))

	var account AccountResponse
	if err := c.doRequest(ctx, reqURL, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetMatchIDs fetches the most recent match IDs for a player.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		c.baseURLMatch, puuid, count)

	var matchIDs []string
	if err := c.doRequest(ctx, reqURL, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

// GetMatch fetches full match details.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURLMatch, matchID)

	var match MatchResponse
	if err := c.doRequest(ctx, reqURL, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetTimeline fetches the per-minute timeline for a match.
func (c *Client) GetTimeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURLMatch, matchID)

	var timeline TimelineResponse
	if err := c.doRequest(ctx, reqURL, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// GetLeagueEntries fetches ranked entries for a player by PUUID.
func (c *Client) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	reqURL := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.baseURLPlatform, puuid)

	var entries []LeagueEntry
	if err := c.doRequest(ctx, reqURL, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
