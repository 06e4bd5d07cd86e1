// Package storage persists the tracked-player registry through the Upstash
// Redis REST API, degrading to process memory when Redis is not configured.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// TrackedPlayer is one player registered for automatic match announcements.
type TrackedPlayer struct {
	PUUID       string `json:"puuid"`
	LastMatchID string `json:"last_match_id"`
	ChannelID   string `json:"channel_id"`
	Name        string `json:"name"`
}

// RedisClient speaks the Upstash Redis REST protocol: one POST per command,
// the command encoded as a JSON array. When url or token is empty the client
// is disabled and every call is a no-op, which leaves the store memory-only.
type RedisClient struct {
	url     string
	token   string
	enabled bool
	client  *http.Client
}

// RedisOption configures a RedisClient.
type RedisOption func(*RedisClient)

// WithRedisHTTPClient replaces the default HTTP client.
func WithRedisHTTPClient(httpClient *http.Client) RedisOption {
	return func(r *RedisClient) {
		r.client = httpClient
	}
}

// NewRedisClient creates a REST client for the given Upstash endpoint.
func NewRedisClient(url, token string, opts ...RedisOption) *RedisClient {
	enabled := url != "" && token != ""
	if !enabled {
		log.Println("Redis not configured, tracked players held in memory only")
	}

	r := &RedisClient{
		url:     url,
		token:   token,
		enabled: enabled,
		client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        3,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enabled reports whether commands reach a real Redis backend.
func (r *RedisClient) Enabled() bool {
	return r.enabled
}

type redisResponse struct {
	Result interface{} `json:"result"`
	Error  string      `json:"error,omitempty"`
}

func (r *RedisClient) request(ctx context.Context, command []interface{}) (*redisResponse, error) {
	if !r.enabled {
		return nil, nil
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("redis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("redis error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var result redisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode redis response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("redis command failed: %s", result.Error)
	}
	return &result, nil
}

// Get retrieves a string value; a missing key yields "".
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	result, err := r.request(ctx, []interface{}{"GET", key})
	if err != nil {
		return "", err
	}
	if result == nil || result.Result == nil {
		return "", nil
	}
	str, ok := result.Result.(string)
	if !ok {
		return "", nil
	}
	return str, nil
}

// Set stores a string value.
func (r *RedisClient) Set(ctx context.Context, key, value string) error {
	result, err := r.request(ctx, []interface{}{"SET", key, value})
	if err != nil {
		return err
	}
	if result != nil && result.Result != "OK" {
		return fmt.Errorf("set failed: %v", result.Result)
	}
	return nil
}

// Delete removes a key.
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	_, err := r.request(ctx, []interface{}{"DEL", key})
	return err
}

// TrackedPlayerStore is the in-process registry of tracked players, backed by
// a single JSON blob in Redis. All methods are safe for concurrent use.
type TrackedPlayerStore struct {
	redis *RedisClient
	key   string

	mu      sync.RWMutex
	players map[string]*TrackedPlayer // keyed by PUUID
}

// NewTrackedPlayerStore creates an empty registry persisted under key.
func NewTrackedPlayerStore(redis *RedisClient, key string) *TrackedPlayerStore {
	return &TrackedPlayerStore{
		redis:   redis,
		key:     key,
		players: make(map[string]*TrackedPlayer),
	}
}

// Load replaces the in-memory registry with the persisted blob. An empty or
// missing blob resets to an empty registry.
func (s *TrackedPlayerStore) Load(ctx context.Context) error {
	data, err := s.redis.Get(ctx, s.key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if data == "" {
		s.players = make(map[string]*TrackedPlayer)
		return nil
	}

	var players map[string]*TrackedPlayer
	if err := json.Unmarshal([]byte(data), &players); err != nil {
		return fmt.Errorf("failed to parse tracked players: %w", err)
	}
	s.players = players
	log.Printf("Loaded %d tracked players", len(s.players))
	return nil
}

// Save writes the registry back as one JSON blob.
func (s *TrackedPlayerStore) Save(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.Marshal(s.players)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal tracked players: %w", err)
	}
	return s.redis.Set(ctx, s.key, string(data))
}

// Get returns a tracked player by PUUID.
func (s *TrackedPlayerStore) Get(puuid string) (*TrackedPlayer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[puuid]
	return p, ok
}

// Set adds or replaces a tracked player.
func (s *TrackedPlayerStore) Set(puuid string, player *TrackedPlayer) {
	s.mu.Lock()
	s.players[puuid] = player
	s.mu.Unlock()
}

// Delete removes a tracked player.
func (s *TrackedPlayerStore) Delete(puuid string) {
	s.mu.Lock()
	delete(s.players, puuid)
	s.mu.Unlock()
}

// GetAll returns a copy of the registry.
func (s *TrackedPlayerStore) GetAll() map[string]*TrackedPlayer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*TrackedPlayer, len(s.players))
	for k, v := range s.players {
		result[k] = v
	}
	return result
}

// GetByChannel returns the players announced into the given channel.
func (s *TrackedPlayerStore) GetByChannel(channelID string) []*TrackedPlayer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*TrackedPlayer
	for _, p := range s.players {
		if p.ChannelID == channelID {
			result = append(result, p)
		}
	}
	return result
}

// Count returns the number of tracked players.
func (s *TrackedPlayerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// UpdateLastMatch records the newest seen match id for a player. Unknown
// PUUIDs are ignored.
func (s *TrackedPlayerStore) UpdateLastMatch(puuid, matchID string) {
	s.mu.Lock()
	if p, ok := s.players[puuid]; ok {
		p.LastMatchID = matchID
	}
	s.mu.Unlock()
}
