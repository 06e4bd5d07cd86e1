// Package tracker polls the match history of every tracked player and fires a
// callback when a new match shows up.
package tracker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"zoebot/internal/storage"
)

const (
	DefaultInterval      = 1 * time.Minute
	DefaultMaxConcurrent = 3

	// Minimum gap between match-history requests within one sweep, so a
	// large registry does not burst against the Riot rate limit.
	requestSpacing = 500 * time.Millisecond
)

// MatchSource lists a player's most recent match ids, newest first.
type MatchSource interface {
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
}

// NewMatchFunc is called once per newly observed match.
type NewMatchFunc func(ctx context.Context, player *storage.TrackedPlayer, matchID string)

// Poller periodically sweeps the tracked-player registry.
type Poller struct {
	source     MatchSource
	store      *storage.TrackedPlayerStore
	onNewMatch NewMatchFunc

	interval      time.Duration
	maxConcurrent int

	// announced dedups match/channel pairs across sweeps. False positives
	// only suppress an announcement, never corrupt state.
	announced   *bloom.BloomFilter
	announcedMu sync.Mutex
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the sweep interval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithMaxConcurrent bounds the number of in-flight history lookups.
func WithMaxConcurrent(n int) Option {
	return func(p *Poller) {
		p.maxConcurrent = n
	}
}

// NewPoller creates a poller over the given registry.
func NewPoller(source MatchSource, store *storage.TrackedPlayerStore, onNewMatch NewMatchFunc, opts ...Option) *Poller {
	p := &Poller{
		source:        source,
		store:         store,
		onNewMatch:    onNewMatch,
		interval:      DefaultInterval,
		maxConcurrent: DefaultMaxConcurrent,
		announced:     bloom.NewWithEstimates(100000, 0.001),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run sweeps until the context is cancelled. It blocks; run it in its own
// goroutine.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("Poller started, interval %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller stopped")
			return
		case <-ticker.C:
			p.Sweep(ctx)
		}
	}
}

// Sweep checks every tracked player once.
func (p *Poller) Sweep(ctx context.Context) {
	players := p.store.GetAll()
	if len(players) == 0 {
		return
	}

	sem := make(chan struct{}, p.maxConcurrent)
	spacing := time.NewTicker(requestSpacing)
	defer spacing.Stop()

	var wg sync.WaitGroup
	for _, player := range players {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-spacing.C:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(player *storage.TrackedPlayer) {
			defer wg.Done()
			defer func() { <-sem }()
			p.checkPlayer(ctx, player)
		}(player)
	}
	wg.Wait()
}

// checkPlayer compares a player's newest match against the stored state.
func (p *Poller) checkPlayer(ctx context.Context, player *storage.TrackedPlayer) {
	matchIDs, err := p.source.GetMatchIDs(ctx, player.PUUID, 1)
	if err != nil {
		log.Printf("Failed to fetch match history for %s: %v", player.Name, err)
		return
	}
	if len(matchIDs) == 0 {
		return
	}
	latest := matchIDs[0]

	// First sweep for this player just records the baseline. Announcing a
	// match that finished before tracking started would be noise.
	if player.LastMatchID == "" {
		p.store.UpdateLastMatch(player.PUUID, latest)
		if err := p.store.Save(ctx); err != nil {
			log.Printf("Failed to persist baseline for %s: %v", player.Name, err)
		}
		return
	}

	if latest == player.LastMatchID {
		return
	}

	if p.alreadyAnnounced(latest, player.ChannelID) {
		p.store.UpdateLastMatch(player.PUUID, latest)
		return
	}

	p.store.UpdateLastMatch(player.PUUID, latest)
	if err := p.store.Save(ctx); err != nil {
		log.Printf("Failed to persist last match for %s: %v", player.Name, err)
	}

	log.Printf("New match %s for %s", latest, player.Name)
	if p.onNewMatch != nil {
		p.onNewMatch(ctx, player, latest)
	}
}

// alreadyAnnounced records and tests the match/channel pair in one step.
func (p *Poller) alreadyAnnounced(matchID, channelID string) bool {
	key := []byte(matchID + ":" + channelID)

	p.announcedMu.Lock()
	defer p.announcedMu.Unlock()

	if p.announced.Test(key) {
		return true
	}
	p.announced.Add(key)
	return false
}
