package tracker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"zoebot/internal/storage"
)

// fakeSource serves a fixed newest-match id per PUUID.
type fakeSource struct {
	mu     sync.Mutex
	latest map[string]string
	err    error
}

func (f *fakeSource) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.latest[puuid]
	if !ok {
		return nil, nil
	}
	return []string{id}, nil
}

func (f *fakeSource) setLatest(puuid, matchID string) {
	f.mu.Lock()
	f.latest[puuid] = matchID
	f.mu.Unlock()
}

type announcement struct {
	puuid   string
	matchID string
}

func newTestPoller(t *testing.T) (*Poller, *fakeSource, *storage.TrackedPlayerStore, *[]announcement) {
	t.Helper()

	source := &fakeSource{latest: make(map[string]string)}
	store := storage.NewTrackedPlayerStore(storage.NewRedisClient("", ""), "test:tracked")

	var mu sync.Mutex
	var announced []announcement
	onNew := func(ctx context.Context, player *storage.TrackedPlayer, matchID string) {
		mu.Lock()
		announced = append(announced, announcement{puuid: player.PUUID, matchID: matchID})
		mu.Unlock()
	}

	return NewPoller(source, store, onNew), source, store, &announced
}

func TestSweepInitializesBaseline(t *testing.T) {
	poller, source, store, announced := newTestPoller(t)

	store.Set("puuid-1", &storage.TrackedPlayer{PUUID: "puuid-1", Name: "Alice", ChannelID: "chan"})
	source.setLatest("puuid-1", "VN2_1")

	poller.Sweep(context.Background())

	if len(*announced) != 0 {
		t.Errorf("announcements = %d, want 0 on first observation", len(*announced))
	}
	p, _ := store.Get("puuid-1")
	if p.LastMatchID != "VN2_1" {
		t.Errorf("LastMatchID = %q, want VN2_1", p.LastMatchID)
	}
}

func TestSweepAnnouncesNewMatch(t *testing.T) {
	poller, source, store, announced := newTestPoller(t)

	store.Set("puuid-1", &storage.TrackedPlayer{PUUID: "puuid-1", Name: "Alice", ChannelID: "chan", LastMatchID: "VN2_1"})
	source.setLatest("puuid-1", "VN2_2")

	poller.Sweep(context.Background())

	if len(*announced) != 1 {
		t.Fatalf("announcements = %d, want 1", len(*announced))
	}
	if (*announced)[0].matchID != "VN2_2" {
		t.Errorf("announced match = %q, want VN2_2", (*announced)[0].matchID)
	}
	p, _ := store.Get("puuid-1")
	if p.LastMatchID != "VN2_2" {
		t.Errorf("LastMatchID = %q, want VN2_2", p.LastMatchID)
	}
}

func TestSweepSkipsUnchangedMatch(t *testing.T) {
	poller, source, store, announced := newTestPoller(t)

	store.Set("puuid-1", &storage.TrackedPlayer{PUUID: "puuid-1", Name: "Alice", ChannelID: "chan", LastMatchID: "VN2_1"})
	source.setLatest("puuid-1", "VN2_1")

	poller.Sweep(context.Background())
	poller.Sweep(context.Background())

	if len(*announced) != 0 {
		t.Errorf("announcements = %d, want 0 for unchanged match", len(*announced))
	}
}

func TestSweepDedupsAcrossPlayersInSameChannel(t *testing.T) {
	poller, source, store, announced := newTestPoller(t)

	// Duo queue: both tracked players finished the same match into the same
	// channel. One announcement is enough.
	store.Set("puuid-1", &storage.TrackedPlayer{PUUID: "puuid-1", Name: "Alice", ChannelID: "chan", LastMatchID: "VN2_1"})
	store.Set("puuid-2", &storage.TrackedPlayer{PUUID: "puuid-2", Name: "Bob", ChannelID: "chan", LastMatchID: "VN2_1"})
	source.setLatest("puuid-1", "VN2_2")
	source.setLatest("puuid-2", "VN2_2")

	poller.Sweep(context.Background())

	if len(*announced) != 1 {
		t.Errorf("announcements = %d, want 1 for shared match/channel", len(*announced))
	}
	// Both players still advance their baseline.
	for _, puuid := range []string{"puuid-1", "puuid-2"} {
		p, _ := store.Get(puuid)
		if p.LastMatchID != "VN2_2" {
			t.Errorf("%s LastMatchID = %q, want VN2_2", puuid, p.LastMatchID)
		}
	}
}

func TestSweepSurvivesSourceErrors(t *testing.T) {
	poller, source, store, announced := newTestPoller(t)

	store.Set("puuid-1", &storage.TrackedPlayer{PUUID: "puuid-1", Name: "Alice", ChannelID: "chan", LastMatchID: "VN2_1"})
	source.err = fmt.Errorf("riot api down")

	poller.Sweep(context.Background())

	if len(*announced) != 0 {
		t.Errorf("announcements = %d, want 0 on source error", len(*announced))
	}
	p, _ := store.Get("puuid-1")
	if p.LastMatchID != "VN2_1" {
		t.Errorf("LastMatchID = %q, want unchanged VN2_1", p.LastMatchID)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	poller, _, _, _ := newTestPoller(t)
	poller.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}
