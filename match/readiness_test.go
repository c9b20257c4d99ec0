package match

import (
	"testing"

	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/pubsub"
)

func newTestReadiness() (*Readiness, *Store, *int, *int) {
	store := NewStore()
	events := pubsub.New()

	ticks := new(int)
	pubsub.Subscribe(events, func(CountdownTick) { *ticks++ })

	fired := new(int)
	r := newReadiness(store, events, func() { *fired++ })
	return r, store, ticks, fired
}

func TestReadinessIdleEmitsNothing(t *testing.T) {
	r, _, ticks, fired := newTestReadiness()

	for i := 0; i < 10; i++ {
		r.Update(1.0)
	}

	if *ticks != 0 || *fired != 0 {
		t.Errorf("ticks=%d fired=%d while idle, want 0 and 0", *ticks, *fired)
	}
}

func TestReadinessRefreshIgnoresEmptySet(t *testing.T) {
	r, _, _, _ := newTestReadiness()

	r.Refresh()
	if r.CountingDown() {
		t.Fatal("countdown started on an empty player set")
	}
}

func TestReadinessExpiryFiresExactlyOnce(t *testing.T) {
	r, store, ticks, fired := newTestReadiness()

	store.AddPlayer(components.PlayerData{ClientID: "c1", Source: 0, Ready: true})
	r.Refresh()
	if !r.CountingDown() {
		t.Fatal("countdown did not start")
	}

	// 3 seconds at 1s per tick: two in-flight ticks, one final zero tick.
	r.Update(1.0)
	r.Update(1.0)
	if *fired != 0 {
		t.Fatal("expired early")
	}
	r.Update(1.0)

	if *fired != 1 {
		t.Fatalf("onExpire fired %d times, want 1", *fired)
	}
	if *ticks != 3 {
		t.Errorf("CountdownTick count = %d, want 3", *ticks)
	}
	if r.CountingDown() {
		t.Error("still counting down after expiry")
	}

	// Idle again: no more ticks, no second fire.
	r.Update(1.0)
	if *ticks != 3 || *fired != 1 {
		t.Errorf("ticks=%d fired=%d after expiry, want 3 and 1", *ticks, *fired)
	}
}

func TestReadinessCancelResetsTimer(t *testing.T) {
	r, store, _, fired := newTestReadiness()

	store.AddPlayer(components.PlayerData{ClientID: "c1", Source: 0, Ready: true})
	r.Refresh()
	r.Update(2.0)

	store.UpdatePlayer("c1", 0, func(p *components.PlayerData) { p.Ready = false })
	r.Refresh()

	if r.CountingDown() {
		t.Fatal("still counting down after cancel")
	}
	if r.Remaining() != CountdownSeconds {
		t.Errorf("Remaining() = %v, want %v", r.Remaining(), CountdownSeconds)
	}

	// Re-trigger restarts from the full duration.
	store.UpdatePlayer("c1", 0, func(p *components.PlayerData) { p.Ready = true })
	r.Refresh()
	r.Update(2.0)
	if *fired != 0 {
		t.Error("expired before the restarted countdown ran its course")
	}
	r.Update(1.5)
	if *fired != 1 {
		t.Errorf("onExpire fired %d times, want 1", *fired)
	}
}
