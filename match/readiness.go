package match

import (
	"log"

	"github.com/automoto/slipstream-mp/pubsub"
)

// CountdownSeconds is the pre-race countdown duration.
const CountdownSeconds = 3.0

type readinessState int

const (
	readinessIdle readinessState = iota
	readinessCountingDown
)

// Readiness tracks per-player ready flags and runs the cancellable pre-race
// countdown. When the countdown expires it invokes onExpire exactly once.
type Readiness struct {
	store    *Store
	events   *pubsub.Bus
	onExpire func()

	state     readinessState
	remaining float64
}

func newReadiness(store *Store, events *pubsub.Bus, onExpire func()) *Readiness {
	return &Readiness{
		store:     store,
		events:    events,
		onExpire:  onExpire,
		state:     readinessIdle,
		remaining: CountdownSeconds,
	}
}

// Refresh re-evaluates the all-ready condition. Called whenever a ready
// flag flips or the player set changes, synchronously from the handler, so
// a cancel lands on the same tick as the flip that caused it.
func (r *Readiness) Refresh() {
	allReady := r.store.PlayerCount() > 0 && r.store.AllReady()

	switch r.state {
	case readinessIdle:
		// An empty player set is vacuously "all ready" but must not start
		// a race with zero players; PlayerCount guards that above.
		if allReady {
			log.Printf("[readiness] all %d players ready, starting countdown", r.store.PlayerCount())
			r.state = readinessCountingDown
			r.remaining = CountdownSeconds
		}
	case readinessCountingDown:
		if !allReady {
			log.Println("[readiness] countdown cancelled")
			r.Cancel()
		}
	}
}

// Cancel stops any running countdown and resets the timer.
func (r *Readiness) Cancel() {
	r.state = readinessIdle
	r.remaining = CountdownSeconds
}

// Update advances the countdown by dt seconds and emits a CountdownTick
// for display. On expiry the coordinator returns to idle before invoking
// onExpire, so a re-trigger during the phase transition starts clean.
func (r *Readiness) Update(dt float64) {
	if r.state != readinessCountingDown {
		return
	}

	r.remaining -= dt
	if r.remaining > 0 {
		r.events.Publish(CountdownTick{Remaining: r.remaining})
		return
	}

	r.events.Publish(CountdownTick{Remaining: 0})
	r.Cancel()
	r.onExpire()
}

// CountingDown reports whether the countdown is running.
func (r *Readiness) CountingDown() bool {
	return r.state == readinessCountingDown
}

// Remaining returns the countdown time left, for display.
func (r *Readiness) Remaining() float64 {
	if r.state != readinessCountingDown {
		return CountdownSeconds
	}
	return r.remaining
}
