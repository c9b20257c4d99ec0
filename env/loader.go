package env

import (
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Loader is a headless Environment used by the dedicated relay, tests, and
// any front end that drives loads from the tick loop. Each load completes a
// fixed number of seconds after it was requested; fades run on a tween
// timeline whose current alpha is exposed for display.
type Loader struct {
	loadTime float64
	pending  []*pendingLoad
	alpha    float64
}

type pendingLoad struct {
	name       string
	fade       *gween.Tween // nil once the fade-out finished
	hold       *gween.Tween // nil once the hold finished
	remaining  float64      // load time left after fade+hold
	onComplete func()
}

// NewLoader returns a Loader whose loads complete loadTime seconds after
// they are requested (zero means the next Update).
func NewLoader(loadTime float64) *Loader {
	return &Loader{loadTime: loadTime}
}

func (l *Loader) LoadResourcesAsync(name string, onComplete func()) {
	log.Printf("[env] loading %q", name)
	l.pending = append(l.pending, &pendingLoad{
		name:       name,
		remaining:  l.loadTime,
		onComplete: onComplete,
	})
}

func (l *Loader) FadeThenLoad(name string, fadeOut, hold float64, onComplete func()) {
	log.Printf("[env] fading out (%.1fs + %.1fs hold), then loading %q", fadeOut, hold, name)
	l.pending = append(l.pending, &pendingLoad{
		name:       name,
		fade:       gween.New(0, 1, float32(fadeOut), ease.Linear),
		hold:       gween.New(1, 1, float32(hold), ease.Linear),
		remaining:  l.loadTime,
		onComplete: onComplete,
	})
}

// Update advances fades and load timers. Completed loads fire their
// callbacks here, which is always a later tick than the request.
func (l *Loader) Update(dt float64) {
	var still []*pendingLoad
	var done []*pendingLoad

	for _, p := range l.pending {
		// dt is spent on at most one stage per update so a finishing fade
		// does not also burn through the hold and the load in one tick.
		if p.fade != nil {
			alpha, finished := p.fade.Update(float32(dt))
			l.alpha = float64(alpha)
			if finished {
				p.fade = nil
			}
			still = append(still, p)
			continue
		}
		if p.hold != nil {
			alpha, finished := p.hold.Update(float32(dt))
			l.alpha = float64(alpha)
			if finished {
				p.hold = nil
			}
			still = append(still, p)
			continue
		}

		p.remaining -= dt
		if p.remaining > 0 {
			still = append(still, p)
			continue
		}
		done = append(done, p)
	}

	l.pending = still

	for _, p := range done {
		log.Printf("[env] %q ready", p.name)
		p.onComplete()
	}
}

// FadeAlpha returns the current fade overlay alpha in [0, 1].
func (l *Loader) FadeAlpha() float64 {
	return l.alpha
}
