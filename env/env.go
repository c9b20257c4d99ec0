// Package env abstracts the scene/resource environment the match core runs
// inside. The core never blocks on a load; it requests one and is called
// back on a later tick.
package env

// Environment is implemented by the game shell (scene loader, renderer).
// Both methods must deliver onComplete on a later tick, never synchronously
// from the request, so the state machine is not re-entered mid-handler.
type Environment interface {
	// LoadResourcesAsync begins loading the named resource bundle.
	LoadResourcesAsync(name string, onComplete func())

	// FadeThenLoad fades the screen out over fadeOut seconds, holds it for
	// hold seconds, then loads the named resource bundle.
	FadeThenLoad(name string, fadeOut, hold float64, onComplete func())

	// Update advances in-flight fades and loads by dt seconds and delivers
	// the callbacks of any that completed.
	Update(dt float64)
}
