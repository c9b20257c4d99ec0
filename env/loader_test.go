package env

import "testing"

func TestLoadCompletesOnLaterTick(t *testing.T) {
	l := NewLoader(0)

	fired := false
	l.LoadResourcesAsync("lobby", func() { fired = true })

	if fired {
		t.Fatal("callback fired synchronously from the request")
	}

	l.Update(0.1)
	if !fired {
		t.Fatal("callback did not fire on the next update")
	}
}

func TestLoadRespectsLoadTime(t *testing.T) {
	l := NewLoader(0.5)

	fired := false
	l.LoadResourcesAsync("lobby", func() { fired = true })

	l.Update(0.2)
	l.Update(0.2)
	if fired {
		t.Fatal("callback fired before load time elapsed")
	}

	l.Update(0.2)
	if !fired {
		t.Fatal("callback did not fire after load time elapsed")
	}
}

func TestFadeThenLoadRunsFadeBeforeCompleting(t *testing.T) {
	l := NewLoader(0)

	fired := false
	l.FadeThenLoad("track", 1.0, 0.5, func() { fired = true })

	// Mid-fade: alpha rising, not complete.
	l.Update(0.5)
	if fired {
		t.Fatal("callback fired during fade")
	}
	if a := l.FadeAlpha(); a <= 0 || a >= 1 {
		t.Errorf("mid-fade alpha = %v, want in (0, 1)", a)
	}

	// Finish fade, then hold, then load.
	l.Update(0.6)
	l.Update(0.6)
	l.Update(0.1)
	if !fired {
		t.Fatal("callback never fired after fade and hold")
	}
	if a := l.FadeAlpha(); a != 1 {
		t.Errorf("post-fade alpha = %v, want 1", a)
	}
}

func TestChainedLoadFromCallbackWaitsForNextUpdate(t *testing.T) {
	l := NewLoader(0)

	second := false
	l.LoadResourcesAsync("first", func() {
		l.LoadResourcesAsync("second", func() { second = true })
	})

	l.Update(0.1)
	if second {
		t.Fatal("chained load completed in the same update that requested it")
	}

	l.Update(0.1)
	if !second {
		t.Fatal("chained load never completed")
	}
}
