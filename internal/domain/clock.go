package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic
// metadata timestamps.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for result generation. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now reads the package clock. Collaborators stamping output documents use
// this instead of time.Now so frozen-clock tests cover them too.
func Now() time.Time {
	return clock.Now()
}
