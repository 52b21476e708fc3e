package device

import "time"

// Watchdog is the dead-man's switch: a two-state machine that expires
// when updates stop arriving within the timeout window.
//
// Check reports the ARMED to EXPIRED transition exactly once per
// silence period. It stays EXPIRED, without re-reporting, until Reset
// rearms it on the next valid frame. Handlers that send frames of
// their own must not be re-invoked every iteration while the line is
// silent, so the debounce is part of the contract.
type Watchdog struct {
	Timeout time.Duration

	last    time.Time
	expired bool
}

// Reset records an update at now and rearms the watchdog.
func (w *Watchdog) Reset(now time.Time) {
	w.last = now
	w.expired = false
}

// Check evaluates expiry at now. It returns true only on the
// transition into the expired state.
func (w *Watchdog) Check(now time.Time) bool {
	if w.expired {
		return false
	}
	if now.Sub(w.last) > w.Timeout {
		w.expired = true
		return true
	}
	return false
}

// Expired reports whether the watchdog is in the expired state.
func (w *Watchdog) Expired() bool {
	return w.expired
}
