package actu

import (
	"time"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/device"
)

// Blinker toggles a switch output on a commanded interval. The command
// value is the interval in milliseconds; zero or negative resets it to
// the construction-time interval instead of being clamped, and zero
// stops blinking with the output off.
type Blinker struct {
	Out SwitchOutput

	initial  time.Duration
	interval time.Duration
	on       bool
	next     time.Time
}

// NewBlinker creates a blinker with an initial interval.
func NewBlinker(out SwitchOutput, initialMillis int) *Blinker {
	b := &Blinker{Out: out}
	if initialMillis > 0 {
		b.initial = time.Duration(initialMillis) * time.Millisecond
	}
	b.apply(b.initial)
	return b
}

// Handler returns the update handler for this blinker.
func (b *Blinker) Handler() command.UpdateHandler {
	return func(v int) {
		if v <= 0 {
			b.apply(b.initial)
			return
		}
		b.apply(time.Duration(v) * time.Millisecond)
	}
}

// Task returns the periodic task performing the blink check.
func (b *Blinker) Task() device.Task {
	return func(now time.Time) {
		if b.interval <= 0 {
			return
		}
		if b.next.IsZero() {
			b.next = now.Add(b.interval)
			return
		}
		if !now.Before(b.next) {
			b.on = !b.on
			b.next = now.Add(b.interval)
			if b.Out != nil {
				b.Out.Set(b.on)
			}
		}
	}
}

// Interval returns the current blink interval; zero means stopped.
func (b *Blinker) Interval() time.Duration {
	return b.interval
}

func (b *Blinker) apply(d time.Duration) {
	b.interval = d
	b.next = time.Time{}
	if d <= 0 && b.on {
		b.on = false
		if b.Out != nil {
			b.Out.Set(false)
		}
	}
}
