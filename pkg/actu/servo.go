package actu

import "github.com/robolink/serlink/pkg/command"

// Servo clamps incoming values into [Min, Max] before driving the
// output. A typical hobby servo uses [0, 180] degrees.
type Servo struct {
	Min, Max int
	Out      Output

	pos int
}

// NewServo creates a servo sink positioned at pos.
func NewServo(out Output, min, max, pos int) *Servo {
	s := &Servo{Min: min, Max: max, Out: out}
	s.set(pos)
	return s
}

// Handler returns the update handler for this servo.
func (s *Servo) Handler() command.UpdateHandler {
	return func(v int) { s.set(v) }
}

// Position returns the last commanded position after clamping.
func (s *Servo) Position() int {
	return s.pos
}

func (s *Servo) set(v int) {
	if v < s.Min {
		v = s.Min
	} else if v > s.Max {
		v = s.Max
	}
	s.pos = v
	if s.Out != nil {
		s.Out.Set(v)
	}
}
