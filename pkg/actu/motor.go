package actu

import "github.com/robolink/serlink/pkg/command"

// Motor clamps incoming values to [-MaxMagnitude, MaxMagnitude] before
// driving the output. Sign is direction, magnitude is throttle.
type Motor struct {
	MaxMagnitude int
	Out          Output

	throttle int
}

// NewMotor creates a motor sink, stopped.
func NewMotor(out Output, maxMagnitude int) *Motor {
	m := &Motor{MaxMagnitude: maxMagnitude, Out: out}
	m.set(0)
	return m
}

// Handler returns the update handler for this motor.
func (m *Motor) Handler() command.UpdateHandler {
	return func(v int) { m.set(v) }
}

// Throttle returns the last commanded throttle after clamping.
func (m *Motor) Throttle() int {
	return m.throttle
}

func (m *Motor) set(v int) {
	if v > m.MaxMagnitude {
		v = m.MaxMagnitude
	} else if v < -m.MaxMagnitude {
		v = -m.MaxMagnitude
	}
	m.throttle = v
	if m.Out != nil {
		m.Out.Set(v)
	}
}
