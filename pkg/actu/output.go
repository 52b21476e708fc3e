package actu

// Output consumes an integer level (servo angle, motor throttle).
type Output interface {
	Set(v int)
}

// SwitchOutput consumes an on/off state (LED, relay).
type SwitchOutput interface {
	Set(on bool)
}

// OutputFunc is the func form of Output.
type OutputFunc func(v int)

// Set implements Output.
func (f OutputFunc) Set(v int) { f(v) }

// SwitchFunc is the func form of SwitchOutput.
type SwitchFunc func(on bool)

// Set implements SwitchOutput.
func (f SwitchFunc) Set(on bool) { f(on) }
