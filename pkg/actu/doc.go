// Package actu provides actuator value sinks for the device loop.
//
// A sink accepts an integer through a command handler and drives a
// narrow output interface. The protocol core never sees pins, PWM or
// H-bridge details; swapping a GPIO implementation for a simulation is
// a matter of providing a different Output.
//
// Sinks are not safe for concurrent use. Handlers and tasks are meant
// to run inside the single device loop goroutine.
package actu
