// Package device implements the device side of the link: the handler
// registry, the fail-safe watchdog and the cooperative loop driver.
package device

// The device model is single-threaded and non-preemptive: all handler
// invocations, watchdog evaluation and periodic tasks happen inside one
// loop goroutine, so no locking is needed around registry or watchdog
// state. The flip side is that a blocking handler stalls the whole
// protocol, including watchdog evaluation; handlers must be bounded.
//
// The loop owns the stream. A background goroutine performs the
// blocking single-byte reads and feeds a bounded channel which models
// the fixed-size receive buffer of a real device.
