// Package host implements the host side of the link: the serial
// connection, the registered-command value table and the transmission
// scheduler that keeps the device's watchdog fed.
package host

// The host runs two background activities per connection: the
// scheduler, which encodes and writes the full current-value set once
// per interval, and the read path, which decodes init/update frames
// reported by the device. All stream writes are serialized; the value
// table lock is never held across a blocking write.
//
// As long as the host process is alive and the scheduler is running,
// the device never self-resets: the send interval is validated to be
// strictly shorter than the device watchdog timeout.
