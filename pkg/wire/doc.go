// Package wire implements the frame codec shared by host and device.
package wire

// A frame is the single wire-level unit exchanged over the serial link:
// an ASCII command name, a ':' delimiter, a signed decimal value and a
// '\n' terminator, e.g. "SRV1:90\n".
//
// The format is chosen to fit well within the small fixed receive buffer
// on the device side (tens of bytes), to be trivially produced by
// firmware without any allocation, and to be human readable on a line
// monitor. There is no checksum; line noise is handled by skipping to
// the next terminator and resuming, so corruption can never
// desynchronize the stream permanently.
//
// Producer/consumer: both ends. The host sends command updates, the
// device replies with init and update frames using the same format.
