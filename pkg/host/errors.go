package host

import "errors"

var (
	// ErrNotOpen indicates the connection has not been opened.
	ErrNotOpen = errors.New("connection not open")
	// ErrAlreadyOpen indicates Open was called twice.
	ErrAlreadyOpen = errors.New("connection already open")
	// ErrBadInterval indicates the send interval does not undercut
	// the device watchdog timeout.
	ErrBadInterval = errors.New("send interval must be shorter than device timeout")
)
