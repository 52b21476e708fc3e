package wire

import (
	"errors"
	"strconv"
)

const (
	// Delimiter separates the command name from the value.
	Delimiter byte = ':'
	// Terminator ends a frame.
	Terminator byte = '\n'

	// MaxNameLen is the maximum length of a command name.
	MaxNameLen = 8
	// MaxFrameSize is the maximum encoded size of a single frame,
	// including delimiter and terminator. It must stay well under
	// the device receive buffer (see RecvBufSize).
	MaxFrameSize = 16
	// RecvBufSize is the modeled size of the device receive buffer.
	RecvBufSize = 64
)

var (
	// ErrBadName indicates the command name is empty, too long or
	// contains characters outside [A-Za-z0-9_].
	ErrBadName = errors.New("invalid command name")
	// ErrFrameTooLarge indicates the encoded frame exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame too large")
)

// Frame is one decoded wire unit.
type Frame struct {
	Name  string
	Value int
}

// ValidName reports whether s is a wire-legal command name.
func ValidName(s string) bool {
	if len(s) == 0 || len(s) > MaxNameLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !nameByte(s[i]) {
			return false
		}
	}
	return true
}

func nameByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') || b == '_'
}

// Encode produces the bytes for one frame. It is pure: the same
// (name, value) always yields the same bytes.
func Encode(name string, value int) ([]byte, error) {
	if !ValidName(name) {
		return nil, ErrBadName
	}
	b := make([]byte, 0, MaxFrameSize)
	b = append(b, name...)
	b = append(b, Delimiter)
	b = strconv.AppendInt(b, int64(value), 10)
	b = append(b, Terminator)
	if len(b) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	return b, nil
}

// Bytes encodes the frame, see Encode.
func (f Frame) Bytes() ([]byte, error) {
	return Encode(f.Name, f.Value)
}
