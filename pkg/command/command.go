// Package command defines command identities and handler capabilities
// shared by the host and device sides of the link.
package command

import (
	"errors"

	"github.com/robolink/serlink/pkg/wire"
)

// Name identifies a command within a registry. Names are unique per
// registry and must be wire-legal (see wire.ValidName).
type Name string

// Valid reports whether the name can be carried on the wire.
func (n Name) Valid() bool {
	return wire.ValidName(string(n))
}

// UpdateHandler consumes a new value for a command. Handlers run
// synchronously inside the device loop and must not block.
type UpdateHandler func(value int)

// InitHandler runs once when the device loop starts, before any frame
// is dispatched, to drive the output to its safe default.
type InitHandler func()

var (
	// ErrBadName indicates a name that cannot be carried on the wire.
	ErrBadName = errors.New("invalid command name")
	// ErrDuplicate indicates a second registration of the same name.
	ErrDuplicate = errors.New("command already registered")
	// ErrUnknown indicates an operation on a name that was never
	// registered. On the host side this is a wiring bug in the caller.
	ErrUnknown = errors.New("unknown command")
	// ErrSealed indicates a registration attempted after the device
	// loop started.
	ErrSealed = errors.New("registry sealed")
)
