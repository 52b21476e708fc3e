package host

import (
	"time"

	"github.com/robolink/serlink/pkg/command"
)

// Defaults. The settle delay accommodates devices that reset when the
// line is opened; traffic sent earlier is lost.
const (
	DefaultBaud          = 9600
	DefaultSettleDelay   = 2 * time.Second
	DefaultSendInterval  = 500 * time.Millisecond
	DefaultDeviceTimeout = 2 * time.Second
)

// Config holds connection settings and the command topology. The
// topology is wiring, not persisted state: it is defined entirely by
// RegisterCommand calls before Open.
type Config struct {
	// Port is the stream endpoint, e.g. "/dev/ttyUSB0".
	Port string
	// Baud is the serial line rate.
	Baud int
	// SettleDelay is observed after opening before any traffic.
	SettleDelay time.Duration
	// SendInterval is the transmission cycle period. Must be
	// strictly less than DeviceTimeout.
	SendInterval time.Duration
	// DeviceTimeout is the watchdog timeout configured on the
	// device, used to validate SendInterval.
	DeviceTimeout time.Duration

	commands []registered
}

type registered struct {
	name      command.Name
	initValue int
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Baud:          DefaultBaud,
		SettleDelay:   DefaultSettleDelay,
		SendInterval:  DefaultSendInterval,
		DeviceTimeout: DefaultDeviceTimeout,
	}
}

// RegisterCommand seeds the current value for name. Must be called
// before Open; duplicate names are rejected.
func (c *Config) RegisterCommand(name command.Name, initValue int) error {
	if !name.Valid() {
		return command.ErrBadName
	}
	for _, reg := range c.commands {
		if reg.name == name {
			return command.ErrDuplicate
		}
	}
	c.commands = append(c.commands, registered{name: name, initValue: initValue})
	return nil
}

func (c *Config) validate() error {
	if c.SendInterval <= 0 || c.SendInterval >= c.DeviceTimeout {
		return ErrBadInterval
	}
	return nil
}
