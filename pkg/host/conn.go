package host

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/run"
	"github.com/robolink/serlink/pkg/wire"
)

// FrameHandler consumes frames reported by the device: one init frame
// per command at device startup, and an update frame whenever a
// handler accepts a new value. It is called from the read goroutine
// and must not block on the connection itself.
type FrameHandler func(wire.Frame)

// Conn is a single connection to a device. Open starts the
// transmission scheduler and the read path; Close terminates both
// before returning.
type Conn struct {
	Config  *Config
	Handler FrameHandler

	lock      sync.Mutex
	stream    io.ReadWriteCloser
	cancel    context.CancelFunc
	runner    *run.Runner
	writeLock sync.Mutex
	values    *valueTable
}

// NewConn creates a connection from config. The command topology must
// be fully registered on config before Open.
func NewConn(config *Config) *Conn {
	return &Conn{Config: config, values: newValueTable(config.commands)}
}

// Open opens the serial port named in the config, observes the settle
// delay to let the device reset, and starts the background activities.
func (c *Conn) Open() error {
	if err := c.Config.validate(); err != nil {
		return err
	}
	s, err := serial.OpenPort(&serial.Config{Name: c.Config.Port, Baud: c.Config.Baud})
	if err != nil {
		return err
	}
	return c.openStream(s)
}

// OpenStream attaches to an already-established byte stream (e.g. a
// websocket to a simulated device). The settle delay still applies.
// Ownership of the stream passes to the connection: on failure it is
// closed.
func (c *Conn) OpenStream(stream io.ReadWriteCloser) error {
	if err := c.Config.validate(); err != nil {
		stream.Close()
		return err
	}
	return c.openStream(stream)
}

func (c *Conn) openStream(stream io.ReadWriteCloser) error {
	c.lock.Lock()
	if c.stream != nil {
		c.lock.Unlock()
		stream.Close()
		return ErrAlreadyOpen
	}
	// cancel and runner are published together with the stream so a
	// concurrent Close always finds them in place
	ctx, cancel := context.WithCancel(context.Background())
	c.stream = stream
	c.cancel = cancel
	c.runner = run.NewRunnerWith(ctx)
	c.lock.Unlock()

	if d := c.Config.SettleDelay; d > 0 {
		settle := time.NewTimer(d)
		select {
		case <-settle.C:
		case <-ctx.Done():
			settle.Stop()
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if c.stream != stream {
		// closed while settling
		stream.Close()
		return ErrNotOpen
	}
	c.runner.Go(
		run.NamedRun("scheduler", run.RunFunc(c.runScheduler)),
		run.NamedRun("reader", run.RunFunc(func(ctx context.Context) error {
			return c.runReader(ctx, stream)
		})),
	)
	return nil
}

// Close stops the scheduler and the read path, releases the stream and
// waits for both to terminate. Safe to call more than once, and safe
// while Open is still settling.
func (c *Conn) Close() error {
	c.lock.Lock()
	if c.stream == nil {
		c.lock.Unlock()
		return nil
	}
	c.stream = nil
	cancel, runner := c.cancel, c.runner
	c.lock.Unlock()

	cancel()
	return runner.Wait()
}

// UpdateCommand overwrites the current value of a registered command;
// it is picked up by the next transmission cycle. An unregistered name
// is a wiring bug in the caller and fails immediately.
func (c *Conn) UpdateCommand(name command.Name, value int) error {
	return c.values.update(name, value)
}

// Value returns the current value for name.
func (c *Conn) Value(name command.Name) (int, bool) {
	return c.values.get(name)
}

// Values returns the full current-value set in registration order.
func (c *Conn) Values() []wire.Frame {
	return c.values.snapshot()
}

// WriteBytes writes bytes to the stream verbatim: no framing is added
// at this layer. Writes are serialized with the scheduler's.
func (c *Conn) WriteBytes(b []byte) error {
	c.lock.Lock()
	stream := c.stream
	c.lock.Unlock()
	if stream == nil {
		return ErrNotOpen
	}
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	_, err := stream.Write(b)
	return err
}

// runScheduler transmits the full current-value set once per interval.
func (c *Conn) runScheduler(ctx context.Context) error {
	ticker := time.NewTicker(c.Config.SendInterval)
	defer ticker.Stop()
	c.transmit()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.transmit()
		}
	}
}

func (c *Conn) transmit() {
	for _, f := range c.values.snapshot() {
		b, err := f.Bytes()
		if err != nil {
			glog.Errorf("encode %s:%d: %v", f.Name, f.Value, err)
			continue
		}
		if err = c.WriteBytes(b); err != nil {
			// transient: the remaining frames go out next cycle
			glog.Warningf("transmit %s: %v", f.Name, err)
			return
		}
	}
}

func (c *Conn) runReader(ctx context.Context, stream io.ReadWriteCloser) error {
	err := run.RunWithContextCloser(ctx, stream, func() error {
		var dec wire.Decoder
		buf := make([]byte, wire.RecvBufSize)
		for {
			n, err := stream.Read(buf)
			if err != nil {
				return err
			}
			for _, f := range dec.Feed(buf[:n]) {
				glog.V(2).Infof("device: %s:%d", f.Name, f.Value)
				if h := c.Handler; h != nil {
					h(f)
				}
			}
		}
	})
	if err == io.EOF {
		// the device went away; nothing for Close to report
		glog.Warning("device stream ended")
		return nil
	}
	return err
}
