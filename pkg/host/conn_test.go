package host

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/wire"
)

func testConfig(t *testing.T) *Config {
	cfg := NewConfig()
	cfg.SettleDelay = 0
	cfg.SendInterval = 5 * time.Millisecond
	cfg.DeviceTimeout = 100 * time.Millisecond
	require.NoError(t, cfg.RegisterCommand("X1", 0))
	return cfg
}

type connTestEnv struct {
	t      *testing.T
	conn   *Conn
	device net.Conn
	lines  chan string
	frames chan wire.Frame
}

func newConnTestEnv(t *testing.T) *connTestEnv {
	hostEnd, deviceEnd := net.Pipe()
	env := &connTestEnv{
		t:      t,
		conn:   NewConn(testConfig(t)),
		device: deviceEnd,
		lines:  make(chan string, 64),
		frames: make(chan wire.Frame, 16),
	}
	env.conn.Handler = func(f wire.Frame) {
		env.frames <- f
	}
	go func() {
		scanner := bufio.NewScanner(deviceEnd)
		for scanner.Scan() {
			select {
			case env.lines <- scanner.Text():
			default:
			}
		}
		close(env.lines)
	}()
	require.NoError(t, env.conn.OpenStream(hostEnd))
	return env
}

func (e *connTestEnv) expectLine(expect string) {
	e.t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				e.t.Fatalf("stream closed waiting for %q", expect)
			}
			if line == expect {
				return
			}
			// earlier cycles may still carry the previous value
		case <-deadline:
			e.t.Fatalf("timeout waiting for line %q", expect)
		}
	}
}

func TestConfigRegisterCommand(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.RegisterCommand("X1", 0))
	require.Equal(t, command.ErrDuplicate, cfg.RegisterCommand("X1", 1))
	require.Equal(t, command.ErrBadName, cfg.RegisterCommand("not a name", 0))
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.SendInterval = cfg.DeviceTimeout
	require.Equal(t, ErrBadInterval, cfg.validate())
	cfg.SendInterval = cfg.DeviceTimeout / 4
	require.NoError(t, cfg.validate())
}

func TestConnSchedulerTransmits(t *testing.T) {
	env := newConnTestEnv(t)
	defer env.conn.Close()

	env.expectLine("X1:0")
	require.NoError(t, env.conn.UpdateCommand("X1", 50))
	env.expectLine("X1:50")

	v, ok := env.conn.Value("X1")
	require.True(t, ok)
	require.Equal(t, 50, v)
}

func TestConnUpdateUnknownCommand(t *testing.T) {
	env := newConnTestEnv(t)
	defer env.conn.Close()
	require.Equal(t, command.ErrUnknown, env.conn.UpdateCommand("NOPE", 1))
}

func TestConnHandlerReceivesDeviceFrames(t *testing.T) {
	env := newConnTestEnv(t)
	defer env.conn.Close()

	_, err := env.device.Write([]byte("X1:0\nX1:50\n"))
	require.NoError(t, err)

	for _, expect := range []wire.Frame{{Name: "X1", Value: 0}, {Name: "X1", Value: 50}} {
		select {
		case f := <-env.frames:
			require.Equal(t, expect, f)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for device frame")
		}
	}
}

func TestConnClose(t *testing.T) {
	env := newConnTestEnv(t)
	env.expectLine("X1:0")

	require.NoError(t, env.conn.Close())
	// close terminates the read path and releases the stream
	select {
	case _, ok := <-env.lines:
		if ok {
			// drain whatever was in flight before close
			for range env.lines {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("stream not released on close")
	}

	// no writes after close
	require.Equal(t, ErrNotOpen, env.conn.WriteBytes([]byte("X1:1\n")))
	require.NoError(t, env.conn.Close())
}

func TestConnCloseDuringSettle(t *testing.T) {
	cfg := testConfig(t)
	cfg.SettleDelay = 500 * time.Millisecond
	conn := NewConn(cfg)
	hostEnd, deviceEnd := net.Pipe()
	defer deviceEnd.Close()

	openErr := make(chan error, 1)
	go func() { openErr <- conn.OpenStream(hostEnd) }()
	time.Sleep(100 * time.Millisecond)

	// close while open is still settling
	require.NoError(t, conn.Close())
	select {
	case err := <-openErr:
		require.Equal(t, ErrNotOpen, err)
	case <-time.After(time.Second):
		t.Fatal("open did not return after close")
	}

	// nothing was started and the stream was released
	require.Equal(t, ErrNotOpen, conn.WriteBytes([]byte("X1:1\n")))
	_, err := hostEnd.Write([]byte("x"))
	require.Error(t, err)
}

func TestConnOpenStreamBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SendInterval = cfg.DeviceTimeout
	conn := NewConn(cfg)
	hostEnd, deviceEnd := net.Pipe()
	defer deviceEnd.Close()

	require.Equal(t, ErrBadInterval, conn.OpenStream(hostEnd))
	// the stream was closed on failure
	_, err := hostEnd.Write([]byte("x"))
	require.Error(t, err)
}

func TestConnCloseAfterDeviceGone(t *testing.T) {
	env := newConnTestEnv(t)
	env.expectLine("X1:0")

	// device disconnects first; close still succeeds quietly
	require.NoError(t, env.device.Close())
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, env.conn.Close())
}

func TestConnWriteBytesVerbatim(t *testing.T) {
	env := newConnTestEnv(t)
	defer env.conn.Close()

	require.NoError(t, env.conn.WriteBytes([]byte("RAW1:1\n")))
	env.expectLine("RAW1:1")
}

func TestConnOpenTwice(t *testing.T) {
	env := newConnTestEnv(t)
	defer env.conn.Close()

	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	require.Equal(t, ErrAlreadyOpen, env.conn.OpenStream(a))
}

func TestValueTableSnapshotOrder(t *testing.T) {
	table := newValueTable([]registered{{"B", 2}, {"A", 1}})
	require.Equal(t, []wire.Frame{{Name: "B", Value: 2}, {Name: "A", Value: 1}}, table.snapshot())
	require.NoError(t, table.update("A", 9))
	require.Equal(t, []wire.Frame{{Name: "B", Value: 2}, {Name: "A", Value: 9}}, table.snapshot())
}
