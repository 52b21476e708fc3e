package device

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/wire"
)

// Task is a periodic device activity independent of the command
// protocol (e.g. a timed output toggle). Tasks run once per loop
// iteration and must not block.
type Task func(now time.Time)

// DefaultInterval is the default loop iteration interval.
const DefaultInterval = 10 * time.Millisecond

// DefaultTimeout is the default watchdog timeout.
const DefaultTimeout = 2 * time.Second

// Loop is the cooperative scheduling harness driving the device side.
// Each iteration, in fixed order: drain received bytes and dispatch
// decoded frames, check watchdog expiry, run periodic tasks.
type Loop struct {
	Interval time.Duration
	Registry *Registry
	Watchdog Watchdog

	stream io.ReadWriter
	tasks  []Task
	dec    wire.Decoder

	byteCh chan byte
	errCh  chan error
}

// NewLoop creates a loop over stream with the given watchdog timeout.
func NewLoop(stream io.ReadWriter, reg *Registry, timeout time.Duration) *Loop {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loop{
		Interval: DefaultInterval,
		Registry: reg,
		Watchdog: Watchdog{Timeout: timeout},
		stream:   stream,
		byteCh:   make(chan byte, wire.RecvBufSize),
		errCh:    make(chan error, 1),
	}
}

// AddTask registers a periodic task. Must be called before Run.
func (l *Loop) AddTask(tasks ...Task) *Loop {
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Run implements Runnable. It seals the registry, runs init handlers,
// announces every registered command to the host and then iterates
// until the context is canceled or the stream fails.
func (l *Loop) Run(ctx context.Context) error {
	l.Registry.seal()
	l.Registry.notify = l.sendFrame
	l.Registry.initAll()
	for _, e := range l.Registry.order {
		if e.update != nil {
			l.sendFrame(e.name, e.initValue)
		}
	}
	l.Watchdog.Reset(time.Now())

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.readLoop(subCtx)

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-l.errCh:
			if err == io.EOF {
				err = errors.New("stream closed")
			}
			return err
		case b := <-l.byteCh:
			l.feed(time.Now(), b)
		case now := <-ticker.C:
			l.step(now)
		}
	}
}

// step performs one loop iteration.
func (l *Loop) step(now time.Time) {
	l.drain(now)
	if l.Watchdog.Check(now) {
		glog.Warningf("watchdog expired after %v, reinitializing", l.Watchdog.Timeout)
		l.Registry.ReinitializeAll()
	}
	for _, task := range l.tasks {
		task(now)
	}
}

func (l *Loop) drain(now time.Time) {
	for {
		select {
		case b := <-l.byteCh:
			l.feed(now, b)
		default:
			return
		}
	}
}

func (l *Loop) feed(now time.Time, b byte) {
	f, ok := l.dec.Parse(b)
	if !ok {
		return
	}
	if !l.Registry.Dispatch(f.Name, f.Value) {
		glog.V(2).Infof("ignored frame %s:%d", f.Name, f.Value)
		return
	}
	l.Watchdog.Reset(now)
}

// sendFrame emits a device-to-host frame. Only the loop goroutine
// writes, so no lock is needed.
func (l *Loop) sendFrame(name command.Name, value int) {
	b, err := wire.Encode(string(name), value)
	if err != nil {
		glog.Errorf("encode %s:%d: %v", name, value, err)
		return
	}
	if _, err = l.stream.Write(b); err != nil {
		glog.Warningf("write %s:%d: %v", name, value, err)
	}
}

func (l *Loop) readLoop(ctx context.Context) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, err := l.stream.Read(buf)
			if err != nil {
				l.errCh <- err
				return
			}
			select {
			case l.byteCh <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}
}
