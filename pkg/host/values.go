package host

import (
	"sync"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/wire"
)

// valueTable is the host-side registry: name to current value. It is
// shared between callers of UpdateCommand and the scheduler's
// per-cycle snapshot, so access is a short critical section.
type valueTable struct {
	lock  sync.Mutex
	order []command.Name
	vals  map[command.Name]int
}

func newValueTable(regs []registered) *valueTable {
	t := &valueTable{vals: make(map[command.Name]int, len(regs))}
	for _, reg := range regs {
		t.order = append(t.order, reg.name)
		t.vals[reg.name] = reg.initValue
	}
	return t
}

func (t *valueTable) update(name command.Name, value int) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if _, ok := t.vals[name]; !ok {
		return command.ErrUnknown
	}
	t.vals[name] = value
	return nil
}

func (t *valueTable) get(name command.Name) (int, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	v, ok := t.vals[name]
	return v, ok
}

// snapshot copies the full current-value set in registration order.
// The copy is taken so encoding and writing happen outside the lock.
func (t *valueTable) snapshot() []wire.Frame {
	t.lock.Lock()
	defer t.lock.Unlock()
	frames := make([]wire.Frame, len(t.order))
	for i, name := range t.order {
		frames[i] = wire.Frame{Name: string(name), Value: t.vals[name]}
	}
	return frames
}
