package device

import (
	"github.com/robolink/serlink/pkg/command"
)

type entry struct {
	name      command.Name
	init      command.InitHandler
	update    command.UpdateHandler
	initValue int
	current   int
}

// Registry is the device-side name-keyed handler table. It is built
// once before the loop starts and never mutated afterward; the loop
// seals it on startup.
type Registry struct {
	order   []*entry
	entries map[command.Name]*entry
	sealed  bool

	// notify is invoked after an update handler accepted a value,
	// both on dispatch and on reinitialize. Set by the loop to emit
	// update frames back to the host.
	notify func(command.Name, int)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[command.Name]*entry)}
}

func (r *Registry) get(name command.Name) (*entry, error) {
	if r.sealed {
		return nil, command.ErrSealed
	}
	if !name.Valid() {
		return nil, command.ErrBadName
	}
	e := r.entries[name]
	if e == nil {
		e = &entry{name: name}
		r.entries[name] = e
		r.order = append(r.order, e)
	}
	return e, nil
}

// RegisterInit binds the one-shot init handler for name. It runs when
// the loop starts, before any frame is dispatched.
func (r *Registry) RegisterInit(name command.Name, h command.InitHandler) error {
	e, err := r.get(name)
	if err != nil {
		return err
	}
	if e.init != nil {
		return command.ErrDuplicate
	}
	e.init = h
	return nil
}

// RegisterUpdate binds the update handler for name and records the
// value the command falls back to when the watchdog expires.
func (r *Registry) RegisterUpdate(name command.Name, initValue int, h command.UpdateHandler) error {
	e, err := r.get(name)
	if err != nil {
		return err
	}
	if e.update != nil {
		return command.ErrDuplicate
	}
	e.update = h
	e.initValue = initValue
	e.current = initValue
	return nil
}

func (r *Registry) seal() {
	r.sealed = true
}

// Dispatch routes a received value to the update handler bound to name.
// A name with no update handler is silently ignored and Dispatch
// reports false; an older device simply drops commands it does not
// understand.
func (r *Registry) Dispatch(name string, value int) bool {
	e := r.entries[command.Name(name)]
	if e == nil || e.update == nil {
		return false
	}
	e.current = value
	e.update(value)
	if r.notify != nil {
		r.notify(e.name, e.current)
	}
	return true
}

// ReinitializeAll drives every registered update handler back to its
// init value, in registration order. Used by the loop when the
// watchdog expires.
func (r *Registry) ReinitializeAll() {
	for _, e := range r.order {
		if e.update == nil {
			continue
		}
		e.current = e.initValue
		e.update(e.initValue)
		if r.notify != nil {
			r.notify(e.name, e.current)
		}
	}
}

func (r *Registry) initAll() {
	for _, e := range r.order {
		if e.init != nil {
			e.init()
		}
	}
}

// Current returns the last value accepted for name.
func (r *Registry) Current(name command.Name) (int, bool) {
	e := r.entries[name]
	if e == nil || e.update == nil {
		return 0, false
	}
	return e.current, true
}
