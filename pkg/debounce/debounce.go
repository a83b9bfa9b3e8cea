// Package debounce coalesces bursts of calls per key into the last one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recent fn for a key once the key has been quiet for wait
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	pending map[string]*entry
	closed  bool
	wg      sync.WaitGroup
}

type entry struct {
	timer *time.Timer
	fn    func()
	done  bool
}

// New creates a Debouncer; wait <= 0 runs every call synchronously
func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait, pending: make(map[string]*entry)}
}

// Trigger schedules fn for key, replacing any fn still waiting for that key.
// It reports whether fn was deferred.
func (d *Debouncer) Trigger(key string, fn func()) bool {
	if d.wait <= 0 {
		fn()
		return false
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		fn()
		return false
	}

	if e, ok := d.pending[key]; ok {
		e.fn = fn
		e.timer.Reset(d.wait)
		d.mu.Unlock()
		return true
	}

	e := &entry{fn: fn}
	d.wg.Add(1)
	e.timer = time.AfterFunc(d.wait, func() { d.fire(key, e) })
	d.pending[key] = e
	d.mu.Unlock()
	return true
}

func (d *Debouncer) fire(key string, e *entry) {
	d.mu.Lock()
	if e.done {
		d.mu.Unlock()
		return
	}
	e.done = true
	if d.pending[key] == e {
		delete(d.pending, key)
	}
	fn := e.fn
	d.mu.Unlock()

	defer d.wg.Done()
	fn()
}

// Enabled reports whether calls are deferred at all
func (d *Debouncer) Enabled() bool {
	return d.wait > 0
}

// Pending number of keys waiting to fire
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs every waiting fn now and makes later Triggers synchronous
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.closed = true
	var fns []func()
	for key, e := range d.pending {
		delete(d.pending, key)
		// a timer that already fired is finishing in fire()
		if e.timer.Stop() {
			e.done = true
			fns = append(fns, e.fn)
		}
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
		d.wg.Done()
	}
	d.wg.Wait()
}
