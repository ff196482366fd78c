// Package coordinator implements the draft persistence and reversible
// deletion core: a restartable debounce timer, the savability policy,
// the per-item draft save coordinator, the grace-period deletion
// coordinator and the edit session that guards their lifecycles.
package coordinator

import (
	"sync"
	"time"
)

// Debouncer is a restartable delay primitive. Each Schedule supersedes
// any armed action, so for a burst of calls only the last action runs,
// and only after the burst has been quiet for the full delay.
type Debouncer struct {
	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending func()
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Schedule arms fn to run after delay, replacing any armed action.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(delay, func() {
		d.fire(gen)
	})
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		// Superseded or cancelled after the timer went off.
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

// Cancel drops the armed action. Cancelling an idle or already-fired
// debouncer is a no-op.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// FireNow runs the armed action immediately and clears the schedule.
// No-op when nothing is armed.
func (d *Debouncer) FireNow() {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	fn()
}

// Armed reports whether an action is currently scheduled.
func (d *Debouncer) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
