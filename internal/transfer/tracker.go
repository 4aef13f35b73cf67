// Package transfer tracks byte-level progress of in-flight uploads
// and downloads for display.
package transfer

import (
	"sync"
	"time"
)

const DefaultHold = 2 * time.Second

// Tracker maps an in-flight transfer's item id to its last-known
// percentage. Displayed values are monotonically non-decreasing per
// item: late or duplicate callbacks with a lower percentage are
// ignored. A completed entry lingers for the hold duration so the UI
// can flash "done" before reverting.
type Tracker struct {
	mu      sync.Mutex
	entries map[uint]int
	timers  map[uint]*time.Timer
	hold    time.Duration
}

func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Tracker{
		entries: make(map[uint]int),
		timers:  make(map[uint]*time.Timer),
		hold:    hold,
	}
}

// Start registers a transfer at zero percent. Starting an id that is
// already tracked resets it; preventing a second concurrent transfer
// for the same item is the initiating control's job, not the tracker's.
func (t *Tracker) Start(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTimerLocked(id)
	t.entries[id] = 0
}

// Update records a progress callback. Values below the recorded
// percentage are suppressed. Reaching 100 schedules removal after the
// display hold.
func (t *Tracker) Update(id uint, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.entries[id]
	if !ok {
		return
	}
	if percent <= current {
		return
	}
	t.entries[id] = percent
	if percent == 100 {
		t.cancelTimerLocked(id)
		t.timers[id] = time.AfterFunc(t.hold, func() { t.remove(id) })
	}
}

// Fail drops the entry immediately.
func (t *Tracker) Fail(id uint) {
	t.remove(id)
}

func (t *Tracker) remove(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTimerLocked(id)
	delete(t.entries, id)
}

func (t *Tracker) cancelTimerLocked(id uint) {
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
}

// Percent returns the displayed percentage for an item and whether a
// transfer is being tracked for it.
func (t *Tracker) Percent(id uint) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pct, ok := t.entries[id]
	return pct, ok
}

// Active returns a copy of all tracked entries.
func (t *Tracker) Active() map[uint]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[uint]int, len(t.entries))
	for id, pct := range t.entries {
		out[id] = pct
	}
	return out
}
