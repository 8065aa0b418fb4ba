package service

import (
	"sync"
	"time"
)

// Coalescer collapses a burst of calls against one key into a single
// execution after a quiet period. Each new call replaces the pending
// function and restarts the key's timer, so only the final state of a burst
// is ever executed; intermediate states are discarded, not merged.
type Coalescer struct {
	mu      sync.Mutex
	delay   time.Duration
	after   func(time.Duration, func()) *time.Timer
	timers  map[string]*time.Timer
	pending map[string]func()
}

// NewCoalescer creates a coalescer with the given quiet interval.
func NewCoalescer(delay time.Duration) *Coalescer {
	return newCoalescer(delay, time.AfterFunc)
}

// newCoalescer takes the timer factory explicitly so tests can fire timers
// deterministically instead of sleeping.
func newCoalescer(delay time.Duration, after func(time.Duration, func()) *time.Timer) *Coalescer {
	return &Coalescer{
		delay:   delay,
		after:   after,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]func()),
	}
}

// Do schedules fn to run after the quiet interval, replacing any function
// already pending for key and restarting its timer.
func (c *Coalescer) Do(key string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending[key] = fn
	if t, ok := c.timers[key]; ok {
		t.Stop()
	}
	c.timers[key] = c.after(c.delay, func() { c.fire(key) })
}

// Flush runs key's pending function immediately, if any.
func (c *Coalescer) Flush(key string) {
	c.mu.Lock()
	if t, ok := c.timers[key]; ok {
		t.Stop()
	}
	c.mu.Unlock()

	c.fire(key)
}

// Cancel drops key's pending function without running it.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[key]; ok {
		t.Stop()
		delete(c.timers, key)
	}
	delete(c.pending, key)
}

// FlushAll runs every pending function immediately. Used at shutdown so
// buffered edits reach the store before it closes.
func (c *Coalescer) FlushAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.pending))
	for key := range c.pending {
		keys = append(keys, key)
	}
	for _, t := range c.timers {
		t.Stop()
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.fire(key)
	}
}

// Stop cancels every pending function. Writes already in flight complete.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
	for key := range c.pending {
		delete(c.pending, key)
	}
}

func (c *Coalescer) fire(key string) {
	c.mu.Lock()
	fn := c.pending[key]
	delete(c.pending, key)
	delete(c.timers, key)
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
