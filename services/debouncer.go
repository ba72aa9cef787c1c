package services

import (
	"context"
	"sync"
	"time"

	"storefront-service/common/errors"
)

type debounceCall struct {
	cancel chan struct{}
}

// Debouncer collapses bursts of calls per key: each call waits out the window and only the
// newest call for a key runs. Older callers get ErrSuperseded.
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	pending map[string]*debounceCall
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait, pending: make(map[string]*debounceCall)}
}

// Do blocks for the debounce window, then runs fn unless a newer Do for key arrived.
func (d *Debouncer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	call := &debounceCall{cancel: make(chan struct{})}

	d.mu.Lock()
	if prev, ok := d.pending[key]; ok {
		close(prev.cancel)
	}
	d.pending[key] = call
	d.mu.Unlock()

	timer := time.NewTimer(d.wait)
	defer timer.Stop()

	select {
	case <-call.cancel:
		return errors.ErrSuperseded
	case <-ctx.Done():
		d.release(key, call)
		return ctx.Err()
	case <-timer.C:
	}

	// the timer and a newer call can race; the map decides
	d.mu.Lock()
	if d.pending[key] != call {
		d.mu.Unlock()
		return errors.ErrSuperseded
	}
	delete(d.pending, key)
	d.mu.Unlock()

	return fn(ctx)
}

func (d *Debouncer) release(key string, call *debounceCall) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending[key] == call {
		delete(d.pending, key)
	}
}

// Pending reports how many keys have a call waiting.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
