// Package state is the client-side cache of forum entities. Each slice owns
// one entity family (session, topics, categories, comments, users, votes),
// guards it with a mutex, and tracks an async status pair: a loading flag and
// the last error message.
//
// Every remote operation follows the same shape: validate locally, flip
// loading on, call the remote service, then commit the server's record (or
// the error) under the lock. Slices never invent state; the server's response
// is the source of truth.
package state

import (
	"sync"
	"time"
)

// Status is the UI-facing view of a slice's async state.
type Status struct {
	Loading bool
	Err     string
}

// tracker owns the loading/error pair a slice carries. All methods assume the
// owning slice's mutex is held; the expiry callback takes it itself.
type tracker struct {
	mu      *sync.Mutex
	ttl     time.Duration
	loading bool
	err     string
	gen     int
	timer   *time.Timer
}

func newTracker(mu *sync.Mutex, ttl time.Duration) tracker {
	return tracker{mu: mu, ttl: ttl}
}

// begin marks a request in flight and clears any lingering error.
func (t *tracker) begin() {
	t.loading = true
	t.setError("")
}

// finish marks the request settled, recording the error if any.
func (t *tracker) finish(err error) {
	t.loading = false
	if err != nil {
		t.setError(err.Error())
	}
}

// setError installs an error message and schedules its expiry. The generation
// counter keeps a stale timer from clearing a newer error.
func (t *tracker) setError(msg string) {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.err = msg
	t.gen++

	if msg == "" || t.ttl <= 0 {
		return
	}
	gen := t.gen
	t.timer = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen == gen {
			t.err = ""
		}
	})
}

func (t *tracker) status() Status {
	return Status{Loading: t.loading, Err: t.err}
}
