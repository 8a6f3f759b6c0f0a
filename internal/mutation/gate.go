package mutation

import (
	"errors"
	"sync"
)

// ErrRecordBusy is returned when a record already has a mutation in flight.
var ErrRecordBusy = errors.New("a mutation for this record is already in progress")

// Gate serializes mutations per record ID: while one mutation on a record is
// pending, further attempts on the same record are rejected instead of run
// concurrently, which would risk lost updates when local state is patched
// from the response.
type Gate struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGate creates an empty gate.
func NewGate() *Gate {
	return &Gate{inflight: make(map[string]struct{})}
}

// TryAcquire claims id. It returns false when a mutation on id is pending.
func (g *Gate) TryAcquire(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[id]; busy {
		return false
	}
	g.inflight[id] = struct{}{}
	return true
}

// Release frees id for the next mutation.
func (g *Gate) Release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, id)
}

// Busy reports whether a mutation on id is pending.
func (g *Gate) Busy(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inflight[id]
	return busy
}

// Do runs fn while holding the record's slot, returning ErrRecordBusy when
// another mutation on id is already running.
func (g *Gate) Do(id string, fn func() error) error {
	if !g.TryAcquire(id) {
		return ErrRecordBusy
	}
	defer g.Release(id)
	return fn()
}
