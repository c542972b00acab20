package transport

import (
	"context"
	"sync"
)

// InFlightRegistry tracks in-flight streaming responses for explicit
// cancellation. It maps request IDs to their cancel functions, allowing a
// DELETE request or a server shutdown to stop streams that are still
// emitting. A request ID identifies at most one running stream.
//
// All methods are safe for concurrent access.
type InFlightRegistry struct {
	mu      sync.Mutex
	next    uint64
	entries map[string]inflightEntry
}

type inflightEntry struct {
	cancel context.CancelFunc
	token  uint64
}

// NewInFlightRegistry creates a new empty registry.
func NewInFlightRegistry() *InFlightRegistry {
	return &InFlightRegistry{
		entries: make(map[string]inflightEntry),
	}
}

// Register adds an in-flight stream to the registry. It returns false if
// id already belongs to a running stream, in which case nothing is
// registered. On success the returned release func removes the entry
// without cancelling it; it only ever removes this registration, even if
// the id was cancelled and registered again in the meantime.
func (r *InFlightRegistry) Register(id string, cancel context.CancelFunc) (release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[id]; exists {
		return nil, false
	}
	r.next++
	token := r.next
	r.entries[id] = inflightEntry{cancel: cancel, token: token}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if e, ok := r.entries[id]; ok && e.token == token {
			delete(r.entries, id)
		}
	}, true
}

// Cancel cancels an in-flight stream by calling its cancel function.
// Returns true if the stream was found and cancelled, false if the ID
// was not registered (either already completed or never existed).
func (r *InFlightRegistry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.cancel()
	delete(r.entries, id)
	return true
}

// CancelAll cancels every registered stream and empties the registry.
// It returns the number of streams cancelled.
func (r *InFlightRegistry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	for id, e := range r.entries {
		e.cancel()
		delete(r.entries, id)
	}
	return n
}

// Len returns the number of registered streams.
func (r *InFlightRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
