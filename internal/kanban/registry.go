package kanban

import "sync"

// Registry is the live set of registered listeners. It is the only structure
// mutated concurrently outside a request's transaction, so every access goes
// through the mutex; fan-out iterates a snapshot, never the live map.
type Registry struct {
	mu        sync.Mutex
	listeners map[Listener]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[Listener]struct{}),
	}
}

// Register adds a listener. Adding an already-present listener is a no-op.
func (r *Registry) Register(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[l] = struct{}{}
}

// Unregister removes a listener. Removing an absent listener is a no-op.
func (r *Registry) Unregister(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, l)
}

// Snapshot returns a point-in-time copy safe to iterate while registration
// proceeds concurrently. No ordering is promised.
func (r *Registry) Snapshot() []Listener {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]Listener, 0, len(r.listeners))
	for l := range r.listeners {
		snapshot = append(snapshot, l)
	}
	return snapshot
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
