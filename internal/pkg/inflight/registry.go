package inflight

import "sync"

// Registry tracks operations that are currently in flight, keyed by an
// operation identity such as "directory.sync" or "enhance.regular.<row id>".
// It generalizes the usual ad hoc busy booleans so re-entrancy guards share
// one mechanism: acquire before dispatching, release when the response lands.
type Registry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewRegistry creates an empty in-flight registry
func NewRegistry() *Registry {
	return &Registry{
		active: make(map[string]struct{}),
	}
}

// TryAcquire marks the key as in flight. It returns false when the key is
// already held, in which case the caller must not dispatch.
func (r *Registry) TryAcquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, held := r.active[key]; held {
		return false
	}
	r.active[key] = struct{}{}
	return true
}

// Release clears the key. Releasing a key that is not held is a no-op.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, key)
}

// Active reports whether the key is currently in flight
func (r *Registry) Active(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, held := r.active[key]
	return held
}
