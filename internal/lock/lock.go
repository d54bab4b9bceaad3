package lock

import "sync"

// Registry hands out one exclusive lock per account id. Holding an
// account's lock for the duration of a load-mutate-save cycle serializes
// all mutations to that account; different accounts never contend.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

func (r *Registry) get(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	return l
}

// Lock acquires the exclusive lock for key, blocking until it is held.
func (r *Registry) Lock(key string) {
	r.get(key).Lock()
}

// Unlock releases the exclusive lock for key. It must only be called by
// the holder.
func (r *Registry) Unlock(key string) {
	r.get(key).Unlock()
}
