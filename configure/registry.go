package configure

import (
	"fmt"
	"sync"
)

// Registry holds the endpoints configured during one planning pass. Each
// endpoint may be registered once.
type Registry struct {
	mu      sync.Mutex
	targets map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{targets: map[string]struct{}{}}
}

// Register inserts id unless it is already present.
func (r *Registry) Register(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.targets[id]; ok {
		return fmt.Errorf("%w: %q is already configured", ErrDuplicateConfigurationTarget, id)
	}
	r.targets[id] = struct{}{}
	return nil
}

// Release drops id so a later construction may claim it.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.targets, id)
}

func (r *Registry) Registered(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.targets[id]
	return ok
}
