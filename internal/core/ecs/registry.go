package ecs

import "reflect"

// Registry tracks every pool of a world, in creation order, and supports bulk
// cleanup on entity destroy and bulk growth on world resize.
type Registry struct {
	pools  []AnyPool
	byType map[reflect.Type]AnyPool
}

func NewRegistry() *Registry {
	return &Registry{
		pools:  make([]AnyPool, 0, 16),
		byType: make(map[reflect.Type]AnyPool, 16),
	}
}

// Register adds a pool under its component type. A second pool for the same
// type replaces the lookup entry but both keep receiving world callbacks.
func (r *Registry) Register(t reflect.Type, pool AnyPool) {
	r.pools = append(r.pools, pool)
	r.byType[t] = pool
}

// Lookup returns the pool registered for t.
func (r *Registry) Lookup(t reflect.Type) (AnyPool, bool) {
	p, ok := r.byType[t]
	return p, ok
}

// RemoveAll clears the given slot from every registered pool and reports how
// many components were removed.
func (r *Registry) RemoveAll(slot uint32) int {
	n := 0
	for _, p := range r.pools {
		if p.TryDel(slot) {
			n++
		}
	}
	return n
}

// Resize forwards a world capacity change to every pool.
func (r *Registry) Resize(capacity int) {
	for _, p := range r.pools {
		p.OnWorldResize(capacity)
	}
}

// Pools returns the registered pools in creation order.
func (r *Registry) Pools() []AnyPool {
	return r.pools
}
