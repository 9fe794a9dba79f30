package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// AnyPool is the type-erased view the world keeps of every pool so it can
// resize them and strip a destroyed entity without knowing T.
type AnyPool interface {
	ComponentName() string
	Has(slot uint32) bool
	TryDel(slot uint32) bool
	Len() int
	OnWorldResize(capacity int)
}

// PoolConfig sizes a pool and selects checked mode.
type PoolConfig struct {
	RecycledCapacity   int
	ComponentsCapacity int
	// Checked enables precondition guards. With Checked off a violated
	// precondition (duplicate Add, access to a missing component, a slot past
	// capacity) is undefined behaviour: the pool may return the reserved zero
	// item, overwrite another entity's data or panic on an index.
	Checked bool
}

// Pool is sparse-set storage for one component type. mapping is indexed by
// entity slot and holds 0 (absent) or a dense index into items. items[0] is
// reserved so the zero value of mapping always means "absent".
//
// A Pool belongs to one world and is not safe for concurrent use.
type Pool[T any] struct {
	name          string
	world         uint16
	checked       bool
	mapping       []int32
	items         []T
	itemsCount    int32
	recycled      []int32
	recycledCount int
	log           *zap.Logger
}

var _ AnyPool = (*Pool[struct{}])(nil)

// NewPool creates a pool covering capacity slots.
func NewPool[T any](world uint16, capacity int, cfg PoolConfig, log *zap.Logger) *Pool[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool[T]{
		name:       reflect.TypeFor[T]().String(),
		world:      world,
		checked:    cfg.Checked,
		mapping:    make([]int32, capacity),
		items:      make([]T, max(cfg.ComponentsCapacity, 1)+1),
		itemsCount: 1,
		recycled:   make([]int32, max(cfg.RecycledCapacity, 1)),
		log:        log,
	}
}

func (p *Pool[T]) ComponentName() string { return p.name }

// Has reports whether slot holds the component. It never fails.
func (p *Pool[T]) Has(slot uint32) bool {
	return int(slot) < len(p.mapping) && p.mapping[slot] > 0
}

// Add attaches v to slot, reusing the most recently freed dense index first.
func (p *Pool[T]) Add(slot uint32, v T) error {
	if p.checked {
		if int(slot) >= len(p.mapping) {
			return SlotRangeError{Component: p.name, Slot: slot, Capacity: len(p.mapping)}
		}
		if p.mapping[slot] > 0 {
			return DuplicateComponentError{Component: p.name, Slot: slot}
		}
	}
	p.add(slot, v)
	return nil
}

// TryAdd is Add that reports false instead of failing.
func (p *Pool[T]) TryAdd(slot uint32, v T) bool {
	if int(slot) >= len(p.mapping) || p.mapping[slot] > 0 {
		return false
	}
	p.add(slot, v)
	return true
}

func (p *Pool[T]) add(slot uint32, v T) {
	var idx int32
	if p.recycledCount > 0 {
		p.recycledCount--
		idx = p.recycled[p.recycledCount]
	} else {
		idx = p.itemsCount
		if int(idx) == len(p.items) {
			grown := make([]T, (len(p.items)-1)*2+1)
			copy(grown, p.items)
			p.items = grown
			p.log.Debug("pool dense table grown",
				zap.String("component", p.name),
				zap.Int("capacity", len(p.items)-1),
			)
		}
		p.itemsCount++
	}
	p.items[idx] = v
	p.mapping[slot] = idx
}

// Set overwrites the component on slot.
func (p *Pool[T]) Set(slot uint32, v T) error {
	if p.checked && !p.Has(slot) {
		return MissingComponentError{Component: p.name, Slot: slot}
	}
	p.items[p.mapping[slot]] = v
	return nil
}

// Get returns a pointer into the dense table. The pointer stays valid until
// the dense table next grows; re-fetch it after adding components.
func (p *Pool[T]) Get(slot uint32) (*T, error) {
	if p.checked && !p.Has(slot) {
		return nil, MissingComponentError{Component: p.name, Slot: slot}
	}
	return &p.items[p.mapping[slot]], nil
}

// Del detaches the component from slot and recycles its dense index.
func (p *Pool[T]) Del(slot uint32) error {
	if p.checked && !p.Has(slot) {
		return MissingComponentError{Component: p.name, Slot: slot}
	}
	p.del(slot)
	return nil
}

// TryDel is Del that reports false instead of failing.
func (p *Pool[T]) TryDel(slot uint32) bool {
	if !p.Has(slot) {
		return false
	}
	p.del(slot)
	return true
}

func (p *Pool[T]) del(slot uint32) {
	idx := p.mapping[slot]
	var zero T
	p.items[idx] = zero
	if p.recycledCount == len(p.recycled) {
		grown := make([]int32, len(p.recycled)*2)
		copy(grown, p.recycled)
		p.recycled = grown
	}
	p.recycled[p.recycledCount] = idx
	p.recycledCount++
	p.mapping[slot] = 0
}

// Copy copies the component of from onto to within this pool, adding it to
// to when absent.
func (p *Pool[T]) Copy(from, to uint32) error {
	if p.checked && !p.Has(from) {
		return MissingComponentError{Component: p.name, Slot: from}
	}
	v := p.items[p.mapping[from]]
	if p.Has(to) {
		p.items[p.mapping[to]] = v
		return nil
	}
	return p.Add(to, v)
}

// CopyCrossWorld always fails: boxed pools only copy within their own world.
func (p *Pool[T]) CopyCrossWorld(dst *Pool[T], from, to uint32) error {
	return UnsupportedOperationError{Op: "cross-world copy", Component: p.name}
}

// Compact would squeeze recycled holes out of the dense table.
func (p *Pool[T]) Compact() error {
	return NotImplementedError{Op: "compact", Component: p.name}
}

// OnWorldResize grows mapping to cover capacity slots. It never shrinks.
func (p *Pool[T]) OnWorldResize(capacity int) {
	if capacity <= len(p.mapping) {
		return
	}
	grown := make([]int32, capacity)
	copy(grown, p.mapping)
	p.mapping = grown
}

// Each visits every slot holding the component in slot order. fn must not
// add or delete components of this pool.
func (p *Pool[T]) Each(fn func(slot uint32, v *T)) {
	for slot, idx := range p.mapping {
		if idx > 0 {
			fn(uint32(slot), &p.items[idx])
		}
	}
}

// Len is the number of slots holding the component.
func (p *Pool[T]) Len() int { return int(p.itemsCount) - 1 - p.recycledCount }

// Cap is the dense table capacity, excluding the reserved index.
func (p *Pool[T]) Cap() int { return len(p.items) - 1 }

// Capacity is the number of slots the mapping covers.
func (p *Pool[T]) Capacity() int { return len(p.mapping) }

// RecycledLen is the number of freed dense indices waiting for reuse.
func (p *Pool[T]) RecycledLen() int { return p.recycledCount }

// DenseIndex exposes the dense index backing slot, 0 when absent.
func (p *Pool[T]) DenseIndex(slot uint32) int32 {
	if int(slot) >= len(p.mapping) {
		return 0
	}
	return p.mapping[slot]
}

// World is the 0-based index of the owning world.
func (p *Pool[T]) World() uint16 { return p.world }
