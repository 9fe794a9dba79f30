package ecs

import "fmt"

// EntityID packs a 32-bit slot, a 16-bit generation and a 16-bit world tag,
// most significant field first:
//
//	| slot (63..32) | generation (31..16) | world tag (15..0) |
//
// The world tag is 1-based so the all-zero value is Null and decodes as
// "no world". Two ids are equal iff all three fields are equal.
type EntityID uint64

// Null is the unique invalid identity. A live entity always has a world tag ≥ 1.
const Null EntityID = 0

const (
	// MaxGeneration is the last generation a slot can carry. Destroying an
	// entity at this generation retires its slot instead of wrapping.
	MaxGeneration = 0xFFFF
	// MaxWorlds bounds world indices; index 0xFFFF would need tag 0x10000.
	MaxWorlds = 0xFFFF
)

// Pack builds an id from raw field values. worldTag is stored as-is, so
// Pack(0, 0, 0) == Null.
func Pack(slot uint32, generation uint16, worldTag uint16) EntityID {
	return EntityID(uint64(slot)<<32 | uint64(generation)<<16 | uint64(worldTag))
}

// NewEntityID builds an id for the given 0-based world index. The index is
// stored as world+1 with uint16 wrap-around: world 0xFFFF truncates to tag 0
// and reads back as "no world". NewWorld never hands out that index.
func NewEntityID(slot uint32, generation uint16, world uint16) EntityID {
	return Pack(slot, generation, world+1)
}

// Unpack returns the raw fields, the inverse of Pack.
func (id EntityID) Unpack() (slot uint32, generation uint16, worldTag uint16) {
	return id.Slot(), id.Generation(), id.WorldTag()
}

func (id EntityID) Slot() uint32       { return uint32(id >> 32) }
func (id EntityID) Generation() uint16 { return uint16(id >> 16) }
func (id EntityID) WorldTag() uint16   { return uint16(id) }
func (id EntityID) IsNull() bool       { return id == Null }

// World returns the 0-based owning world index, false when the tag is empty.
func (id EntityID) World() (uint16, bool) {
	tag := id.WorldTag()
	if tag == 0 {
		return 0, false
	}
	return tag - 1, true
}

func (id EntityID) String() string {
	if id.IsNull() {
		return "Entity(null)"
	}
	w, ok := id.World()
	if !ok {
		return fmt.Sprintf("Entity(%d:%d@-)", id.Slot(), id.Generation())
	}
	return fmt.Sprintf("Entity(%d:%d@%d)", id.Slot(), id.Generation(), w)
}

// EntityPool manages slot allocation with generational ids and a LIFO free list.
type EntityPool struct {
	world       uint16
	generations []uint16
	live        []bool
	freeList    []uint32
	nextIndex   uint32
	alive       int
	retired     int
}

func NewEntityPool(world uint16, capacity int) *EntityPool {
	return &EntityPool{
		world:       world,
		generations: make([]uint16, 0, capacity),
		live:        make([]bool, 0, capacity),
		freeList:    make([]uint32, 0, max(capacity/4, 16)),
	}
}

// Create pops a recycled slot or allocates the next one. The generation of a
// recycled slot was already bumped by Destroy.
func (p *EntityPool) Create() EntityID {
	p.alive++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.live[idx] = true
		return NewEntityID(idx, p.generations[idx], p.world)
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	p.live = append(p.live, true)
	return NewEntityID(idx, 0, p.world)
}

func (p *EntityPool) Alive(id EntityID) bool {
	if w, ok := id.World(); !ok || w != p.world {
		return false
	}
	idx := id.Slot()
	if idx >= p.nextIndex {
		return false
	}
	return p.live[idx] && p.generations[idx] == id.Generation()
}

// At returns the live id occupying slot.
func (p *EntityPool) At(slot uint32) (EntityID, bool) {
	if slot >= p.nextIndex || !p.live[slot] {
		return Null, false
	}
	return NewEntityID(slot, p.generations[slot], p.world), true
}

// Destroy invalidates id. A slot already at MaxGeneration is retired instead
// of wrapping, so none of its past ids can ever alias a new entity.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Slot()
	p.alive--
	p.live[idx] = false
	if p.generations[idx] == MaxGeneration {
		p.retired++
		return true
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	return true
}

// Len is the number of live entities.
func (p *EntityPool) Len() int { return p.alive }

// Slots is the number of slots ever allocated, live, free or retired.
func (p *EntityPool) Slots() int { return int(p.nextIndex) }

// Retired is the number of slots permanently taken out of circulation.
func (p *EntityPool) Retired() int { return p.retired }

// FreeLen is the number of slots waiting to be recycled.
func (p *EntityPool) FreeLen() int { return len(p.freeList) }
