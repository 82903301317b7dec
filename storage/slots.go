package storage

import (
	"github.com/rotisserie/eris"

	"github.com/basalt-ecs/basalt/types"
)

// noArchetype marks a slot that is not currently allocated to any row.
const noArchetype types.ArchetypeID = -1

var ErrEntityLimitReached = eris.New("entity limit reached")

type slot struct {
	arch types.ArchetypeID
	row  int
	gen  types.Generation
}

// SlotTable is the generational allocator behind every entity handle. A slot
// records which archetype row currently holds the entity; the generation
// invalidates handles once the slot is released and reused.
//
// Slots in [0, active) have been handed out at least once. Released slots go
// on a LIFO free list, except that releasing the highest active slot shrinks
// the active range instead, coalescing any trailing free entries so later
// scans stay bounded by the live population.
type SlotTable struct {
	slots  []slot
	free   []types.EntityID
	active int
	limit  int // max entities; 0 means unbounded
}

func NewSlotTable(limit int) *SlotTable {
	return &SlotTable{limit: limit}
}

// Reserve allocates a slot, reusing a freed one when available. It reports
// failure instead of panicking when the configured entity limit is hit.
func (t *SlotTable) Reserve() (types.EntityID, error) {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		return id, nil
	}
	if t.active == len(t.slots) {
		newCap := growCapacity(len(t.slots))
		if t.limit > 0 && newCap > t.limit {
			newCap = t.limit
		}
		if newCap <= len(t.slots) {
			return 0, eris.Wrapf(ErrEntityLimitReached, "limit %d", t.limit)
		}
		grown := make([]slot, newCap)
		copy(grown, t.slots)
		for i := len(t.slots); i < newCap; i++ {
			grown[i] = slot{arch: noArchetype, row: -1, gen: 1}
		}
		t.slots = grown
	}
	id := types.EntityID(t.active)
	t.active++
	return id, nil
}

// Release returns a slot to the allocator, bumping its generation so every
// outstanding handle to it stops resolving. Releasing the highest active slot
// shrinks the active range, popping any trailing entries off the free list.
func (t *SlotTable) Release(id types.EntityID) {
	s := &t.slots[id]
	s.arch = noArchetype
	s.row = -1
	s.gen++
	if int(id) != t.active-1 {
		t.free = append(t.free, id)
		return
	}
	t.active--
	for t.active > 0 {
		n := len(t.free)
		if n == 0 || t.free[n-1] != types.EntityID(t.active-1) {
			break
		}
		t.free = t.free[:n-1]
		t.active--
	}
}

// Link points a slot at its current archetype row.
func (t *SlotTable) Link(id types.EntityID, arch types.ArchetypeID, row int) {
	t.slots[id].arch = arch
	t.slots[id].row = row
}

// Resolve maps a handle to its archetype and row. ok is false if the slot is
// out of range, unallocated, or the handle's generation is stale.
func (t *SlotTable) Resolve(e types.Entity) (arch types.ArchetypeID, row int, ok bool) {
	if int(e.ID) < 0 || int(e.ID) >= t.active {
		return noArchetype, -1, false
	}
	s := t.slots[e.ID]
	if s.gen != e.Generation || s.arch == noArchetype {
		return noArchetype, -1, false
	}
	return s.arch, s.row, true
}

// Handle returns a handle carrying the slot's current generation.
func (t *SlotTable) Handle(id types.EntityID) types.Entity {
	return types.Entity{ID: id, Generation: t.slots[id].gen}
}

// Live returns the number of currently allocated slots.
func (t *SlotTable) Live() int {
	return t.active - len(t.free)
}

// reset releases every slot, bumping generations so all handles go stale.
func (t *SlotTable) reset() {
	for i := 0; i < t.active; i++ {
		s := &t.slots[i]
		if s.arch != noArchetype {
			s.arch = noArchetype
			s.row = -1
		}
		s.gen++
	}
	t.active = 0
	t.free = t.free[:0]
}

// growCapacity is the shared 1.5x growth schedule, minimum capacity 2.
func growCapacity(capacity int) int {
	if capacity < 2 {
		return 2
	}
	return capacity*2 - capacity/2
}
