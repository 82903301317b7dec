package storage

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/basalt-ecs/basalt/types"
)

var ErrColumnCapacityReached = eris.New("column capacity reached")

// Archetype is the columnar storage block for every entity sharing one
// signature. Each component in the signature owns one column; slotRefs maps
// each row back to the slot that references it. Rows [0, size) are live.
// Blocks are created lazily per signature and never destroyed, even when
// empty; they are retained for reuse, bounded by the number of distinct
// component combinations the application ever creates.
type Archetype struct {
	id        types.ArchetypeID
	signature types.Signature
	columns   map[types.ComponentID]types.Column
	slotRefs  []types.EntityID
	size      int
	capacity  int
}

func (a *Archetype) ID() types.ArchetypeID      { return a.id }
func (a *Archetype) Signature() types.Signature { return a.signature }
func (a *Archetype) Size() int                  { return a.size }
func (a *Archetype) Capacity() int              { return a.capacity }

// SlotAt returns the slot referenced by a live row.
func (a *Archetype) SlotAt(row int) types.EntityID {
	return a.slotRefs[row]
}

// Column returns the type-erased column for a component in this archetype.
func (a *Archetype) Column(id types.ComponentID) (types.Column, bool) {
	c, ok := a.columns[id]
	return c, ok
}

// ColumnSlice returns the typed rows of one column, valid until the next
// structural mutation of the archetype. The slice spans the block's capacity;
// only rows below Size are live.
func ColumnSlice[T any](a *Archetype, id types.ComponentID) ([]T, bool) {
	c, ok := a.columns[id]
	if !ok {
		return nil, false
	}
	return *c.(*[]T), true
}

// Config bounds a store's growth. Zero values mean unbounded.
type Config struct {
	MaxEntities       int
	MaxColumnCapacity int
	Logger            *zerolog.Logger
}

// Store owns the slot table, the component registry, and every archetype
// block, and performs all structural mutation: row reservation, swap-removal,
// and cross-block migration.
type Store struct {
	registry   *Registry
	slots      *SlotTable
	archetypes []*Archetype
	caches     map[types.Signature]*queryCache
	maxCap     int
	logger     *zerolog.Logger
}

func NewStore(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Store{
		registry: NewRegistry(logger),
		slots:    NewSlotTable(cfg.MaxEntities),
		caches:   map[types.Signature]*queryCache{},
		maxCap:   cfg.MaxColumnCapacity,
		logger:   logger,
	}
}

func (s *Store) Registry() *Registry { return s.registry }
func (s *Store) Slots() *SlotTable   { return s.slots }

// ArchetypeByID returns a block by ID. IDs come from Matches or Scan and are
// always valid; blocks are never destroyed.
func (s *Store) ArchetypeByID(id types.ArchetypeID) *Archetype {
	return s.archetypes[id]
}

// NumArchetypes returns the number of blocks created so far.
func (s *Store) NumArchetypes() int {
	return len(s.archetypes)
}

// FindOrCreate returns the block for a signature, creating it on first use.
// Lookup is a linear scan over blocks ever created, which stays cheap because
// distinct signatures are few compared to entities.
func (s *Store) FindOrCreate(sig types.Signature) *Archetype {
	for _, a := range s.archetypes {
		if a.signature == sig {
			return a
		}
	}
	a := &Archetype{
		id:        types.ArchetypeID(len(s.archetypes)),
		signature: sig,
		columns:   make(map[types.ComponentID]types.Column, sig.Count()),
	}
	sig.Each(func(id types.ComponentID) bool {
		a.columns[id] = s.registry.Metadata(id).NewColumn(0)
		return true
	})
	s.archetypes = append(s.archetypes, a)
	s.logger.Debug().
		Int("archetype_id", int(a.id)).
		Uint64("signature", uint64(sig)).
		Int("total_components", sig.Count()).
		Msg("archetype created")
	return a
}

// ReserveRow grows the block if needed, allocates a slot, and links it to the
// new row. Growth failure leaves the block unchanged and is reported, never
// panicked.
func (s *Store) ReserveRow(a *Archetype) (row int, id types.EntityID, err error) {
	if a.size == a.capacity {
		if err := s.growArchetype(a); err != nil {
			return 0, 0, err
		}
	}
	id, err = s.slots.Reserve()
	if err != nil {
		return 0, 0, err
	}
	row = a.size
	a.slotRefs[row] = id
	s.slots.Link(id, a.id, row)
	a.size++
	return row, id, nil
}

func (s *Store) growArchetype(a *Archetype) error {
	newCap := growCapacity(a.capacity)
	if s.maxCap > 0 && newCap > s.maxCap {
		if a.capacity >= s.maxCap {
			return eris.Wrapf(ErrColumnCapacityReached, "archetype %d at capacity %d", a.id, a.capacity)
		}
		newCap = s.maxCap
	}
	var resizeErr error
	a.signature.Each(func(cid types.ComponentID) bool {
		if err := s.registry.Metadata(cid).ResizeColumn(a.columns[cid], newCap, a.size); err != nil {
			resizeErr = err
			return false
		}
		return true
	})
	if resizeErr != nil {
		return resizeErr
	}
	refs := make([]types.EntityID, newCap)
	copy(refs, a.slotRefs[:a.size])
	a.slotRefs = refs
	a.capacity = newCap
	return nil
}

// RemoveRow removes a row by swap-removal: the last live row is moved into
// the hole, its slot relinked, and the removed row's slot released. Vacated
// cells are left zero-valued so reused rows always start from zero values.
func (s *Store) RemoveRow(a *Archetype, row int) {
	last := a.size - 1
	removed := a.slotRefs[row]
	if row != last {
		a.signature.Each(func(cid types.ComponentID) bool {
			col := a.columns[cid]
			s.registry.Metadata(cid).MoveElement(col, row, col, last)
			return true
		})
		moved := a.slotRefs[last]
		a.slotRefs[row] = moved
		s.slots.Link(moved, a.id, row)
	} else {
		a.signature.Each(func(cid types.ComponentID) bool {
			s.registry.Metadata(cid).ZeroElement(a.columns[cid], last)
			return true
		})
	}
	a.size--
	s.slots.Release(removed)
}

// MoveEntity migrates the entity at fromRow into the block for toSig. Values
// for components present in both signatures move over; components only in the
// destination start zero-valued, and components only in the source are
// discarded by the removal. The entity gets a fresh slot identity, so handles
// taken before the move no longer resolve.
func (s *Store) MoveEntity(from *Archetype, fromRow int, toSig types.Signature) (*Archetype, int, types.EntityID, error) {
	to := s.FindOrCreate(toSig)
	toRow, id, err := s.ReserveRow(to)
	if err != nil {
		return nil, 0, 0, err
	}
	common := from.signature & toSig
	common.Each(func(cid types.ComponentID) bool {
		s.registry.Metadata(cid).MoveElement(to.columns[cid], toRow, from.columns[cid], fromRow)
		return true
	})
	s.RemoveRow(from, fromRow)
	return to, toRow, id, nil
}

// Clear destroys every entity while keeping the archetype blocks themselves.
// Column storage is released and reallocated empty, so memory is reclaimed
// but signatures keep their blocks and IDs.
func (s *Store) Clear() {
	for _, a := range s.archetypes {
		a.signature.Each(func(cid types.ComponentID) bool {
			meta := s.registry.Metadata(cid)
			meta.DestroyColumn(a.columns[cid])
			a.columns[cid] = meta.NewColumn(0)
			return true
		})
		a.slotRefs = nil
		a.size = 0
		a.capacity = 0
	}
	s.slots.reset()
}
