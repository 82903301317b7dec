package basalt

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/basalt-ecs/basalt/codec"
	"github.com/basalt-ecs/basalt/storage"
	"github.com/basalt-ecs/basalt/types"
)

// World is the explicit context object holding all engine state: the
// component registry, the generational slot table, the archetype blocks, and
// the query caches. Multiple independent worlds can coexist; nothing is
// process-global.
//
// A World is not safe for concurrent use. Every operation runs to completion
// on the calling goroutine and the engine performs no internal locking;
// concurrent access requires external serialization.
type World struct {
	store  *storage.Store
	logger *zerolog.Logger
}

// NewWorld creates an empty world. By default entity and column growth are
// unbounded and events log through the global zerolog logger at debug level.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg := worldConfig{logger: &log.Logger}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxEntities < 0 {
		return nil, eris.Errorf("max entities must not be negative, got %d", cfg.maxEntities)
	}
	if cfg.maxColumnCapacity < 0 {
		return nil, eris.Errorf("max column capacity must not be negative, got %d", cfg.maxColumnCapacity)
	}
	w := &World{
		store: storage.NewStore(storage.Config{
			MaxEntities:       cfg.maxEntities,
			MaxColumnCapacity: cfg.maxColumnCapacity,
			Logger:            cfg.logger,
		}),
		logger: cfg.logger,
	}
	w.logger.Debug().Msg("world created")
	return w, nil
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger {
	return w.logger
}

// Valid reports whether the handle still resolves to a live entity.
func (w *World) Valid(e Entity) bool {
	_, _, ok := w.store.Slots().Resolve(e)
	return ok
}

// Destroy removes the entity and releases its slot, invalidating every handle
// to it. Destroy is idempotent: a stale or already-destroyed handle is a
// no-op. It reports whether a live entity was destroyed by this call.
func (w *World) Destroy(e Entity) bool {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return false
	}
	w.store.RemoveRow(w.store.ArchetypeByID(archID), row)
	w.logger.Debug().
		Int("entity_id", int(e.ID)).
		Int("archetype_id", int(archID)).
		Msg("entity destroyed")
	return true
}

// Clear destroys all entities and reclaims column storage while keeping
// registered components and archetype blocks. Every outstanding handle goes
// stale.
func (w *World) Clear() {
	w.store.Clear()
	w.logger.Debug().Msg("world cleared")
}

// NumEntities returns the number of live entities.
func (w *World) NumEntities() int {
	return w.store.Slots().Live()
}

// NumArchetypes returns the number of archetype blocks created so far.
func (w *World) NumArchetypes() int {
	return w.store.NumArchetypes()
}

// entityState is the per-entity document emitted by StateDump.
type entityState struct {
	ID         types.EntityID    `json:"id"`
	Generation types.Generation  `json:"generation"`
	Archetype  types.ArchetypeID `json:"archetype"`
	Components map[string]any    `json:"components"`
}

// StateDump returns a JSON snapshot of every live entity and its component
// values, keyed by component name. It is a write-only diagnostic aid; the
// engine never reads state back.
func (w *World) StateDump() ([]byte, error) {
	states := make([]entityState, 0, w.NumEntities())
	reg := w.store.Registry()
	for i := 0; i < w.store.NumArchetypes(); i++ {
		a := w.store.ArchetypeByID(types.ArchetypeID(i))
		for row := 0; row < a.Size(); row++ {
			comps := make(map[string]any, a.Signature().Count())
			a.Signature().Each(func(cid types.ComponentID) bool {
				meta := reg.Metadata(cid)
				col, _ := a.Column(cid)
				comps[meta.Name()] = meta.Element(col, row)
				return true
			})
			e := w.store.Slots().Handle(a.SlotAt(row))
			states = append(states, entityState{
				ID:         e.ID,
				Generation: e.Generation,
				Archetype:  a.ID(),
				Components: comps,
			})
		}
	}
	return codec.Encode(states)
}

// createBySignature reserves a row in the signature's block and returns the
// new entity's handle.
func (w *World) createBySignature(sig types.Signature) (Entity, error) {
	a := w.store.FindOrCreate(sig)
	_, id, err := w.store.ReserveRow(a)
	if err != nil {
		return Entity{}, err
	}
	e := w.store.Slots().Handle(id)
	w.logEntityCreated(e, a)
	return e, nil
}

// migrate moves a row to the block for toSig and returns the fresh handle.
func (w *World) migrate(from *storage.Archetype, fromRow int, toSig types.Signature) (Entity, error) {
	to, _, id, err := w.store.MoveEntity(from, fromRow, toSig)
	if err != nil {
		return Entity{}, err
	}
	e := w.store.Slots().Handle(id)
	w.logger.Debug().
		Int("entity_id", int(e.ID)).
		Int("from_archetype_id", int(from.ID())).
		Int("to_archetype_id", int(to.ID())).
		Msg("entity migrated")
	return e, nil
}
