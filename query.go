package basalt

import (
	"github.com/basalt-ecs/basalt/filter"
	"github.com/basalt-ecs/basalt/storage"
)

// cache is a Search's private view of which blocks match its filter and how
// far into the block list it has scanned.
type cache struct {
	archetypes []ArchetypeID
	seen       int
}

// Search walks the entities whose archetype satisfies a component filter.
// A Search keeps its own match cache, so a long-lived Search resolves
// repeated evaluations against only the blocks created since the last one.
type Search struct {
	archMatches *cache
	filter      filter.ComponentFilter
	world       *World
}

// Search creates a Search over all entities matching the given filter.
func (w *World) Search(f filter.ComponentFilter) *Search {
	return &Search{
		archMatches: &cache{},
		filter:      f,
		world:       w,
	}
}

// Each iterates over the entities matching the filter in block creation
// order, rows in storage order. Returning false from fn stops the iteration
// early. fn must not create, destroy, or migrate entities while it runs.
func (q *Search) Each(fn func(Entity) bool) {
	it := q.evaluate()
	for it.HasNext() {
		a := q.world.store.ArchetypeByID(it.Next())
		for row := 0; row < a.Size(); row++ {
			e := q.world.store.Slots().Handle(a.SlotAt(row))
			if !fn(e) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the filter.
func (q *Search) Count() int {
	total := 0
	it := q.evaluate()
	for it.HasNext() {
		total += q.world.store.ArchetypeByID(it.Next()).Size()
	}
	return total
}

// First returns the first entity matching the filter, or
// ErrNoMatchingEntities when nothing matches.
func (q *Search) First() (Entity, error) {
	it := q.evaluate()
	for it.HasNext() {
		a := q.world.store.ArchetypeByID(it.Next())
		if a.Size() > 0 {
			return q.world.store.Slots().Handle(a.SlotAt(0)), nil
		}
	}
	return Entity{}, ErrNoMatchingEntities
}

// Collect returns the handles of every entity matching the filter.
func (q *Search) Collect() []Entity {
	acc := make([]Entity, 0, q.Count())
	q.Each(func(e Entity) bool {
		acc = append(acc, e)
		return true
	})
	return acc
}

// evaluate brings the match cache up to date with blocks created since the
// previous evaluation and returns an iterator over every match.
func (q *Search) evaluate() *storage.ArchetypeIterator {
	reg := q.world.store.Registry()
	next, found := q.world.store.ScanFrom(q.archMatches.seen, func(a *storage.Archetype) bool {
		return q.filter.MatchesComponents(reg.ComponentsOf(a.Signature()))
	})
	q.archMatches.seen = next
	q.archMatches.archetypes = append(q.archMatches.archetypes, found...)
	return &storage.ArchetypeIterator{Values: q.archMatches.archetypes}
}
