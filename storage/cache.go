package storage

import "github.com/basalt-ecs/basalt/types"

// queryCache tracks, for one requested signature, which blocks are known to
// satisfy it and how far into the block list the scan has progressed. Each
// lookup only tests blocks created since the previous one, so resolving a
// repeated query is amortized O(new blocks) rather than O(all blocks).
type queryCache struct {
	seen    int
	matches []types.ArchetypeID
}

// Matches returns the IDs of every block whose signature contains sig, in
// discovery order. The result is cached incrementally per signature; callers
// must not retain the slice across structural changes to the world.
func (s *Store) Matches(sig types.Signature) []types.ArchetypeID {
	c, ok := s.caches[sig]
	if !ok {
		c = &queryCache{}
		s.caches[sig] = c
	}
	for ; c.seen < len(s.archetypes); c.seen++ {
		if s.archetypes[c.seen].signature.ContainsAll(sig) {
			c.matches = append(c.matches, s.archetypes[c.seen].id)
		}
	}
	return c.matches
}

// ScanFrom tests blocks created at index start or later against match and
// returns their IDs along with the index to resume from. It is the primitive
// behind filter-driven searches that keep their own cursor.
func (s *Store) ScanFrom(start int, match func(*Archetype) bool) (next int, found []types.ArchetypeID) {
	for ; start < len(s.archetypes); start++ {
		if match(s.archetypes[start]) {
			found = append(found, s.archetypes[start].id)
		}
	}
	return start, found
}

// ArchetypeIterator walks a fixed list of block IDs.
type ArchetypeIterator struct {
	Current int
	Values  []types.ArchetypeID
}

func (it *ArchetypeIterator) HasNext() bool {
	return it.Current < len(it.Values)
}

func (it *ArchetypeIterator) Next() types.ArchetypeID {
	val := it.Values[it.Current]
	it.Current++
	return val
}
