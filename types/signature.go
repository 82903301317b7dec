package types

import "math/bits"

// MaxComponentTypes is the number of distinct component types a world can
// register, fixed by the signature's bit width.
const MaxComponentTypes = 64

// Signature identifies a component-set combination as a bitmask with one bit
// per registered component type. Bitwise OR is commutative, so two sets
// containing the same types in any order produce the identical signature.
type Signature uint64

// Add returns the signature with the given component's bit set.
func (s Signature) Add(id ComponentID) Signature {
	return s | 1<<uint(id)
}

// Remove returns the signature with the given component's bit cleared.
func (s Signature) Remove(id ComponentID) Signature {
	return s &^ (1 << uint(id))
}

// Has reports whether the component's bit is set.
func (s Signature) Has(id ComponentID) bool {
	return s&(1<<uint(id)) != 0
}

// ContainsAll reports whether every bit of sub is also set in s. This is the
// containment test used to decide whether an archetype satisfies a query.
func (s Signature) ContainsAll(sub Signature) bool {
	return s&sub == sub
}

// Count returns the number of component types in the signature.
func (s Signature) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Each calls fn for every component in the signature in ascending ID order.
// Iteration stops early if fn returns false.
func (s Signature) Each(fn func(ComponentID) bool) {
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		if !fn(ComponentID(bits.TrailingZeros64(rest))) {
			return
		}
	}
}
