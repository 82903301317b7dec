package types

// EntityID is the index of an entity's slot in the slot table. IDs are
// recycled after an entity is destroyed, so an EntityID on its own is not a
// safe reference; use Entity, which pairs the ID with a generation.
type EntityID int

// Generation counts how many times a slot has been released. It wraps on
// overflow and never decreases otherwise.
type Generation uint32

// Entity is a generation-checked handle to a stored record. It is copied by
// value and carries no ownership; it resolves only while the slot's current
// generation matches. The zero Entity never resolves (generations start at 1).
type Entity struct {
	ID         EntityID
	Generation Generation
}
