package types

// ArchetypeID is the index of an archetype block in the store. Blocks are
// created lazily per distinct signature and are never destroyed, so an
// ArchetypeID stays valid for the lifetime of the world.
type ArchetypeID int
