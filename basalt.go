package basalt

import (
	"github.com/basalt-ecs/basalt/types"
)

type (
	// Entity is a generation-checked handle to a stored record.
	Entity = types.Entity
	// EntityID is the slot index behind an Entity handle.
	EntityID = types.EntityID
	// ComponentID identifies a registered component type.
	ComponentID = types.ComponentID
	// ArchetypeID identifies a columnar storage block.
	ArchetypeID = types.ArchetypeID
	// Signature is the bitmask identity of a component-set combination.
	Signature = types.Signature
	// Component is the interface user component structs implement.
	Component = types.Component
)

// MaxComponentTypes is the number of distinct component types a world can
// register.
const MaxComponentTypes = types.MaxComponentTypes
