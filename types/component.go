package types

// ComponentID identifies a registered component type. IDs are assigned
// sequentially on first registration and are stable only within one process
// run; ComponentID n owns bit n of every Signature.
type ComponentID int

// Component is the interface that the user needs to implement to create a new
// component type. A component is a plain data struct; no behavior beyond Name
// is required.
type Component interface {
	// Name returns the name of the component.
	Name() string
}

// Column is the type-erased backing store for one component type inside one
// archetype block. Concretely it is a *[]T; only the ColumnOps registered for
// the owning component type may manipulate it.
type Column any

// ColumnOps are the type-erased column operations the storage engine
// dispatches through. They let the engine destroy, move, resize, and inspect
// columns of arbitrary component types without compile-time knowledge of the
// concrete type at the call site.
type ColumnOps interface {
	// NewColumn allocates a column with the given capacity.
	NewColumn(capacity int) Column
	// MoveElement moves one element between rows, leaving the source row
	// zero-valued. dst and src may be the same column.
	MoveElement(dst Column, dstRow int, src Column, srcRow int)
	// ResizeColumn grows or shrinks the column in place, preserving the
	// first rowsToPreserve elements. It reports failure rather than
	// aborting.
	ResizeColumn(c Column, newCapacity, rowsToPreserve int) error
	// ZeroElement resets one row to the component's zero value.
	ZeroElement(c Column, row int)
	// Element returns a copy of one row's value.
	Element(c Column, row int) any
	// DestroyColumn releases the column's backing storage.
	DestroyColumn(c Column)
}

// ComponentMetadata wraps a user-defined Component type and provides the
// identity, schema, codec, and column operations the engine needs internally.
type ComponentMetadata interface { //revive:disable-line:exported
	Component
	ColumnOps

	// SetID sets the ComponentID of this component. It must only be set once.
	SetID(ComponentID) error
	// ID returns the ComponentID of the component.
	ID() ComponentID
	// GetSchema returns the JSON schema captured at registration.
	GetSchema() []byte
	// Encode marshals a component value to JSON.
	Encode(any) ([]byte, error)
	// Decode unmarshals a component value from JSON.
	Decode([]byte) (any, error)
}
