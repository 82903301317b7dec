package basalt

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"

	"github.com/basalt-ecs/basalt/codec"
	"github.com/basalt-ecs/basalt/types"
)

// Register assigns a ComponentID to the component type T, or returns the
// already-assigned ID when T was registered before. Registration is cheap and
// idempotent, so it is safe to call on every use; the creation helpers do
// exactly that.
func Register[T types.Component](w *World) (types.ComponentID, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if id, err := w.store.Registry().Lookup(typ); err == nil {
		return id, nil
	}
	meta, err := newComponentMetadata[T]()
	if err != nil {
		return 0, err
	}
	return w.store.Registry().Register(typ, meta)
}

// AddComponent moves the entity into the archetype that additionally carries
// T, preserving its existing component values; T starts zero-valued. The
// entity receives a fresh slot identity: the returned handle replaces e, and
// handles taken before the move no longer resolve. T is registered lazily if
// needed.
func AddComponent[T types.Component](w *World, e Entity) (Entity, error) {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return Entity{}, eris.Wrapf(ErrEntityDoesNotExist, "entity %d", e.ID)
	}
	id, err := Register[T](w)
	if err != nil {
		return Entity{}, err
	}
	from := w.store.ArchetypeByID(archID)
	if from.Signature().Has(id) {
		return Entity{}, eris.Wrapf(ErrComponentAlreadyOnEntity, "component id %d", id)
	}
	return w.migrate(from, row, from.Signature().Add(id))
}

// RemoveComponent moves the entity into the archetype without T, discarding
// T's value and preserving the rest. As with AddComponent, the returned
// handle replaces e.
func RemoveComponent[T types.Component](w *World, e Entity) (Entity, error) {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return Entity{}, eris.Wrapf(ErrEntityDoesNotExist, "entity %d", e.ID)
	}
	id, err := componentID[T](w)
	if err != nil {
		return Entity{}, err
	}
	from := w.store.ArchetypeByID(archID)
	if !from.Signature().Has(id) {
		return Entity{}, eris.Wrapf(ErrComponentNotOnEntity, "component id %d", id)
	}
	toSig := from.Signature().Remove(id)
	if toSig == 0 {
		return Entity{}, ErrEntityMustHaveAtLeastOneComponent
	}
	return w.migrate(from, row, toSig)
}

// componentID resolves T to its registered ID without registering it.
func componentID[T types.Component](w *World) (types.ComponentID, error) {
	return w.store.Registry().Lookup(reflect.TypeOf((*T)(nil)).Elem())
}

// componentMetadata is the concrete ComponentMetadata for a user-defined
// component struct. It carries the JSON schema captured at registration and
// implements the type-erased column operations over []T.
type componentMetadata[T types.Component] struct {
	isIDSet bool
	id      types.ComponentID
	name    string
	schema  []byte
}

func newComponentMetadata[T types.Component]() (*componentMetadata[T], error) {
	var t T
	schema, err := serializeComponentSchema(t)
	if err != nil {
		return nil, err
	}
	return &componentMetadata[T]{name: t.Name(), schema: schema}, nil
}

// SetID sets this component's ID. It must be unique across the world object.
func (c *componentMetadata[T]) SetID(id types.ComponentID) error {
	if c.isIDSet {
		// Component metadata is constructed once per registration, but the
		// same ID may be re-applied when a type is registered again.
		if id == c.id {
			return nil
		}
		return eris.Errorf("id for component %q is already set to %v, cannot change to %v", c.name, c.id, id)
	}
	c.id = id
	c.isIDSet = true
	return nil
}

func (c *componentMetadata[T]) ID() types.ComponentID {
	return c.id
}

func (c *componentMetadata[T]) Name() string {
	return c.name
}

func (c *componentMetadata[T]) String() string {
	return c.name
}

func (c *componentMetadata[T]) GetSchema() []byte {
	return c.schema
}

func (c *componentMetadata[T]) Encode(v any) ([]byte, error) {
	return codec.Encode(v)
}

func (c *componentMetadata[T]) Decode(bz []byte) (any, error) {
	return codec.Decode[T](bz)
}

func (c *componentMetadata[T]) NewColumn(capacity int) types.Column {
	col := make([]T, capacity)
	return &col
}

func (c *componentMetadata[T]) MoveElement(dst types.Column, dstRow int, src types.Column, srcRow int) {
	d := dst.(*[]T)
	s := src.(*[]T)
	(*d)[dstRow] = (*s)[srcRow]
	var zero T
	(*s)[srcRow] = zero
}

func (c *componentMetadata[T]) ResizeColumn(col types.Column, newCapacity, rowsToPreserve int) error {
	s := col.(*[]T)
	if newCapacity < rowsToPreserve {
		return eris.Errorf("cannot resize column %q to %d below %d preserved rows", c.name, newCapacity, rowsToPreserve)
	}
	grown := make([]T, newCapacity)
	copy(grown, (*s)[:rowsToPreserve])
	*s = grown
	return nil
}

func (c *componentMetadata[T]) ZeroElement(col types.Column, row int) {
	var zero T
	(*col.(*[]T))[row] = zero
}

func (c *componentMetadata[T]) Element(col types.Column, row int) any {
	return (*col.(*[]T))[row]
}

func (c *componentMetadata[T]) DestroyColumn(col types.Column) {
	*col.(*[]T) = nil
}

func serializeComponentSchema(component types.Component) ([]byte, error) {
	componentSchema := jsonschema.Reflect(component)
	schema, err := componentSchema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return schema, nil
}
