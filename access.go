package basalt

import (
	"github.com/rotisserie/eris"

	"github.com/basalt-ecs/basalt/storage"
	"github.com/basalt-ecs/basalt/types"
)

// Access1 runs fn with a pointer to the entity's A component and reports
// whether it ran. It returns false, without calling fn, when the handle is
// stale or the entity does not carry A. The pointer is valid only for the
// duration of fn; structural changes to the world may move the value.
func Access1[A types.Component](w *World, e Entity, fn func(*A)) bool {
	a, row, ok := w.resolve(e)
	if !ok {
		return false
	}
	ca, ok := columnFor[A](w, a)
	if !ok {
		return false
	}
	fn(&ca[row])
	return true
}

// Access2 runs fn with pointers to the entity's A and B components, returning
// false when the handle is stale or either component is missing.
func Access2[A, B types.Component](w *World, e Entity, fn func(*A, *B)) bool {
	a, row, ok := w.resolve(e)
	if !ok {
		return false
	}
	ca, ok := columnFor[A](w, a)
	if !ok {
		return false
	}
	cb, ok := columnFor[B](w, a)
	if !ok {
		return false
	}
	fn(&ca[row], &cb[row])
	return true
}

// Access3 runs fn with pointers to the entity's A, B and C components,
// returning false when the handle is stale or any component is missing.
func Access3[A, B, C types.Component](w *World, e Entity, fn func(*A, *B, *C)) bool {
	a, row, ok := w.resolve(e)
	if !ok {
		return false
	}
	ca, ok := columnFor[A](w, a)
	if !ok {
		return false
	}
	cb, ok := columnFor[B](w, a)
	if !ok {
		return false
	}
	cc, ok := columnFor[C](w, a)
	if !ok {
		return false
	}
	fn(&ca[row], &cb[row], &cc[row])
	return true
}

// GetComponent returns a copy of the entity's T component, or an error naming
// what went wrong: a stale handle, an unregistered T, or T not on the entity.
func GetComponent[T types.Component](w *World, e Entity) (*T, error) {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return nil, eris.Wrapf(ErrEntityDoesNotExist, "entity %d", e.ID)
	}
	id, err := componentID[T](w)
	if err != nil {
		return nil, err
	}
	a := w.store.ArchetypeByID(archID)
	if !a.Signature().Has(id) {
		return nil, eris.Wrapf(ErrComponentNotOnEntity, "component id %d", id)
	}
	col, _ := storage.ColumnSlice[T](a, id)
	v := col[row]
	return &v, nil
}

// SetComponent overwrites the entity's T component with the given value.
func SetComponent[T types.Component](w *World, e Entity, value T) error {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return eris.Wrapf(ErrEntityDoesNotExist, "entity %d", e.ID)
	}
	id, err := componentID[T](w)
	if err != nil {
		return err
	}
	a := w.store.ArchetypeByID(archID)
	if !a.Signature().Has(id) {
		return eris.Wrapf(ErrComponentNotOnEntity, "component id %d", id)
	}
	col, _ := storage.ColumnSlice[T](a, id)
	col[row] = value
	return nil
}

// resolve resolves a handle to its block and row.
func (w *World) resolve(e Entity) (*storage.Archetype, int, bool) {
	archID, row, ok := w.store.Slots().Resolve(e)
	if !ok {
		return nil, 0, false
	}
	return w.store.ArchetypeByID(archID), row, true
}

// columnFor returns the typed column for T in a block, false when T is
// unregistered or absent from the block's signature.
func columnFor[T types.Component](w *World, a *storage.Archetype) ([]T, bool) {
	id, err := componentID[T](w)
	if err != nil {
		return nil, false
	}
	return storage.ColumnSlice[T](a, id)
}
