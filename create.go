package basalt

import (
	"github.com/basalt-ecs/basalt/types"
)

// Create1 creates an entity carrying component A, zero-valued. The component
// type is registered lazily on first use.
func Create1[A types.Component](w *World) (Entity, error) {
	ia, err := Register[A](w)
	if err != nil {
		return Entity{}, err
	}
	var sig types.Signature
	return w.createBySignature(sig.Add(ia))
}

// Create2 creates an entity carrying components A and B, zero-valued.
func Create2[A, B types.Component](w *World) (Entity, error) {
	ia, err := Register[A](w)
	if err != nil {
		return Entity{}, err
	}
	ib, err := Register[B](w)
	if err != nil {
		return Entity{}, err
	}
	var sig types.Signature
	return w.createBySignature(sig.Add(ia).Add(ib))
}

// Create3 creates an entity carrying components A, B and C, zero-valued.
func Create3[A, B, C types.Component](w *World) (Entity, error) {
	ia, err := Register[A](w)
	if err != nil {
		return Entity{}, err
	}
	ib, err := Register[B](w)
	if err != nil {
		return Entity{}, err
	}
	ic, err := Register[C](w)
	if err != nil {
		return Entity{}, err
	}
	var sig types.Signature
	return w.createBySignature(sig.Add(ia).Add(ib).Add(ic))
}

// Create4 creates an entity carrying components A, B, C and D, zero-valued.
func Create4[A, B, C, D types.Component](w *World) (Entity, error) {
	ia, err := Register[A](w)
	if err != nil {
		return Entity{}, err
	}
	ib, err := Register[B](w)
	if err != nil {
		return Entity{}, err
	}
	ic, err := Register[C](w)
	if err != nil {
		return Entity{}, err
	}
	id, err := Register[D](w)
	if err != nil {
		return Entity{}, err
	}
	var sig types.Signature
	return w.createBySignature(sig.Add(ia).Add(ib).Add(ic).Add(id))
}

// CreateWith1 creates an entity carrying A initialized to the given value.
func CreateWith1[A types.Component](w *World, a A) (Entity, error) {
	e, err := Create1[A](w)
	if err != nil {
		return Entity{}, err
	}
	Access1(w, e, func(pa *A) {
		*pa = a
	})
	return e, nil
}

// CreateWith2 creates an entity carrying A and B initialized to the given
// values.
func CreateWith2[A, B types.Component](w *World, a A, b B) (Entity, error) {
	e, err := Create2[A, B](w)
	if err != nil {
		return Entity{}, err
	}
	Access2(w, e, func(pa *A, pb *B) {
		*pa = a
		*pb = b
	})
	return e, nil
}

// CreateWith3 creates an entity carrying A, B and C initialized to the given
// values.
func CreateWith3[A, B, C types.Component](w *World, a A, b B, c C) (Entity, error) {
	e, err := Create3[A, B, C](w)
	if err != nil {
		return Entity{}, err
	}
	Access3(w, e, func(pa *A, pb *B, pc *C) {
		*pa = a
		*pb = b
		*pc = c
	})
	return e, nil
}
