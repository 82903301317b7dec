package basalt

import (
	"github.com/basalt-ecs/basalt/storage"
	"github.com/basalt-ecs/basalt/types"
)

// Each1 visits every entity carrying A, passing its handle and a pointer into
// the component column. Returning false from fn stops the walk early. Blocks
// are visited in creation order and rows in storage order; fn must not create,
// destroy, or migrate entities while the walk runs.
func Each1[A types.Component](w *World, fn func(Entity, *A) bool) error {
	ia, err := componentID[A](w)
	if err != nil {
		return err
	}
	var sig types.Signature
	for _, id := range w.store.Matches(sig.Add(ia)) {
		a := w.store.ArchetypeByID(id)
		ca, _ := storage.ColumnSlice[A](a, ia)
		for row := 0; row < a.Size(); row++ {
			e := w.store.Slots().Handle(a.SlotAt(row))
			if !fn(e, &ca[row]) {
				return nil
			}
		}
	}
	return nil
}

// Each2 visits every entity carrying both A and B.
func Each2[A, B types.Component](w *World, fn func(Entity, *A, *B) bool) error {
	ia, err := componentID[A](w)
	if err != nil {
		return err
	}
	ib, err := componentID[B](w)
	if err != nil {
		return err
	}
	var sig types.Signature
	for _, id := range w.store.Matches(sig.Add(ia).Add(ib)) {
		a := w.store.ArchetypeByID(id)
		ca, _ := storage.ColumnSlice[A](a, ia)
		cb, _ := storage.ColumnSlice[B](a, ib)
		for row := 0; row < a.Size(); row++ {
			e := w.store.Slots().Handle(a.SlotAt(row))
			if !fn(e, &ca[row], &cb[row]) {
				return nil
			}
		}
	}
	return nil
}

// Each3 visits every entity carrying A, B and C.
func Each3[A, B, C types.Component](w *World, fn func(Entity, *A, *B, *C) bool) error {
	ia, err := componentID[A](w)
	if err != nil {
		return err
	}
	ib, err := componentID[B](w)
	if err != nil {
		return err
	}
	ic, err := componentID[C](w)
	if err != nil {
		return err
	}
	var sig types.Signature
	for _, id := range w.store.Matches(sig.Add(ia).Add(ib).Add(ic)) {
		a := w.store.ArchetypeByID(id)
		ca, _ := storage.ColumnSlice[A](a, ia)
		cb, _ := storage.ColumnSlice[B](a, ib)
		cc, _ := storage.ColumnSlice[C](a, ic)
		for row := 0; row < a.Size(); row++ {
			e := w.store.Slots().Handle(a.SlotAt(row))
			if !fn(e, &ca[row], &cb[row], &cc[row]) {
				return nil
			}
		}
	}
	return nil
}

// Each4 visits every entity carrying A, B, C and D.
func Each4[A, B, C, D types.Component](w *World, fn func(Entity, *A, *B, *C, *D) bool) error {
	ia, err := componentID[A](w)
	if err != nil {
		return err
	}
	ib, err := componentID[B](w)
	if err != nil {
		return err
	}
	ic, err := componentID[C](w)
	if err != nil {
		return err
	}
	id4, err := componentID[D](w)
	if err != nil {
		return err
	}
	var sig types.Signature
	for _, id := range w.store.Matches(sig.Add(ia).Add(ib).Add(ic).Add(id4)) {
		a := w.store.ArchetypeByID(id)
		ca, _ := storage.ColumnSlice[A](a, ia)
		cb, _ := storage.ColumnSlice[B](a, ib)
		cc, _ := storage.ColumnSlice[C](a, ic)
		cd, _ := storage.ColumnSlice[D](a, id4)
		for row := 0; row < a.Size(); row++ {
			e := w.store.Slots().Handle(a.SlotAt(row))
			if !fn(e, &ca[row], &cb[row], &cc[row], &cd[row]) {
				return nil
			}
		}
	}
	return nil
}
