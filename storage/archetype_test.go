package storage_test

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"gotest.tools/v3/assert"

	"github.com/basalt-ecs/basalt/storage"
	"github.com/basalt-ecs/basalt/types"
)

// intMeta is a minimal ComponentMetadata over []int columns, enough to drive
// the store without the root package's generic metadata.
type intMeta struct {
	name  string
	id    types.ComponentID
	isSet bool
}

func newIntMeta(name string) *intMeta { return &intMeta{name: name} }

func (m *intMeta) Name() string          { return m.name }
func (m *intMeta) ID() types.ComponentID { return m.id }
func (m *intMeta) GetSchema() []byte     { return []byte(`{"type":"integer"}`) }

func (m *intMeta) SetID(id types.ComponentID) error {
	if m.isSet && id != m.id {
		return eris.Errorf("id already set to %v", m.id)
	}
	m.id = id
	m.isSet = true
	return nil
}

func (m *intMeta) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (m *intMeta) Decode(bz []byte) (any, error) {
	var v int
	err := json.Unmarshal(bz, &v)
	return v, err
}

func (m *intMeta) NewColumn(capacity int) types.Column {
	col := make([]int, capacity)
	return &col
}

func (m *intMeta) MoveElement(dst types.Column, dstRow int, src types.Column, srcRow int) {
	d, s := dst.(*[]int), src.(*[]int)
	(*d)[dstRow] = (*s)[srcRow]
	(*s)[srcRow] = 0
}

func (m *intMeta) ResizeColumn(c types.Column, newCapacity, rowsToPreserve int) error {
	s := c.(*[]int)
	if newCapacity < rowsToPreserve {
		return eris.Errorf("capacity %d below %d preserved rows", newCapacity, rowsToPreserve)
	}
	grown := make([]int, newCapacity)
	copy(grown, (*s)[:rowsToPreserve])
	*s = grown
	return nil
}

func (m *intMeta) ZeroElement(c types.Column, row int) { (*c.(*[]int))[row] = 0 }
func (m *intMeta) Element(c types.Column, row int) any { return (*c.(*[]int))[row] }
func (m *intMeta) DestroyColumn(c types.Column)        { *c.(*[]int) = nil }

// anchor types give each registration a distinct reflect.Type.
type compA struct{}
type compB struct{}

func newTestStore(t *testing.T, cfg storage.Config) (*storage.Store, types.ComponentID, types.ComponentID) {
	t.Helper()
	s := storage.NewStore(cfg)
	ida, err := s.Registry().Register(reflect.TypeOf(compA{}), newIntMeta("a"))
	assert.NilError(t, err)
	idb, err := s.Registry().Register(reflect.TypeOf(compB{}), newIntMeta("b"))
	assert.NilError(t, err)
	return s, ida, idb
}

func setCell(t *testing.T, a *storage.Archetype, id types.ComponentID, row, v int) {
	t.Helper()
	col, ok := storage.ColumnSlice[int](a, id)
	assert.Check(t, ok)
	col[row] = v
}

func cell(t *testing.T, a *storage.Archetype, id types.ComponentID, row int) int {
	t.Helper()
	col, ok := storage.ColumnSlice[int](a, id)
	assert.Check(t, ok)
	return col[row]
}

func TestFindOrCreateReusesBlocks(t *testing.T) {
	s, ida, idb := newTestStore(t, storage.Config{})

	var sig types.Signature
	sig = sig.Add(ida).Add(idb)
	a := s.FindOrCreate(sig)
	assert.Equal(t, a, s.FindOrCreate(sig))
	assert.Equal(t, 1, s.NumArchetypes())

	var other types.Signature
	b := s.FindOrCreate(other.Add(ida))
	assert.Check(t, a != b)
	assert.Equal(t, 2, s.NumArchetypes())
}

func TestGrowthPreservesData(t *testing.T) {
	s, ida, _ := newTestStore(t, storage.Config{})

	var sig types.Signature
	a := s.FindOrCreate(sig.Add(ida))

	// Enough rows to force the block through several capacity doublings.
	for i := 0; i < 100; i++ {
		row, _, err := s.ReserveRow(a)
		assert.NilError(t, err)
		assert.Equal(t, i, row)
		setCell(t, a, ida, row, i*10)
	}
	assert.Equal(t, 100, a.Size())
	assert.Check(t, a.Capacity() >= 100)

	for i := 0; i < 100; i++ {
		assert.Equal(t, i*10, cell(t, a, ida, i))
	}
}

func TestRemoveRowSwapsLastIntoHole(t *testing.T) {
	s, ida, _ := newTestStore(t, storage.Config{})

	var sig types.Signature
	a := s.FindOrCreate(sig.Add(ida))
	var slots []types.EntityID
	for i := 0; i < 3; i++ {
		row, id, err := s.ReserveRow(a)
		assert.NilError(t, err)
		setCell(t, a, ida, row, i+1)
		slots = append(slots, id)
	}

	s.RemoveRow(a, 0)
	assert.Equal(t, 2, a.Size())

	// The last row moved into row 0, and its slot follows it.
	assert.Equal(t, 3, cell(t, a, ida, 0))
	assert.Equal(t, slots[2], a.SlotAt(0))
	arch, row, ok := s.Slots().Resolve(s.Slots().Handle(slots[2]))
	assert.Check(t, ok)
	assert.Equal(t, a.ID(), arch)
	assert.Equal(t, 0, row)

	// The vacated cell is zeroed so a reused row starts from zero.
	assert.Equal(t, 0, cell(t, a, ida, 2))
}

func TestRemoveLastRowReleasesSlot(t *testing.T) {
	s, ida, _ := newTestStore(t, storage.Config{})

	var sig types.Signature
	a := s.FindOrCreate(sig.Add(ida))
	row, id, err := s.ReserveRow(a)
	assert.NilError(t, err)
	setCell(t, a, ida, row, 42)
	e := s.Slots().Handle(id)

	s.RemoveRow(a, row)
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 0, s.Slots().Live())
	_, _, ok := s.Slots().Resolve(e)
	assert.Check(t, !ok)
	assert.Equal(t, 0, cell(t, a, ida, row))
}

func TestMoveEntityBetweenBlocks(t *testing.T) {
	s, ida, idb := newTestStore(t, storage.Config{})

	var aOnly types.Signature
	aOnly = aOnly.Add(ida)
	from := s.FindOrCreate(aOnly)
	row, id, err := s.ReserveRow(from)
	assert.NilError(t, err)
	setCell(t, from, ida, row, 7)
	oldHandle := s.Slots().Handle(id)

	to, toRow, newID, err := s.MoveEntity(from, row, aOnly.Add(idb))
	assert.NilError(t, err)
	assert.Equal(t, 0, from.Size())
	assert.Equal(t, 1, to.Size())

	// Shared column values move; the new column starts zeroed.
	assert.Equal(t, 7, cell(t, to, ida, toRow))
	assert.Equal(t, 0, cell(t, to, idb, toRow))

	// The move allocates a fresh slot identity.
	assert.Check(t, newID != id || s.Slots().Handle(newID).Generation != oldHandle.Generation)
	_, _, ok := s.Slots().Resolve(oldHandle)
	assert.Check(t, !ok)
	arch, gotRow, ok := s.Slots().Resolve(s.Slots().Handle(newID))
	assert.Check(t, ok)
	assert.Equal(t, to.ID(), arch)
	assert.Equal(t, toRow, gotRow)
}

func TestColumnCapacityCap(t *testing.T) {
	s, ida, _ := newTestStore(t, storage.Config{MaxColumnCapacity: 2})

	var sig types.Signature
	a := s.FindOrCreate(sig.Add(ida))
	for i := 0; i < 2; i++ {
		_, _, err := s.ReserveRow(a)
		assert.NilError(t, err)
	}
	_, _, err := s.ReserveRow(a)
	assert.ErrorIs(t, err, storage.ErrColumnCapacityReached)
	assert.Equal(t, 2, a.Size())
}

func TestStoreClear(t *testing.T) {
	s, ida, idb := newTestStore(t, storage.Config{})

	var sig types.Signature
	a := s.FindOrCreate(sig.Add(ida).Add(idb))
	_, id, err := s.ReserveRow(a)
	assert.NilError(t, err)
	e := s.Slots().Handle(id)

	s.Clear()
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 0, s.Slots().Live())
	assert.Equal(t, 1, s.NumArchetypes())
	_, _, ok := s.Slots().Resolve(e)
	assert.Check(t, !ok)

	// The cleared block accepts rows again.
	row, _, err := s.ReserveRow(a)
	assert.NilError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, cell(t, a, ida, row))
}

func TestMatchesIsIncremental(t *testing.T) {
	s, ida, idb := newTestStore(t, storage.Config{})

	var want types.Signature
	want = want.Add(ida)

	var sigA, sigAB, sigB types.Signature
	s.FindOrCreate(sigA.Add(ida))
	assert.Equal(t, 1, len(s.Matches(want)))

	// Blocks created after the first lookup still get discovered.
	s.FindOrCreate(sigAB.Add(ida).Add(idb))
	s.FindOrCreate(sigB.Add(idb))
	got := s.Matches(want)
	assert.Equal(t, 2, len(got))
	for _, id := range got {
		assert.Check(t, s.ArchetypeByID(id).Signature().Has(ida))
	}
}

func TestScanFromResumesAtCursor(t *testing.T) {
	s, ida, idb := newTestStore(t, storage.Config{})

	var sigA, sigB types.Signature
	s.FindOrCreate(sigA.Add(ida))
	s.FindOrCreate(sigB.Add(idb))

	matchAll := func(*storage.Archetype) bool { return true }
	next, found := s.ScanFrom(0, matchAll)
	assert.Equal(t, 2, next)
	assert.Equal(t, 2, len(found))

	// Resuming at the cursor sees nothing until new blocks appear.
	next, found = s.ScanFrom(next, matchAll)
	assert.Equal(t, 2, next)
	assert.Equal(t, 0, len(found))

	var sigAB types.Signature
	s.FindOrCreate(sigAB.Add(ida).Add(idb))
	next, found = s.ScanFrom(next, matchAll)
	assert.Equal(t, 3, next)
	assert.Equal(t, 1, len(found))
}
