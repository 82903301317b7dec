package basalt_test

import (
	"testing"

	"gotest.tools/v3/assert"

	basalt "github.com/basalt-ecs/basalt"
)

// duplicatePosition collides with Position on name while carrying a
// different schema.
type duplicatePosition struct {
	Z int
}

func (duplicatePosition) Name() string { return "position" }

func TestRegisterIsIdempotent(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	first, err := basalt.Register[Position](w)
	assert.NilError(t, err)
	again, err := basalt.Register[Position](w)
	assert.NilError(t, err)
	assert.Equal(t, first, again)

	other, err := basalt.Register[Velocity](w)
	assert.NilError(t, err)
	assert.Check(t, first != other)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	_, err = basalt.Register[Position](w)
	assert.NilError(t, err)

	_, err = basalt.Register[duplicatePosition](w)
	assert.ErrorIs(t, err, basalt.ErrDuplicateComponentName)
	// The error carries the schema diff between the colliding types.
	assert.ErrorContains(t, err, "schema diff")
}

func TestRegistrationIsPerWorld(t *testing.T) {
	w1, err := basalt.NewWorld()
	assert.NilError(t, err)
	w2, err := basalt.NewWorld()
	assert.NilError(t, err)

	// IDs are assigned in registration order, independently per world.
	_, err = basalt.Register[Velocity](w1)
	assert.NilError(t, err)
	idPos1, err := basalt.Register[Position](w1)
	assert.NilError(t, err)
	idPos2, err := basalt.Register[Position](w2)
	assert.NilError(t, err)
	assert.Check(t, idPos1 != idPos2)
}

func TestAddComponent(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.CreateWith1(w, Position{X: 4})
	assert.NilError(t, err)

	moved, err := basalt.AddComponent[Velocity](w, e)
	assert.NilError(t, err)

	// Migration hands out a fresh identity; the old handle is dead.
	assert.Check(t, !w.Valid(e))
	assert.Check(t, w.Valid(moved))
	assert.Equal(t, 1, w.NumEntities())

	// Existing values survive, the added component starts zero-valued.
	p, err := basalt.GetComponent[Position](w, moved)
	assert.NilError(t, err)
	assert.Equal(t, 4.0, p.X)
	v, err := basalt.GetComponent[Velocity](w, moved)
	assert.NilError(t, err)
	assert.Equal(t, Velocity{}, *v)
}

func TestAddComponentAlreadyPresent(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.Create1[Position](w)
	assert.NilError(t, err)

	_, err = basalt.AddComponent[Position](w, e)
	assert.ErrorIs(t, err, basalt.ErrComponentAlreadyOnEntity)
	// The failed add must not have disturbed the entity.
	assert.Check(t, w.Valid(e))
}

func TestAddComponentToDeadEntity(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.Create1[Position](w)
	assert.NilError(t, err)
	assert.Check(t, w.Destroy(e))

	_, err = basalt.AddComponent[Velocity](w, e)
	assert.ErrorIs(t, err, basalt.ErrEntityDoesNotExist)
}

func TestRemoveComponent(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.CreateWith2(w, Position{X: 9}, Velocity{DX: 1})
	assert.NilError(t, err)

	moved, err := basalt.RemoveComponent[Velocity](w, e)
	assert.NilError(t, err)
	assert.Check(t, !w.Valid(e))

	p, err := basalt.GetComponent[Position](w, moved)
	assert.NilError(t, err)
	assert.Equal(t, 9.0, p.X)
	_, err = basalt.GetComponent[Velocity](w, moved)
	assert.ErrorIs(t, err, basalt.ErrComponentNotOnEntity)
}

func TestRemoveComponentNotPresent(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.Create1[Position](w)
	assert.NilError(t, err)
	_, err = basalt.Register[Velocity](w)
	assert.NilError(t, err)

	_, err = basalt.RemoveComponent[Velocity](w, e)
	assert.ErrorIs(t, err, basalt.ErrComponentNotOnEntity)
}

func TestRemoveLastComponentRejected(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.Create1[Position](w)
	assert.NilError(t, err)

	_, err = basalt.RemoveComponent[Position](w, e)
	assert.ErrorIs(t, err, basalt.ErrEntityMustHaveAtLeastOneComponent)
	assert.Check(t, w.Valid(e))
}

func TestRemoveComponentUnregistered(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.Create1[Position](w)
	assert.NilError(t, err)

	_, err = basalt.RemoveComponent[Velocity](w, e)
	assert.ErrorIs(t, err, basalt.ErrComponentNotRegistered)
}

func TestAddRemoveRoundTripAcrossArchetypes(t *testing.T) {
	w, err := basalt.NewWorld()
	assert.NilError(t, err)

	e, err := basalt.CreateWith1(w, Health{HP: 100})
	assert.NilError(t, err)

	e, err = basalt.AddComponent[Position](w, e)
	assert.NilError(t, err)
	e, err = basalt.AddComponent[Velocity](w, e)
	assert.NilError(t, err)
	e, err = basalt.RemoveComponent[Position](w, e)
	assert.NilError(t, err)

	h, err := basalt.GetComponent[Health](w, e)
	assert.NilError(t, err)
	assert.Equal(t, 100, h.HP)
	assert.Equal(t, 1, w.NumEntities())
	// health, health+position, health+position+velocity, health+velocity.
	assert.Equal(t, 4, w.NumArchetypes())
}
