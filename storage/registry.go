package storage

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/wI2L/jsondiff"

	"github.com/basalt-ecs/basalt/types"
)

var (
	ErrTooManyComponents      = eris.New("too many component types")
	ErrDuplicateComponentName = eris.New("component name already registered to a different type")
	ErrComponentNotRegistered = eris.New("must register component")
)

// Registry assigns each component type a stable runtime ID and holds the
// type-erased column operations the store dispatches through. Registration is
// idempotent per Go type: repeated registrations return the existing ID.
type Registry struct {
	byType map[reflect.Type]types.ComponentID
	byName map[string]types.ComponentID
	metas  []types.ComponentMetadata
	logger *zerolog.Logger
}

func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		byType: map[reflect.Type]types.ComponentID{},
		byName: map[string]types.ComponentID{},
		logger: logger,
	}
}

// Register assigns an ID to the component type described by meta, or returns
// the previously assigned ID when typ has been registered before. Registering
// a different type under an already-taken name is an error; the message
// carries the JSON-schema diff between the two so the collision is
// diagnosable.
func (r *Registry) Register(typ reflect.Type, meta types.ComponentMetadata) (types.ComponentID, error) {
	if id, ok := r.byType[typ]; ok {
		return id, nil
	}
	if id, ok := r.byName[meta.Name()]; ok {
		diff := schemaDiff(r.metas[id].GetSchema(), meta.GetSchema())
		return 0, eris.Wrapf(ErrDuplicateComponentName, "component %q: schema diff: %s", meta.Name(), diff)
	}
	if len(r.metas) >= types.MaxComponentTypes {
		return 0, eris.Wrapf(ErrTooManyComponents, "limit is %d", types.MaxComponentTypes)
	}
	id := types.ComponentID(len(r.metas))
	if err := meta.SetID(id); err != nil {
		return 0, err
	}
	r.byType[typ] = id
	r.byName[meta.Name()] = id
	r.metas = append(r.metas, meta)
	r.logger.Debug().
		Int("component_id", int(id)).
		Str("component_name", meta.Name()).
		Msg("component registered")
	return id, nil
}

// Lookup returns the ID previously assigned to typ.
func (r *Registry) Lookup(typ reflect.Type) (types.ComponentID, error) {
	id, ok := r.byType[typ]
	if !ok {
		return 0, eris.Wrapf(ErrComponentNotRegistered, "%v", typ)
	}
	return id, nil
}

// ByName returns the metadata registered under name.
func (r *Registry) ByName(name string) (types.ComponentMetadata, error) {
	id, ok := r.byName[name]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "%q", name)
	}
	return r.metas[id], nil
}

// Metadata returns the metadata for an assigned ID.
func (r *Registry) Metadata(id types.ComponentID) types.ComponentMetadata {
	return r.metas[id]
}

// Metas returns all registered component metadata in ID order.
func (r *Registry) Metas() []types.ComponentMetadata {
	return r.metas
}

// Count returns the number of registered component types.
func (r *Registry) Count() int {
	return len(r.metas)
}

// ComponentsOf resolves a signature's bits to their registered components.
func (r *Registry) ComponentsOf(sig types.Signature) []types.Component {
	comps := make([]types.Component, 0, sig.Count())
	sig.Each(func(id types.ComponentID) bool {
		comps = append(comps, r.metas[id])
		return true
	})
	return comps
}

func schemaDiff(a, b []byte) string {
	patch, err := jsondiff.CompareJSON(a, b)
	if err != nil {
		return "(schemas not comparable)"
	}
	if patch.String() == "" {
		return "(schemas identical)"
	}
	return patch.String()
}
