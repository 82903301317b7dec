package basalt

import (
	"github.com/rs/zerolog"

	"github.com/basalt-ecs/basalt/storage"
	"github.com/basalt-ecs/basalt/types"
)

func loadComponentIntoArrayLogger(
	component types.ComponentMetadata,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID()))
	dictLogger = dictLogger.Str("component_name", component.Name())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, w *World) *zerolog.Event {
	metas := w.store.Registry().Metas()
	zeroLoggerEvent.Int("total_components", len(metas))
	arrayLogger := zerolog.Arr()
	for _, meta := range metas {
		arrayLogger = loadComponentIntoArrayLogger(meta, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

// LogComponents logs every registered component at the given level.
func (w *World) LogComponents(level zerolog.Level) {
	zeroLoggerEvent := w.logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Send()
}

// LogWorldState logs the registered components plus entity and archetype
// counts at the given level.
func (w *World) LogWorldState(level zerolog.Level) {
	zeroLoggerEvent := w.logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Int("total_entities", w.NumEntities())
	zeroLoggerEvent.Int("total_archetypes", w.NumArchetypes())
	zeroLoggerEvent.Send()
}

// logEntityCreated logs a freshly created entity with the components its
// archetype carries.
func (w *World) logEntityCreated(e Entity, a *storage.Archetype) {
	zeroLoggerEvent := w.logger.Debug()
	arrayLogger := zerolog.Arr()
	reg := w.store.Registry()
	a.Signature().Each(func(id types.ComponentID) bool {
		arrayLogger = loadComponentIntoArrayLogger(reg.Metadata(id), arrayLogger)
		return true
	})
	zeroLoggerEvent.Array("components", arrayLogger)
	zeroLoggerEvent.Int("entity_id", int(e.ID))
	zeroLoggerEvent.Int("archetype_id", int(a.ID()))
	zeroLoggerEvent.Msg("entity created")
}
