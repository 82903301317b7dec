// Package basalt is an in-memory, archetype-based entity/component storage
// engine. Entities are generation-checked handles into a slot table; every
// entity sharing the same set of component types lives in one columnar
// archetype block, so iteration over a component combination walks dense
// typed slices. Adding or removing a component migrates the entity between
// blocks. Searches cache their matching blocks incrementally, paying only for
// archetypes created since the previous evaluation.
package basalt
