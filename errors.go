package basalt

import (
	"github.com/rotisserie/eris"

	"github.com/basalt-ecs/basalt/storage"
)

var (
	ErrEntityDoesNotExist                = eris.New("entity does not exist")
	ErrComponentAlreadyOnEntity          = eris.New("component already on entity")
	ErrComponentNotOnEntity              = eris.New("component not on entity")
	ErrEntityMustHaveAtLeastOneComponent = eris.New("entities must have at least 1 component")
	ErrNoMatchingEntities                = eris.New("no entities match the search")

	// Storage-level sentinels, re-exported for callers that only import the
	// root package.
	ErrComponentNotRegistered = storage.ErrComponentNotRegistered
	ErrTooManyComponents      = storage.ErrTooManyComponents
	ErrDuplicateComponentName = storage.ErrDuplicateComponentName
	ErrEntityLimitReached     = storage.ErrEntityLimitReached
	ErrColumnCapacityReached  = storage.ErrColumnCapacityReached
)
