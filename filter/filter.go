package filter

import (
	"github.com/basalt-ecs/basalt/types"
)

// ComponentFilter decides whether an archetype's component set satisfies a
// search.
type ComponentFilter interface {
	// MatchesComponents returns true if the component set matches the filter.
	MatchesComponents(components []types.Component) bool
}

// Component returns the zero value of the component type T for use in filter
// constructors, e.g. filter.Contains(filter.Component[Position]()).
func Component[T types.Component]() types.Component {
	var x T
	return x
}
