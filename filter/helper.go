package filter

import (
	"github.com/basalt-ecs/basalt/types"
)

// MatchComponent returns true if the given slice of components contains the
// given component. Components are the same if they have the same Name.
func MatchComponent(
	components []types.Component,
	cType types.Component,
) bool {
	for _, c := range components {
		if cType.Name() == c.Name() {
			return true
		}
	}
	return false
}
