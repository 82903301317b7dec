package filter

import (
	"github.com/basalt-ecs/basalt/types"
)

type all struct {
}

// All matches every archetype.
func All() ComponentFilter {
	return &all{}
}

func (f *all) MatchesComponents(_ []types.Component) bool {
	return true
}
