package basalt

import (
	"github.com/rs/zerolog"
)

// WorldOption is an option that can be passed to NewWorld.
type WorldOption func(*worldConfig)

type worldConfig struct {
	maxEntities       int
	maxColumnCapacity int
	logger            *zerolog.Logger
}

// WithLogger routes the world's structured log events through the given
// logger instead of the global one.
func WithLogger(logger *zerolog.Logger) WorldOption {
	return func(cfg *worldConfig) {
		cfg.logger = logger
	}
}

// WithMaxEntities caps the number of slots the world may allocate. Creation
// fails with ErrEntityLimitReached once the cap is hit and no released slots
// remain. Zero means unbounded.
func WithMaxEntities(n int) WorldOption {
	return func(cfg *worldConfig) {
		cfg.maxEntities = n
	}
}

// WithMaxColumnCapacity caps how far any archetype block may grow its
// columns. Reserving a row in a full block fails with
// ErrColumnCapacityReached once the cap is hit. Zero means unbounded.
func WithMaxColumnCapacity(n int) WorldOption {
	return func(cfg *worldConfig) {
		cfg.maxColumnCapacity = n
	}
}
