package wastar

import (
	"errors"
	"fmt"
)

var (
	// ErrInaccessibleSource is the kind of a ConfigError raised when a seed
	// state is not accessible at Init time.
	ErrInaccessibleSource = errors.New("source state is not accessible")

	ErrEmptyOpenList  = errors.New("pop from empty open list")
	ErrNodeNotFound   = errors.New("state was never resolved by the registry")
	ErrUnknownNode    = errors.New("unknown node id")
	ErrNotInitialized = errors.New("planner not initialized")
	ErrPlannerBusy    = errors.New("planner is already running")
	ErrInvalidEpsilon = errors.New("epsilon must be >= 1")
	ErrInvalidFanOut  = errors.New("open list fan-out must be >= 2")
	ErrNilDescriptor  = errors.New("descriptor is nil")

	// ErrBrokenPath is returned when a predecessor walk does not reach a
	// source within the number of registered states.
	ErrBrokenPath = errors.New("predecessor chain does not terminate")
)

// ConfigError reports a descriptor or environment misconfiguration detected
// while seeding the planner.
type ConfigError struct {
	Kind error
	Seed int
	Msg  string
}

// Error formats the kind, seed index and offending state.
func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s (seed %d)", e.Kind.Error(), e.Seed)
	}
	return fmt.Sprintf("%s (seed %d): %s", e.Kind.Error(), e.Seed, e.Msg)
}

// Unwrap returns Kind so errors.Is matches the sentinel.
func (e *ConfigError) Unwrap() error { return e.Kind }

func inaccessibleSource(seed int, state any) error {
	return &ConfigError{Kind: ErrInaccessibleSource, Seed: seed, Msg: fmt.Sprintf("%v", state)}
}
