package wastar

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied by New when the matching option is not given.
const (
	DefaultEpsilon          = 1.0
	DefaultFanOut           = 20
	DefaultProgressInterval = 10000
)

// Options defines parameters for the planner.
type Options struct {
	// Epsilon weights the heuristic; 1 is plain A*.
	Epsilon float64
	// FanOut is the branching factor of the open list heap.
	FanOut int
	// ProgressInterval is the number of expansions between progress
	// reports. Zero or negative disables them.
	ProgressInterval int
	Observer         Observer
	Logger           zerolog.Logger
	Clock            func() time.Time
}

// Option is a function that modifies Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Epsilon:          DefaultEpsilon,
		FanOut:           DefaultFanOut,
		ProgressInterval: DefaultProgressInterval,
		Logger:           zerolog.Nop(),
		Clock:            time.Now,
	}
}

// WithEpsilon sets the suboptimality factor.
func WithEpsilon(epsilon float64) Option {
	return func(options *Options) { options.Epsilon = epsilon }
}

// WithFanOut sets the open list branching factor. It has no effect on results.
func WithFanOut(fanOut int) Option {
	return func(options *Options) { options.FanOut = fanOut }
}

// WithProgressInterval sets how many expansions pass between progress reports.
func WithProgressInterval(expansions int) Option {
	return func(options *Options) { options.ProgressInterval = expansions }
}

// WithObserver registers a receiver for progress reports.
func WithObserver(observer Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

// WithLogger sets the planner's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithClock replaces time.Now for elapsed time measurement.
func WithClock(clock func() time.Time) Option {
	return func(options *Options) {
		if clock != nil {
			options.Clock = clock
		}
	}
}

func (o Options) validate() error {
	// written as a negation so NaN is rejected too
	if !(o.Epsilon >= 1) {
		return ErrInvalidEpsilon
	}
	if o.FanOut < 2 {
		return ErrInvalidFanOut
	}
	return nil
}
