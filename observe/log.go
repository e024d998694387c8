package observe

import (
	"github.com/rs/zerolog"

	"github.com/pdrpinto/wastar"
)

// LogObserver writes one log line per progress report.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver returns an observer logging to logger. Interval reports are
// logged at debug level, stored paths and stops at info.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe writes one log line for progress.
func (o *LogObserver) Observe(progress wastar.Progress) {
	event := o.logger.Info()
	msg := "progress"
	switch progress.Event {
	case wastar.EventInterval:
		event = o.logger.Debug()
	case wastar.EventStored:
		msg = "stored a path"
	case wastar.EventStopped:
		msg = "stopping search"
	case wastar.EventExhausted:
		msg = "open list exhausted"
	}
	event.
		Str("event", progress.Event.String()).
		Int("expanded", progress.Expansions).
		Int("open", progress.OpenSize).
		Dur("elapsed", progress.Elapsed).
		Msg(msg)
}

// Multi fans a report out to several observers in order.
type Multi []wastar.Observer

// Observe passes progress to every non-nil observer.
func (m Multi) Observe(progress wastar.Progress) {
	for _, observer := range m {
		if observer != nil {
			observer.Observe(progress)
		}
	}
}
