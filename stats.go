package wastar

import "time"

// Status is the run state of a planner.
type Status int

// Run states reported by Planner.Status.
const (
	NotStarted Status = iota
	Running
	// Stopped means the stop predicate fired. The open list is left intact
	// and a later Run resumes from it.
	Stopped
	Exhausted
	// Cancelled means the context passed to Run was done between expansions.
	Cancelled
)

// String returns the lower-case status name used in logs and metrics.
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Stats describes the most recent run.
type Stats struct {
	Status Status
	// Expansions and MaxOpenSize restart with every Run.
	Expansions int
	// Bookmarks counts every bookmark since Init, including those of
	// earlier runs that stopped and were resumed.
	Bookmarks   int
	OpenSize    int
	MaxOpenSize int
	Registered  int
	Elapsed     time.Duration
}

// Event identifies why a progress report was emitted.
type Event int

// Progress events.
const (
	EventInterval Event = iota
	EventStored
	EventStopped
	EventExhausted
)

// String returns the event label.
func (e Event) String() string {
	switch e {
	case EventInterval:
		return "interval"
	case EventStored:
		return "stored"
	case EventStopped:
		return "stopped"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Progress is a diagnostic report. It has no effect on results.
type Progress struct {
	Event      Event
	Expansions int
	OpenSize   int
	Elapsed    time.Duration
}

// Observer receives progress reports.
type Observer interface {
	Observe(progress Progress)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(progress Progress)

// Observe calls f.
func (f ObserverFunc) Observe(progress Progress) { f(progress) }
