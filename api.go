package wastar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdrpinto/wastar/internal"
)

// Planner is a weighted A* planner over a lazily expanded graph. Its
// registry survives between runs so successive planning episodes reuse the
// states and successor edges discovered earlier.
//
// A Planner is not safe for concurrent use.
type Planner[S comparable, C Cost] struct {
	options Options

	descriptor Descriptor[S, C]
	registry   *registry[S, C]
	open       *openList[S, C]
	bookmarks  []Bookmark[S, C]
	seeds      []S

	initialized bool
	busy        bool
	status      Status
	stats       Stats
	startedAt   time.Time
	current     NodeID
	steps       int
}

// Bookmark is a state recorded by the stop or store predicate.
type Bookmark[S comparable, C Cost] struct {
	Node    NodeID
	State   S
	Cost    C
	Lineage int
	// Stopped is true when the stop predicate recorded the bookmark.
	Stopped bool
}

// New creates a planner.
func New[S comparable, C Cost](options ...Option) (*Planner[S, C], error) {
	plannerOptions := defaultOptions()
	for _, option := range options {
		option(&plannerOptions)
	}
	if err := plannerOptions.validate(); err != nil {
		return nil, err
	}
	return &Planner[S, C]{
		options:  plannerOptions,
		registry: newRegistry[S, C](),
		open:     newOpenList[S, C](plannerOptions.FanOut),
		current:  NoNode,
	}, nil
}

// Init seeds the planner from descriptor. The open list and bookmarks are
// always cleared; resetRegistry also forgets every known state.
//
// Seeds are pushed even if they were seen in an earlier run, which allows
// re-planning with a changed set of sources.
func (p *Planner[S, C]) Init(descriptor Descriptor[S, C], resetRegistry bool) error {
	if descriptor == nil {
		return ErrNilDescriptor
	}
	if p.busy {
		return ErrPlannerBusy
	}
	logger := p.options.Logger

	p.open.Clear()
	if resetRegistry {
		p.registry.Clear()
	}
	if initializer, ok := descriptor.(Initializer); ok {
		initializer.Init()
	}
	p.descriptor = descriptor
	p.bookmarks = nil
	p.initialized = false
	p.status = NotStarted
	p.stats = Stats{}
	p.startedAt = time.Time{}
	p.current = NoNode
	p.steps = 0

	seeds := descriptor.Seeds()
	p.seeds = append(p.seeds[:0], seeds...)

	for index, seed := range seeds {
		rec := p.registry.Resolve(seed)
		if !rec.initiated {
			rec.f = p.options.Epsilon * float64(descriptor.Heuristic(seed))
			rec.parent = NoNode
			rec.lineage = index
			rec.g = 0
			rec.expanded = false

			if !descriptor.Accessible(seed) {
				p.open.Clear()
				err := inaccessibleSource(index, seed)
				logger.Error().Err(err).Int("seed", index).Msg("planner init aborted")
				return err
			}
			rec.accessible = true
			rec.initiated = true
		}
		p.open.Push(rec)
	}

	p.initialized = true
	logger.Debug().
		Int("seeds", len(seeds)).
		Int("registered", p.registry.Len()).
		Bool("reset_registry", resetRegistry).
		Msg("planner initialized")
	return nil
}

// Reset clears the expansion state of every known record and seeds the
// planner again without dropping the registry. Record identities and cached
// successor edges are kept. A nil descriptor reuses the last one.
func (p *Planner[S, C]) Reset(descriptor Descriptor[S, C]) error {
	if p.busy {
		return ErrPlannerBusy
	}
	if descriptor == nil {
		descriptor = p.descriptor
	}
	if descriptor == nil {
		return ErrNotInitialized
	}
	p.registry.Each(func(rec *record[S, C]) {
		rec.expanded = false
		rec.initiated = false
	})
	return p.Init(descriptor, false)
}

// Result contains the outcome of a one-shot search.
type Result[S comparable, C Cost] struct {
	Path          []S
	TotalCost     C
	Lineage       int
	ExpandedNodes int
	Found         bool
}

// ErrNoPath is returned by Search when no state satisfied the stop predicate.
var ErrNoPath = errors.New("no path found")

// Search plans once over descriptor and returns the path, source first, to
// the state that stopped the search.
func Search[S comparable, C Cost](
	ctx context.Context,
	descriptor Descriptor[S, C],
	options ...Option,
) (Result[S, C], error) {
	planner, err := New[S, C](options...)
	if err != nil {
		return Result[S, C]{}, err
	}
	if err := planner.Init(descriptor, true); err != nil {
		return Result[S, C]{}, err
	}
	stats, err := planner.Run(ctx)
	if err != nil {
		return Result[S, C]{ExpandedNodes: stats.Expansions}, err
	}
	if stats.Status != Stopped {
		return Result[S, C]{ExpandedNodes: stats.Expansions}, ErrNoPath
	}

	goal := planner.bookmarks[len(planner.bookmarks)-1]
	path, err := planner.pathTo(goal.Node)
	if err != nil {
		return Result[S, C]{ExpandedNodes: stats.Expansions}, fmt.Errorf("reconstruct path: %w", err)
	}
	internal.Reverse(path)
	return Result[S, C]{
		Path:          path,
		TotalCost:     goal.Cost,
		Lineage:       goal.Lineage,
		ExpandedNodes: stats.Expansions,
		Found:         true,
	}, nil
}
