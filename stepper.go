package wastar

import (
	"context"
	"fmt"
	"time"

	"github.com/pdrpinto/wastar/internal"
)

// Run expands states until the stop predicate fires or the open list is
// exhausted. After a stop, calling Run again resumes from the remaining
// open list and appends further bookmarks.
//
// The context is checked between expansions only.
func (p *Planner[S, C]) Run(ctx context.Context) (Stats, error) {
	if !p.initialized {
		return p.Stats(), ErrNotInitialized
	}
	if p.busy {
		return p.Stats(), ErrPlannerBusy
	}
	p.busy = true
	defer func() { p.busy = false }()

	ctx, span := startRunSpan(ctx, len(p.seeds), p.options.Epsilon)
	defer span.End()

	p.stats.Expansions = 0
	p.stats.MaxOpenSize = p.open.Len()
	startBookmarks := len(p.bookmarks)
	p.startedAt = p.options.Clock()

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			p.status = Cancelled
			runErr = err
			break
		}
		done, err := p.step()
		if err != nil {
			runErr = err
			break
		}
		if done {
			break
		}
	}

	stats := p.Stats()
	setRunSpanResult(span, stats, runErr)
	recordRunMetrics(ctx, stats, stats.Bookmarks-startBookmarks)

	event := p.options.Logger.Info()
	if runErr != nil {
		event = p.options.Logger.Warn().Err(runErr)
	}
	event.
		Str("status", stats.Status.String()).
		Int("expansions", stats.Expansions).
		Int("open", stats.OpenSize).
		Int("bookmarks", stats.Bookmarks).
		Dur("elapsed", stats.Elapsed).
		Msg("planner run finished")
	return stats, runErr
}

// Step performs a single expansion and reports whether the run has
// finished, either by the stop predicate or by exhausting the open list.
func (p *Planner[S, C]) Step() (bool, error) {
	if !p.initialized {
		return true, ErrNotInitialized
	}
	if p.busy {
		return false, ErrPlannerBusy
	}
	p.busy = true
	defer func() { p.busy = false }()

	if p.startedAt.IsZero() {
		p.startedAt = p.options.Clock()
	}
	return p.step()
}

func (p *Planner[S, C]) step() (bool, error) {
	if p.open.Empty() {
		p.status = Exhausted
		p.report(EventExhausted)
		return true, nil
	}
	p.status = Running

	if interval := p.options.ProgressInterval; interval > 0 && p.stats.Expansions%interval == 0 {
		p.report(EventInterval)
	}

	current, err := p.open.PopMin()
	if err != nil {
		return true, fmt.Errorf("expand: %w", err)
	}
	current.expanded = true
	p.current = current.id
	p.stats.Expansions++
	p.steps++

	// --- Predicates ---
	if p.descriptor.StopSearch(current.state) {
		p.bookmark(current, true)
		p.status = Stopped
		p.report(EventStopped)
		return true, nil
	}
	if p.descriptor.StorePath(current.state) {
		p.bookmark(current, false)
		p.report(EventStored)
	}

	// --- Successors, generated once per record ---
	if !current.cached {
		edges := p.descriptor.Successors(current.state)
		current.successors = make([]link[C], 0, len(edges))
		for _, edge := range edges {
			neighbor := p.registry.Resolve(edge.To)
			current.successors = append(current.successors, link[C]{to: neighbor.id, cost: edge.Cost})
		}
		current.cached = true
	}

	// --- Relaxation ---
	for _, successor := range current.successors {
		neighbor, ok := p.registry.Get(successor.to)
		if !ok {
			return true, fmt.Errorf("expand %v: %w: %d", current.state, ErrUnknownNode, successor.to)
		}
		p.relax(current, neighbor, successor.cost)
	}

	if size := p.open.Len(); size > p.stats.MaxOpenSize {
		p.stats.MaxOpenSize = size
	}
	return false, nil
}

func (p *Planner[S, C]) relax(current, neighbor *record[S, C], cost C) {
	if !neighbor.initiated {
		neighbor.accessible = p.descriptor.Accessible(neighbor.state)
		if neighbor.accessible {
			neighbor.parent = current.id
			neighbor.lineage = current.lineage
			neighbor.g = current.g + cost
			neighbor.f = p.key(neighbor)
			neighbor.expanded = false
			p.open.Push(neighbor)
		}
		neighbor.initiated = true
		return
	}

	// closed and inaccessible states are never relaxed
	if !neighbor.accessible || neighbor.expanded {
		return
	}

	tentativeG := current.g + cost
	if tentativeG < neighbor.g {
		neighbor.g = tentativeG
		neighbor.f = p.key(neighbor)
		neighbor.parent = current.id
		neighbor.lineage = current.lineage

		p.open.Remove(neighbor)
		p.open.Push(neighbor)
	}
}

func (p *Planner[S, C]) key(rec *record[S, C]) float64 {
	return float64(rec.g) + p.options.Epsilon*float64(p.descriptor.Heuristic(rec.state))
}

func (p *Planner[S, C]) bookmark(rec *record[S, C], stopped bool) {
	p.bookmarks = append(p.bookmarks, Bookmark[S, C]{
		Node:    rec.id,
		State:   rec.state,
		Cost:    rec.g,
		Lineage: rec.lineage,
		Stopped: stopped,
	})
}

func (p *Planner[S, C]) report(event Event) {
	if p.options.Observer == nil {
		return
	}
	p.options.Observer.Observe(Progress{
		Event:      event,
		Expansions: p.stats.Expansions,
		OpenSize:   p.open.Len(),
		Elapsed:    p.elapsed(),
	})
}

func (p *Planner[S, C]) elapsed() time.Duration {
	return elapsedSince(p.options.Clock, p.startedAt)
}

// Snapshot exposes the search frontier after the most recent expansion.
type Snapshot[S comparable] struct {
	Current    S
	HasCurrent bool
	Open       []S
	Closed     []S
	Status     Status
	Done       bool
	Found      bool
	// Path runs from a source to the latest bookmark.
	Path      []S
	StepIndex int
}

// Snapshot copies the planner's open and closed sets.
func (p *Planner[S, C]) Snapshot() Snapshot[S] {
	snapshot := Snapshot[S]{
		Status:    p.status,
		Done:      p.status == Stopped || p.status == Exhausted,
		Found:     len(p.bookmarks) > 0,
		StepIndex: p.steps,
		Open:      make([]S, 0, p.open.Len()),
	}
	if rec, ok := p.registry.Get(p.current); ok {
		snapshot.Current = rec.state
		snapshot.HasCurrent = true
	}
	p.open.Each(func(rec *record[S, C]) {
		snapshot.Open = append(snapshot.Open, rec.state)
	})
	p.registry.Each(func(rec *record[S, C]) {
		if rec.initiated && rec.expanded {
			snapshot.Closed = append(snapshot.Closed, rec.state)
		}
	})
	if snapshot.Found {
		if path, err := p.pathTo(p.bookmarks[len(p.bookmarks)-1].Node); err == nil {
			snapshot.Path = internal.Reversed(path)
		}
	}
	return snapshot
}
