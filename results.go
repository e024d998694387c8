package wastar

import (
	"fmt"

	"github.com/pdrpinto/wastar/internal"
)

// Status returns the planner's run state.
func (p *Planner[S, C]) Status() Status { return p.status }

// Stats returns counters for the current run.
func (p *Planner[S, C]) Stats() Stats {
	stats := p.stats
	stats.Status = p.status
	stats.Bookmarks = len(p.bookmarks)
	stats.OpenSize = p.open.Len()
	stats.Registered = p.registry.Len()
	stats.Elapsed = p.elapsed()
	return stats
}

// Seeds returns the sources of the last Init. A lineage indexes this slice.
func (p *Planner[S, C]) Seeds() []S {
	return append([]S(nil), p.seeds...)
}

// Bookmarks returns the recorded bookmarks in recording order.
func (p *Planner[S, C]) Bookmarks() []Bookmark[S, C] {
	return append([]Bookmark[S, C](nil), p.bookmarks...)
}

// GoalStates returns the states of all bookmarks.
func (p *Planner[S, C]) GoalStates() []S {
	states := make([]S, 0, len(p.bookmarks))
	for _, bookmark := range p.bookmarks {
		states = append(states, bookmark.State)
	}
	return states
}

// GoalHandles returns the registry ids of all bookmarks.
func (p *Planner[S, C]) GoalHandles() []NodeID {
	handles := make([]NodeID, 0, len(p.bookmarks))
	for _, bookmark := range p.bookmarks {
		handles = append(handles, bookmark.Node)
	}
	return handles
}

// PathCosts returns the accumulated cost of each bookmark when it was recorded.
func (p *Planner[S, C]) PathCosts() []C {
	costs := make([]C, 0, len(p.bookmarks))
	for _, bookmark := range p.bookmarks {
		costs = append(costs, bookmark.Cost)
	}
	return costs
}

// Paths returns one path per bookmark, ordered from the bookmarked state back
// to its source.
func (p *Planner[S, C]) Paths() ([][]S, error) {
	paths := make([][]S, 0, len(p.bookmarks))
	for _, bookmark := range p.bookmarks {
		path, err := p.pathTo(bookmark.Node)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// PathsFromSource is Paths with every path reversed so it starts at the
// source.
func (p *Planner[S, C]) PathsFromSource() ([][]S, error) {
	paths, err := p.Paths()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		internal.Reverse(path)
	}
	return paths, nil
}

// NodeInfo returns the bookkeeping for state. It fails with ErrNodeNotFound
// if the registry never saw state.
func (p *Planner[S, C]) NodeInfo(state S) (NodeInfo[C], error) {
	rec, ok := p.registry.Lookup(state)
	if !ok {
		return NodeInfo[C]{}, fmt.Errorf("node info %v: %w", state, ErrNodeNotFound)
	}
	return rec.info(), nil
}

// Node returns the state and bookkeeping behind a handle.
func (p *Planner[S, C]) Node(id NodeID) (S, NodeInfo[C], error) {
	rec, ok := p.registry.Get(id)
	if !ok {
		var zero S
		return zero, NodeInfo[C]{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return rec.state, rec.info(), nil
}

// pathTo walks predecessor ids from id back to a source. The walk is
// bounded by the number of registered states.
func (p *Planner[S, C]) pathTo(id NodeID) ([]S, error) {
	limit := p.registry.Len()
	start := id
	var path []S
	for id != NoNode {
		rec, ok := p.registry.Get(id)
		if !ok {
			return nil, fmt.Errorf("path from %d: %w: %d", start, ErrUnknownNode, id)
		}
		if len(path) >= limit {
			return nil, fmt.Errorf("path from %d: %w", start, ErrBrokenPath)
		}
		path = append(path, rec.state)
		id = rec.parent
	}
	return path, nil
}
