package wastar

// NodeID is the stable registry-assigned identifier of a state record.
type NodeID int

// NoNode marks the absence of a predecessor.
const NoNode NodeID = -1

type link[C Cost] struct {
	to   NodeID
	cost C
}

// record is the per-state bookkeeping owned by the Registry.
type record[S comparable, C Cost] struct {
	id    NodeID
	state S

	g          C
	f          float64
	expanded   bool
	accessible bool
	lineage    int
	initiated  bool
	parent     NodeID

	successors []link[C]
	cached     bool

	// open list position; -1 when not queued
	heapIndex int
	seq       uint64
}

// NodeInfo is a copy of the planner bookkeeping for one state.
type NodeInfo[C Cost] struct {
	ID         NodeID
	G          C
	F          float64
	Expanded   bool
	Accessible bool
	Lineage    int
	Initiated  bool
	Parent     NodeID
	Queued     bool
}

func (r *record[S, C]) info() NodeInfo[C] {
	return NodeInfo[C]{
		ID:         r.id,
		G:          r.g,
		F:          r.f,
		Expanded:   r.expanded,
		Accessible: r.accessible,
		Lineage:    r.lineage,
		Initiated:  r.initiated,
		Parent:     r.parent,
		Queued:     r.heapIndex >= 0,
	}
}
