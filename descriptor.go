package wastar

// Cost is the set of numeric types usable as path costs.
type Cost interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Edge is a successor state reachable with a non-negative transition cost.
type Edge[S comparable, C Cost] struct {
	To   S
	Cost C
}

// Descriptor describes the search graph. States must be comparable so the
// registry can deduplicate them.
type Descriptor[S comparable, C Cost] interface {
	// Seeds returns the source states. The index of a seed is its lineage.
	Seeds() []S
	Heuristic(state S) C
	// Accessible is evaluated once per state and planning generation.
	Accessible(state S) bool
	Successors(state S) []Edge[S, C]
	// StopSearch halts the run when it returns true for a popped state.
	StopSearch(state S) bool
	// StorePath records a popped state as a bookmark without halting.
	StorePath(state S) bool
}

// Initializer is implemented by descriptors that need a hook at the start of
// every Init.
type Initializer interface {
	Init()
}

// Funcs adapts plain functions to a Descriptor. Nil fields fall back to a
// zero heuristic, every state accessible, no successors and predicates that
// never fire.
type Funcs[S comparable, C Cost] struct {
	Sources        []S
	HeuristicFunc  func(S) C
	AccessibleFunc func(S) bool
	SuccessorsFunc func(S) []Edge[S, C]
	StopSearchFunc func(S) bool
	StorePathFunc  func(S) bool
	InitFunc       func()
}

// Seeds returns Sources.
func (f Funcs[S, C]) Seeds() []S { return f.Sources }

// Heuristic calls HeuristicFunc, or returns 0 when it is nil.
func (f Funcs[S, C]) Heuristic(state S) C {
	if f.HeuristicFunc == nil {
		return 0
	}
	return f.HeuristicFunc(state)
}

// Accessible calls AccessibleFunc, or returns true when it is nil.
func (f Funcs[S, C]) Accessible(state S) bool {
	if f.AccessibleFunc == nil {
		return true
	}
	return f.AccessibleFunc(state)
}

// Successors calls SuccessorsFunc, or returns no edges when it is nil.
func (f Funcs[S, C]) Successors(state S) []Edge[S, C] {
	if f.SuccessorsFunc == nil {
		return nil
	}
	return f.SuccessorsFunc(state)
}

// StopSearch reports whether StopSearchFunc is set and returns true.
func (f Funcs[S, C]) StopSearch(state S) bool {
	return f.StopSearchFunc != nil && f.StopSearchFunc(state)
}

// StorePath reports whether StorePathFunc is set and returns true.
func (f Funcs[S, C]) StorePath(state S) bool {
	return f.StorePathFunc != nil && f.StorePathFunc(state)
}

// Init calls InitFunc when it is set.
func (f Funcs[S, C]) Init() {
	if f.InitFunc != nil {
		f.InitFunc()
	}
}
