// Package wastar provides a generic weighted A* planner for lazily expanded
// graphs with warm-start re-planning.
//
// A Descriptor supplies the seed states, heuristic, successors and two
// predicates: StopSearch ends a run, StorePath records a result and keeps
// searching. Every popped state that satisfies either predicate becomes a
// Bookmark, from which paths and costs are read back.
//
// It exposes two main entry points:
//
//   - Search: plan once and get the path to the state that stopped the search.
//   - Planner: Init, Run (or Step one expansion at a time), read the results,
//     then Reset to plan again over the states and successor edges already
//     discovered.
//
// The planner keeps one record per distinct state for its lifetime. Reset
// only clears the per-run flags, so a changed environment is re-evaluated
// for accessibility while cached successor edges are reused.
//
// With Epsilon = 1 and a consistent heuristic the first bookmark is optimal;
// larger values return paths at most Epsilon times the optimal cost.
package wastar
