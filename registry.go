package wastar

// registry deduplicates domain states into canonical records. A state maps
// to the same record, and the same NodeID, for the registry's lifetime.
type registry[S comparable, C Cost] struct {
	index   map[S]NodeID
	records []*record[S, C]
}

// newRegistry returns an empty registry.
func newRegistry[S comparable, C Cost]() *registry[S, C] {
	return &registry[S, C]{index: make(map[S]NodeID)}
}

// Resolve returns the record for state, creating an uninitiated one on the
// first call.
func (r *registry[S, C]) Resolve(state S) *record[S, C] {
	if id, ok := r.index[state]; ok {
		return r.records[id]
	}
	rec := &record[S, C]{
		id:        NodeID(len(r.records)),
		state:     state,
		parent:    NoNode,
		heapIndex: -1,
	}
	r.index[state] = rec.id
	r.records = append(r.records, rec)
	return rec
}

// Lookup returns the record for state without creating it.
func (r *registry[S, C]) Lookup(state S) (*record[S, C], bool) {
	id, ok := r.index[state]
	if !ok {
		return nil, false
	}
	return r.records[id], true
}

// Get returns the record with the given id.
func (r *registry[S, C]) Get(id NodeID) (*record[S, C], bool) {
	if id < 0 || int(id) >= len(r.records) {
		return nil, false
	}
	return r.records[id], true
}

// Len is the number of distinct states seen.
func (r *registry[S, C]) Len() int { return len(r.records) }

// Each visits every record in id order.
func (r *registry[S, C]) Each(fn func(rec *record[S, C])) {
	for _, rec := range r.records {
		fn(rec)
	}
}

// Clear forgets every record. Ids are reassigned from zero afterwards.
func (r *registry[S, C]) Clear() {
	clear(r.index)
	r.records = nil
}
