package wastar

// openList is an addressable d-ary min-heap of records keyed by (f, seq).
// Each record stores its own position so Remove and Fix are O(d log_d n).
// Records with equal f leave in insertion order.
type openList[S comparable, C Cost] struct {
	items   []*record[S, C]
	fanOut  int
	nextSeq uint64
}

func newOpenList[S comparable, C Cost](fanOut int) *openList[S, C] {
	if fanOut < 2 {
		fanOut = 2
	}
	return &openList[S, C]{fanOut: fanOut}
}

func (q *openList[S, C]) Len() int    { return len(q.items) }
func (q *openList[S, C]) Empty() bool { return len(q.items) == 0 }

func (q *openList[S, C]) Contains(rec *record[S, C]) bool {
	i := rec.heapIndex
	return i >= 0 && i < len(q.items) && q.items[i] == rec
}

func (q *openList[S, C]) less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (q *openList[S, C]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex = i
	q.items[j].heapIndex = j
}

// Push inserts rec. A record that is already queued is re-positioned
// instead of being inserted twice.
func (q *openList[S, C]) Push(rec *record[S, C]) {
	if q.Contains(rec) {
		q.Fix(rec)
		return
	}
	rec.seq = q.nextSeq
	q.nextSeq++
	rec.heapIndex = len(q.items)
	q.items = append(q.items, rec)
	q.up(rec.heapIndex)
}

// PopMin removes and returns the record with the smallest key.
func (q *openList[S, C]) PopMin() (*record[S, C], error) {
	if len(q.items) == 0 {
		return nil, ErrEmptyOpenList
	}
	return q.removeAt(0), nil
}

// Remove takes rec out of the list. It reports false if rec was not queued.
func (q *openList[S, C]) Remove(rec *record[S, C]) bool {
	if !q.Contains(rec) {
		return false
	}
	q.removeAt(rec.heapIndex)
	return true
}

// Fix restores heap order after rec's key changed.
func (q *openList[S, C]) Fix(rec *record[S, C]) {
	if !q.Contains(rec) {
		return
	}
	if !q.down(rec.heapIndex) {
		q.up(rec.heapIndex)
	}
}

// Clear empties the list and marks every record as not queued.
func (q *openList[S, C]) Clear() {
	for _, rec := range q.items {
		rec.heapIndex = -1
	}
	q.items = q.items[:0]
}

// Each visits the queued records in heap order (not sorted).
func (q *openList[S, C]) Each(fn func(rec *record[S, C])) {
	for _, rec := range q.items {
		fn(rec)
	}
}

func (q *openList[S, C]) removeAt(i int) *record[S, C] {
	n := len(q.items) - 1
	if i != n {
		q.swap(i, n)
	}
	rec := q.items[n]
	q.items[n] = nil
	q.items = q.items[:n]
	rec.heapIndex = -1
	if i < n {
		if !q.down(i) {
			q.up(i)
		}
	}
	return rec
}

func (q *openList[S, C]) up(j int) {
	for j > 0 {
		parent := (j - 1) / q.fanOut
		if !q.less(j, parent) {
			break
		}
		q.swap(parent, j)
		j = parent
	}
}

// down sifts the element at i0 towards the leaves and reports whether it
// moved.
func (q *openList[S, C]) down(i0 int) bool {
	i := i0
	n := len(q.items)
	for {
		first := i*q.fanOut + 1
		if first >= n || first < 0 {
			break
		}
		smallest := first
		last := first + q.fanOut
		if last > n {
			last = n
		}
		for c := first + 1; c < last; c++ {
			if q.less(c, smallest) {
				smallest = c
			}
		}
		if !q.less(smallest, i) {
			break
		}
		q.swap(i, smallest)
		i = smallest
	}
	return i > i0
}
