package daat

import (
	"container/heap"
	"sort"
)

// Entry is one top-k result: a score and the document it belongs to.
type Entry struct {
	Score float32
	DocID DocID
}

// entryHeap is a container/heap min-heap over Entry.Score, the standard
// Go idiom for a bounded top-k: the smallest score sits at the root so a
// new candidate only has to beat heap[0] to be worth inserting.
type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK is a bounded min-heap keyed by score, capacity k, with a monotone
// pruning threshold. It is created fresh per query and owned exclusively
// by the traversal that runs against it.
type TopK struct {
	k         int
	heap      entryHeap
	threshold float32
	finalized bool
}

// NewTopK creates a queue with capacity k.
func NewTopK(k int) *TopK {
	return &TopK{k: k, heap: make(entryHeap, 0, k)}
}

// SetThreshold seeds the effective pruning threshold, e.g. from an
// externally supplied thresholds file. It never lowers an
// already-higher threshold.
func (q *TopK) SetThreshold(t float32) {
	if t > q.threshold {
		q.threshold = t
	}
}

// currentMin is the set threshold, or the heap minimum once the heap is
// full and that minimum is higher. WouldEnter only compares against it
// once the heap is full. It is monotone non-decreasing for the life of
// the query.
func (q *TopK) currentMin() float32 {
	if len(q.heap) < q.k {
		return q.threshold
	}
	if q.heap[0].Score > q.threshold {
		return q.heap[0].Score
	}
	return q.threshold
}

// CurrentMin exposes currentMin for traversal pruning decisions.
func (q *TopK) CurrentMin() float32 {
	return q.currentMin()
}

// WouldEnter reports whether a candidate of score s could possibly enter
// the queue: true iff the heap isn't yet full, or s exceeds currentMin.
func (q *TopK) WouldEnter(s float32) bool {
	if len(q.heap) < q.k {
		return true
	}
	return s > q.currentMin()
}

// Insert pushes (s, d) if WouldEnter(s), evicting the current minimum
// when the heap is already full. It returns true iff the effective
// threshold increased, the signal traversals use to know their pruning
// structures (essential/lookup split, block bounds) need recomputing.
func (q *TopK) Insert(s float32, d DocID) bool {
	if q.k == 0 || !q.WouldEnter(s) {
		return false
	}
	before := q.currentMin()
	if len(q.heap) < q.k {
		heap.Push(&q.heap, Entry{Score: s, DocID: d})
	} else {
		q.heap[0] = Entry{Score: s, DocID: d}
		heap.Fix(&q.heap, 0)
	}
	return q.currentMin() > before
}

// Topk returns the current contents sorted descending by score, ties
// broken by ascending docid for a deterministic sequence.
func (q *TopK) Topk() []Entry {
	out := make([]Entry, len(q.heap))
	copy(out, q.heap)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].DocID < out[j].DocID
	})
	return out
}

// Finalize sorts the queue descending by score; further mutation after
// Finalize is undefined.
func (q *TopK) Finalize() []Entry {
	sorted := q.Topk()
	q.heap = entryHeap(sorted)
	q.finalized = true
	return sorted
}

// Clear empties the queue and resets its threshold, for reuse across
// queries (the queue itself has no per-query state the caller can't
// reset this way, though callers normally just allocate a fresh one).
func (q *TopK) Clear() {
	q.heap = q.heap[:0]
	q.threshold = 0
	q.finalized = false
}

// Len reports how many entries are currently queued.
func (q *TopK) Len() int {
	return len(q.heap)
}
