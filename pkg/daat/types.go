// Package daat implements the core of an anytime top-k ranked retrieval
// engine over a disjunctive inverted index: cursors with per-list,
// per-block, and per-range score upper bounds; a threshold-pruning top-k
// queue; and the WAND, Block-Max WAND, and MaxScore dynamic-pruning
// traversals, each with ordered-range, boundsum, and boundsum-timeout
// early-termination variants over externally supplied document clusters.
//
// The posting list codec, the on-disk index format, the scorer function,
// and the wand-data builder are treated as external collaborators; this
// package only consumes the cursor, scorer, and wand-data contracts they
// must satisfy.
package daat

// DocID identifies a document within a corpus of fixed size N. Valid
// document ids lie in [0, N); N itself is used by cursors as the
// exhausted sentinel.
type DocID = uint32

// TermID identifies one posting list within a query.
type TermID = uint32

// ClusterID identifies a contiguous docid partition in a ClusterMap.
type ClusterID = uint32

// Posting is one (docid, term-frequency) pair from a posting list,
// produced in strictly increasing docid order.
type Posting struct {
	DocID DocID
	Freq  uint32
}

// Query is an identifier plus an ordered sequence of term ids. Duplicate
// term ids collapse to one TermWeight with QueryWeight equal to their
// frequency in the query.
type Query struct {
	ID    string
	Terms []TermWeight
}

// TermWeight is one distinct query term together with how many times it
// occurred in the original query (its weight in the disjunctive sum).
type TermWeight struct {
	Term        TermID
	QueryWeight float32
}

// NewQuery collapses a raw sequence of term ids into distinct terms with
// QueryWeight set to the term's frequency in termIDs.
func NewQuery(id string, termIDs []TermID) Query {
	counts := make(map[TermID]float32, len(termIDs))
	order := make([]TermID, 0, len(termIDs))
	for _, t := range termIDs {
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}
	terms := make([]TermWeight, 0, len(order))
	for _, t := range order {
		terms = append(terms, TermWeight{Term: t, QueryWeight: counts[t]})
	}
	return Query{ID: id, Terms: terms}
}
