package daat

// The traversal algorithms are parametric in the cursor's capability set
// rather than in one concrete type: WAND needs Scored plus max-score
// bounds, BMW additionally needs per-block bounds, MaxScore needs only
// the scored+max interface. Range-restricted (anytime) variants further
// require the GlobalGEQ/update-range-max-score hooks. Each interface
// below is additive over the last.

// Scored is a cursor that can also report its current score: the query
// weight times the opaque scorer's (docid, freq) evaluation.
type Scored interface {
	PostingCursor
	Score() float32
	QueryWeight() float32
}

// MaxScored is a Scored cursor that also exposes a currently-active upper
// bound on Score, and the hooks anytime traversals use to tighten that
// bound to one cluster.
type MaxScored interface {
	Scored
	// MaxScore is the currently-active upper bound: initially
	// QueryWeight * list-max-score, and lowered by UpdateRangeMaxScore
	// when a traversal restricts itself to one cluster.
	MaxScore() float32
	// GlobalGEQ resets block/range pointers to the start of the list and
	// then advances to the first block containing docid d. It is the
	// hook that lets a traversal restart a cursor inside a new cluster,
	// including one that starts earlier than the cursor's current
	// position.
	GlobalGEQ(d DocID)
	// UpdateRangeMaxScore overwrites MaxScore with
	// QueryWeight * range-max-score-for(cluster).
	UpdateRangeMaxScore(cluster ClusterID)
	// GetRangeMaxScore returns QueryWeight * range-max-score-for(cluster)
	// without mutating MaxScore; 0 if the term has no posting in cluster.
	GetRangeMaxScore(cluster ClusterID) float32
}

// BlockMaxScored is a MaxScored cursor that additionally exposes the
// per-block score upper bound Block-Max WAND prunes with.
type BlockMaxScored interface {
	MaxScored
	// BlockMaxDocID is the last docid of the current block.
	BlockMaxDocID() DocID
	// BlockMaxScore is the score upper bound for the current block.
	BlockMaxScore() float32
	// BlockMaxNextGEQ advances the block pointer (not the posting
	// pointer) to the first block whose BlockMaxDocID >= d.
	BlockMaxNextGEQ(d DocID)
}
