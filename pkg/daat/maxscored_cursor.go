package daat

// MaxScoredCursor wraps a ScoredCursor with the wand-data enumerator's
// per-term bounds: a list-max score and, on demand, a per-cluster range
// max. MaxScore() is always the *weighted* bound (QueryWeight already
// applied) regardless of whether it currently reflects the whole list or
// one range; UpdateRangeMaxScore and ResetListMaxScore are the only
// places that mutate it, and each applies QueryWeight exactly once.
type MaxScoredCursor struct {
	*ScoredCursor
	wand     *TermWandData
	maxScore float32
}

// NewMaxScoredCursor binds a scored cursor to its term's wand data. The
// bound starts at the whole-list maximum.
func NewMaxScoredCursor(cursor PostingCursor, scorer Scorer, weight float32, wand *TermWandData) *MaxScoredCursor {
	return &MaxScoredCursor{
		ScoredCursor: NewScoredCursor(cursor, scorer, weight),
		wand:         wand,
		maxScore:     weight * wand.ListMaxScore,
	}
}

func (c *MaxScoredCursor) MaxScore() float32 {
	return c.maxScore
}

// GlobalGEQ resets the posting cursor to the start of the list and
// advances it to the first posting with docid >= d. Anytime traversals
// call this when entering a cluster that may start earlier in docid
// space than the cursor's current position.
func (c *MaxScoredCursor) GlobalGEQ(d DocID) {
	c.Reset()
	c.NextGEQ(d)
}

// GetRangeMaxScore returns QueryWeight * the term's range-max for
// cluster, without mutating MaxScore. Returns 0 if the term has no
// posting in cluster (not the list max).
func (c *MaxScoredCursor) GetRangeMaxScore(cluster ClusterID) float32 {
	return c.weight * c.wand.RangeMaxScore(cluster)
}

// UpdateRangeMaxScore sets MaxScore to GetRangeMaxScore(cluster),
// tightening pruning to the active cluster.
func (c *MaxScoredCursor) UpdateRangeMaxScore(cluster ClusterID) {
	c.maxScore = c.GetRangeMaxScore(cluster)
}

// ResetListMaxScore restores MaxScore to the whole-list bound, undoing
// any earlier UpdateRangeMaxScore.
func (c *MaxScoredCursor) ResetListMaxScore() {
	c.maxScore = c.weight * c.wand.ListMaxScore
}

var _ MaxScored = (*MaxScoredCursor)(nil)
