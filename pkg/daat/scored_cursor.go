package daat

// ScoredCursor wraps a PostingCursor with an opaque scorer and a
// per-query term weight: Score() = QueryWeight * scorer(docid, freq).
type ScoredCursor struct {
	PostingCursor
	scorer Scorer
	weight float32
}

// NewScoredCursor binds a posting cursor to a scorer and query weight.
func NewScoredCursor(cursor PostingCursor, scorer Scorer, weight float32) *ScoredCursor {
	return &ScoredCursor{PostingCursor: cursor, scorer: scorer, weight: weight}
}

func (c *ScoredCursor) Score() float32 {
	return c.weight * c.scorer(c.DocID(), c.Freq())
}

func (c *ScoredCursor) QueryWeight() float32 {
	return c.weight
}

var _ Scored = (*ScoredCursor)(nil)
