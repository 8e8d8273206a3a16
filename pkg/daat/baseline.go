package daat

// RankedAnd is the conjunctive DAAT baseline: a docid only scores if
// every cursor is positioned on it. No pruning; used as a correctness
// reference. cmd/daatquery also runs the "and" and block_max_ranked_and
// strategy names through it, with the same BM25-scored cursors as
// ranked_and.
func RankedAnd(cursors []Scored, maxDocID DocID, topk *TopK) {
	n := len(cursors)
	if n == 0 {
		return
	}
	for {
		candidate := cursors[0].DocID()
		if candidate >= maxDocID {
			return
		}

		advanced := false
		for i := 1; i < n; i++ {
			cursors[i].NextGEQ(candidate)
			if d := cursors[i].DocID(); d != candidate {
				cursors[0].NextGEQ(d)
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		var score float32
		for _, c := range cursors {
			score += c.Score()
		}
		topk.Insert(score, candidate)

		for _, c := range cursors {
			c.Next()
		}
	}
}

// RankedOr is the disjunctive DAAT baseline: every cursor positioned on
// the smallest current docid contributes its score, unconditionally, no
// pruning. cmd/daatquery also runs the "or"/"or_freq" strategy names
// through it, with the same BM25-scored cursors as ranked_or.
func RankedOr(cursors []Scored, maxDocID DocID, topk *TopK) {
	n := len(cursors)
	if n == 0 {
		return
	}
	for {
		currentDocID := maxDocID
		for _, c := range cursors {
			if d := c.DocID(); d < currentDocID {
				currentDocID = d
			}
		}
		if currentDocID >= maxDocID {
			return
		}

		var score float32
		for i := 0; i < n; i++ {
			if cursors[i].DocID() == currentDocID {
				score += cursors[i].Score()
				cursors[i].Next()
			}
		}
		topk.Insert(score, currentDocID)
	}
}

// RankedOrTAAT is the term-at-a-time disjunctive baseline: it walks each
// cursor to exhaustion in turn, accumulating scores into docScores, then
// drains the accumulator into topk. It trades DAAT's streaming memory
// profile for simplicity, the way an unoptimized reference
// implementation would.
func RankedOrTAAT(cursors []Scored, maxDocID DocID, topk *TopK) {
	docScores := make(map[DocID]float32)
	for _, c := range cursors {
		for c.DocID() < maxDocID {
			docScores[c.DocID()] += c.Score()
			c.Next()
		}
	}
	for d, s := range docScores {
		topk.Insert(s, d)
	}
}

// RankedOrTAATLazy is RankedOrTAAT but only materializes the accumulator
// for docids the first (lead) cursor visited: later cursors, processed in
// ascending cursor index order, only add to existing entries, so a docid
// absent from the lead cursor is never scored. The accumulator map is
// pre-sized to a fixed 1024 entries.
func RankedOrTAATLazy(cursors []Scored, maxDocID DocID, topk *TopK) {
	if len(cursors) == 0 {
		return
	}
	docScores := make(map[DocID]float32, 1024)
	lead := cursors[0]
	for lead.DocID() < maxDocID {
		docScores[lead.DocID()] += lead.Score()
		lead.Next()
	}
	for _, c := range cursors[1:] {
		for c.DocID() < maxDocID {
			if _, ok := docScores[c.DocID()]; ok {
				docScores[c.DocID()] += c.Score()
			}
			c.Next()
		}
	}
	for d, s := range docScores {
		topk.Insert(s, d)
	}
}
