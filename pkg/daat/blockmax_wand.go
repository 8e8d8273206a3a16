package daat

import "sort"

// BlockMaxWAND runs Block-Max WAND: the same pivot selection as WAND, but
// the candidate docid is first checked against the sum of per-block
// bounds (tighter than the per-list bounds WAND uses) before any scoring
// happens, and scoring itself can abandon early once the still-unscored
// block bound can no longer clear the threshold. As in WAND, when the
// pivot isn't aligned with the front of the sorted cursor set, it is the
// last cursor before the pivot's tie group that advances, not the pivot
// cursor itself (which already sits at pivotID).
func BlockMaxWAND[C BlockMaxScored](cursors []C, maxDocID DocID, topk *TopK) {
	ordered := append([]C(nil), cursors...)
	if len(ordered) == 0 {
		return
	}

	for {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].DocID() < ordered[j].DocID() })

		if ordered[0].DocID() >= maxDocID {
			return
		}

		pivot := -1
		var sum float32
		for i, cur := range ordered {
			if cur.DocID() >= maxDocID {
				break
			}
			sum += cur.MaxScore()
			if topk.WouldEnter(sum) {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			return
		}

		pivotID := ordered[pivot].DocID()
		for pivot+1 < len(ordered) && ordered[pivot+1].DocID() == pivotID {
			pivot++
		}

		for i := 0; i <= pivot; i++ {
			ordered[i].BlockMaxNextGEQ(pivotID)
		}
		var blockUpperBound float32
		for i := 0; i <= pivot; i++ {
			blockUpperBound += ordered[i].BlockMaxScore()
		}

		if !topk.WouldEnter(blockUpperBound) {
			nextList := 0
			for i := 1; i <= pivot; i++ {
				if ordered[i].MaxScore() >= ordered[nextList].MaxScore() {
					nextList = i
				}
			}
			next := ordered[0].BlockMaxDocID() + 1
			for i := 1; i <= pivot; i++ {
				if bd := ordered[i].BlockMaxDocID() + 1; bd < next {
					next = bd
				}
			}
			if pivot+1 < len(ordered) {
				if d := ordered[pivot+1].DocID(); d < next {
					next = d
				}
			}
			if next > pivotID+1 {
				next = pivotID + 1
			}
			ordered[nextList].NextGEQ(next)
			continue
		}

		if pivotID == ordered[0].DocID() {
			last := 0
			for last < len(ordered) && ordered[last].DocID() == pivotID {
				last++
			}

			var score float32
			remaining := blockUpperBound
			for i := 0; i < last; i++ {
				part := ordered[i].Score()
				remaining -= ordered[i].BlockMaxScore() - part
				score += part
				if !topk.WouldEnter(remaining) {
					// The partial score so far is still a valid lower
					// bound; the rest of the tie group cannot change
					// whether this docid makes the cut, so scoring
					// stops, but every tied cursor still advances below.
					break
				}
			}
			for j := 0; j < last; j++ {
				ordered[j].Next()
			}
			topk.Insert(score, pivotID)
		} else {
			next := pivot
			for ordered[next].DocID() == pivotID {
				next--
			}
			ordered[next].NextGEQ(pivotID)
		}
	}
}
