package daat

import "sort"

// MaxScore runs the essential/non-essential DAAT traversal: cursors are
// sorted once by their (current) max score descending, and a split point
// firstLookup divides them into an essential prefix that drives
// candidate docids and a lookup suffix that is only consulted when a
// candidate's partial score could still plausibly benefit from it.
//
// Bounds are computed once from the cursors' MaxScore() at call time;
// callers that restrict this to one cluster must call
// UpdateRangeMaxScore on every cursor first so the bounds MaxScore
// reads back are already range-narrowed, and must call MaxScore fresh
// per cluster rather than reusing bounds computed for a previous one.
func MaxScore[C MaxScored](cursors []C, maxDocID DocID, topk *TopK) {
	n := len(cursors)
	if n == 0 {
		return
	}
	sorted := append([]C(nil), cursors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxScore() > sorted[j].MaxScore() })

	// upperBound[i] = sum of MaxScore(j) for j >= i: the total a
	// candidate could gain from cursor i and every weaker cursor after
	// it.
	upperBound := make([]float32, n+1)
	for i := n - 1; i >= 0; i-- {
		upperBound[i] = upperBound[i+1] + sorted[i].MaxScore()
	}

	firstLookup := n
	shrink := func() {
		for firstLookup > 0 && !topk.WouldEnter(upperBound[firstLookup-1]) {
			firstLookup--
		}
	}
	shrink()

	for {
		if firstLookup == 0 {
			return
		}

		currentDocID := maxDocID
		for i := 0; i < firstLookup; i++ {
			if d := sorted[i].DocID(); d < currentDocID {
				currentDocID = d
			}
		}
		if currentDocID >= maxDocID {
			return
		}

		var score float32
		for i := 0; i < firstLookup; i++ {
			if sorted[i].DocID() == currentDocID {
				score += sorted[i].Score()
				sorted[i].Next()
			}
		}

		for i := firstLookup; i < n; i++ {
			if !topk.WouldEnter(score + upperBound[i]) {
				// upperBound is non-increasing in i, so every remaining
				// lookup cursor fails the same test.
				break
			}
			sorted[i].NextGEQ(currentDocID)
			if sorted[i].DocID() == currentDocID {
				score += sorted[i].Score()
			}
		}

		if topk.Insert(score, currentDocID) {
			shrink()
		}
	}
}
