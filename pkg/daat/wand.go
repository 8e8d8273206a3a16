package daat

import "sort"

// WAND runs the Weak-AND pivot-based DAAT traversal over cursors,
// restricted to docids below maxDocID, inserting candidates into topk.
//
// Each iteration re-sorts the cursor set by current docid and walks it
// accumulating max-score until the running sum clears topk's threshold;
// that cursor is the pivot. If every cursor at the pivot's docid is also
// at the front of the array, the pivot docid is fully scored and every
// tied cursor advances; otherwise the last cursor before the pivot's tie
// group (found by scanning back from the pivot while docids still equal
// pivotID) skips forward to the pivot docid, and the loop
// repeats. Re-sorting every iteration trades the textbook bubble-into-place
// step for a simpler, still-correct O(n log n) resort, matching how this
// pack's own WAND prototype (pkg/qgram's pruned-candidate pass) re-sorted
// its iterator slice on every step.
func WAND[C MaxScored](cursors []C, maxDocID DocID, topk *TopK) {
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

		if pivotID == ordered[0].DocID() {
			var score float32
			i := 0
			for i < len(ordered) && ordered[i].DocID() == pivotID {
				score += ordered[i].Score()
				i++
			}
			for j := 0; j < i; j++ {
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
