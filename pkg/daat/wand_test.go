package daat

import "testing"

func TestWANDTwoTermDisjunction(t *testing.T) {
	const n DocID = 10
	t1 := newMaxScored([]Posting{{DocID: 0, Freq: 1}, {DocID: 2, Freq: 1}, {DocID: 5, Freq: 1}, {DocID: 8, Freq: 1}}, n, 1, 1.0)
	t2 := newMaxScored([]Posting{{DocID: 2, Freq: 1}, {DocID: 3, Freq: 1}, {DocID: 7, Freq: 1}, {DocID: 8, Freq: 1}}, n, 1, 1.0)

	topk := NewTopK(3)
	WAND([]MaxScored{t1, t2}, n, topk)

	got := topk.Finalize()
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(got), got)
	}
	if got[0].Score != 2.0 || got[0].DocID != 2 {
		t.Fatalf("expected rank 0 = {2.0, 2}, got %+v", got[0])
	}
	if got[1].Score != 2.0 || got[1].DocID != 8 {
		t.Fatalf("expected rank 1 = {2.0, 8}, got %+v", got[1])
	}
	if got[2].Score != 1.0 {
		t.Fatalf("expected rank 2 score 1.0, got %+v", got[2])
	}
	switch got[2].DocID {
	case 0, 3, 5, 7:
	default:
		t.Fatalf("expected rank 2 docid in {0,3,5,7}, got %d", got[2].DocID)
	}
}

// Three lists all hit docid 7; after scoring, every one of them must
// have advanced past 7.
func TestWANDTiesOnPivotAdvanceAllTiedCursors(t *testing.T) {
	const n DocID = 20
	a := newMaxScored([]Posting{{DocID: 7, Freq: 1}, {DocID: 15, Freq: 1}}, n, 1, 1.0)
	b := newMaxScored([]Posting{{DocID: 7, Freq: 1}, {DocID: 15, Freq: 1}}, n, 1, 1.0)
	c := newMaxScored([]Posting{{DocID: 7, Freq: 1}, {DocID: 15, Freq: 1}}, n, 1, 1.0)

	topk := NewTopK(5)
	WAND([]MaxScored{a, b, c}, n, topk)

	got := topk.Finalize()
	if len(got) != 2 {
		t.Fatalf("expected 2 results (docs 7 and 15), got %d: %+v", len(got), got)
	}
	if got[0].DocID != 7 || got[0].Score != 3.0 {
		t.Fatalf("expected {3.0, 7} at rank 0, got %+v", got[0])
	}
	if got[1].DocID != 15 || got[1].Score != 3.0 {
		t.Fatalf("expected {3.0, 15} at rank 1, got %+v", got[1])
	}
}

func TestWANDExhaustedCursorsProduceNoResults(t *testing.T) {
	const n DocID = 10
	a := newMaxScored(nil, n, 1, 1.0)
	topk := NewTopK(3)
	WAND([]MaxScored{a}, n, topk)
	if topk.Len() != 0 {
		t.Fatalf("expected no results from an empty posting list, got %d", topk.Len())
	}
}

// The lowest-docid cursor (t1, at docid 0) can never alone clear a
// threshold already raised by a prior high-scoring match, so the pivot
// search lands on t2/t3 at docid 5 while t1 is still parked at docid 0:
// pivotID != ordered[0].DocID(), forcing the non-aligned branch. Before
// the behind-the-pivot-cursor fix this called NextGEQ on a cursor already
// sitting at the pivot docid, a no-op that re-entered the same branch
// forever.
func TestWANDAdvancesNonPivotCursorWhenPivotMisaligned(t *testing.T) {
	const n DocID = 20
	t1 := newMaxScored([]Posting{{DocID: 0, Freq: 1}}, n, 1.0, 1.0)
	t2 := newMaxScored([]Posting{{DocID: 5, Freq: 1}}, n, 6.0, 1.0)
	t3 := newMaxScored([]Posting{{DocID: 5, Freq: 1}}, n, 6.0, 1.0)

	topk := NewTopK(1)
	topk.Insert(10.0, 99)

	WAND([]MaxScored{t1, t2, t3}, n, topk)

	got := topk.Finalize()
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 result, got %d: %+v", len(got), got)
	}
	if got[0].Score != 12.0 || got[0].DocID != 5 {
		t.Fatalf("expected {12.0, 5} to have displaced the seeded entry, got %+v", got[0])
	}
}

func TestWANDRespectsMaxDocID(t *testing.T) {
	const n DocID = 10
	a := newMaxScored([]Posting{{DocID: 8, Freq: 1}, {DocID: 9, Freq: 1}}, n, 1, 1.0)
	topk := NewTopK(3)
	WAND([]MaxScored{a}, 8, topk)
	if topk.Len() != 0 {
		t.Fatalf("expected docs >= maxDocID to be excluded, got %d results", topk.Len())
	}
}
