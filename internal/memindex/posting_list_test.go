package memindex

import "testing"

func TestSlicePostingsIntersectAndUnion(t *testing.T) {
	a := NewSlicePostings([]uint32{1, 2, 5, 8})
	b := NewSlicePostings([]uint32{2, 5, 9})

	and := a.And(b)
	if and.Len() != 2 {
		t.Fatalf("expected intersection size 2, got %d", and.Len())
	}
	if !and.Contains(2) || !and.Contains(5) {
		t.Fatalf("expected intersection to contain 2 and 5")
	}

	or := a.Or(b)
	if or.Len() != 5 {
		t.Fatalf("expected union size 5, got %d", or.Len())
	}
}

func TestSlicePostingsContainsAndAdd(t *testing.T) {
	s := NewSlicePostings([]uint32{1, 3, 5})
	if !s.Contains(3) || s.Contains(4) {
		t.Fatal("unexpected Contains result")
	}
	s.Add(4)
	if !s.Contains(4) {
		t.Fatal("expected 4 to be present after Add")
	}
	if s.Len() != 4 {
		t.Fatalf("expected length 4 after add, got %d", s.Len())
	}
}

func TestSlicePostingsDeduplicatesOnConstruction(t *testing.T) {
	s := NewSlicePostings([]uint32{3, 1, 3, 2, 1})
	if s.Len() != 3 {
		t.Fatalf("expected 3 distinct docs, got %d", s.Len())
	}
}

func TestSlicePostingsIterYieldsSortedOrder(t *testing.T) {
	s := NewSlicePostings([]uint32{5, 1, 3})
	it := s.Iter()
	var got []uint32
	got = append(got, it.DocID())
	for it.Next() {
		got = append(got, it.DocID())
	}
	want := []uint32{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBitmapPostingsMirrorsSliceSemantics(t *testing.T) {
	bm := NewBitmapPostingsFromSlice([]uint32{10, 20, 30})
	if bm.Len() != 3 {
		t.Fatalf("expected length 3, got %d", bm.Len())
	}
	if !bm.Contains(20) || bm.Contains(25) {
		t.Fatal("unexpected Contains result")
	}
	bm.Add(25)
	if !bm.Contains(25) {
		t.Fatal("expected 25 to be present after Add")
	}
}

func TestSliceAndBitmapInteroperate(t *testing.T) {
	slice := NewSlicePostings([]uint32{1, 2, 3})
	bitmap := NewBitmapPostingsFromSlice([]uint32{2, 3, 4})

	and := slice.And(bitmap)
	if and.Len() != 2 {
		t.Fatalf("expected cross-representation intersection size 2, got %d", and.Len())
	}

	or := bitmap.Or(slice)
	if or.Len() != 4 {
		t.Fatalf("expected cross-representation union size 4, got %d", or.Len())
	}
}

func TestDocSetPromotesFromSliceToBitmap(t *testing.T) {
	set := NewDocSet(3)
	set.Add(1)
	set.Add(2)
	if set.Large != nil {
		t.Fatal("expected slice representation below threshold")
	}
	set.Add(3) // crosses threshold
	if set.Large == nil {
		t.Fatal("expected promotion to bitmap representation at threshold")
	}
	for _, d := range []uint32{1, 2, 3} {
		if !set.Contains(d) {
			t.Fatalf("expected doc %d to remain present after promotion", d)
		}
	}
}

func TestDocSetAddIsIdempotent(t *testing.T) {
	set := NewDocSet(10)
	set.Add(5)
	set.Add(5)
	if set.DF != 1 {
		t.Fatalf("expected adding the same doc twice to leave DF at 1, got %d", set.DF)
	}
}

func TestDocSetIntersectWith(t *testing.T) {
	a := NewDocSet(10)
	a.Add(1)
	a.Add(2)
	a.Add(3)
	b := NewDocSet(10)
	b.Add(2)
	b.Add(3)
	b.Add(4)

	result := a.IntersectWith(b)
	if result.Len() != 2 {
		t.Fatalf("expected intersection size 2, got %d", result.Len())
	}
	if !result.Contains(2) || !result.Contains(3) {
		t.Fatal("expected intersection to contain docs 2 and 3")
	}
}

func TestDocSetToPostingListAcrossThreshold(t *testing.T) {
	below := NewDocSet(100)
	below.Add(1)
	if _, ok := below.ToPostingList().(*SlicePostings); !ok {
		t.Fatal("expected a SlicePostings below the threshold")
	}

	above := NewDocSet(1)
	above.Add(1)
	above.Add(2)
	if _, ok := above.ToPostingList().(*BitmapPostings); !ok {
		t.Fatal("expected a BitmapPostings at/above the threshold")
	}
}
