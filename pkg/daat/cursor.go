package daat

import "sort"

// PostingCursor iterates the (docid, freq) pairs of one term's postings in
// strictly increasing docid order. Implementations may hold compressed
// blocks internally; callers only observe monotone behavior.
type PostingCursor interface {
	// DocID returns the current docid, or the cursor's sentinel (the
	// corpus size N) once exhausted.
	DocID() DocID
	// Freq returns the term frequency of the current posting.
	Freq() uint32
	// Next advances one posting.
	Next()
	// NextGEQ advances to the first posting with docid >= d. It is a
	// no-op if the cursor is already positioned at or past d.
	NextGEQ(d DocID)
	// Reset rewinds the cursor to its first posting. Anytime traversals
	// use this to restart a cursor inside a cluster that starts earlier
	// than the cursor's current position.
	Reset()
}

// SlicePostingCursor is a PostingCursor over an in-memory sorted slice of
// postings. It is the reference cursor implementation used by tests and
// by the in-memory index; real deployments would back PostingCursor with
// a decoded block-compressed stream instead.
type SlicePostingCursor struct {
	postings []Posting
	idx      int
	sentinel DocID
}

// NewSlicePostingCursor builds a cursor over postings (must be sorted
// ascending by DocID and contain no duplicates). sentinel is the corpus
// size N, returned by DocID once the cursor runs off the end.
func NewSlicePostingCursor(postings []Posting, sentinel DocID) *SlicePostingCursor {
	return &SlicePostingCursor{postings: postings, sentinel: sentinel}
}

func (c *SlicePostingCursor) DocID() DocID {
	if c.idx >= len(c.postings) {
		return c.sentinel
	}
	return c.postings[c.idx].DocID
}

func (c *SlicePostingCursor) Freq() uint32 {
	if c.idx >= len(c.postings) {
		return 0
	}
	return c.postings[c.idx].Freq
}

func (c *SlicePostingCursor) Next() {
	if c.idx < len(c.postings) {
		c.idx++
	}
}

// NextGEQ performs a binary search for the first posting whose docid is
// >= d, restricted to the unvisited suffix of the list so repeated calls
// with non-decreasing d stay monotone and never re-scan.
func (c *SlicePostingCursor) NextGEQ(d DocID) {
	if c.DocID() >= d {
		return
	}
	rest := c.postings[c.idx:]
	off := sort.Search(len(rest), func(i int) bool { return rest[i].DocID >= d })
	c.idx += off
}

// Reset rewinds the cursor to its first posting; used by GlobalGEQ on the
// wrapping max-scored cursor when a traversal restarts inside a new,
// possibly earlier, cluster.
func (c *SlicePostingCursor) Reset() {
	c.idx = 0
}
