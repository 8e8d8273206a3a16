package memindex

// DocLengths is cold storage for per-document length, the one piece of
// forward-index metadata the query layer needs: bm25.Scorer consults it
// through DocLength to normalize term frequency. Keyed by docID for
// O(1) lookup during scoring, dense or sparse depending on how it was
// constructed.
type DocLengths struct {
	// Dense array indexed by docID.
	lengths []uint32

	// Sparse fallback when docIDs are not dense.
	sparse map[uint32]uint32

	isSparse bool
}

// NewDocLengths creates a sparse length store, suitable while a corpus
// is still being assembled and its docID range isn't known yet.
func NewDocLengths() *DocLengths {
	return &DocLengths{
		sparse:   make(map[uint32]uint32),
		isSparse: true,
	}
}

// NewDenseDocLengths pre-allocates a dense length store sized for docIDs
// in [0, maxDocID].
func NewDenseDocLengths(maxDocID uint32) *DocLengths {
	return &DocLengths{
		lengths:  make([]uint32, maxDocID+1),
		isSparse: false,
	}
}

// Set records docID's length.
func (s *DocLengths) Set(docID uint32, length uint32) {
	if s.isSparse {
		s.sparse[docID] = length
		return
	}
	if int(docID) >= len(s.lengths) {
		grown := make([]uint32, docID+1)
		copy(grown, s.lengths)
		s.lengths = grown
	}
	s.lengths[docID] = length
}

// Get returns docID's length and whether it was ever recorded.
func (s *DocLengths) Get(docID uint32) (uint32, bool) {
	if s.isSparse {
		l, ok := s.sparse[docID]
		return l, ok
	}
	if int(docID) < len(s.lengths) {
		// Dense slots default to 0, which Len and AverageLength also
		// treat as "not recorded".
		l := s.lengths[docID]
		return l, l != 0
	}
	return 0, false
}

// Lookup adapts Get to bm25.Scorer's DocLength callback shape, returning
// 0 for an unknown docID rather than signaling absence.
func (s *DocLengths) Lookup(docID uint32) uint32 {
	l, _ := s.Get(docID)
	return l
}

// Len returns the number of documents with a recorded length.
func (s *DocLengths) Len() int {
	if s.isSparse {
		return len(s.sparse)
	}
	count := 0
	for _, l := range s.lengths {
		if l != 0 {
			count++
		}
	}
	return count
}

// Densify converts from sparse to dense storage once the corpus's
// docID range is known; a no-op if already dense.
func (s *DocLengths) Densify(maxDocID uint32) {
	if !s.isSparse {
		return
	}
	dense := make([]uint32, maxDocID+1)
	for docID, l := range s.sparse {
		if int(docID) < len(dense) {
			dense[docID] = l
		}
	}
	s.lengths = dense
	s.sparse = nil
	s.isSparse = false
}

// AverageLength returns the mean length across every recorded document,
// the corpus statistic bm25.CorpusStats.AverageLength needs.
func (s *DocLengths) AverageLength() float64 {
	var sum uint64
	var n int
	if s.isSparse {
		for _, l := range s.sparse {
			sum += uint64(l)
			n++
		}
	} else {
		for _, l := range s.lengths {
			if l != 0 {
				sum += uint64(l)
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// TermFrequencies is cold storage for the raw (docID -> frequency)
// postings of a single term while the index is being built, before
// they're sorted and finalized into daat.Posting slices.
type TermFrequencies struct {
	freqs map[uint32]uint32
	docs  *DocSet
}

// NewTermFrequencies creates an empty frequency accumulator for one term.
func NewTermFrequencies() *TermFrequencies {
	return &TermFrequencies{freqs: make(map[uint32]uint32), docs: NewDocSet(DefaultBitmapThreshold)}
}

// Add increments docID's frequency for this term by one occurrence.
func (t *TermFrequencies) Add(docID uint32) {
	if _, ok := t.freqs[docID]; !ok {
		t.docs.Add(docID)
	}
	t.freqs[docID]++
}

// Set overwrites docID's frequency for this term.
func (t *TermFrequencies) Set(docID uint32, freq uint32) {
	if _, ok := t.freqs[docID]; !ok {
		t.docs.Add(docID)
	}
	t.freqs[docID] = freq
}

// Docs returns the thresholded slice-or-bitmap set of documents this term
// occurs in, maintained alongside freqs for O(1)/SIMD membership tests
// that don't need the frequency value itself.
func (t *TermFrequencies) Docs() *DocSet {
	return t.docs
}

// Get returns docID's frequency for this term and whether it occurs at all.
func (t *TermFrequencies) Get(docID uint32) (uint32, bool) {
	f, ok := t.freqs[docID]
	return f, ok
}

// DocFreq returns the number of distinct documents this term occurs in.
func (t *TermFrequencies) DocFreq() uint32 {
	return uint32(len(t.freqs))
}

// MaxFreq returns the largest per-document frequency recorded for this
// term, the tf a wand-data builder needs to compute a sound per-term
// score upper bound.
func (t *TermFrequencies) MaxFreq() uint32 {
	var max uint32
	for _, f := range t.freqs {
		if f > max {
			max = f
		}
	}
	return max
}

// TermFrequencyIndex maps term IDs to their frequency accumulators; it is
// the forward-to-inverted staging area a build walks once to emit every
// term's sorted posting list.
type TermFrequencyIndex struct {
	terms map[uint32]*TermFrequencies
}

// NewTermFrequencyIndex creates an empty index.
func NewTermFrequencyIndex() *TermFrequencyIndex {
	return &TermFrequencyIndex{terms: make(map[uint32]*TermFrequencies)}
}

// GetOrCreate returns the frequency accumulator for termID, creating one
// if this is the first occurrence seen.
func (idx *TermFrequencyIndex) GetOrCreate(termID uint32) *TermFrequencies {
	if tf, ok := idx.terms[termID]; ok {
		return tf
	}
	tf := NewTermFrequencies()
	idx.terms[termID] = tf
	return tf
}

// Get returns the frequency accumulator for termID, or nil if the term
// was never observed.
func (idx *TermFrequencyIndex) Get(termID uint32) *TermFrequencies {
	return idx.terms[termID]
}

// Terms returns every term ID with at least one recorded occurrence.
func (idx *TermFrequencyIndex) Terms() []uint32 {
	ids := make([]uint32, 0, len(idx.terms))
	for id := range idx.terms {
		ids = append(ids, id)
	}
	return ids
}

// TermCount returns the number of distinct terms indexed.
func (idx *TermFrequencyIndex) TermCount() int {
	return len(idx.terms)
}
