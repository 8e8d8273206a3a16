package memindex

import (
	"sort"

	"github.com/kittclouds/daatkit/pkg/bm25"
	"github.com/kittclouds/daatkit/pkg/daat"
)

// Builder accumulates a corpus term-by-term and document-by-document,
// then finalizes it into the sorted postings, doc-length table, and
// wand-data every pkg/daat traversal reads.
type Builder struct {
	lengths *DocLengths
	terms   *TermFrequencyIndex
	corpus  uint32 // number of AddDocument calls
}

// NewBuilder creates an empty index builder.
func NewBuilder() *Builder {
	return &Builder{
		lengths: NewDocLengths(),
		terms:   NewTermFrequencyIndex(),
	}
}

// AddDocument records a document's token stream as (termID, frequency)
// pairs plus its total length, growing the corpus by one document.
func (b *Builder) AddDocument(docID uint32, length uint32, termFreqs map[uint32]uint32) {
	b.lengths.Set(docID, length)
	b.corpus++
	for termID, freq := range termFreqs {
		b.terms.GetOrCreate(termID).Set(docID, freq)
	}
}

// Index is the finalized, queryable corpus: per-term sorted postings,
// doc lengths, and a BM25 scorer factory, ready to be wrapped into
// pkg/daat cursors.
type Index struct {
	corpusSize uint32
	lengths    *DocLengths
	postings   map[daat.TermID][]daat.Posting
	docSets    map[daat.TermID]*DocSet
	docFreq    map[daat.TermID]uint32
	maxFreq    map[daat.TermID]uint32
	avgLength  float64
	bm25Config bm25.Config
}

// Build finalizes the accumulated postings into sorted slices and
// returns a queryable Index. maxDocID is the exclusive upper bound on
// docIDs (the corpus size, and the sentinel every daat cursor uses to
// signal exhaustion).
func (b *Builder) Build(maxDocID uint32, cfg bm25.Config) *Index {
	b.lengths.Densify(maxDocID)

	idx := &Index{
		corpusSize: maxDocID,
		lengths:    b.lengths,
		postings:   make(map[daat.TermID][]daat.Posting),
		docSets:    make(map[daat.TermID]*DocSet),
		docFreq:    make(map[daat.TermID]uint32),
		maxFreq:    make(map[daat.TermID]uint32),
		avgLength:  b.lengths.AverageLength(),
		bm25Config: cfg,
	}

	for _, termID := range b.terms.Terms() {
		tf := b.terms.Get(termID)
		docIDs := make([]uint32, 0, len(tf.freqs))
		for d := range tf.freqs {
			docIDs = append(docIDs, d)
		}
		sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

		postings := make([]daat.Posting, len(docIDs))
		for i, d := range docIDs {
			freq, _ := tf.Get(d)
			postings[i] = daat.Posting{DocID: daat.DocID(d), Freq: freq}
		}

		id := daat.TermID(termID)
		idx.postings[id] = postings
		idx.docSets[id] = tf.Docs()
		idx.docFreq[id] = tf.DocFreq()
		idx.maxFreq[id] = tf.MaxFreq()
	}

	return idx
}

// ContainsDoc reports whether termID occurs in docID, answered from the
// thresholded DocSet built alongside termID's postings rather than a
// binary search over the posting slice itself. (cmd/daatquery's
// query-time term validation uses HasTerm, not this.)
func (idx *Index) ContainsDoc(termID daat.TermID, docID uint32) bool {
	docs, ok := idx.docSets[termID]
	if !ok {
		return false
	}
	return docs.Contains(docID)
}

// HasTerm reports whether termID occurs anywhere in the corpus.
func (idx *Index) HasTerm(termID daat.TermID) bool {
	_, ok := idx.docSets[termID]
	return ok
}

// CorpusSize returns the exclusive docID upper bound / sentinel value.
func (idx *Index) CorpusSize() uint32 {
	return idx.corpusSize
}

// Scorer builds a BM25 scorer for termID, bound to this index's corpus
// statistics and doc-length table.
func (idx *Index) Scorer(termID daat.TermID) *bm25.Scorer {
	corpus := bm25.CorpusStats{TotalDocs: idx.corpusSize, AverageLength: idx.avgLength}
	term := bm25.TermStats{DocFreq: idx.docFreq[termID]}
	return bm25.NewScorer(idx.bm25Config, corpus, term, func(docID uint32) uint32 {
		return idx.lengths.Lookup(docID)
	})
}

// Postings returns termID's finalized sorted posting list, or nil if the
// term does not occur in the corpus.
func (idx *Index) Postings(termID daat.TermID) []daat.Posting {
	return idx.postings[termID]
}

// MinDocLength returns the shortest document length in the corpus: BM25
// is decreasing in doc length, so combined with MaxFreq it gives a sound
// upper bound on a term's score. BuildWandData does not call it; it uses
// the shortest length among each term's own postings instead.
func (idx *Index) MinDocLength() uint32 {
	min := ^uint32(0)
	found := false
	for d := uint32(0); d < idx.corpusSize; d++ {
		if l, ok := idx.lengths.Get(d); ok {
			found = true
			if l < min {
				min = l
			}
		}
	}
	if !found {
		return 0
	}
	return min
}

// MaxFreq returns the largest per-document frequency recorded for termID.
func (idx *Index) MaxFreq(termID daat.TermID) uint32 {
	return idx.maxFreq[termID]
}

// NewScoredCursor builds a ScoredCursor over termID's postings, scored
// with this index's BM25 scorer and weighted by queryWeight.
func (idx *Index) NewScoredCursor(termID daat.TermID, queryWeight float32) *daat.ScoredCursor {
	postings := idx.postings[termID]
	scorer := idx.Scorer(termID)
	cursor := daat.NewSlicePostingCursor(postings, daat.DocID(idx.corpusSize))
	return daat.NewScoredCursor(cursor, func(d daat.DocID, freq uint32) float32 {
		return scorer.Score(uint32(d), freq)
	}, queryWeight)
}
