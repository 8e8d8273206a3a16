// Package bm25 provides a concrete scorer satisfying the engine's
// (docid, freq) -> score contract. The traversal algorithms in pkg/daat
// treat the scorer as opaque; this package is one implementation of it,
// alongside whatever quantized or learned scorers an embedder supplies.
package bm25

// Config holds the standard Robertson/Sparck-Jones BM25 knobs.
type Config struct {
	K1 float64 // term frequency saturation, default 1.2
	B  float64 // length normalization, default 0.75
}

// DefaultConfig returns the conventional BM25 tuning.
func DefaultConfig() Config {
	return Config{K1: 1.2, B: 0.75}
}

// CorpusStats is the aggregate the scorer needs: total documents and
// average document length, both computed once at index build time.
type CorpusStats struct {
	TotalDocs     uint32
	AverageLength float64
}

// TermStats is the per-term aggregate: document frequency. Per-document
// length for the length-normalization term comes from Scorer.DocLength.
type TermStats struct {
	DocFreq uint32
}

// IDF computes the Robertson-Sparck-Jones inverse document frequency.
// ln(1 + (N - df + 0.5) / (df + 0.5))
func IDF(totalDocs uint32, docFreq uint32) float64 {
	return idfRobertsonSparckJones(float64(totalDocs), int(docFreq))
}

// Scorer builds a (docid, freq) -> float32 scoring function for one term,
// closing over that term's IDF and the corpus/document-length statistics.
// The per-doc length lookup is supplied by the caller (the index owns the
// forward-length table; the scorer is a pure function of it).
type Scorer struct {
	cfg    Config
	idf    float64
	avgLen float64
	// DocLength returns the length of a document; required for the
	// normalization term. Nil means every document is assumed average
	// length (b is effectively disabled).
	DocLength func(docID uint32) uint32
}

// NewScorer builds a scorer for a single term against the given corpus
// statistics and term statistics.
func NewScorer(cfg Config, corpus CorpusStats, term TermStats, docLength func(uint32) uint32) *Scorer {
	return &Scorer{
		cfg:       cfg,
		idf:       IDF(corpus.TotalDocs, term.DocFreq),
		avgLen:    corpus.AverageLength,
		DocLength: docLength,
	}
}

// Score implements the engine's scorer signature: score(docid, freq) -> f32.
func (s *Scorer) Score(docID uint32, freq uint32) float32 {
	if freq == 0 {
		return 0
	}
	docLen := int(s.avgLen)
	if s.DocLength != nil {
		docLen = int(s.DocLength(docID))
	}
	ntf := normalizedTermFrequency(int(freq), docLen, s.avgLen, s.cfg.B)
	return float32(s.idf * saturate(ntf, s.cfg.K1))
}

// MaxPossibleScore returns a conservative upper bound on Score over every
// (docID, freq) the term could ever produce, given the maximum observed
// term frequency and the shortest document the term appears in. This is
// exactly the bound the wand-data enumerator needs for block/range maxima:
// BM25 is monotone increasing in tf and decreasing in document length, so
// pairing the largest tf with the shortest length yields the tightest
// sound bound.
func (s *Scorer) MaxPossibleScore(maxTF uint32, minDocLen uint32) float32 {
	if maxTF == 0 {
		return 0
	}
	ntf := normalizedTermFrequency(int(maxTF), int(minDocLen), s.avgLen, s.cfg.B)
	return float32(s.idf * saturate(ntf, s.cfg.K1))
}
