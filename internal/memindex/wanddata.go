package memindex

import "github.com/kittclouds/daatkit/pkg/daat"

// WandDataConfig controls how Builder derives block boundaries when it
// enumerates wand data: posting lists are cut into fixed-size blocks of
// this many postings each.
type WandDataConfig struct {
	BlockSize int
}

// DefaultWandDataConfig matches the block size a PISA-style BM-25 index
// typically uses.
func DefaultWandDataConfig() WandDataConfig {
	return WandDataConfig{BlockSize: 64}
}

// BuildWandData enumerates termID's wand data: the list-max score, a
// sequence of fixed-size block maxima, and a per-cluster range maxima
// sequence, each a sound upper bound on the term's BM25 contribution
// over the corresponding docid subset.
//
// It exploits BM25's monotonicity (pkg/bm25.Scorer.MaxPossibleScore):
// within any docid subset, the tightest bound pairs the largest observed
// term frequency with the shortest document length in that subset, so
// building wand data is one pass over the term's postings tracking a
// running (maxTF, minLen) per block/cluster rather than actually
// evaluating the scorer on every candidate pair.
func (idx *Index) BuildWandData(termID daat.TermID, clusters *daat.ClusterMap, cfg WandDataConfig) *daat.TermWandData {
	postings := idx.postings[termID]
	scorer := idx.Scorer(termID)

	if len(postings) == 0 {
		return &daat.TermWandData{}
	}

	listMaxTF, listMinLen := uint32(0), ^uint32(0)
	for _, p := range postings {
		if p.Freq > listMaxTF {
			listMaxTF = p.Freq
		}
		if l := idx.lengths.Lookup(uint32(p.DocID)); l < listMinLen {
			listMinLen = l
		}
	}
	listMax := scorer.MaxPossibleScore(listMaxTF, listMinLen)

	blocks := make([]daat.BlockMax, 0, (len(postings)+cfg.BlockSize-1)/cfg.BlockSize)
	for start := 0; start < len(postings); start += cfg.BlockSize {
		end := start + cfg.BlockSize
		if end > len(postings) {
			end = len(postings)
		}
		maxTF, minLen := uint32(0), ^uint32(0)
		for _, p := range postings[start:end] {
			if p.Freq > maxTF {
				maxTF = p.Freq
			}
			if l := idx.lengths.Lookup(uint32(p.DocID)); l < minLen {
				minLen = l
			}
		}
		blocks = append(blocks, daat.BlockMax{
			LastDocID: postings[end-1].DocID,
			MaxScore:  scorer.MaxPossibleScore(maxTF, minLen),
		})
	}

	var ranges []daat.RangeMax
	if clusters != nil {
		type acc struct {
			maxTF  uint32
			minLen uint32
			seen   bool
		}
		byCluster := make(map[daat.ClusterID]*acc)
		for _, id := range clusters.All() {
			rng, _ := clusters.Lookup(id)
			a := &acc{minLen: ^uint32(0)}
			for _, p := range postingsInRange(postings, rng) {
				a.seen = true
				if p.Freq > a.maxTF {
					a.maxTF = p.Freq
				}
				if l := idx.lengths.Lookup(uint32(p.DocID)); l < a.minLen {
					a.minLen = l
				}
			}
			if a.seen {
				byCluster[id] = a
			}
		}
		for _, id := range clusters.All() {
			a, ok := byCluster[id]
			if !ok {
				continue
			}
			ranges = append(ranges, daat.RangeMax{
				Cluster:  id,
				MaxScore: scorer.MaxPossibleScore(a.maxTF, a.minLen),
			})
		}
	}

	return &daat.TermWandData{ListMaxScore: listMax, Blocks: blocks, Ranges: ranges}
}

// postingsInRange returns the subslice of postings (sorted ascending by
// DocID) whose docid falls within [rng.Start, rng.End).
func postingsInRange(postings []daat.Posting, rng daat.Range) []daat.Posting {
	lo := 0
	for lo < len(postings) && postings[lo].DocID < rng.Start {
		lo++
	}
	hi := lo
	for hi < len(postings) && postings[hi].DocID < rng.End {
		hi++
	}
	return postings[lo:hi]
}

// NewMaxScoredCursor builds a MaxScoredCursor over termID's postings,
// with wand data enumerated fresh against clusters (pass nil for no
// range maxima, e.g. when the strategy never needs one).
func (idx *Index) NewMaxScoredCursor(termID daat.TermID, queryWeight float32, clusters *daat.ClusterMap, cfg WandDataConfig) *daat.MaxScoredCursor {
	postings := idx.postings[termID]
	scorer := idx.Scorer(termID)
	wand := idx.BuildWandData(termID, clusters, cfg)
	cursor := daat.NewSlicePostingCursor(postings, daat.DocID(idx.corpusSize))
	return daat.NewMaxScoredCursor(cursor, func(d daat.DocID, freq uint32) float32 {
		return scorer.Score(uint32(d), freq)
	}, queryWeight, wand)
}

// NewBlockMaxScoredCursor builds a BlockMaxScoredCursor over termID's
// postings, sharing the same wand-data enumeration as NewMaxScoredCursor.
func (idx *Index) NewBlockMaxScoredCursor(termID daat.TermID, queryWeight float32, clusters *daat.ClusterMap, cfg WandDataConfig) *daat.BlockMaxScoredCursor {
	postings := idx.postings[termID]
	scorer := idx.Scorer(termID)
	wand := idx.BuildWandData(termID, clusters, cfg)
	cursor := daat.NewSlicePostingCursor(postings, daat.DocID(idx.corpusSize))
	return daat.NewBlockMaxScoredCursor(cursor, func(d daat.DocID, freq uint32) float32 {
		return scorer.Score(uint32(d), freq)
	}, queryWeight, wand, daat.DocID(idx.corpusSize))
}
