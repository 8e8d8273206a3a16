package daat

// Test helpers shared across this package's tests: building cursors
// directly from literal (docid, freq) postings and a constant-per-term
// scorer, without going through an index or wand-data builder.

// constScorer returns a Scorer that ignores freq and always yields v.
func constScorer(v float32) Scorer {
	return func(DocID, uint32) float32 { return v }
}

func newScored(postings []Posting, sentinel DocID, weight float32, score float32) *ScoredCursor {
	cursor := NewSlicePostingCursor(postings, sentinel)
	return NewScoredCursor(cursor, constScorer(score), weight)
}

// blockedWandData packs postings into fixed-size blocks and derives a
// list max and per-block max from a constant score, the shape a real
// wand-data builder would produce for a constant scorer.
func blockedWandData(postings []Posting, blockSize int, score float32) *TermWandData {
	wd := &TermWandData{ListMaxScore: score}
	for start := 0; start < len(postings); start += blockSize {
		end := start + blockSize
		if end > len(postings) {
			end = len(postings)
		}
		wd.Blocks = append(wd.Blocks, BlockMax{LastDocID: postings[end-1].DocID, MaxScore: score})
	}
	return wd
}

func rangedWandData(postings []Posting, clusters *ClusterMap, score float32) *TermWandData {
	wd := &TermWandData{ListMaxScore: score}
	for _, id := range clusters.All() {
		rng, _ := clusters.Lookup(id)
		has := false
		for _, p := range postings {
			if p.DocID >= rng.Start && p.DocID < rng.End {
				has = true
				break
			}
		}
		if has {
			wd.Ranges = append(wd.Ranges, RangeMax{Cluster: id, MaxScore: score})
		}
	}
	return wd
}

func newMaxScored(postings []Posting, sentinel DocID, weight float32, score float32) *MaxScoredCursor {
	wd := &TermWandData{ListMaxScore: score}
	cursor := NewSlicePostingCursor(postings, sentinel)
	return NewMaxScoredCursor(cursor, constScorer(score), weight, wd)
}

func newMaxScoredWithClusters(postings []Posting, sentinel DocID, weight float32, score float32, clusters *ClusterMap) *MaxScoredCursor {
	wd := rangedWandData(postings, clusters, score)
	wd.ListMaxScore = score
	cursor := NewSlicePostingCursor(postings, sentinel)
	return NewMaxScoredCursor(cursor, constScorer(score), weight, wd)
}

func newBlockMaxScored(postings []Posting, sentinel DocID, weight float32, blockSize int, score float32) *BlockMaxScoredCursor {
	wd := blockedWandData(postings, blockSize, score)
	cursor := NewSlicePostingCursor(postings, sentinel)
	return NewBlockMaxScoredCursor(cursor, constScorer(score), weight, wd, sentinel)
}
