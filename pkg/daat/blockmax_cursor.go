package daat

import "sort"

// BlockMaxScoredCursor extends MaxScoredCursor with a per-block score
// upper bound and a block pointer that Block-Max WAND advances
// independently of the posting pointer.
type BlockMaxScoredCursor struct {
	*MaxScoredCursor
	blockIdx int
	sentinel DocID
}

// NewBlockMaxScoredCursor binds a max-scored cursor to its term's block
// sequence. sentinel is the corpus size N, used when the block pointer
// runs off the end of the sequence.
func NewBlockMaxScoredCursor(cursor PostingCursor, scorer Scorer, weight float32, wand *TermWandData, sentinel DocID) *BlockMaxScoredCursor {
	return &BlockMaxScoredCursor{
		MaxScoredCursor: NewMaxScoredCursor(cursor, scorer, weight, wand),
		sentinel:        sentinel,
	}
}

// BlockMaxDocID is the last docid of the current block, or the sentinel
// once the block pointer has run off the end.
func (c *BlockMaxScoredCursor) BlockMaxDocID() DocID {
	if c.blockIdx >= len(c.wand.Blocks) {
		return c.sentinel
	}
	return c.wand.Blocks[c.blockIdx].LastDocID
}

// BlockMaxScore is the weighted upper bound for the current block, 0 once
// exhausted.
func (c *BlockMaxScoredCursor) BlockMaxScore() float32 {
	if c.blockIdx >= len(c.wand.Blocks) {
		return 0
	}
	return c.weight * c.wand.Blocks[c.blockIdx].MaxScore
}

// BlockMaxNextGEQ advances the block pointer, never backward, to the
// first block whose LastDocID >= d.
func (c *BlockMaxScoredCursor) BlockMaxNextGEQ(d DocID) {
	blocks := c.wand.Blocks
	if c.blockIdx < len(blocks) && blocks[c.blockIdx].LastDocID >= d {
		return
	}
	rest := blocks[c.blockIdx:]
	off := sort.Search(len(rest), func(i int) bool { return rest[i].LastDocID >= d })
	c.blockIdx += off
}

// GlobalGEQ resets both the block pointer and the posting pointer to the
// start, then advances each to the first block/posting containing d.
func (c *BlockMaxScoredCursor) GlobalGEQ(d DocID) {
	c.blockIdx = 0
	c.MaxScoredCursor.GlobalGEQ(d)
	c.BlockMaxNextGEQ(d)
}

var _ BlockMaxScored = (*BlockMaxScoredCursor)(nil)
