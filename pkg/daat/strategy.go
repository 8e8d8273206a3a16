package daat

import "strings"

// Strategy names every traversal the engine supports, exactly as they
// appear in the strategy selector tunable.
type Strategy string

const (
	StrategyAnd                         Strategy = "and"
	StrategyOr                          Strategy = "or"
	StrategyOrFreq                      Strategy = "or_freq"
	StrategyWAND                        Strategy = "wand"
	StrategyWANDOrderedRange            Strategy = "wand_ordered_range"
	StrategyWANDBoundSum                Strategy = "wand_boundsum"
	StrategyWANDBoundSumTimeout         Strategy = "wand_boundsum_timeout"
	StrategyBlockMaxWAND                Strategy = "block_max_wand"
	StrategyBlockMaxWANDOrderedRange    Strategy = "block_max_wand_ordered_range"
	StrategyBlockMaxWANDBoundSum        Strategy = "block_max_wand_boundsum"
	StrategyBlockMaxWANDBoundSumTimeout Strategy = "block_max_wand_boundsum_timeout"
	StrategyBlockMaxMaxScore            Strategy = "block_max_maxscore"
	StrategyMaxScore                    Strategy = "maxscore"
	StrategyMaxScoreOrderedRange        Strategy = "maxscore_ordered_range"
	StrategyMaxScoreBoundSum            Strategy = "maxscore_boundsum"
	StrategyMaxScoreBoundSumTimeout     Strategy = "maxscore_boundsum_timeout"
	StrategyRankedAnd                   Strategy = "ranked_and"
	StrategyBlockMaxRankedAnd           Strategy = "block_max_ranked_and"
	StrategyRankedOr                    Strategy = "ranked_or"
	StrategyRankedOrTAAT                Strategy = "ranked_or_taat"
	StrategyRankedOrTAATLazy            Strategy = "ranked_or_taat_lazy"
)

var knownStrategies = map[Strategy]bool{
	StrategyAnd: true, StrategyOr: true, StrategyOrFreq: true,
	StrategyWAND: true, StrategyWANDOrderedRange: true, StrategyWANDBoundSum: true, StrategyWANDBoundSumTimeout: true,
	StrategyBlockMaxWAND: true, StrategyBlockMaxWANDOrderedRange: true, StrategyBlockMaxWANDBoundSum: true, StrategyBlockMaxWANDBoundSumTimeout: true,
	StrategyBlockMaxMaxScore: true,
	StrategyMaxScore: true, StrategyMaxScoreOrderedRange: true, StrategyMaxScoreBoundSum: true, StrategyMaxScoreBoundSumTimeout: true,
	StrategyRankedAnd: true, StrategyBlockMaxRankedAnd: true,
	StrategyRankedOr: true, StrategyRankedOrTAAT: true, StrategyRankedOrTAATLazy: true,
}

// Valid reports whether strategy is one this engine recognizes.
func (s Strategy) Valid() bool {
	return knownStrategies[s]
}

// NeedsWandData reports whether strategy's pruning depends on per-term
// score upper bounds (everything except the unranked/TAAT baselines).
func (s Strategy) NeedsWandData() bool {
	switch s {
	case StrategyAnd, StrategyOr, StrategyOrFreq, StrategyRankedAnd, StrategyBlockMaxRankedAnd, StrategyRankedOr, StrategyRankedOrTAAT, StrategyRankedOrTAATLazy:
		return false
	default:
		return true
	}
}

// NeedsBlockData reports whether strategy additionally requires
// per-block score upper bounds. block_max_ranked_and is conjunctive and
// needs no bounds at all; every other block_max_* name runs BlockMaxWAND
// or the block-max-cursor flavor of MaxScore.
func (s Strategy) NeedsBlockData() bool {
	return strings.HasPrefix(string(s), "block_max") && s != StrategyBlockMaxRankedAnd
}

// NeedsClusterMap reports whether strategy is an anytime (range-
// restricted) variant and therefore requires a cluster map.
func (s Strategy) NeedsClusterMap() bool {
	return s.Variant() != VariantExhaustive
}

// Variant classifies the early-termination scheme strategy applies on
// top of its base traversal.
type Variant int

const (
	VariantExhaustive Variant = iota
	VariantOrderedRange
	VariantBoundSum
	VariantBoundSumTimeout
)

// Variant returns strategy's early-termination scheme, read off the
// strategy name's suffix.
func (s Strategy) Variant() Variant {
	name := string(s)
	switch {
	case strings.HasSuffix(name, "_boundsum_timeout"):
		return VariantBoundSumTimeout
	case strings.HasSuffix(name, "_boundsum"):
		return VariantBoundSum
	case strings.HasSuffix(name, "_ordered_range"):
		return VariantOrderedRange
	default:
		return VariantExhaustive
	}
}

// Params are the per-invocation tunables from the external interface:
// result size, strategy selector, and the anytime budget knobs.
type Params struct {
	K                   int
	Strategy            Strategy
	MaxClusters         int     // 0 = unlimited
	TimeoutMicroseconds float64 // only meaningful for *_boundsum_timeout
	RiskFactor          float64 // default 1.0
}

// DefaultParams returns RiskFactor at its documented default; callers
// still must set K and Strategy.
func DefaultParams() Params {
	return Params{RiskFactor: 1.0}
}

// Run dispatches cursors through the early-termination scheme variant
// selects, calling traverse (the base WAND/BlockMaxWAND/MaxScore
// algorithm, already matched to C's capabilities) either once over the
// whole corpus or once per visited cluster. It is the single place that
// understands the shape shared by every *_ordered_range / *_boundsum /
// *_boundsum_timeout strategy, regardless of which base traversal or
// cursor capability C happens to be.
func Run[C MaxScored](variant Variant, cursors []C, corpusSize DocID, clusters *ClusterMap, selection []ClusterID, params Params, topk *TopK, traverse Traversal[C]) error {
	if variant != VariantExhaustive && clusters == nil {
		return ErrMissingClusterMap
	}
	switch variant {
	case VariantExhaustive:
		traverse(cursors, corpusSize, topk)
	case VariantOrderedRange:
		OrderedRangeQuery(cursors, clusters, selection, params.MaxClusters, topk, traverse)
	case VariantBoundSum:
		BoundSumRangeQuery(cursors, clusters, params.MaxClusters, topk, traverse)
	case VariantBoundSumTimeout:
		BoundSumTimeoutQuery(cursors, clusters, params.MaxClusters, params.TimeoutMicroseconds, params.RiskFactor, topk, traverse)
	}
	return nil
}
