package daat

import (
	"sort"
	"time"
)

// Traversal is the shape every inner traversal (WAND, BlockMaxWAND,
// MaxScore) presents to the anytime dispatcher below: cursors, an
// exclusive upper docid bound, and the top-k queue to insert into.
type Traversal[C MaxScored] func(cursors []C, maxDocID DocID, topk *TopK)

// prepareCluster restarts every cursor inside cluster start and tightens
// its max-score bound to that cluster, returning the range's combined
// upper bound (the sum of the now-narrowed MaxScore() values).
func prepareCluster[C MaxScored](cursors []C, cluster ClusterID, start DocID) float32 {
	var sum float32
	for _, c := range cursors {
		c.GlobalGEQ(start)
		c.UpdateRangeMaxScore(cluster)
		sum += c.MaxScore()
	}
	return sum
}

// OrderedRangeQuery visits an externally supplied sequence of clusters in
// order, running the inner traversal on each unless the cluster's range
// bound can't possibly enter topk, and stops once maxClusters have been
// processed (0 means unlimited).
func OrderedRangeQuery[C MaxScored](cursors []C, clusters *ClusterMap, selection []ClusterID, maxClusters int, topk *TopK, traverse Traversal[C]) {
	processed := 0
	for _, cid := range selection {
		if maxClusters > 0 && processed >= maxClusters {
			return
		}
		processed++

		rng, ok := clusters.Lookup(cid)
		if !ok {
			continue
		}
		rangeMax := prepareCluster(cursors, cid, rng.Start)
		if !topk.WouldEnter(rangeMax) {
			continue
		}
		traverse(cursors, rng.End, topk)
	}
}

// clusterBound is one cluster ranked by its boundsum heuristic.
type clusterBound struct {
	id    ClusterID
	bound float32
}

func rankByBoundSum[C MaxScored](cursors []C, clusters *ClusterMap) []clusterBound {
	ids := clusters.All()
	ranked := make([]clusterBound, len(ids))
	for i, cid := range ids {
		var sum float32
		for _, c := range cursors {
			sum += c.GetRangeMaxScore(cid)
		}
		ranked[i] = clusterBound{id: cid, bound: sum}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].bound > ranked[j].bound })
	return ranked
}

// BoundSumRangeQuery visits clusters in descending order of the boundsum
// heuristic (the sum, across query terms, of each term's per-cluster
// score upper bound), stopping as soon as the next-best cluster's
// boundsum can no longer enter topk (every remaining cluster, having a
// boundsum no greater, is pruned too) or maxClusters is reached.
func BoundSumRangeQuery[C MaxScored](cursors []C, clusters *ClusterMap, maxClusters int, topk *TopK, traverse Traversal[C]) {
	ranked := rankByBoundSum(cursors, clusters)

	processed := 0
	for _, cb := range ranked {
		if maxClusters > 0 && processed >= maxClusters {
			return
		}
		if !topk.WouldEnter(cb.bound) {
			return
		}
		processed++

		rng, ok := clusters.Lookup(cb.id)
		if !ok {
			continue
		}
		prepareCluster(cursors, cb.id, rng.Start)
		traverse(cursors, rng.End, topk)
	}
}

// BoundSumTimeoutQuery is BoundSumRangeQuery with an additional
// between-clusters latency budget: before starting cluster c, processing
// stops if elapsed + riskFactor*meanPerClusterLatency would exceed
// timeoutMicros, where meanPerClusterLatency is elapsed time divided by
// clusters already processed. No cluster is ever abandoned mid-scan; the
// check only ever runs at a cluster boundary.
func BoundSumTimeoutQuery[C MaxScored](cursors []C, clusters *ClusterMap, maxClusters int, timeoutMicros float64, riskFactor float64, topk *TopK, traverse Traversal[C]) {
	ranked := rankByBoundSum(cursors, clusters)
	start := time.Now()

	processed := 0
	for _, cb := range ranked {
		if maxClusters > 0 && processed >= maxClusters {
			return
		}
		if !topk.WouldEnter(cb.bound) {
			return
		}
		if processed > 0 {
			elapsedMicros := float64(time.Since(start).Nanoseconds()) / 1e3
			meanPerCluster := elapsedMicros / float64(processed)
			if elapsedMicros+riskFactor*meanPerCluster > timeoutMicros {
				return
			}
		}
		processed++

		rng, ok := clusters.Lookup(cb.id)
		if !ok {
			continue
		}
		prepareCluster(cursors, cb.id, rng.Start)
		traverse(cursors, rng.End, topk)
	}
}
