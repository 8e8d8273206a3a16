package daat

import "fmt"

// Range is a contiguous docid interval [Start, End) used as an
// early-termination unit.
type Range struct {
	Start DocID
	End   DocID
}

// ClusterMap is the read-only cluster_id -> (start, end) mapping shared
// across every query. Cluster ids are small, dense, non-negative
// integers, so array indexing is sufficient; it outlives every query
// the same way the index and wand data do.
type ClusterMap struct {
	ranges []Range
}

// NewClusterMap validates and builds a cluster map. Clusters must be
// disjoint and their union must cover [0, n); this is index-load-time
// validation, so a violation is fatal per the engine's error taxonomy.
func NewClusterMap(ranges []Range, n DocID) (*ClusterMap, error) {
	for i, r := range ranges {
		if i == 0 && r.Start != 0 {
			return nil, fmt.Errorf("daat: cluster 0 starts at %d, not at docid 0", r.Start)
		}
		if r.Start >= r.End {
			return nil, fmt.Errorf("daat: cluster %d has empty or inverted range [%d, %d)", i, r.Start, r.End)
		}
		if r.End > n {
			return nil, fmt.Errorf("daat: cluster %d range [%d, %d) exceeds corpus size %d", i, r.Start, r.End, n)
		}
		if i > 0 && r.Start != ranges[i-1].End {
			return nil, fmt.Errorf("daat: cluster %d does not abut cluster %d: [%d,%d) after [%d,%d)", i, i-1, r.Start, r.End, ranges[i-1].Start, ranges[i-1].End)
		}
	}
	if len(ranges) == 0 && n > 0 {
		return nil, fmt.Errorf("daat: no clusters cover [0, %d)", n)
	}
	if len(ranges) > 0 && ranges[len(ranges)-1].End != n {
		return nil, fmt.Errorf("daat: clusters cover [0, %d) but corpus size is %d", ranges[len(ranges)-1].End, n)
	}
	cm := &ClusterMap{ranges: append([]Range(nil), ranges...)}
	return cm, nil
}

// Lookup returns the [start, end) interval for cluster, and whether it
// exists.
func (m *ClusterMap) Lookup(cluster ClusterID) (Range, bool) {
	if int(cluster) < 0 || int(cluster) >= len(m.ranges) {
		return Range{}, false
	}
	return m.ranges[cluster], true
}

// Len returns the number of clusters in the map.
func (m *ClusterMap) Len() int {
	return len(m.ranges)
}

// All returns every cluster id in the map's stable order, for boundsum
// enumeration.
func (m *ClusterMap) All() []ClusterID {
	ids := make([]ClusterID, len(m.ranges))
	for i := range m.ranges {
		ids[i] = ClusterID(i)
	}
	return ids
}
