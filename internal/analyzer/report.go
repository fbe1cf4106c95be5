package analyzer

import "sort"

// SortedComponentIDs and SortedCoreIDs give callers (cmd/, tests) a stable
// order in which to walk Result's maps when building tableio rows, so
// output order is deterministic.

// SortedComponentIDs returns the component ids of r in sorted order.
func (r Result) SortedComponentIDs() []string {
	ids := make([]string, 0, len(r.Components))
	for id := range r.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedCoreIDs returns the core ids of r in sorted order.
func (r Result) SortedCoreIDs() []int {
	ids := make([]int, 0, len(r.Cores))
	for id := range r.Cores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
