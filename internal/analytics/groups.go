package analytics

import "sort"

// GroupCount is one label bucket of a categorical breakdown.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountBy tallies labels in first-encounter order, so breakdowns stay
// stable across identical inputs.
func CountBy(labels []string) []GroupCount {
	index := make(map[string]int, len(labels))
	var out []GroupCount
	for _, label := range labels {
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, GroupCount{Label: label, Count: 1})
	}
	return out
}

// TopN returns the n largest buckets by count. The sort is stable, so
// ties keep their first-encounter order. The input is not reordered.
func TopN(groups []GroupCount, n int) []GroupCount {
	sorted := make([]GroupCount, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
