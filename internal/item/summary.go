package item

import (
	"sort"
	"strings"
)

// UnassignedLane labels items that belong to no lane
const UnassignedLane = "Unassigned"

// LaneCount is one row of the lane summary
type LaneCount struct {
	Lane  string
	Count int
}

// TalentCount is one row of the talent summary
type TalentCount struct {
	Name  string
	Count int
}

// LaneSummary counts items per lane, listing lanes in the order they first
// appear. Lanes differing only in case are counted together under the first
// spelling seen.
func LaneSummary(items []ExportableItem) []LaneCount {
	index := make(map[string]int)
	var out []LaneCount
	for _, it := range items {
		lane := LaneName(it)
		key := strings.ToLower(lane)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, LaneCount{Lane: lane})
		}
		out[i].Count++
	}
	return out
}

// TalentSummary counts the items each person appears in, busiest first and
// then by name
func TalentSummary(items []ExportableItem) []TalentCount {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, it := range items {
		seen := make(map[string]bool)
		for _, t := range it.Talent {
			name := strings.TrimSpace(t)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			if _, ok := names[key]; !ok {
				names[key] = name
			}
			counts[key]++
		}
	}

	out := make([]TalentCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, TalentCount{Name: names[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// LaneName returns the lane of an item, or UnassignedLane
func LaneName(it ExportableItem) string {
	if lane := strings.TrimSpace(it.Lane); lane != "" {
		return lane
	}
	return UnassignedLane
}
