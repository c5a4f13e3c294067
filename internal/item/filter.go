package item

import "strings"

// Filter selects the items to export. Empty criteria match everything;
// non-empty criteria must all match.
type Filter struct {
	Lanes      []string `yaml:"lanes"`
	Talent     []string `yaml:"talent"`
	Categories []string `yaml:"categories"`
	// Query matches case-insensitively against number, title and notes
	Query string `yaml:"query"`
}

// IsEmpty reports whether the filter selects every item
func (f Filter) IsEmpty() bool {
	return len(f.Lanes) == 0 && len(f.Talent) == 0 && len(f.Categories) == 0 && strings.TrimSpace(f.Query) == ""
}

// Match reports whether an item passes the filter
func (f Filter) Match(it ExportableItem) bool {
	if len(f.Lanes) > 0 && !containsFold(f.Lanes, it.Lane) {
		return false
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, it.Category) {
		return false
	}
	if len(f.Talent) > 0 {
		found := false
		for _, t := range it.Talent {
			if containsFold(f.Talent, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(it.Number + " " + it.Title + " " + it.Notes)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// Apply returns the matching items in their original order. The input
// slice is not modified.
func (f Filter) Apply(items []ExportableItem) []ExportableItem {
	out := make([]ExportableItem, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(values []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, candidate := range values {
		if strings.EqualFold(strings.TrimSpace(candidate), v) {
			return true
		}
	}
	return false
}
