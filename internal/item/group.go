package item

import "strings"

// BreakStrategy decides which items must start on a fresh page
type BreakStrategy string

const (
	// StrategyAuto only breaks when a page is full
	StrategyAuto BreakStrategy = "auto"
	// StrategyByGender starts a new page for every gender group
	StrategyByGender BreakStrategy = "by-gender"
	// StrategyByCategory starts a new page for every category group
	StrategyByCategory BreakStrategy = "by-category"
)

// UnspecifiedGroup is the group key of items with no gender or category
const UnspecifiedGroup = "Unspecified"

// ParseBreakStrategy maps a user value to a strategy; unknown values are auto
func ParseBreakStrategy(s string) BreakStrategy {
	switch BreakStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyByGender:
		return StrategyByGender
	case StrategyByCategory:
		return StrategyByCategory
	}
	return StrategyAuto
}

// GroupKey returns the group an item belongs to under a strategy. Auto puts
// every item in the same group.
func GroupKey(it ExportableItem, s BreakStrategy) string {
	var v string
	switch s {
	case StrategyByGender:
		v = it.Gender
	case StrategyByCategory:
		v = it.Category
	default:
		return ""
	}
	if v = strings.TrimSpace(v); v == "" {
		return UnspecifiedGroup
	}
	return v
}

// GroupStable returns a copy of items with members of the same group made
// contiguous. Groups keep the order in which they first appear and items
// keep their relative order inside a group.
func GroupStable(items []ExportableItem, s BreakStrategy) []ExportableItem {
	out := make([]ExportableItem, 0, len(items))
	if s != StrategyByGender && s != StrategyByCategory {
		return append(out, items...)
	}

	var order []string
	groups := make(map[string][]ExportableItem)
	for _, it := range items {
		key := groupID(it, s)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], it)
	}
	for _, key := range order {
		out = append(out, groups[key]...)
	}
	return out
}

// SameGroup reports whether two items fall in the same group. Keys compare
// case-insensitively.
func SameGroup(a, b ExportableItem, s BreakStrategy) bool {
	return groupID(a, s) == groupID(b, s)
}

func groupID(it ExportableItem, s BreakStrategy) string {
	return strings.ToLower(GroupKey(it, s))
}
