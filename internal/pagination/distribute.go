package pagination

import (
	"strconv"

	"github.com/gompdf/shotpdf/internal/layout"
)

// DistributeCardsAcrossPages partitions items into consecutive pages of
// layout.CardsPerPage items; the last page may be shorter. Order is kept and
// zero items yield zero pages. The returned pages share the backing array of
// items and must be treated as read-only.
func DistributeCardsAcrossPages[T any](items []T, l layout.LayoutResult) ([][]T, error) {
	cpp := l.CardsPerPage
	if cpp <= 0 {
		return nil, &layout.ConfigurationError{
			Field:  "cardsPerPage",
			Value:  strconv.Itoa(cpp),
			Reason: "must be positive",
		}
	}

	pages := make([][]T, 0, (len(items)+cpp-1)/cpp)
	for start := 0; start < len(items); start += cpp {
		end := min(start+cpp, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages, nil
}

// SplitAtBreaks cuts items before every break index. Breaks must be strictly
// increasing and inside (0, len(items)); others are ignored.
func SplitAtBreaks[T any](items []T, breaks []int) [][]T {
	out := make([][]T, 0, len(breaks)+1)
	start := 0
	for _, b := range breaks {
		if b <= start || b >= len(items) {
			continue
		}
		out = append(out, items[start:b:b])
		start = b
	}
	return append(out, items[start:len(items):len(items)])
}
