package pagination

import (
	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
)

// Page is one output page of items
type Page struct {
	// Number is 1-based
	Number int
	// StartIndex is the index of the page's first item in the paginated list
	StartIndex int
	Items      []item.ExportableItem
}

// Engine handles the pagination process
type Engine struct {
	options BreakOptions
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: BreakOptions{
			LayoutMode:    ModeTable,
			Density:       string(layout.DefaultDensity),
			Orientation:   layout.Portrait,
			IncludeImages: true,
			RepeatHeader:  true,
			Strategy:      item.StrategyAuto,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options BreakOptions) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() BreakOptions {
	return e.options
}

// Paginate breaks items into pages. It always returns at least one page,
// matching PageBreakInfo.TotalPages.
func (e *Engine) Paginate(items []item.ExportableItem) ([]*Page, PageBreakInfo) {
	info := CalculatePageBreaks(items, e.options)

	chunks := SplitAtBreaks(items, info.BreakIndices)
	pages := make([]*Page, 0, len(chunks))
	start := 0
	for i, chunk := range chunks {
		pages = append(pages, &Page{
			Number:     i + 1,
			StartIndex: start,
			Items:      chunk,
		})
		start += len(chunk)
	}
	return pages, info
}

// CalculatePageCount calculates the number of pages needed
func (e *Engine) CalculatePageCount(items []item.ExportableItem) int {
	return CalculatePageBreaks(items, e.options).TotalPages
}
