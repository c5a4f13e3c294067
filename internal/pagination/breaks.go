package pagination

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
)

// LayoutMode selects between the table and the card grid layout
type LayoutMode string

const (
	ModeTable   LayoutMode = "table"
	ModeGallery LayoutMode = "gallery"
)

// ParseLayoutMode maps a user value to a layout mode; anything but
// "gallery" is a table
func ParseLayoutMode(s string) LayoutMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeGallery)) {
		return ModeGallery
	}
	return ModeTable
}

// BreakOptions configures page-break estimation
type BreakOptions struct {
	LayoutMode    LayoutMode
	Density       string
	Orientation   layout.Orientation
	IncludeImages bool
	// RepeatHeader prints the table header row on every page, not only the first
	RepeatHeader bool
	// VisibleFields lists the item fields shown. Nil means every field.
	VisibleFields []string
	// NotesWidth is the fraction of the content width given to notes.
	// Values outside (0, 1] mean the full width.
	NotesWidth float64
	// GroupLanes inserts a lane header before the first item of each lane
	GroupLanes bool
	Strategy   item.BreakStrategy
}

// PageBreakInfo lists the item indices that start a new page
type PageBreakInfo struct {
	// BreakIndices are strictly increasing, never 0 and below the item count
	BreakIndices []int
	TotalPages   int
	// ShotsPerPage is the average number of items per page, rounded
	ShotsPerPage int
}

// RowMetrics holds the constants used to estimate table row heights
type RowMetrics struct {
	Chrome       float64
	Thumbnail    float64
	TitleLine    float64
	Line         float64
	LaneHeader   float64
	CharsPerLine int
}

// NewRowMetrics derives row metrics from the density preset and page width
func NewRowMetrics(opts BreakOptions) RowMetrics {
	preset := layout.ResolvePreset(opts.Density, opts.Orientation)

	share := opts.NotesWidth
	if share <= 0 || share > 1 {
		share = 1
	}
	notesWidth := layout.ContentSize(opts.Orientation).Width*share - 2*preset.CardPadding

	return RowMetrics{
		Chrome:       2*preset.CardPadding + layout.RuleWidth,
		Thumbnail:    preset.ThumbnailHeight,
		TitleLine:    preset.TitleLineHeight(),
		Line:         preset.LineHeight(),
		LaneHeader:   layout.LaneHeaderHeight,
		CharsPerLine: layout.EstimatedCharsPerLine(notesWidth, preset.FontSize.Label),
	}
}

// NotesLines estimates how many wrapped lines a note takes
func (m RowMetrics) NotesLines(notes string) int {
	n := utf8.RuneCountInString(strings.TrimSpace(notes))
	if n == 0 {
		return 0
	}
	cpl := max(m.CharsPerLine, 1)
	return (n + cpl - 1) / cpl
}

// ItemHeight estimates the rendered height of one table row: row chrome, the
// thumbnail when images are included, one line per populated visible field
// and the wrapped lines of the notes
func (m RowMetrics) ItemHeight(it item.ExportableItem, opts BreakOptions) float64 {
	h := m.Chrome
	if opts.IncludeImages && it.HasImage() && fieldVisible(opts.VisibleFields, item.FieldImage) {
		h += m.Thumbnail
	}

	for _, key := range fieldsFor(it, opts.VisibleFields) {
		if !it.IsPopulated(key) {
			continue
		}
		switch key {
		case item.FieldImage:
		case item.FieldNotes:
			h += float64(m.NotesLines(it.Notes)) * m.Line
		case item.FieldShotName, item.FieldProduct:
			h += m.TitleLine
		default:
			h += m.Line
		}
	}
	return h
}

// EstimateItemHeight estimates the height of an item's table row
func EstimateItemHeight(it item.ExportableItem, opts BreakOptions) float64 {
	return NewRowMetrics(opts).ItemHeight(it, opts)
}

// LaneHeaderBefore reports whether a lane header precedes items[i]
func LaneHeaderBefore(items []item.ExportableItem, i int, opts BreakOptions) bool {
	if !opts.GroupLanes || i < 0 || i >= len(items) {
		return false
	}
	return i == 0 || !strings.EqualFold(strings.TrimSpace(items[i].Lane), strings.TrimSpace(items[i-1].Lane))
}

// ForcedBreakBefore reports whether items[i] starts a new group under the
// page-break strategy
func ForcedBreakBefore(items []item.ExportableItem, i int, s item.BreakStrategy) bool {
	if i <= 0 || i >= len(items) {
		return false
	}
	return !item.SameGroup(items[i], items[i-1], s)
}

// PageCapacity is the vertical space available to table rows on one page
func PageCapacity(o layout.Orientation) float64 {
	return layout.ContentSize(o).Height - layout.PageHeaderHeight
}

// CalculatePageBreaks returns the item indices before which a new page
// starts. Gallery layouts break every CardsPerPage items. Table layouts
// accumulate estimated row heights and break before the row that would
// overflow the page; a row taller than a page is never split and stays
// alone on its page. Both modes also break at group boundaries of the
// page-break strategy.
func CalculatePageBreaks(items []item.ExportableItem, opts BreakOptions) PageBreakInfo {
	var breaks []int
	if opts.LayoutMode == ModeGallery {
		breaks = galleryBreaks(items, opts)
	} else {
		breaks = tableBreaks(items, opts)
	}

	total := len(breaks) + 1
	return PageBreakInfo{
		BreakIndices: breaks,
		TotalPages:   total,
		ShotsPerPage: int(math.Round(float64(len(items)) / float64(total))),
	}
}

func galleryBreaks(items []item.ExportableItem, opts BreakOptions) []int {
	l := layout.CalculateLayout(opts.Density, len(items), opts.Orientation)

	var breaks []int
	for _, g := range groupRanges(items, opts.Strategy) {
		indices := make([]int, g[1]-g[0])
		for i := range indices {
			indices[i] = g[0] + i
		}
		pages, err := DistributeCardsAcrossPages(indices, l)
		if err != nil {
			return nil
		}
		for _, p := range pages {
			if p[0] > 0 {
				breaks = append(breaks, p[0])
			}
		}
	}
	return breaks
}

func tableBreaks(items []item.ExportableItem, opts BreakOptions) []int {
	m := NewRowMetrics(opts)
	capacity := PageCapacity(opts.Orientation)
	header := 0.0
	if opts.RepeatHeader {
		header = layout.TableHeaderHeight
	}

	var breaks []int
	running := layout.TableHeaderHeight
	onPage := 0
	for i, it := range items {
		h := m.ItemHeight(it, opts)
		if LaneHeaderBefore(items, i, opts) {
			h += m.LaneHeader
		}
		if onPage > 0 && (ForcedBreakBefore(items, i, opts.Strategy) || running+h > capacity) {
			breaks = append(breaks, i)
			running = header + h
			onPage = 1
			continue
		}
		running += h
		onPage++
	}
	return breaks
}

// groupRanges returns [start, end) index ranges of consecutive items that
// share a group key
func groupRanges(items []item.ExportableItem, s item.BreakStrategy) [][2]int {
	var out [][2]int
	start := 0
	for i := 1; i <= len(items); i++ {
		if i == len(items) || ForcedBreakBefore(items, i, s) {
			if i > start {
				out = append(out, [2]int{start, i})
			}
			start = i
		}
	}
	return out
}

func fieldVisible(fields []string, key string) bool {
	if fields == nil {
		return true
	}
	for _, f := range fields {
		if f == key {
			return true
		}
	}
	return false
}

// allShotFields and allPullFields are used when no field list is given
var (
	allShotFields = []string{
		item.FieldShotNumber, item.FieldShotName, item.FieldImage, item.FieldType,
		item.FieldLane, item.FieldDate, item.FieldLocation, item.FieldTalent,
		item.FieldProducts, item.FieldNotes,
	}
	allPullFields = []string{
		item.FieldStyle, item.FieldProduct, item.FieldImage, item.FieldCategory,
		item.FieldGender, item.FieldSize, item.FieldQuantity, item.FieldNotes,
	}
)

func fieldsFor(it item.ExportableItem, fields []string) []string {
	if fields != nil {
		return fields
	}
	if it.Kind == item.KindPull {
		return allPullFields
	}
	return allShotFields
}
