// Package plan computes everything an export needs before any renderer
// runs. The PDF generator, the HTML preview and the CSV writer all read the
// same Plan, which keeps their page breaks and columns identical.
package plan

import (
	"errors"
	"strings"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/sections"
)

// ErrNoItems is returned when nothing is left to export after filtering
var ErrNoItems = errors.New("no items match the current filters")

// Config is the export configuration a plan is built from
type Config struct {
	Title       string
	Subtitle    string
	Orientation layout.Orientation
	Density     string
	LayoutMode  pagination.LayoutMode

	// Fields overrides section visibility per field key
	Fields        map[string]bool
	SectionStates sections.States
	SectionPreset string

	IncludeImages        bool
	RepeatHeader         bool
	GroupLanes           bool
	IncludeLaneSummary   bool
	IncludeTalentSummary bool

	Strategy item.BreakStrategy
	Filter   item.Filter
}

// Plan is the renderer-independent description of an export
type Plan struct {
	Config  Config
	Kind    item.Kind
	Catalog *sections.Catalog

	// Items are the filtered items in output order
	Items []item.ExportableItem

	PageSize layout.PageSize
	Margins  layout.Margins
	Content  layout.Size

	States       sections.States
	Sections     []sections.Section
	ColumnWidths []float64

	Layout       layout.LayoutResult
	BreakOptions pagination.BreakOptions
	Breaks       pagination.PageBreakInfo
	Metrics      pagination.RowMetrics
	Pages        []*pagination.Page

	Lanes  []item.LaneCount
	Talent []item.TalentCount
	// Summary lists the leading summary pages; empty when no summary is
	// requested
	Summary []SummaryPage
}

// Build filters items and computes sections, layout and pages. It returns
// ErrNoItems when the filter leaves nothing to export. Items are never
// modified.
func Build(items []item.ExportableItem, cfg Config) (*Plan, error) {
	cfg.Orientation = layout.ParseOrientation(string(cfg.Orientation))
	cfg.LayoutMode = pagination.ParseLayoutMode(string(cfg.LayoutMode))
	cfg.Strategy = item.ParseBreakStrategy(string(cfg.Strategy))
	if !layout.IsKnownDensity(cfg.Density) {
		cfg.Density = string(layout.DefaultDensity)
	}

	selected := cfg.Filter.Apply(items)
	selected = item.GroupStable(selected, cfg.Strategy)
	if len(selected) == 0 {
		return nil, ErrNoItems
	}

	kind := selected[0].Kind
	catalog := sections.CatalogFor(kind)
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = DefaultTitle(kind)
	}

	states := ResolveStates(catalog, cfg)
	visible := catalog.VisibleSections(states)
	content := layout.ContentSize(cfg.Orientation)

	opts := pagination.BreakOptions{
		LayoutMode:    cfg.LayoutMode,
		Density:       cfg.Density,
		Orientation:   cfg.Orientation,
		IncludeImages: cfg.IncludeImages,
		RepeatHeader:  cfg.RepeatHeader,
		VisibleFields: sections.FieldKeys(visible),
		NotesWidth:    sections.FlexShare(visible, sections.Notes),
		GroupLanes:    cfg.GroupLanes,
		Strategy:      cfg.Strategy,
	}
	engine := pagination.NewEngine()
	engine.SetOptions(opts)
	pages, breaks := engine.Paginate(selected)

	p := &Plan{
		Config:       cfg,
		Kind:         kind,
		Catalog:      catalog,
		Items:        selected,
		PageSize:     layout.PageDimensions(cfg.Orientation),
		Margins:      layout.PageMargins,
		Content:      content,
		States:       states,
		Sections:     visible,
		ColumnWidths: sections.ColumnWidths(visible, content.Width),
		Layout:       layout.CalculateLayout(cfg.Density, len(selected), cfg.Orientation),
		BreakOptions: opts,
		Breaks:       breaks,
		Metrics:      pagination.NewRowMetrics(opts),
		Pages:        pages,
	}
	if cfg.IncludeLaneSummary {
		p.Lanes = item.LaneSummary(selected)
	}
	if cfg.IncludeTalentSummary {
		p.Talent = item.TalentSummary(selected)
	}
	p.Summary = PaginateSummary(p.Lanes, p.Talent, pagination.PageCapacity(cfg.Orientation))
	return p, nil
}

// ResolveStates applies the preset, the field overrides and the image toggle
// to the configured section states
func ResolveStates(catalog *sections.Catalog, cfg Config) sections.States {
	states := catalog.Normalize(cfg.SectionStates)
	if cfg.SectionPreset != "" {
		states = catalog.ApplyPreset(states, cfg.SectionPreset)
	}
	if len(cfg.Fields) > 0 {
		states = catalog.ApplyFields(states, cfg.Fields)
	}
	if !cfg.IncludeImages {
		states = catalog.SetVisible(states, sections.Image, false)
	}
	return states
}

// DefaultTitle returns the document title used when none is configured
func DefaultTitle(kind item.Kind) string {
	if kind == item.KindPull {
		return "Pull Sheet"
	}
	return "Shot List"
}

// HasSummaryPage reports whether summary pages precede the item pages
func (p *Plan) HasSummaryPage() bool {
	return len(p.Summary) > 0
}

// TotalPages counts every page of the document, summary pages included
func (p *Plan) TotalPages() int {
	return len(p.Pages) + len(p.Summary)
}

// PageNumber returns the printed page number of an item page
func (p *Plan) PageNumber(page *pagination.Page) int {
	return page.Number + len(p.Summary)
}

// CardPosition places the i-th card of a page
func (p *Plan) CardPosition(i int) layout.CardPosition {
	return layout.CardPositionFor(i, p.Layout)
}

// Row describes one table row on a page
type Row struct {
	Item item.ExportableItem
	// Index is the item's position in Plan.Items
	Index      int
	LaneHeader bool
	Height     float64
}

// Rows returns the table rows of a page with their estimated heights
func (p *Plan) Rows(page *pagination.Page) []Row {
	rows := make([]Row, len(page.Items))
	for i, it := range page.Items {
		idx := page.StartIndex + i
		rows[i] = Row{
			Item:       it,
			Index:      idx,
			LaneHeader: pagination.LaneHeaderBefore(p.Items, idx, p.BreakOptions),
			Height:     p.Metrics.ItemHeight(it, p.BreakOptions),
		}
	}
	return rows
}

// ShowsHeader reports whether a page prints the table header row
func (p *Plan) ShowsHeader(page *pagination.Page) bool {
	return page.Number == 1 || p.Config.RepeatHeader
}

// IsGallery reports whether items are laid out as cards
func (p *Plan) IsGallery() bool {
	return p.Config.LayoutMode == pagination.ModeGallery
}
