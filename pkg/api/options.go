package api

import (
	"log/slog"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/sections"
)

// Options represents configuration options for an export
type Options struct {
	// Document title and the line printed under it. An empty title uses
	// "Shot List" or "Pull Sheet".
	Title    string
	Subtitle string

	PageOrientation PageOrientation
	Density         Density
	LayoutMode      LayoutMode

	// Section visibility. SectionStates is applied first, then the
	// SectionPreset, then the Fields overrides keyed by field key.
	SectionStates SectionStates
	SectionPreset string
	Fields        map[string]bool

	IncludeImages        bool
	RepeatHeader         bool
	GroupLanes           bool
	IncludeLaneSummary   bool
	IncludeTalentSummary bool
	PageBreakStrategy    BreakStrategy

	Filter Filter

	// ResourcePaths are searched for images missing from BaseDir
	BaseDir       string
	ResourcePaths []string
	// StrictImages fails generation when an image cannot be loaded
	StrictImages bool
	// VerifyPageCount re-reads the generated PDF and compares its page count
	// with the plan
	VerifyPageCount bool

	// Document metadata
	Author   string
	Subject  string
	Keywords string

	Logger *slog.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation = layout.Orientation

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait = layout.Portrait
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape = layout.Landscape
)

// Density names a tiling preset
type Density = layout.Density

const (
	DensityCompact  = layout.DensityCompact
	DensityStandard = layout.DensityStandard
	DensityDetailed = layout.DensityDetailed
)

// LayoutMode selects cards or table rows
type LayoutMode = pagination.LayoutMode

const (
	LayoutTable   = pagination.ModeTable
	LayoutGallery = pagination.ModeGallery
)

// BreakStrategy decides which items start on a fresh page
type BreakStrategy = item.BreakStrategy

const (
	BreakAuto       = item.StrategyAuto
	BreakByGender   = item.StrategyByGender
	BreakByCategory = item.StrategyByCategory
)

type (
	Item          = item.ExportableItem
	Image         = item.Image
	Shot          = item.Shot
	TalentRef     = item.TalentRef
	ProductRef    = item.ProductRef
	ImageRef      = item.ImageRef
	PullItem      = item.PullItem
	SizeQty       = item.SizeQty
	Filter        = item.Filter
	SectionState  = sections.State
	SectionStates = sections.States
	SectionID     = sections.ID
)

// US Letter in points; every export is printed on it
const (
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageOrientation:   PageOrientationPortrait,
		Density:           DensityStandard,
		LayoutMode:        LayoutTable,
		IncludeImages:     true,
		RepeatHeader:      true,
		PageBreakStrategy: BreakAuto,
		ResourcePaths:     []string{},
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithSubtitle sets the line printed under the title
func WithSubtitle(subtitle string) Option {
	return func(o *Options) {
		o.Subtitle = subtitle
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithDensity sets the density preset
func WithDensity(density Density) Option {
	return func(o *Options) {
		o.Density = density
	}
}

// WithLayoutMode sets gallery or table layout
func WithLayoutMode(mode LayoutMode) Option {
	return func(o *Options) {
		o.LayoutMode = mode
	}
}

// WithSectionStates sets the section configuration
func WithSectionStates(states SectionStates) Option {
	return func(o *Options) {
		o.SectionStates = states.Clone()
	}
}

// WithSectionPreset shows exactly the sections of a named preset
func WithSectionPreset(name string) Option {
	return func(o *Options) {
		o.SectionPreset = name
	}
}

// WithField shows or hides one field
func WithField(key string, visible bool) Option {
	return func(o *Options) {
		fields := make(map[string]bool, len(o.Fields)+1)
		for k, v := range o.Fields {
			fields[k] = v
		}
		fields[key] = visible
		o.Fields = fields
	}
}

// WithImages toggles item images
func WithImages(include bool) Option {
	return func(o *Options) {
		o.IncludeImages = include
	}
}

// WithRepeatHeader toggles the table header on every page
func WithRepeatHeader(repeat bool) Option {
	return func(o *Options) {
		o.RepeatHeader = repeat
	}
}

// WithLaneGrouping inserts a lane header before each lane
func WithLaneGrouping(group bool) Option {
	return func(o *Options) {
		o.GroupLanes = group
	}
}

// WithSummaries adds the lane and talent summaries on a leading page
func WithSummaries(lanes, talent bool) Option {
	return func(o *Options) {
		o.IncludeLaneSummary = lanes
		o.IncludeTalentSummary = talent
	}
}

// WithPageBreakStrategy sets the page break strategy
func WithPageBreakStrategy(s BreakStrategy) Option {
	return func(o *Options) {
		o.PageBreakStrategy = s
	}
}

// WithFilter restricts the exported items
func WithFilter(f Filter) Option {
	return func(o *Options) {
		o.Filter = f
	}
}

// WithBaseDir sets the directory relative image paths are resolved against
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// WithResourcePath adds a path to search for images
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths[:len(o.ResourcePaths):len(o.ResourcePaths)], path)
	}
}

// WithStrictImages makes image failures fatal
func WithStrictImages(strict bool) Option {
	return func(o *Options) {
		o.StrictImages = strict
	}
}

// WithVerifyPageCount checks the generated PDF's page count
func WithVerifyPageCount(verify bool) Option {
	return func(o *Options) {
		o.VerifyPageCount = verify
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithLogger sets the logger used during generation
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
