// Package shotpdf exports shot lists and pull sheets as paginated PDF
// documents, HTML previews and CSV files. It re-exports pkg/api.
package shotpdf

import (
	"github.com/gompdf/shotpdf/pkg/api"
)

type Exporter = api.Exporter
type Options = api.Options
type Option = api.Option
type Item = api.Item
type Image = api.Image
type Shot = api.Shot
type PullItem = api.PullItem
type TalentRef = api.TalentRef
type ProductRef = api.ProductRef
type ImageRef = api.ImageRef
type SizeQty = api.SizeQty
type Filter = api.Filter
type Plan = api.Plan
type GenerationError = api.GenerationError
type PageOrientation = api.PageOrientation
type Density = api.Density
type LayoutMode = api.LayoutMode
type BreakStrategy = api.BreakStrategy
type SectionState = api.SectionState
type SectionStates = api.SectionStates

func New() *Exporter                           { return api.New() }
func NewWithOptions(options Options) *Exporter { return api.NewWithOptions(options) }
func DefaultOptions() Options                  { return api.DefaultOptions() }

var ErrNoItems = api.ErrNoItems

var (
	LoadItems     = api.LoadItems
	FromShots     = api.FromShots
	FromPullItems = api.FromPullItems
	CountPages    = api.CountPages

	WithTitle             = api.WithTitle
	WithSubtitle          = api.WithSubtitle
	WithPageOrientation   = api.WithPageOrientation
	WithDensity           = api.WithDensity
	WithLayoutMode        = api.WithLayoutMode
	WithSectionStates     = api.WithSectionStates
	WithSectionPreset     = api.WithSectionPreset
	WithField             = api.WithField
	WithImages            = api.WithImages
	WithRepeatHeader      = api.WithRepeatHeader
	WithLaneGrouping      = api.WithLaneGrouping
	WithSummaries         = api.WithSummaries
	WithPageBreakStrategy = api.WithPageBreakStrategy
	WithFilter            = api.WithFilter
	WithBaseDir           = api.WithBaseDir
	WithResourcePath      = api.WithResourcePath
	WithStrictImages      = api.WithStrictImages
	WithVerifyPageCount   = api.WithVerifyPageCount
	WithAuthor            = api.WithAuthor
	WithSubject           = api.WithSubject
	WithKeywords          = api.WithKeywords
	WithLogger            = api.WithLogger
)

const (
	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape

	DensityCompact  = api.DensityCompact
	DensityStandard = api.DensityStandard
	DensityDetailed = api.DensityDetailed

	LayoutTable   = api.LayoutTable
	LayoutGallery = api.LayoutGallery

	BreakAuto       = api.BreakAuto
	BreakByGender   = api.BreakByGender
	BreakByCategory = api.BreakByCategory
)
