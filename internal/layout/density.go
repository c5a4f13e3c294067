package layout

import (
	"math"
	"strings"
)

// Density names a bundle of layout constants controlling how tightly
// items are packed on a page
type Density string

const (
	DensityCompact  Density = "compact"
	DensityStandard Density = "standard"
	DensityDetailed Density = "detailed"

	// DefaultDensity is used whenever a density id cannot be resolved
	DefaultDensity = DensityStandard
)

// Size is a width/height pair in points
type Size struct {
	Width  float64
	Height float64
}

// Gap is the space left between neighbouring cards
type Gap struct {
	Horizontal float64
	Vertical   float64
}

// FontSize holds the two font sizes used on cards and table rows
type FontSize struct {
	Title float64
	Label float64
}

// DensityPreset is the concrete tiling for one density and orientation.
// Values are handed out by copy; the preset table itself is never modified.
type DensityPreset struct {
	ID              Density
	Label           string
	Orientation     Orientation
	Columns         int
	RowsPerPage     int
	CardDimensions  Size
	Gap             Gap
	FontSize        FontSize
	ImageHeight     float64
	ThumbnailHeight float64
	CardPadding     float64
	ShowAllFields   bool
}

// LineHeight returns the height of a single label line
func (p DensityPreset) LineHeight() float64 {
	return p.FontSize.Label * LineHeightFactor
}

// TitleLineHeight returns the height of the title line
func (p DensityPreset) TitleLineHeight() float64 {
	return p.FontSize.Title * LineHeightFactor
}

type presetSpec struct {
	label      string
	portrait   [2]int // columns, rows
	landscape  [2]int
	gap        float64
	titleFont  float64
	labelFont  float64
	padding    float64
	imageRatio float64
	thumbnail  float64
	showAll    bool
}

var densityOrder = []Density{DensityCompact, DensityStandard, DensityDetailed}

var presetSpecs = map[Density]presetSpec{
	DensityCompact: {
		label:      "Compact",
		portrait:   [2]int{4, 5},
		landscape:  [2]int{6, 4},
		gap:        8,
		titleFont:  7,
		labelFont:  6,
		padding:    4,
		imageRatio: 0.55,
		thumbnail:  28,
		showAll:    false,
	},
	DensityStandard: {
		label:      "Standard",
		portrait:   [2]int{3, 4},
		landscape:  [2]int{4, 3},
		gap:        12,
		titleFont:  9,
		labelFont:  7,
		padding:    6,
		imageRatio: 0.55,
		thumbnail:  40,
		showAll:    true,
	},
	DensityDetailed: {
		label:      "Detailed",
		portrait:   [2]int{2, 3},
		landscape:  [2]int{3, 2},
		gap:        16,
		titleFont:  11,
		labelFont:  8,
		padding:    8,
		imageRatio: 0.6,
		thumbnail:  56,
		showAll:    true,
	},
}

type presetKey struct {
	id          Density
	orientation Orientation
}

var presets = buildPresets()

func buildPresets() map[presetKey]DensityPreset {
	out := make(map[presetKey]DensityPreset, len(presetSpecs)*2)
	for id, spec := range presetSpecs {
		for _, o := range []Orientation{Portrait, Landscape} {
			out[presetKey{id, o}] = newPreset(id, spec, o)
		}
	}
	return out
}

// newPreset sizes cards so that columns x rows tile the grid area exactly
func newPreset(id Density, spec presetSpec, o Orientation) DensityPreset {
	grid := spec.portrait
	if o == Landscape {
		grid = spec.landscape
	}
	cols, rows := grid[0], grid[1]
	area := GridArea(o)

	width := (area.Width - spec.gap*float64(cols-1)) / float64(cols)
	height := (area.Height - spec.gap*float64(rows-1)) / float64(rows)

	return DensityPreset{
		ID:              id,
		Label:           spec.label,
		Orientation:     o,
		Columns:         cols,
		RowsPerPage:     rows,
		CardDimensions:  Size{Width: math.Floor(width), Height: math.Floor(height)},
		Gap:             Gap{Horizontal: spec.gap, Vertical: spec.gap},
		FontSize:        FontSize{Title: spec.titleFont, Label: spec.labelFont},
		ImageHeight:     math.Round(height * spec.imageRatio),
		ThumbnailHeight: spec.thumbnail,
		CardPadding:     spec.padding,
		ShowAllFields:   spec.showAll,
	}
}

// normalizeDensity lower-cases and trims a density id
func normalizeDensity(id string) Density {
	return Density(strings.ToLower(strings.TrimSpace(id)))
}

// LookupPreset returns the preset for a density id, or a ConfigurationError
// when the id is unknown.
func LookupPreset(id string, o Orientation) (DensityPreset, error) {
	o = ParseOrientation(string(o))
	p, ok := presets[presetKey{normalizeDensity(id), o}]
	if !ok {
		return DensityPreset{}, &ConfigurationError{
			Field:  "density",
			Value:  id,
			Reason: "unknown density preset",
		}
	}
	return p, nil
}

// ResolvePreset returns the preset for a density id and orientation.
// Unknown ids fall back to the standard preset.
func ResolvePreset(id string, o Orientation) DensityPreset {
	p, err := LookupPreset(id, o)
	if err != nil {
		return presets[presetKey{DefaultDensity, ParseOrientation(string(o))}]
	}
	return p
}

// IsKnownDensity reports whether id names a preset
func IsKnownDensity(id string) bool {
	_, ok := presetSpecs[normalizeDensity(id)]
	return ok
}

// Densities lists the known density ids in display order
func Densities() []Density {
	out := make([]Density, len(densityOrder))
	copy(out, densityOrder)
	return out
}

// Presets returns every preset for an orientation in display order
func Presets(o Orientation) []DensityPreset {
	o = ParseOrientation(string(o))
	out := make([]DensityPreset, 0, len(densityOrder))
	for _, id := range densityOrder {
		out = append(out, presets[presetKey{id, o}])
	}
	return out
}
