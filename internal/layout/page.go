package layout

import "strings"

// Orientation represents page orientation
type Orientation string

const (
	// Portrait is the default orientation
	Portrait Orientation = "portrait"
	// Landscape swaps the page width and height
	Landscape Orientation = "landscape"
)

// ParseOrientation maps a user supplied value to an Orientation.
// Anything other than "landscape" is treated as portrait.
func ParseOrientation(s string) Orientation {
	if strings.EqualFold(strings.TrimSpace(s), string(Landscape)) {
		return Landscape
	}
	return Portrait
}

// PDFCode returns the single letter orientation code used by fpdf
func (o Orientation) PDFCode() string {
	if ParseOrientation(string(o)) == Landscape {
		return "L"
	}
	return "P"
}

// PageSize represents a page size in points (1/72 inch)
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// PageSizeLetter is the US Letter page every export is printed on
var PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// PageMargins are shared by the preview and the PDF generator.
var PageMargins = Margins{Top: 36, Right: 36, Bottom: 36, Left: 36}

// Fixed vertical chrome, in points.
const (
	// PageHeaderHeight is the title band printed at the top of every page
	PageHeaderHeight = 40.0
	// TableHeaderHeight is the column header row of table layouts
	TableHeaderHeight = 20.0
	// LaneHeaderHeight is the band inserted before the first item of a lane
	LaneHeaderHeight = 18.0
	// LineHeightFactor converts a font size to a line height
	LineHeightFactor = 1.3
	// RuleWidth is the separator drawn under each table row
	RuleWidth = 1.0
)

// PageDimensions returns the page size for an orientation. Landscape swaps
// the portrait width and height.
func PageDimensions(o Orientation) PageSize {
	size := PageSizeLetter
	if ParseOrientation(string(o)) == Landscape {
		size.Width, size.Height = size.Height, size.Width
	}
	return size
}

// ContentSize returns the printable area inside the page margins
func ContentSize(o Orientation) Size {
	page := PageDimensions(o)
	return Size{
		Width:  page.Width - PageMargins.Left - PageMargins.Right,
		Height: page.Height - PageMargins.Top - PageMargins.Bottom,
	}
}

// GridArea returns the area available to cards once the header band is taken
func GridArea(o Orientation) Size {
	content := ContentSize(o)
	content.Height -= PageHeaderHeight
	return content
}
