package pdf

import (
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/shotpdf/internal/render/theme"
)

type rgb [3]int

var (
	colorText        = parseColor(theme.Text)
	colorMuted       = parseColor(theme.Muted)
	colorBorder      = parseColor(theme.Border)
	colorRule        = parseColor(theme.Rule)
	colorHeader      = parseColor(theme.Header)
	colorLane        = parseColor(theme.Lane)
	colorPlaceholder = parseColor(theme.Placeholder)
)

func setText(doc *fpdf.Fpdf, c rgb) { doc.SetTextColor(c[0], c[1], c[2]) }
func setFill(doc *fpdf.Fpdf, c rgb) { doc.SetFillColor(c[0], c[1], c[2]) }
func setDraw(doc *fpdf.Fpdf, c rgb) { doc.SetDrawColor(c[0], c[1], c[2]) }

// parseColor parses a hex colour, falling back to black
func parseColor(value string) rgb {
	if r, g, b, ok := parseHexColor(value); ok {
		return rgb{r, g, b}
	}
	return rgb{0, 0, 0}
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
