package layout

import (
	"math"
	"sync"
	"unicode/utf8"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/shotpdf/internal/text"
)

// Singleton PDF instance for text measurement using go-pdf/fpdf metrics
var (
	measureOnce sync.Once
	measurePDF  *fpdf.Fpdf
	measureMu   sync.Mutex
)

// referenceSample approximates the letter mix of notes and names. Its
// average glyph width stands in for real line fitting when estimating how
// many characters fit on a line.
const referenceSample = "The quick brown fox jumps over the lazy dog. Wardrobe 2, Look 14 - hero shot at dusk"

// BodyFont is the core font used for every export
const BodyFont = "Helvetica"

func initMeasurePDF() {
	measurePDF = fpdf.New("P", "pt", "Letter", "")
	measurePDF.SetFont(BodyFont, "", 12)
}

// MeasureTextWidth returns the width of s in points using core font metrics
func MeasureTextWidth(s string, fontSize float64, bold bool) float64 {
	if s == "" || fontSize <= 0 {
		return 0
	}
	measureOnce.Do(initMeasurePDF)
	measureMu.Lock()
	defer measureMu.Unlock()
	style := ""
	if bold {
		style = "B"
	}
	measurePDF.SetFont(BodyFont, style, fontSize)
	return measurePDF.GetStringWidth(text.ToWinAnsi(s))
}

// Measurer returns a text.MeasureFunc bound to a font size
func Measurer(fontSize float64, bold bool) text.MeasureFunc {
	return func(s string) float64 {
		return MeasureTextWidth(s, fontSize, bold)
	}
}

// AverageCharWidth returns the mean glyph advance of the reference sample
func AverageCharWidth(fontSize float64) float64 {
	n := utf8.RuneCountInString(referenceSample)
	return MeasureTextWidth(referenceSample, fontSize, false) / float64(n)
}

// EstimatedCharsPerLine returns how many characters are expected to fit in
// width at fontSize. It is never less than 1.
func EstimatedCharsPerLine(width, fontSize float64) int {
	cw := AverageCharWidth(fontSize)
	if cw <= 0 || width <= 0 {
		return 1
	}
	n := int(math.Floor(width / cw))
	if n < 1 {
		return 1
	}
	return n
}
