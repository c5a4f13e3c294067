// Package theme holds the colours shared by the PDF and HTML renderers so
// the preview looks like the printed document.
package theme

// Colours as #RRGGBB
const (
	Text        = "#1f2328"
	Muted       = "#6e7781"
	Border      = "#d0d7de"
	Rule        = "#e4e7eb"
	Header      = "#f3f4f6"
	Lane        = "#e8eef7"
	Placeholder = "#eef0f2"
	PageFill    = "#ffffff"
)
