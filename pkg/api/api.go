// Package api is the public entry point of shotpdf. An Exporter turns shot
// or pull-sheet items into a PDF, an HTML preview or a CSV file. All three
// outputs are drawn from the same plan, so they paginate identically.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/plan"
	"github.com/gompdf/shotpdf/internal/render/csv"
	"github.com/gompdf/shotpdf/internal/render/html"
	"github.com/gompdf/shotpdf/internal/render/pdf"
	"github.com/gompdf/shotpdf/internal/res"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Producer is written into the PDF document info
const Producer = "shotpdf"

// ErrNoItems is returned when no item is left to export after filtering
var ErrNoItems = plan.ErrNoItems

// Plan is the computed layout of an export
type Plan = plan.Plan

// GenerationError reports a failed export step
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Exporter is the main API for exporting items
type Exporter struct {
	options Options
	loader  *res.Loader
	logger  *slog.Logger
}

// New creates an exporter with default options
func New() *Exporter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates an exporter with the specified options
func NewWithOptions(options Options) *Exporter {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loader := res.NewLoader(options.BaseDir)
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return &Exporter{
		options: options,
		loader:  loader,
		logger:  logger,
	}
}

// Options returns a copy of the exporter's options
func (e *Exporter) Options() Options {
	return e.options
}

// WithOptions returns a new exporter with the specified options
func (e *Exporter) WithOptions(options Options) *Exporter {
	return NewWithOptions(options)
}

// WithOption returns a new exporter with the specified options applied
func (e *Exporter) WithOption(opts ...Option) *Exporter {
	newOptions := e.options
	for _, opt := range opts {
		opt(&newOptions)
	}
	return NewWithOptions(newOptions)
}

// Plan computes the layout of an export without rendering it
func (e *Exporter) Plan(items []Item) (*Plan, error) {
	o := e.options
	p, err := plan.Build(items, plan.Config{
		Title:                o.Title,
		Subtitle:             o.Subtitle,
		Orientation:          o.PageOrientation,
		Density:              string(o.Density),
		LayoutMode:           o.LayoutMode,
		Fields:               o.Fields,
		SectionStates:        o.SectionStates,
		SectionPreset:        o.SectionPreset,
		IncludeImages:        o.IncludeImages,
		RepeatHeader:         o.RepeatHeader,
		GroupLanes:           o.GroupLanes,
		IncludeLaneSummary:   o.IncludeLaneSummary,
		IncludeTalentSummary: o.IncludeTalentSummary,
		Strategy:             o.PageBreakStrategy,
		Filter:               o.Filter,
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("export planned",
		"kind", p.Kind,
		"items", len(p.Items),
		"pages", p.TotalPages(),
		"mode", p.Config.LayoutMode,
		"density", p.Config.Density,
		"orientation", p.Config.Orientation,
		"sections", len(p.Sections),
	)
	return p, nil
}

// WritePDF renders items as a PDF document to w
func (e *Exporter) WritePDF(ctx context.Context, items []Item, w io.Writer) error {
	p, err := e.Plan(items)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	renderer := pdf.NewRenderer(e.loader, e.logger)
	renderer.StrictImages = e.options.StrictImages
	err = renderer.Render(ctx, p, &buf, pdf.RenderOptions{
		Author:   e.options.Author,
		Subject:  e.options.Subject,
		Keywords: e.options.Keywords,
		Creator:  Producer,
		Producer: Producer,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return &GenerationError{Op: "render pdf", Err: err}
	}

	if e.options.VerifyPageCount {
		e.verifyPageCount(bytes.NewReader(buf.Bytes()), p.TotalPages())
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &GenerationError{Op: "write pdf", Err: err}
	}
	return nil
}

// PDFBytes renders items as PDF bytes
func (e *Exporter) PDFBytes(ctx context.Context, items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WritePDF(ctx, items, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePDFFile renders items to a PDF file, creating its directory
func (e *Exporter) WritePDFFile(ctx context.Context, items []Item, outputPath string) error {
	data, err := e.PDFBytes(ctx, items)
	if err != nil {
		return err
	}
	if err := writeFile(outputPath, data); err != nil {
		return &GenerationError{Op: "write pdf", Err: err}
	}
	e.logger.Info("pdf written", "path", outputPath, "bytes", len(data))
	return nil
}

// WriteCSV writes the visible sections of items as CSV
func (e *Exporter) WriteCSV(items []Item, w io.Writer) error {
	p, err := e.Plan(items)
	if err != nil {
		return err
	}
	if err := csv.Render(w, p); err != nil {
		return &GenerationError{Op: "write csv", Err: err}
	}
	return nil
}

// WritePreview writes the HTML preview of items
func (e *Exporter) WritePreview(items []Item, w io.Writer) error {
	p, err := e.Plan(items)
	if err != nil {
		return err
	}
	if err := html.Render(w, p); err != nil {
		return &GenerationError{Op: "write preview", Err: err}
	}
	return nil
}

// CountPages returns the number of pages of a PDF document
func CountPages(rs io.ReadSeeker) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return pdfapi.PageCount(rs, conf)
}

// verifyPageCount logs when the generated document and the plan disagree
func (e *Exporter) verifyPageCount(rs io.ReadSeeker, want int) {
	got, err := CountPages(rs)
	if err != nil {
		e.logger.Warn("could not verify pdf page count", "error", err)
		return
	}
	if got != want {
		e.logger.Warn("pdf page count differs from plan", "pdf", got, "plan", want)
		return
	}
	e.logger.Debug("pdf page count verified", "pages", got)
}

// LoadItems reads shots or pull items from a YAML or JSON file
func LoadItems(path string) ([]Item, error) {
	return item.LoadFile(path)
}

// FromShots converts shot records to exportable items
func FromShots(shots []Shot) []Item {
	out := make([]Item, len(shots))
	for i, s := range shots {
		out[i] = item.FromShot(s)
	}
	return out
}

// FromPullItems converts pull-sheet records to exportable items
func FromPullItems(pulls []PullItem) []Item {
	out := make([]Item, len(pulls))
	for i, p := range pulls {
		out[i] = item.FromPullItem(p)
	}
	return out
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
