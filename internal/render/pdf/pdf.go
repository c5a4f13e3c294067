// Package pdf draws an export plan with go-pdf/fpdf. Page breaks, card
// positions and row heights all come from the plan; the renderer never
// re-tiles anything.
package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/plan"
	"github.com/gompdf/shotpdf/internal/res"
	"github.com/gompdf/shotpdf/internal/sections"
	"github.com/gompdf/shotpdf/internal/text"
)

const bodyFont = layout.BodyFont

// Renderer handles rendering to PDF
type Renderer struct {
	// StrictImages fails the render when an image cannot be loaded instead
	// of drawing a placeholder
	StrictImages bool

	loader *res.Loader
	logger *slog.Logger

	// registered tracks images already added to the current document
	registered map[string]struct{}
}

// RenderOptions contains document metadata
type RenderOptions struct {
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// CreatedAt is stamped into the document info; zero means now
	CreatedAt time.Time
}

// NewRenderer creates a new PDF renderer
func NewRenderer(loader *res.Loader, logger *slog.Logger) *Renderer {
	if loader == nil {
		loader = res.NewLoader("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{loader: loader, logger: logger}
}

// Render writes the plan as a PDF document to w
func (r *Renderer) Render(ctx context.Context, p *plan.Plan, w io.Writer, options RenderOptions) error {
	r.registered = make(map[string]struct{})

	doc := fpdf.New(p.Config.Orientation.PDFCode(), "pt", layout.PageSizeLetter.Name, "")
	doc.SetMargins(p.Margins.Left, p.Margins.Top, p.Margins.Right)
	doc.SetAutoPageBreak(false, p.Margins.Bottom)
	doc.SetTitle(p.Config.Title, true)
	doc.SetSubject(options.Subject, true)
	doc.SetAuthor(options.Author, true)
	doc.SetKeywords(options.Keywords, true)
	doc.SetCreator(options.Creator, true)
	doc.SetProducer(options.Producer, true)
	if !options.CreatedAt.IsZero() {
		doc.SetCreationDate(options.CreatedAt)
	}

	total := p.TotalPages()
	r.logger.Debug("rendering pdf", "pages", total, "items", len(p.Items), "mode", p.Config.LayoutMode, "density", p.Config.Density)

	for i, sp := range p.Summary {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.AddPage()
		r.drawHeader(doc, p, i+1, total)
		r.drawSummary(doc, p, sp)
	}

	for _, page := range p.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.AddPage()
		r.drawHeader(doc, p, p.PageNumber(page), total)

		var err error
		if p.IsGallery() {
			err = r.drawGalleryPage(ctx, doc, p, page)
		} else {
			err = r.drawTablePage(ctx, doc, p, page)
		}
		if err != nil {
			return err
		}
		if doc.Err() {
			return doc.Error()
		}
	}

	return doc.Output(w)
}

// drawHeader prints the title band shared by every page
func (r *Renderer) drawHeader(doc *fpdf.Fpdf, p *plan.Plan, pageNum, total int) {
	left, top := p.Margins.Left, p.Margins.Top
	width := p.Content.Width

	setText(doc, colorText)
	doc.SetFont(bodyFont, "B", 14)
	doc.SetXY(left, top)
	doc.CellFormat(width*0.75, 18, fit(p.Config.Title, width*0.75, 14, true), "", 0, "LM", false, 0, "")

	setText(doc, colorMuted)
	doc.SetFont(bodyFont, "", 8)
	doc.SetXY(left+width*0.75, top)
	doc.CellFormat(width*0.25, 18, fmt.Sprintf("Page %d of %d", pageNum, total), "", 0, "RM", false, 0, "")

	if p.Config.Subtitle != "" {
		doc.SetFont(bodyFont, "", 9)
		doc.SetXY(left, top+18)
		doc.CellFormat(width, 12, fit(p.Config.Subtitle, width, 9, false), "", 0, "LM", false, 0, "")
	}

	setDraw(doc, colorRule)
	doc.SetLineWidth(0.75)
	y := top + layout.PageHeaderHeight - 4
	doc.Line(left, y, left+width, y)
}

func (r *Renderer) drawSummary(doc *fpdf.Fpdf, p *plan.Plan, page plan.SummaryPage) {
	x := p.Margins.Left
	y := p.Margins.Top + layout.PageHeaderHeight
	colW := p.Content.Width / 2

	for _, block := range page.Blocks {
		title := block.Title
		if block.Continued {
			title += " (continued)"
		}
		setText(doc, colorText)
		doc.SetFont(bodyFont, "B", 11)
		doc.SetXY(x, y)
		doc.CellFormat(colW, 18, title, "", 0, "LM", false, 0, "")
		y += plan.SummaryTitleHeight
		doc.SetFont(bodyFont, "", 9)
		for _, row := range block.Rows {
			doc.SetXY(x, y)
			doc.CellFormat(colW*0.8, plan.SummaryRowHeight, fit(row.Label, colW*0.8, 9, false), "B", 0, "LM", false, 0, "")
			doc.CellFormat(colW*0.2, plan.SummaryRowHeight, strconv.Itoa(row.Count), "B", 0, "RM", false, 0, "")
			y += plan.SummaryRowHeight
		}
		y += plan.SummaryGap
	}
}

func (r *Renderer) drawGalleryPage(ctx context.Context, doc *fpdf.Fpdf, p *plan.Plan, page *pagination.Page) error {
	originX := p.Margins.Left
	originY := p.Margins.Top + layout.PageHeaderHeight
	for i, it := range page.Items {
		pos := p.CardPosition(i)
		if err := r.drawCard(ctx, doc, p, it, originX+pos.X, originY+pos.Y); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawCard(ctx context.Context, doc *fpdf.Fpdf, p *plan.Plan, it item.ExportableItem, x, y float64) error {
	preset := p.Layout.Preset
	w, h := preset.CardDimensions.Width, preset.CardDimensions.Height
	pad := preset.CardPadding

	setDraw(doc, colorBorder)
	doc.SetLineWidth(0.5)
	doc.Rect(x, y, w, h, "D")

	cy := y + pad
	if showsImage(p) {
		if err := r.drawImage(ctx, doc, it.Image, x+pad, cy, w-2*pad, preset.ImageHeight); err != nil {
			return err
		}
		cy += preset.ImageHeight + pad/2
	}

	doc.ClipRect(x, y, w, h, false)
	defer doc.ClipEnd()

	bottom := y + h - pad
	inner := w - 2*pad
	for _, sec := range p.Sections {
		if sec.ID == sections.Image {
			continue
		}
		if !preset.ShowAllFields && !sec.Required {
			continue
		}
		value := strings.TrimSpace(sec.Value(it))
		if value == "" {
			continue
		}

		title := isTitleSection(sec)
		size, lineH := preset.FontSize.Label, preset.LineHeight()
		if title {
			size, lineH = preset.FontSize.Title, preset.TitleLineHeight()
		} else {
			value = sec.Label + ": " + value
		}
		maxLines := int((bottom - cy) / lineH)
		if maxLines < 1 {
			break
		}
		measure := layout.Measurer(size, title)
		lines := text.ClampLines(text.SplitTextToLines(value, inner, measure), maxLines, inner, measure)
		cy = drawLines(doc, lines, x+pad, cy, inner, size, lineH, title)
	}
	return nil
}

func (r *Renderer) drawTablePage(ctx context.Context, doc *fpdf.Fpdf, p *plan.Plan, page *pagination.Page) error {
	preset := p.Layout.Preset
	left := p.Margins.Left
	y := p.Margins.Top + layout.PageHeaderHeight
	bottom := p.Margins.Top + p.Content.Height

	if p.ShowsHeader(page) {
		r.drawTableHeader(doc, p, left, y)
		y += layout.TableHeaderHeight
	}

	for _, row := range p.Rows(page) {
		if row.LaneHeader {
			setFill(doc, colorLane)
			doc.Rect(left, y, p.Content.Width, layout.LaneHeaderHeight, "F")
			setText(doc, colorText)
			doc.SetFont(bodyFont, "B", preset.FontSize.Label+1)
			doc.SetXY(left+preset.CardPadding, y)
			doc.CellFormat(p.Content.Width-2*preset.CardPadding, layout.LaneHeaderHeight, text.ToWinAnsi(item.LaneName(row.Item)), "", 0, "LM", false, 0, "")
			y += layout.LaneHeaderHeight
		}

		h := row.Height
		visibleH := min(h, bottom-y)
		if visibleH <= 0 {
			r.logger.Warn("table row does not fit on page", "item", row.Item.ID, "page", page.Number)
			continue
		}
		if err := r.drawRow(ctx, doc, p, row.Item, left, y, visibleH); err != nil {
			return err
		}
		y += h
	}
	return nil
}

func (r *Renderer) drawTableHeader(doc *fpdf.Fpdf, p *plan.Plan, x, y float64) {
	preset := p.Layout.Preset
	setFill(doc, colorHeader)
	doc.Rect(x, y, p.Content.Width, layout.TableHeaderHeight, "F")
	setText(doc, colorText)
	doc.SetFont(bodyFont, "B", preset.FontSize.Label)
	for i, sec := range p.Sections {
		w := p.ColumnWidths[i]
		doc.SetXY(x+preset.CardPadding, y)
		doc.CellFormat(w-2*preset.CardPadding, layout.TableHeaderHeight, fit(sec.Label, w-2*preset.CardPadding, preset.FontSize.Label, true), "", 0, "LM", false, 0, "")
		x += w
	}
}

func (r *Renderer) drawRow(ctx context.Context, doc *fpdf.Fpdf, p *plan.Plan, it item.ExportableItem, x, y, h float64) error {
	preset := p.Layout.Preset
	pad := preset.CardPadding

	for i, sec := range p.Sections {
		w := p.ColumnWidths[i]
		inner := w - 2*pad
		if inner <= 0 {
			x += w
			continue
		}

		if sec.ID == sections.Image {
			if it.HasImage() {
				th := min(preset.ThumbnailHeight, h-2*pad)
				tw := min(inner, preset.ThumbnailHeight*4/3)
				if err := r.drawImage(ctx, doc, it.Image, x+pad, y+pad, tw, th); err != nil {
					return err
				}
			}
			x += w
			continue
		}

		title := isTitleSection(sec)
		size, lineH := preset.FontSize.Label, preset.LineHeight()
		if title {
			size, lineH = preset.FontSize.Title, preset.TitleLineHeight()
		}
		measure := layout.Measurer(size, title)
		maxLines := max(int((h-2*pad)/lineH), 1)
		lines := text.ClampLines(text.SplitTextToLines(sec.Value(it), inner, measure), maxLines, inner, measure)

		doc.ClipRect(x, y, w, h, false)
		drawLines(doc, lines, x+pad, y+pad, inner, size, lineH, title)
		doc.ClipEnd()
		x += w
	}

	setDraw(doc, colorRule)
	doc.SetLineWidth(layout.RuleWidth)
	doc.Line(p.Margins.Left, y+h-layout.RuleWidth/2, p.Margins.Left+p.Content.Width, y+h-layout.RuleWidth/2)
	return nil
}

// drawLines prints pre-wrapped lines and returns the y below the last one
func drawLines(doc *fpdf.Fpdf, lines []string, x, y, w, size, lineH float64, bold bool) float64 {
	style := ""
	if bold {
		style = "B"
	}
	setText(doc, colorText)
	doc.SetFont(bodyFont, style, size)
	for _, line := range lines {
		doc.SetXY(x, y)
		doc.CellFormat(w, lineH, text.ToWinAnsi(line), "", 0, "LM", false, 0, "")
		y += lineH
	}
	return y
}

// fit truncates s to width and converts it for the core fonts
func fit(s string, width, size float64, bold bool) string {
	return text.ToWinAnsi(text.Truncate(s, width, layout.Measurer(size, bold)))
}

func showsImage(p *plan.Plan) bool {
	if !p.Config.IncludeImages {
		return false
	}
	for _, sec := range p.Sections {
		if sec.ID == sections.Image {
			return true
		}
	}
	return false
}

func isTitleSection(sec sections.Section) bool {
	for _, f := range sec.Fields() {
		if f == item.FieldShotName || f == item.FieldProduct {
			return true
		}
	}
	return false
}
