// Package html renders an export plan as a static HTML preview. One CSS
// pixel stands for one PDF point, so each page box matches the printed page.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/plan"
	"github.com/gompdf/shotpdf/internal/render/theme"
	"github.com/gompdf/shotpdf/internal/sections"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names used by the preview markup
const (
	ClassPage      = "page"
	ClassPageBreak = "page-break"
	ClassCard      = "card"
	ClassLane      = "lane"
)

// Render writes the preview document for p to w
func Render(w io.Writer, p *plan.Plan) error {
	return html.Render(w, Document(p))
}

// Document builds the preview node tree
func Document(p *plan.Plan) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "en")
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), p.Config.Title))
	head.AppendChild(withText(element(atom.Style), stylesheet(p)))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	total := p.TotalPages()
	n := 0
	addPage := func(content *html.Node, number int) {
		if n > 0 {
			body.AppendChild(element(atom.Div, "class", ClassPageBreak))
		}
		n++
		page := element(atom.Section, "class", ClassPage, "data-page", strconv.Itoa(number))
		inner := element(atom.Div, "class", "content")
		inner.AppendChild(header(p, number, total))
		inner.AppendChild(content)
		page.AppendChild(inner)
		body.AppendChild(page)
	}

	for i, sp := range p.Summary {
		addPage(summary(sp), i+1)
	}
	for _, page := range p.Pages {
		var content *html.Node
		if p.IsGallery() {
			content = gallery(p, page)
		} else {
			content = table(p, page)
		}
		addPage(content, p.PageNumber(page))
	}
	return doc
}

func header(p *plan.Plan, number, total int) *html.Node {
	h := element(atom.Header, "class", "page-header")
	h.AppendChild(withText(element(atom.H1), p.Config.Title))
	if p.Config.Subtitle != "" {
		h.AppendChild(withText(element(atom.P, "class", "subtitle"), p.Config.Subtitle))
	}
	h.AppendChild(withText(element(atom.Span, "class", "page-number"), fmt.Sprintf("Page %d of %d", number, total)))
	return h
}

func summary(page plan.SummaryPage) *html.Node {
	div := element(atom.Div, "class", "summary")
	for _, block := range page.Blocks {
		title := block.Title
		if block.Continued {
			title += " (continued)"
		}
		div.AppendChild(withText(element(atom.H2), title))
		t := element(atom.Table)
		for _, r := range block.Rows {
			tr := element(atom.Tr)
			tr.AppendChild(withText(element(atom.Td), r.Label))
			tr.AppendChild(withText(element(atom.Td, "class", "count"), strconv.Itoa(r.Count)))
			t.AppendChild(tr)
		}
		div.AppendChild(t)
	}
	return div
}

func gallery(p *plan.Plan, page *pagination.Page) *html.Node {
	preset := p.Layout.Preset
	grid := element(atom.Div, "class", "grid")
	for i, it := range page.Items {
		pos := p.CardPosition(i)
		card := element(atom.Article, "class", ClassCard, "data-id", it.ID, "style", fmt.Sprintf(
			"width:%spx;height:%spx;margin-right:%spx;margin-bottom:%spx",
			px(preset.CardDimensions.Width), px(preset.CardDimensions.Height), px(pos.MarginRight), px(pos.MarginBottom),
		))

		for _, sec := range p.Sections {
			if sec.ID == sections.Image {
				card.AppendChild(imageBox(it, "card-image", fmt.Sprintf("height:%spx", px(preset.ImageHeight))))
				continue
			}
			if !preset.ShowAllFields && !sec.Required {
				continue
			}
			value := strings.TrimSpace(sec.Value(it))
			if value == "" {
				continue
			}
			if isTitleSection(sec) {
				card.AppendChild(withText(element(atom.H3, "class", "title"), value))
				continue
			}
			field := element(atom.P, "class", "field")
			field.AppendChild(withText(element(atom.Span, "class", "label"), sec.Label+": "))
			field.AppendChild(textNode(value))
			card.AppendChild(field)
		}
		grid.AppendChild(card)
	}
	return grid
}

func table(p *plan.Plan, page *pagination.Page) *html.Node {
	t := element(atom.Table, "class", "rows")

	colgroup := element(atom.Colgroup)
	for _, w := range p.ColumnWidths {
		colgroup.AppendChild(element(atom.Col, "style", "width:"+px(w)+"px"))
	}
	t.AppendChild(colgroup)

	if p.ShowsHeader(page) {
		thead := element(atom.Thead)
		tr := element(atom.Tr, "style", "height:"+px(layout.TableHeaderHeight)+"px")
		for _, sec := range p.Sections {
			tr.AppendChild(withText(element(atom.Th), sec.Label))
		}
		thead.AppendChild(tr)
		t.AppendChild(thead)
	}

	preset := p.Layout.Preset
	tbody := element(atom.Tbody)
	for _, row := range p.Rows(page) {
		if row.LaneHeader {
			tr := element(atom.Tr, "class", ClassLane, "style", "height:"+px(layout.LaneHeaderHeight)+"px")
			tr.AppendChild(withText(element(atom.Td, "colspan", strconv.Itoa(len(p.Sections))), item.LaneName(row.Item)))
			tbody.AppendChild(tr)
		}
		tr := element(atom.Tr, "data-id", row.Item.ID, "style", "height:"+px(row.Height)+"px")
		for _, sec := range p.Sections {
			td := element(atom.Td)
			switch {
			case sec.ID == sections.Image:
				if row.Item.HasImage() {
					td.AppendChild(imageBox(row.Item, "thumb", fmt.Sprintf(
						"height:%spx;width:%spx", px(preset.ThumbnailHeight), px(preset.ThumbnailHeight*4/3))))
				}
			case isTitleSection(sec):
				td.AppendChild(withText(element(atom.Strong), sec.Value(row.Item)))
			default:
				td.AppendChild(textNode(sec.Value(row.Item)))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	t.AppendChild(tbody)
	return t
}

// imageBox crops an item image the way the PDF does: cover the box, keep
// the focus point in view
func imageBox(it item.ExportableItem, class, style string) *html.Node {
	box := element(atom.Div, "class", class, "style", style)
	if !it.HasImage() {
		box.Attr = append(box.Attr, html.Attribute{Key: "data-empty", Val: "true"})
		return box
	}
	zoom := it.Image.Zoom
	if zoom < 1 {
		zoom = 1
	}
	box.AppendChild(element(atom.Img, "src", it.Image.Path, "alt", it.Title, "style", fmt.Sprintf(
		"object-position:%s%% %s%%;transform:scale(%s);transform-origin:%s%% %s%%",
		px(it.Image.FocusX), px(it.Image.FocusY), px(zoom), px(it.Image.FocusX), px(it.Image.FocusY),
	)))
	return box
}

func isTitleSection(sec sections.Section) bool {
	for _, f := range sec.Fields() {
		if f == item.FieldShotName || f == item.FieldProduct {
			return true
		}
	}
	return false
}

func stylesheet(p *plan.Plan) string {
	preset := p.Layout.Preset
	var b strings.Builder
	fmt.Fprintf(&b, "body{margin:0;background:#888;font-family:Helvetica,Arial,sans-serif;color:%s}", theme.Text)
	fmt.Fprintf(&b, ".page{position:relative;box-sizing:border-box;width:%spx;height:%spx;margin:16px auto;background:%s;overflow:hidden}",
		px(p.PageSize.Width), px(p.PageSize.Height), theme.PageFill)
	fmt.Fprintf(&b, ".content{position:absolute;left:%spx;top:%spx;width:%spx;height:%spx}",
		px(p.Margins.Left), px(p.Margins.Top), px(p.Content.Width), px(p.Content.Height))
	fmt.Fprintf(&b, ".page-header{position:relative;height:%spx;border-bottom:0.75px solid %s;box-sizing:border-box}", px(layout.PageHeaderHeight), theme.Rule)
	b.WriteString(".page-header h1{margin:0;font-size:14px;line-height:18px}")
	fmt.Fprintf(&b, ".subtitle{margin:0;font-size:9px;color:%s}", theme.Muted)
	fmt.Fprintf(&b, ".page-number{position:absolute;right:0;top:0;font-size:8px;line-height:18px;color:%s}", theme.Muted)
	b.WriteString(".grid{display:flex;flex-wrap:wrap;align-content:flex-start}")
	fmt.Fprintf(&b, ".card{box-sizing:border-box;overflow:hidden;border:0.5px solid %s;padding:%spx}", theme.Border, px(preset.CardPadding))
	fmt.Fprintf(&b, ".card-image,.thumb{overflow:hidden;background:%s}", theme.Placeholder)
	b.WriteString(".card-image img,.thumb img{width:100%;height:100%;object-fit:cover}")
	fmt.Fprintf(&b, ".title{margin:0;font-size:%spx;line-height:%spx}", px(preset.FontSize.Title), px(preset.TitleLineHeight()))
	fmt.Fprintf(&b, ".field{margin:0;font-size:%spx;line-height:%spx}", px(preset.FontSize.Label), px(preset.LineHeight()))
	fmt.Fprintf(&b, ".label{color:%s}", theme.Muted)
	fmt.Fprintf(&b, ".rows{table-layout:fixed;border-collapse:collapse;width:%spx;font-size:%spx;line-height:%spx}",
		px(p.Content.Width), px(preset.FontSize.Label), px(preset.LineHeight()))
	fmt.Fprintf(&b, ".rows th{background:%s;text-align:left;padding:0 %spx}", theme.Header, px(preset.CardPadding))
	fmt.Fprintf(&b, ".rows td{vertical-align:top;overflow:hidden;padding:%spx;border-bottom:%spx solid %s}",
		px(preset.CardPadding), px(layout.RuleWidth), theme.Rule)
	fmt.Fprintf(&b, ".rows tr.lane td{background:%s;font-weight:bold;padding:0 %spx;border:0}", theme.Lane, px(preset.CardPadding))
	fmt.Fprintf(&b, ".summary td{padding:2px 8px;border-bottom:1px solid %s}.summary .count{text-align:right}", theme.Rule)
	b.WriteString(".page-break{break-after:page;height:0}")
	b.WriteString("@media print{body{background:none}.page{margin:0}}")
	return b.String()
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(textNode(s))
	return n
}

// px formats a length without trailing zeros
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
