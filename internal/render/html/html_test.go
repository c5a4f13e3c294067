package html

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/plan"
)

func testShots(n int) []item.ExportableItem {
	out := make([]item.ExportableItem, n)
	for i := range out {
		out[i] = item.FromShot(item.Shot{
			ID:     fmt.Sprintf("s%d", i),
			Number: fmt.Sprint(i + 1),
			Name:   fmt.Sprintf("Look %d", i+1),
			Notes:  strings.Repeat("lighting note ", i%30),
			Lane:   []string{"Studio", "Beach"}[i/7%2],
		})
	}
	return out
}

// render writes the preview and parses it back
func render(t *testing.T, p *plan.Plan) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func TestTablePagesMatchPlan(t *testing.T) {
	cfg := plan.Config{Density: "compact", IncludeImages: true, RepeatHeader: true, GroupLanes: true}
	p, err := plan.Build(testShots(120), cfg)
	require.NoError(t, err)
	require.Greater(t, len(p.Pages), 1)

	doc := render(t, p)
	pages := findAll(doc, byClass(ClassPage))
	require.Len(t, pages, p.TotalPages())
	assert.Len(t, findAll(doc, byClass(ClassPageBreak)), p.TotalPages()-1)

	for i, page := range pages {
		assert.Equal(t, fmt.Sprint(i+1), attr(page, "data-page"))
		rows := findAll(page, func(n *html.Node) bool { return n.Data == "tr" && attr(n, "data-id") != "" })
		require.Len(t, rows, len(p.Pages[i].Items))
		assert.Equal(t, p.Pages[i].Items[0].ID, attr(rows[0], "data-id"))
		assert.Len(t, findAll(page, func(n *html.Node) bool { return n.Data == "thead" }), 1)
	}

	lanes := findAll(doc, byClass(ClassLane))
	assert.NotEmpty(t, lanes)
	assert.Equal(t, fmt.Sprint(len(p.Sections)), attr(lanes[0].FirstChild, "colspan"))
}

func TestHeaderOnlyOnFirstPage(t *testing.T) {
	cfg := plan.Config{Density: "standard", RepeatHeader: false}
	p, err := plan.Build(testShots(120), cfg)
	require.NoError(t, err)
	require.Greater(t, len(p.Pages), 1)

	heads := findAll(render(t, p), func(n *html.Node) bool { return n.Data == "thead" })
	assert.Len(t, heads, 1)
}

func TestGalleryCards(t *testing.T) {
	cfg := plan.Config{Density: "standard", LayoutMode: pagination.ModeGallery}
	p, err := plan.Build(testShots(25), cfg)
	require.NoError(t, err)

	doc := render(t, p)
	pages := findAll(doc, byClass(ClassPage))
	require.Len(t, pages, 3)

	cards := findAll(pages[0], byClass(ClassCard))
	require.Len(t, cards, 12)
	assert.Contains(t, attr(cards[0], "style"), "margin-right:12px")
	assert.Contains(t, attr(cards[2], "style"), "margin-right:0px")
	assert.Contains(t, attr(cards[11], "style"), "margin-bottom:0px")
	assert.Len(t, findAll(pages[2], byClass(ClassCard)), 1)
}

func TestSummaryPageComesFirst(t *testing.T) {
	cfg := plan.Config{Density: "standard", IncludeLaneSummary: true}
	p, err := plan.Build(testShots(5), cfg)
	require.NoError(t, err)

	pages := findAll(render(t, p), byClass(ClassPage))
	require.Len(t, pages, 2)
	assert.Len(t, findAll(pages[0], byClass("summary")), 1)
	assert.Equal(t, "2", attr(pages[1], "data-page"))
}

func TestLongSummarySpansPages(t *testing.T) {
	items := testShots(100)
	for i := range items {
		items[i].Talent = []string{fmt.Sprintf("Model %d", i)}
	}
	cfg := plan.Config{Density: "standard", IncludeTalentSummary: true}
	p, err := plan.Build(items, cfg)
	require.NoError(t, err)
	require.Len(t, p.Summary, 3)

	pages := findAll(render(t, p), byClass(ClassPage))
	require.Len(t, pages, p.TotalPages())
	for i := 0; i < 3; i++ {
		assert.Len(t, findAll(pages[i], byClass("summary")), 1)
	}
	assert.Equal(t, "4", attr(pages[3], "data-page"))
	titles := findAll(pages[1], func(n *html.Node) bool { return n.Data == "h2" })
	require.Len(t, titles, 1)
	assert.Equal(t, "Talent summary (continued)", titles[0].FirstChild.Data)
}
