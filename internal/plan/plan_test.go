package plan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/sections"
)

func testShots(n int) []item.ExportableItem {
	out := make([]item.ExportableItem, n)
	for i := range out {
		out[i] = item.FromShot(item.Shot{
			ID:     fmt.Sprintf("s%d", i),
			Number: fmt.Sprint(i + 1),
			Name:   fmt.Sprintf("Look %d", i+1),
			Lane:   []string{"Studio", "Beach"}[i/5%2],
			Talent: []item.TalentRef{{Name: "Ana"}},
		})
	}
	return out
}

func defaultConfig() Config {
	return Config{
		Orientation:   layout.Portrait,
		Density:       "standard",
		LayoutMode:    pagination.ModeTable,
		IncludeImages: true,
		RepeatHeader:  true,
	}
}

func sectionIDs(secs []sections.Section) []sections.ID {
	out := make([]sections.ID, len(secs))
	for i, s := range secs {
		out[i] = s.ID
	}
	return out
}

func TestBuildNoItems(t *testing.T) {
	_, err := Build(nil, defaultConfig())
	assert.ErrorIs(t, err, ErrNoItems)

	cfg := defaultConfig()
	cfg.Filter = item.Filter{Lanes: []string{"Moon"}}
	_, err = Build(testShots(3), cfg)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestBuildGallery(t *testing.T) {
	cfg := defaultConfig()
	cfg.LayoutMode = "GALLERY"
	cfg.Density = "unknown"

	p, err := Build(testShots(25), cfg)
	require.NoError(t, err)
	assert.True(t, p.IsGallery())
	assert.Equal(t, "standard", p.Config.Density)
	assert.Equal(t, "Shot List", p.Config.Title)
	assert.Equal(t, 12, p.Layout.CardsPerPage)
	assert.Len(t, p.Pages, 3)
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, []int{12, 24}, p.Breaks.BreakIndices)
	assert.Equal(t, layout.CardPositionFor(5, p.Layout), p.CardPosition(5))
}

func TestBuildTable(t *testing.T) {
	p, err := Build(testShots(8), defaultConfig())
	require.NoError(t, err)
	assert.False(t, p.IsGallery())
	require.Len(t, p.Pages, 1)
	assert.Len(t, p.ColumnWidths, len(p.Sections))
	assert.Equal(t, p.Content, layout.ContentSize(layout.Portrait))
	assert.True(t, p.ShowsHeader(p.Pages[0]))
	assert.Nil(t, p.Lanes)
	assert.False(t, p.HasSummaryPage())
	assert.Equal(t, 1, p.PageNumber(p.Pages[0]))
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	items := testShots(6)
	items[0].Gender, items[1].Gender, items[2].Gender = "Men", "Women", "Men"
	cfg := defaultConfig()
	cfg.Strategy = item.StrategyByGender

	p, err := Build(items, cfg)
	require.NoError(t, err)
	assert.Equal(t, "s0", p.Items[0].ID)
	assert.Equal(t, "s2", p.Items[1].ID)
	assert.Equal(t, "s1", items[1].ID)
}

func TestSummaryPage(t *testing.T) {
	cfg := defaultConfig()
	cfg.IncludeLaneSummary = true
	cfg.IncludeTalentSummary = true

	p, err := Build(testShots(12), cfg)
	require.NoError(t, err)
	assert.True(t, p.HasSummaryPage())
	assert.Equal(t, len(p.Pages)+1, p.TotalPages())
	assert.Equal(t, 2, p.PageNumber(p.Pages[0]))
	assert.Equal(t, []item.LaneCount{{Lane: "Studio", Count: 7}, {Lane: "Beach", Count: 5}}, p.Lanes)
	assert.Equal(t, []item.TalentCount{{Name: "Ana", Count: 12}}, p.Talent)
	require.Len(t, p.Summary, 1)
	assert.Equal(t, "Lane summary", p.Summary[0].Blocks[0].Title)
	assert.Equal(t, []SummaryRow{{Label: "Ana", Count: 12}}, p.Summary[0].Blocks[1].Rows)
}

func summaryHeight(page SummaryPage) float64 {
	h := 0.0
	for i, b := range page.Blocks {
		if i > 0 {
			h += SummaryGap
		}
		h += SummaryTitleHeight + float64(len(b.Rows))*SummaryRowHeight
	}
	return h
}

func TestSummaryPagination(t *testing.T) {
	t.Run("long talent list spans pages", func(t *testing.T) {
		items := testShots(120)
		for i := range items {
			items[i].Lane = fmt.Sprintf("Lane %d", i%60)
			items[i].Talent = []string{fmt.Sprintf("Model %03d", i)}
		}
		cfg := defaultConfig()
		cfg.IncludeLaneSummary = true
		cfg.IncludeTalentSummary = true

		p, err := Build(items, cfg)
		require.NoError(t, err)
		require.Greater(t, len(p.Summary), 1)
		assert.Equal(t, len(p.Pages)+len(p.Summary), p.TotalPages())
		assert.Equal(t, len(p.Summary)+1, p.PageNumber(p.Pages[0]))

		capacity := pagination.PageCapacity(layout.Portrait)
		lanes, talent := 0, 0
		for _, page := range p.Summary {
			assert.LessOrEqual(t, summaryHeight(page), capacity)
			for _, b := range page.Blocks {
				require.NotEmpty(t, b.Rows)
				if b.Title == "Lane summary" {
					lanes += len(b.Rows)
				} else {
					talent += len(b.Rows)
				}
			}
		}
		assert.Equal(t, 60, lanes)
		assert.Equal(t, 120, talent)
		assert.True(t, p.Summary[len(p.Summary)-1].Blocks[0].Continued)
	})

	t.Run("landscape fits fewer rows", func(t *testing.T) {
		talent := make([]item.TalentCount, 80)
		for i := range talent {
			talent[i] = item.TalentCount{Name: fmt.Sprint(i), Count: 1}
		}
		portrait := PaginateSummary(nil, talent, pagination.PageCapacity(layout.Portrait))
		landscape := PaginateSummary(nil, talent, pagination.PageCapacity(layout.Landscape))
		assert.Len(t, portrait, 2)
		assert.Greater(t, len(landscape), len(portrait))
		assert.False(t, portrait[0].Blocks[0].Continued)
		assert.True(t, portrait[1].Blocks[0].Continued)
	})

	t.Run("title moves with its first row", func(t *testing.T) {
		lanes := make([]item.LaneCount, 47)
		for i := range lanes {
			lanes[i] = item.LaneCount{Lane: fmt.Sprint(i), Count: 1}
		}
		pages := PaginateSummary(lanes, []item.TalentCount{{Name: "Ana", Count: 1}}, 680)
		require.Len(t, pages, 2)
		require.Len(t, pages[0].Blocks, 1)
		assert.Equal(t, "Talent summary", pages[1].Blocks[0].Title)
		assert.False(t, pages[1].Blocks[0].Continued)
	})

	t.Run("nothing to summarize", func(t *testing.T) {
		assert.Nil(t, PaginateSummary(nil, nil, 680))
	})
}

func TestResolveStates(t *testing.T) {
	t.Run("images off hides the image section", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.IncludeImages = false
		p, err := Build(testShots(2), cfg)
		require.NoError(t, err)
		assert.NotContains(t, sectionIDs(p.Sections), sections.Image)
		assert.NotContains(t, p.BreakOptions.VisibleFields, item.FieldImage)
	})

	t.Run("preset then fields", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.SectionPreset = sections.PresetMinimal
		cfg.Fields = map[string]bool{"notes": true}
		states := ResolveStates(sections.ShotCatalog, cfg)
		assert.Equal(t,
			[]sections.ID{sections.ShotCombined, sections.Image, sections.Notes},
			sectionIDs(sections.ShotCatalog.VisibleSections(states)),
		)
	})

	t.Run("pull catalog for pull items", func(t *testing.T) {
		items := []item.ExportableItem{item.FromPullItem(item.PullItem{FamilyName: "Tee"})}
		p, err := Build(items, defaultConfig())
		require.NoError(t, err)
		assert.Same(t, sections.PullCatalog, p.Catalog)
		assert.Equal(t, "Pull Sheet", p.Config.Title)
	})
}

func TestRows(t *testing.T) {
	cfg := defaultConfig()
	cfg.GroupLanes = true
	cfg.RepeatHeader = false

	p, err := Build(testShots(10), cfg)
	require.NoError(t, err)
	rows := p.Rows(p.Pages[0])
	require.Len(t, rows, 10)

	var headers []int
	for _, r := range rows {
		assert.Positive(t, r.Height)
		if r.LaneHeader {
			headers = append(headers, r.Index)
		}
	}
	assert.Equal(t, []int{0, 5}, headers)
}
