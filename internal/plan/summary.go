package plan

import (
	"github.com/gompdf/shotpdf/internal/item"
)

// Summary table metrics, in points
const (
	SummaryTitleHeight = 20.0
	SummaryRowHeight   = 14.0
	SummaryGap         = 16.0
)

// SummaryRow is one counted name of a summary table
type SummaryRow struct {
	Label string
	Count int
}

// SummaryBlock is the part of a summary table that fits on one page
type SummaryBlock struct {
	Title string
	// Continued is set when the table started on an earlier page
	Continued bool
	Rows      []SummaryRow
}

// SummaryPage holds the summary blocks printed on one leading page
type SummaryPage struct {
	Blocks []SummaryBlock
}

type summaryTable struct {
	title string
	rows  []SummaryRow
}

// PaginateSummary cuts the lane and talent tables into pages of at most
// capacity points. A table title is never left alone at the bottom of a page.
func PaginateSummary(lanes []item.LaneCount, talent []item.TalentCount, capacity float64) []SummaryPage {
	var tables []summaryTable
	if len(lanes) > 0 {
		rows := make([]SummaryRow, len(lanes))
		for i, l := range lanes {
			rows[i] = SummaryRow{Label: l.Lane, Count: l.Count}
		}
		tables = append(tables, summaryTable{"Lane summary", rows})
	}
	if len(talent) > 0 {
		rows := make([]SummaryRow, len(talent))
		for i, t := range talent {
			rows[i] = SummaryRow{Label: t.Name, Count: t.Count}
		}
		tables = append(tables, summaryTable{"Talent summary", rows})
	}
	if len(tables) == 0 {
		return nil
	}

	pages := []SummaryPage{{}}
	y := 0.0
	newPage := func() {
		pages = append(pages, SummaryPage{})
		y = 0
	}
	open := func(title string, continued bool) *SummaryBlock {
		cur := &pages[len(pages)-1]
		cur.Blocks = append(cur.Blocks, SummaryBlock{Title: title, Continued: continued})
		y += SummaryTitleHeight
		return &cur.Blocks[len(cur.Blocks)-1]
	}

	for _, t := range tables {
		if y > 0 && y+SummaryTitleHeight+SummaryRowHeight > capacity {
			newPage()
		}
		block := open(t.title, false)
		for _, row := range t.rows {
			if len(block.Rows) > 0 && y+SummaryRowHeight > capacity {
				newPage()
				block = open(t.title, true)
			}
			block.Rows = append(block.Rows, row)
			y += SummaryRowHeight
		}
		y += SummaryGap
	}
	return pages
}
