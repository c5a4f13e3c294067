package layout

// LayoutResult is the grid computed for one export. It is a pure function of
// the density id, the item count and the orientation.
type LayoutResult struct {
	Preset       DensityPreset
	Columns      int
	Rows         int
	CardsPerPage int
	TotalPages   int
	Gap          Gap
}

// CardPosition places one card inside the grid area of its page
type CardPosition struct {
	Page   int
	Column int
	Row    int
	// X and Y are offsets from the top-left corner of the grid area
	X float64
	Y float64

	MarginRight  float64
	MarginBottom float64
}

// CalculateLayout computes columns, rows and page count for itemCount cards.
// Pages fill left-to-right, top-to-bottom; the last page may be short.
// TotalPages is at least 1, even for zero items.
func CalculateLayout(density string, itemCount int, o Orientation) LayoutResult {
	preset := ResolvePreset(density, o)

	cardsPerPage := preset.Columns * preset.RowsPerPage
	totalPages := 1
	if cardsPerPage > 0 && itemCount > 0 {
		totalPages = (itemCount + cardsPerPage - 1) / cardsPerPage
	}

	return LayoutResult{
		Preset:       preset,
		Columns:      preset.Columns,
		Rows:         preset.RowsPerPage,
		CardsPerPage: cardsPerPage,
		TotalPages:   totalPages,
		Gap:          preset.Gap,
	}
}

// CardPositionFor returns the placement of the card at cardIndex. The last
// column of a row has no right margin and the last row of a page has no
// bottom margin, so gaps never double up at the grid edges.
func CardPositionFor(cardIndex int, l LayoutResult) CardPosition {
	if l.Columns <= 0 || l.CardsPerPage <= 0 {
		return CardPosition{}
	}
	if cardIndex < 0 {
		cardIndex = 0
	}

	onPage := cardIndex % l.CardsPerPage
	col := cardIndex % l.Columns
	row := onPage / l.Columns

	pos := CardPosition{
		Page:         cardIndex / l.CardsPerPage,
		Column:       col,
		Row:          row,
		X:            float64(col) * (l.Preset.CardDimensions.Width + l.Gap.Horizontal),
		Y:            float64(row) * (l.Preset.CardDimensions.Height + l.Gap.Vertical),
		MarginRight:  l.Gap.Horizontal,
		MarginBottom: l.Gap.Vertical,
	}
	if col == l.Columns-1 {
		pos.MarginRight = 0
	}
	if row == l.Rows-1 {
		pos.MarginBottom = 0
	}
	return pos
}
