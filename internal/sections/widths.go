package sections

// ColumnWidths splits total across sections proportionally to their flex
func ColumnWidths(secs []Section, total float64) []float64 {
	widths := make([]float64, len(secs))
	sum := 0.0
	for _, s := range secs {
		sum += s.Flex
	}
	if sum <= 0 {
		return widths
	}
	for i, s := range secs {
		widths[i] = total * s.Flex / sum
	}
	return widths
}

// FlexShare returns the fraction of the total width taken by the section
// showing field id, either directly or as a combined member. It returns 0
// when no visible section shows the field.
func FlexShare(secs []Section, id ID) float64 {
	sum := 0.0
	share := 0.0
	for _, s := range secs {
		sum += s.Flex
		if s.ID == id {
			share = s.Flex
			continue
		}
		for _, m := range s.Members {
			if m == id {
				share = s.Flex
			}
		}
	}
	if sum <= 0 {
		return 0
	}
	return share / sum
}

// FieldKeys lists the item fields shown by secs, combined members expanded
func FieldKeys(secs []Section) []string {
	var out []string
	for _, s := range secs {
		out = append(out, s.Fields()...)
	}
	return out
}
