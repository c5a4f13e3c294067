package item

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PullItem is a pull-sheet line: one product family/colour with the sizes
// to pull from inventory
type PullItem struct {
	ID          string    `yaml:"id"`
	FamilyName  string    `yaml:"familyName"`
	ColourName  string    `yaml:"colourName"`
	StyleNumber string    `yaml:"styleNumber"`
	Category    string    `yaml:"category"`
	Gender      string    `yaml:"gender"`
	Sizes       []SizeQty `yaml:"sizes"`
	Notes       string    `yaml:"notes"`
	Image       *ImageRef `yaml:"image"`
	Lane        string    `yaml:"lane"`
}

// SizeQty is the quantity requested for one size
type SizeQty struct {
	Size     string `yaml:"size"`
	Quantity int    `yaml:"quantity"`
}

// FromPullItem maps a pull-sheet line into an ExportableItem. Sizes are
// rendered as "S x2, M x1" and their quantities summed.
func FromPullItem(p PullItem) ExportableItem {
	title := strings.TrimSpace(p.FamilyName)
	if c := strings.TrimSpace(p.ColourName); c != "" {
		if title != "" {
			title += " - "
		}
		title += c
	}

	it := ExportableItem{
		ID:       p.ID,
		Kind:     KindPull,
		Number:   strings.TrimSpace(p.StyleNumber),
		Title:    title,
		Lane:     strings.TrimSpace(p.Lane),
		Category: strings.TrimSpace(p.Category),
		Gender:   strings.TrimSpace(p.Gender),
		Notes:    strings.TrimSpace(p.Notes),
		Image:    p.Image.toImage(),
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	sizes := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		if s.Quantity <= 0 {
			continue
		}
		sizes = append(sizes, fmt.Sprintf("%s x%d", strings.TrimSpace(s.Size), s.Quantity))
		it.Quantity += s.Quantity
	}
	it.Size = strings.Join(sizes, ", ")
	return it
}
