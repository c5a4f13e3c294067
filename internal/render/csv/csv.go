// Package csv writes the visible sections of an export plan as RFC 4180 CSV
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gompdf/shotpdf/internal/plan"
	"github.com/gompdf/shotpdf/internal/sections"
)

// Render writes one header row of section labels and one row per item in
// plan order. The image section is written as the image reference.
func Render(w io.Writer, p *plan.Plan) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header(p.Sections)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, it := range p.Items {
		row := make([]string, len(p.Sections))
		for i, sec := range p.Sections {
			row[i] = strings.TrimSpace(sec.Value(it))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", it.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Header returns the column labels for a list of sections
func Header(secs []sections.Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.Label
	}
	return out
}
