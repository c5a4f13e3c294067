package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/shotpdf/internal/config"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/sections"
)

func newPDFCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf <items-file>",
		Short: "Render items as a PDF document",
		Example: `  # Gallery of cards in landscape
  shotpdf pdf shots.yaml --mode gallery --orientation landscape

  # Pull sheet with a page per gender
  shotpdf pdf pulls.yaml --page-break-strategy by-gender -o out/pull.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, input, err := a.loadItems(args)
			if err != nil {
				return err
			}
			out := outputPath(output, input, ".pdf")
			if out == "-" {
				return a.exporter(input).WritePDF(cmd.Context(), items, cmd.OutOrStdout())
			}
			return a.exporter(input).WritePDFFile(cmd.Context(), items, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: input name with .pdf)")
	return cmd
}

func newCSVCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv <items-file>",
		Short: "Write the visible sections as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, input, err := a.loadItems(args)
			if err != nil {
				return err
			}
			w, closeFn, err := openOutput(cmd, outputPath(output, input, ".csv"))
			if err != nil {
				return err
			}
			if err := a.exporter(input).WriteCSV(items, w); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: input name with .csv)")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview <items-file>",
		Short: "Write an HTML preview that paginates like the PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, input, err := a.loadItems(args)
			if err != nil {
				return err
			}
			out := outputPath(output, input, ".html")
			w, closeFn, err := openOutput(cmd, out)
			if err != nil {
				return err
			}
			if err := a.exporter(input).WritePreview(items, w); err != nil {
				_ = closeFn()
				return err
			}
			if out != "-" {
				slog.Info("preview written", "path", out)
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: input name with .html)")
	return cmd
}

type layoutReport struct {
	Kind         string          `yaml:"kind"`
	Items        int             `yaml:"items"`
	Mode         string          `yaml:"mode"`
	Density      string          `yaml:"density"`
	Orientation  string          `yaml:"orientation"`
	Columns      int             `yaml:"columns,omitempty"`
	Rows         int             `yaml:"rows,omitempty"`
	CardsPerPage int             `yaml:"cards_per_page,omitempty"`
	TotalPages   int             `yaml:"total_pages"`
	ShotsPerPage int             `yaml:"items_per_page"`
	BreakIndices []int           `yaml:"break_indices,flow"`
	Sections     []sectionReport `yaml:"sections"`
	Pages        []pageReport    `yaml:"pages"`
}

type sectionReport struct {
	ID    string  `yaml:"id"`
	Label string  `yaml:"label"`
	Flex  float64 `yaml:"flex"`
	Width float64 `yaml:"width"`
}

type pageReport struct {
	Number int `yaml:"number"`
	Start  int `yaml:"start"`
	Items  int `yaml:"items"`
}

func newLayoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layout <items-file>",
		Short: "Print the computed layout and page breaks as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, input, err := a.loadItems(args)
			if err != nil {
				return err
			}
			p, err := a.exporter(input).Plan(items)
			if err != nil {
				return err
			}

			r := layoutReport{
				Kind:         string(p.Kind),
				Items:        len(p.Items),
				Mode:         string(p.Config.LayoutMode),
				Density:      p.Config.Density,
				Orientation:  string(p.Config.Orientation),
				TotalPages:   p.TotalPages(),
				ShotsPerPage: p.Breaks.ShotsPerPage,
				BreakIndices: p.Breaks.BreakIndices,
			}
			if p.IsGallery() {
				r.Columns, r.Rows, r.CardsPerPage = p.Layout.Columns, p.Layout.Rows, p.Layout.CardsPerPage
			}
			for i, s := range p.Sections {
				r.Sections = append(r.Sections, sectionReport{ID: string(s.ID), Label: s.Label, Flex: s.Flex, Width: p.ColumnWidths[i]})
			}
			for _, pg := range p.Pages {
				r.Pages = append(r.Pages, pageReport{Number: p.PageNumber(pg), Start: pg.StartIndex, Items: len(pg.Items)})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(r); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

type presetReport struct {
	ID           string  `yaml:"id"`
	Label        string  `yaml:"label"`
	Columns      int     `yaml:"columns"`
	Rows         int     `yaml:"rows"`
	CardWidth    float64 `yaml:"card_width"`
	CardHeight   float64 `yaml:"card_height"`
	ImageHeight  float64 `yaml:"image_height"`
	Thumbnail    float64 `yaml:"thumbnail_height"`
	TitleFont    float64 `yaml:"title_font"`
	LabelFont    float64 `yaml:"label_font"`
	ShowAllField bool    `yaml:"show_all_fields"`
}

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List density presets and section presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := layout.ParseOrientation(a.cfg.Orientation)
			var out struct {
				Orientation string              `yaml:"orientation"`
				Densities   []presetReport      `yaml:"densities"`
				Sections    map[string][]string `yaml:"section_presets"`
			}
			out.Orientation = string(o)
			for _, p := range layout.Presets(o) {
				out.Densities = append(out.Densities, presetReport{
					ID:           string(p.ID),
					Label:        p.Label,
					Columns:      p.Columns,
					Rows:         p.RowsPerPage,
					CardWidth:    p.CardDimensions.Width,
					CardHeight:   p.CardDimensions.Height,
					ImageHeight:  p.ImageHeight,
					Thumbnail:    p.ThumbnailHeight,
					TitleFont:    p.FontSize.Title,
					LabelFont:    p.FontSize.Label,
					ShowAllField: p.ShowAllFields,
				})
			}
			out.Sections = map[string][]string{
				sections.ShotCatalog.Name(): sections.ShotCatalog.PresetNames(),
				sections.PullCatalog.Name(): sections.PullCatalog.PresetNames(),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			a.logger.Info("config written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
