package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gompdf/shotpdf/internal/config"
	"github.com/gompdf/shotpdf/pkg/api"
)

// app carries state shared by every subcommand
type app struct {
	cfgFile string
	verbose bool

	lanes      []string
	talent     []string
	categories []string
	query      string
	show       []string
	hide       []string

	loader *config.Loader
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{loader: config.NewLoader(), logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "shotpdf",
		Short: "Export shot lists and pull sheets as PDF, HTML preview or CSV",
		Long: `shotpdf lays out shot-list and pull-sheet items on US Letter pages.

Items are read from a YAML or JSON file. Settings come from flags,
SHOTPDF_* environment variables and config.yaml (./ or $HOME/.shotpdf).
The PDF, the HTML preview and the CSV export share one layout, so the
preview shows exactly the pages the PDF will print.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = config.LoadDotEnv()

			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(a.logger)

			if err := a.loader.ReadFile(a.cfgFile); err != nil {
				return err
			}
			if err := a.loader.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := a.loader.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if used := a.loader.ConfigFileUsed(); used != "" {
				a.logger.Debug("config loaded", "file", used)
			}
			a.cfg = cfg
			return nil
		},
	}

	d := config.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./config.yaml or $HOME/.shotpdf/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("title", d.Title, "document title")
	pf.String("subtitle", d.Subtitle, "line printed under the title")
	pf.StringP("orientation", "O", d.Orientation, "page orientation: portrait or landscape")
	pf.StringP("density", "d", d.Density, "density preset: compact, standard or detailed")
	pf.StringP("mode", "m", d.Mode, "layout mode: table or gallery")
	pf.String("section-preset", d.SectionPreset, "section preset: minimal, standard or full")
	pf.String("page-break-strategy", d.PageBreakStrategy, "page breaks: auto, by-gender or by-category")
	pf.Bool("include-images", d.IncludeImages, "draw item images")
	pf.Bool("repeat-header", d.RepeatHeader, "repeat the table header on every page")
	pf.Bool("group-lanes", d.GroupLanes, "print a header before each lane")
	pf.Bool("lane-summary", d.LaneSummary, "add a lane summary page")
	pf.Bool("talent-summary", d.TalentSummary, "add a talent summary page")
	pf.Bool("strict-images", d.StrictImages, "fail when an image cannot be loaded")
	pf.Bool("verify-page-count", d.VerifyPageCount, "check the generated PDF page count")
	pf.String("author", d.Author, "PDF author")
	pf.String("subject", d.Subject, "PDF subject")
	pf.String("keywords", d.Keywords, "PDF keywords")
	pf.StringSlice("resource-paths", nil, "directories searched for images")

	pf.StringSliceVar(&a.lanes, "lane", nil, "only export items in these lanes")
	pf.StringSliceVar(&a.talent, "talent", nil, "only export items featuring this talent")
	pf.StringSliceVar(&a.categories, "category", nil, "only export items in these categories")
	pf.StringVarP(&a.query, "query", "q", "", "only export items whose number, title or notes match")
	pf.StringSliceVar(&a.show, "show", nil, "show these fields")
	pf.StringSliceVar(&a.hide, "hide", nil, "hide these fields")

	cmd.AddCommand(
		newPDFCmd(a),
		newCSVCmd(a),
		newPreviewCmd(a),
		newLayoutCmd(a),
		newPresetsCmd(a),
		newInitConfigCmd(a),
	)
	return cmd
}

// exporter builds an exporter for an items file. Relative image paths
// resolve against the file's directory.
func (a *app) exporter(itemsPath string) *api.Exporter {
	opts := a.cfg.ExportOptions()
	opts = append(opts,
		api.WithLogger(a.logger),
		api.WithBaseDir(filepath.Dir(itemsPath)),
	)

	f := api.Filter{
		Lanes:      a.cfg.Filter.Lanes,
		Talent:     a.cfg.Filter.Talent,
		Categories: a.cfg.Filter.Categories,
		Query:      a.cfg.Filter.Query,
	}
	if len(a.lanes) > 0 {
		f.Lanes = a.lanes
	}
	if len(a.talent) > 0 {
		f.Talent = a.talent
	}
	if len(a.categories) > 0 {
		f.Categories = a.categories
	}
	if a.query != "" {
		f.Query = a.query
	}
	opts = append(opts, api.WithFilter(f))

	for _, key := range a.show {
		opts = append(opts, api.WithField(strings.TrimSpace(key), true))
	}
	for _, key := range a.hide {
		opts = append(opts, api.WithField(strings.TrimSpace(key), false))
	}

	return api.NewWithOptions(api.DefaultOptions()).WithOption(opts...)
}

// loadItems reads the items file named by the first argument
func (a *app) loadItems(args []string) ([]api.Item, string, error) {
	path := args[0]
	items, err := api.LoadItems(path)
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug("items loaded", "file", path, "count", len(items))
	return items, path, nil
}

// outputPath defaults to the input path with a new extension
func outputPath(flag, input, ext string) string {
	if flag != "" {
		return flag
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// openOutput opens path for writing; "-" is stdout
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
