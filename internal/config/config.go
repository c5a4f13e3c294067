// Package config loads export settings from a config file, SHOTPDF_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/internal/pagination"
	"github.com/gompdf/shotpdf/internal/sections"
	"github.com/gompdf/shotpdf/pkg/api"
)

// EnvPrefix prefixes every environment variable read by the loader
const EnvPrefix = "SHOTPDF"

// Config is the export configuration as read from disk and the environment
type Config struct {
	Title             string                    `mapstructure:"title" yaml:"title"`
	Subtitle          string                    `mapstructure:"subtitle" yaml:"subtitle"`
	Orientation       string                    `mapstructure:"orientation" yaml:"orientation"`
	Density           string                    `mapstructure:"density" yaml:"density"`
	Mode              string                    `mapstructure:"mode" yaml:"mode"`
	SectionPreset     string                    `mapstructure:"section_preset" yaml:"section_preset"`
	Fields            map[string]bool           `mapstructure:"fields" yaml:"fields,omitempty"`
	Sections          map[string]sections.State `mapstructure:"sections" yaml:"sections,omitempty"`
	IncludeImages     bool                      `mapstructure:"include_images" yaml:"include_images"`
	RepeatHeader      bool                      `mapstructure:"repeat_header" yaml:"repeat_header"`
	GroupLanes        bool                      `mapstructure:"group_lanes" yaml:"group_lanes"`
	LaneSummary       bool                      `mapstructure:"lane_summary" yaml:"lane_summary"`
	TalentSummary     bool                      `mapstructure:"talent_summary" yaml:"talent_summary"`
	PageBreakStrategy string                    `mapstructure:"page_break_strategy" yaml:"page_break_strategy"`
	Filter            Filter                    `mapstructure:"filter" yaml:"filter"`
	ResourcePaths     []string                  `mapstructure:"resource_paths" yaml:"resource_paths"`
	StrictImages      bool                      `mapstructure:"strict_images" yaml:"strict_images"`
	VerifyPageCount   bool                      `mapstructure:"verify_page_count" yaml:"verify_page_count"`
	Author            string                    `mapstructure:"author" yaml:"author"`
	Subject           string                    `mapstructure:"subject" yaml:"subject"`
	Keywords          string                    `mapstructure:"keywords" yaml:"keywords"`
}

// Filter mirrors item.Filter with config tags
type Filter struct {
	Lanes      []string `mapstructure:"lanes" yaml:"lanes,omitempty"`
	Talent     []string `mapstructure:"talent" yaml:"talent,omitempty"`
	Categories []string `mapstructure:"categories" yaml:"categories,omitempty"`
	Query      string   `mapstructure:"query" yaml:"query,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Orientation:       string(layout.Portrait),
		Density:           string(layout.DefaultDensity),
		Mode:              string(pagination.ModeTable),
		IncludeImages:     true,
		RepeatHeader:      true,
		PageBreakStrategy: string(item.StrategyAuto),
		VerifyPageCount:   true,
	}
}

// Loader wraps a viper instance configured for shotpdf
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment binding set up
func NewLoader() *Loader {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("title", d.Title)
	v.SetDefault("subtitle", d.Subtitle)
	v.SetDefault("orientation", d.Orientation)
	v.SetDefault("density", d.Density)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("section_preset", d.SectionPreset)
	v.SetDefault("include_images", d.IncludeImages)
	v.SetDefault("repeat_header", d.RepeatHeader)
	v.SetDefault("group_lanes", d.GroupLanes)
	v.SetDefault("lane_summary", d.LaneSummary)
	v.SetDefault("talent_summary", d.TalentSummary)
	v.SetDefault("page_break_strategy", d.PageBreakStrategy)
	v.SetDefault("strict_images", d.StrictImages)
	v.SetDefault("verify_page_count", d.VerifyPageCount)
	v.SetDefault("author", d.Author)
	v.SetDefault("subject", d.Subject)
	v.SetDefault("keywords", d.Keywords)
	v.SetDefault("filter.query", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Viper exposes the underlying instance
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// LoadDotEnv reads KEY=VALUE pairs from .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ReadFile reads cfgFile, or config.yaml from the working directory or
// $HOME/.shotpdf when cfgFile is empty. A missing default file is not an
// error.
func (l *Loader) ReadFile(cfgFile string) error {
	if cfgFile != "" {
		l.v.SetConfigFile(cfgFile)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("$HOME/.shotpdf")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// ConfigFileUsed returns the path of the file read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// BindFlags lets command-line flags override file and environment values.
// Flag names use dashes; keys use underscores.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isConfigKey(key) {
			return
		}
		if bindErr := l.v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

func isConfigKey(key string) bool {
	switch key {
	case "title", "subtitle", "orientation", "density", "mode", "section_preset",
		"include_images", "repeat_header", "group_lanes", "lane_summary", "talent_summary",
		"page_break_strategy", "strict_images", "verify_page_count", "author", "subject",
		"keywords", "resource_paths":
		return true
	}
	return false
}

// Load unmarshals the current settings
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from cfgFile (or the default locations) and the
// environment
func Load(cfgFile string) (*Config, error) {
	l := NewLoader()
	if err := l.ReadFile(cfgFile); err != nil {
		return nil, err
	}
	return l.Load()
}

// Validate rejects values that cannot be mapped to an export setting
func (c *Config) Validate() error {
	if c.Density != "" && !layout.IsKnownDensity(c.Density) {
		return &layout.ConfigurationError{Field: "density", Value: c.Density, Reason: "expected one of " + joinDensities()}
	}
	switch strings.ToLower(c.Orientation) {
	case "", string(layout.Portrait), string(layout.Landscape):
	default:
		return &layout.ConfigurationError{Field: "orientation", Value: c.Orientation, Reason: "expected portrait or landscape"}
	}
	switch strings.ToLower(c.Mode) {
	case "", string(pagination.ModeTable), string(pagination.ModeGallery):
	default:
		return &layout.ConfigurationError{Field: "mode", Value: c.Mode, Reason: "expected table or gallery"}
	}
	switch item.BreakStrategy(strings.ToLower(c.PageBreakStrategy)) {
	case "", item.StrategyAuto, item.StrategyByGender, item.StrategyByCategory:
	default:
		return &layout.ConfigurationError{Field: "page_break_strategy", Value: c.PageBreakStrategy, Reason: "expected auto, by-gender or by-category"}
	}
	return nil
}

func joinDensities() string {
	ds := layout.Densities()
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = string(d)
	}
	return strings.Join(out, ", ")
}

// ExportOptions converts the configuration to exporter options
func (c *Config) ExportOptions() []api.Option {
	opts := []api.Option{
		api.WithTitle(c.Title),
		api.WithSubtitle(c.Subtitle),
		api.WithPageOrientation(layout.ParseOrientation(c.Orientation)),
		api.WithDensity(api.Density(strings.ToLower(c.Density))),
		api.WithLayoutMode(pagination.ParseLayoutMode(c.Mode)),
		api.WithSectionPreset(c.SectionPreset),
		api.WithImages(c.IncludeImages),
		api.WithRepeatHeader(c.RepeatHeader),
		api.WithLaneGrouping(c.GroupLanes),
		api.WithSummaries(c.LaneSummary, c.TalentSummary),
		api.WithPageBreakStrategy(item.ParseBreakStrategy(c.PageBreakStrategy)),
		api.WithFilter(item.Filter{
			Lanes:      c.Filter.Lanes,
			Talent:     c.Filter.Talent,
			Categories: c.Filter.Categories,
			Query:      c.Filter.Query,
		}),
		api.WithStrictImages(c.StrictImages),
		api.WithVerifyPageCount(c.VerifyPageCount),
		api.WithAuthor(c.Author),
		api.WithSubject(c.Subject),
		api.WithKeywords(c.Keywords),
	}
	if len(c.Sections) > 0 {
		states := make(sections.States, len(c.Sections))
		for id, st := range c.Sections {
			states[sections.ID(id)] = st
		}
		opts = append(opts, api.WithSectionStates(states))
	}
	for key, visible := range c.Fields {
		opts = append(opts, api.WithField(key, visible))
	}
	for _, p := range c.ResourcePaths {
		opts = append(opts, api.WithResourcePath(p))
	}
	return opts
}

// WriteDefault writes the default configuration to path
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# shotpdf configuration\n# Every key can be overridden with a SHOTPDF_<KEY> environment variable.\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
