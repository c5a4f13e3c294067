package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/shotpdf/internal/layout"
	"github.com/gompdf/shotpdf/pkg/api"
)

func applied(cfg *Config) api.Options {
	o := api.DefaultOptions()
	for _, opt := range cfg.ExportOptions() {
		opt(&o)
	}
	return o
}

func TestDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	d := DefaultConfig()
	assert.Equal(t, d.Orientation, cfg.Orientation)
	assert.Equal(t, "standard", cfg.Density)
	assert.Equal(t, "table", cfg.Mode)
	assert.True(t, cfg.IncludeImages)
	assert.True(t, cfg.RepeatHeader)
	assert.True(t, cfg.VerifyPageCount)
	assert.Equal(t, "auto", cfg.PageBreakStrategy)
	assert.NoError(t, cfg.Validate())
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("SHOTPDF_DENSITY", "compact")
	t.Setenv("SHOTPDF_INCLUDE_IMAGES", "false")
	t.Setenv("SHOTPDF_FILTER_QUERY", "hero")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.Density)
	assert.False(t, cfg.IncludeImages)
	assert.Equal(t, "hero", cfg.Filter.Query)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shotpdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Spring campaign
orientation: landscape
mode: gallery
fields:
  shotNumber: true
  notes: false
sections:
  location:
    visible: false
    order: 6
    flex: 2
filter:
  lanes: [Studio]
resource_paths:
  - /srv/images
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Spring campaign", cfg.Title)
	assert.Equal(t, "gallery", cfg.Mode)
	assert.Equal(t, []string{"Studio"}, cfg.Filter.Lanes)
	assert.Equal(t, []string{"/srv/images"}, cfg.ResourcePaths)
	assert.Equal(t, 2.0, cfg.Sections["location"].Flex)

	o := applied(cfg)
	assert.Equal(t, "Spring campaign", o.Title)
	assert.Equal(t, api.PageOrientationLandscape, o.PageOrientation)
	assert.Equal(t, api.LayoutGallery, o.LayoutMode)
	assert.Equal(t, []string{"/srv/images"}, o.ResourcePaths)
	assert.False(t, o.Fields["notes"])
	assert.False(t, o.SectionStates["location"].Visible)
	assert.Equal(t, []string{"Studio"}, o.Filter.Lanes)
}

func TestReadFileMissing(t *testing.T) {
	l := NewLoader()
	assert.Error(t, l.ReadFile(filepath.Join(t.TempDir(), "nope.yaml")))

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	assert.NoError(t, NewLoader().ReadFile(""))
}

func TestBindFlags(t *testing.T) {
	t.Setenv("SHOTPDF_DENSITY", "compact")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("density", "standard", "")
	fs.String("page-break-strategy", "auto", "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse([]string{"--density", "detailed", "--page-break-strategy", "by-gender"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(fs))
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "detailed", cfg.Density)
	assert.Equal(t, "by-gender", cfg.PageBreakStrategy)
	assert.False(t, l.Viper().IsSet("verbose"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"density", func(c *Config) { c.Density = "huge" }, "density"},
		{"orientation", func(c *Config) { c.Orientation = "diagonal" }, "orientation"},
		{"mode", func(c *Config) { c.Mode = "cards" }, "mode"},
		{"strategy", func(c *Config) { c.PageBreakStrategy = "by-colour" }, "page_break_strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			var cfgErr *layout.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	cfg := DefaultConfig()
	cfg.Density, cfg.Orientation, cfg.Mode = "Detailed", "LANDSCAPE", "Gallery"
	assert.NoError(t, cfg.Validate())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	d := DefaultConfig()
	assert.Equal(t, d.Density, cfg.Density)
	assert.Equal(t, d.VerifyPageCount, cfg.VerifyPageCount)
	assert.Equal(t, d.RepeatHeader, cfg.RepeatHeader)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOTPDF_TITLE=From dotenv\n"), 0o644))

	t.Setenv("SHOTPDF_TITLE", "")
	require.NoError(t, os.Unsetenv("SHOTPDF_TITLE"))
	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "From dotenv", cfg.Title)
}
