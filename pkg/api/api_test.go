package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShots(n int) []Item {
	shots := make([]Shot, n)
	for i := range shots {
		shots[i] = Shot{
			ID:     fmt.Sprintf("shot-%d", i),
			Number: fmt.Sprint(i + 1),
			Name:   fmt.Sprintf("Look %d", i+1),
			Lane:   []string{"Studio", "Beach", "Rooftop"}[i%3],
			Notes:  strings.Repeat("Soft light from camera left. ", i%12),
			Talent: []TalentRef{{Name: "Ana"}, {Name: "Ben"}},
		}
	}
	return FromShots(shots)
}

func samplePulls() []Item {
	return FromPullItems([]PullItem{
		{ID: "1", FamilyName: "Tee", ColourName: "Black", Gender: "Women", Sizes: []SizeQty{{Size: "S", Quantity: 2}}},
		{ID: "2", FamilyName: "Chino", Gender: "Men", Sizes: []SizeQty{{Size: "32", Quantity: 1}}},
		{ID: "3", FamilyName: "Dress", Gender: "Women", Sizes: []SizeQty{{Size: "M", Quantity: 1}}},
	})
}

func TestPDFPageCountMatchesPlan(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"table portrait", nil},
		{"table landscape compact", []Option{WithPageOrientation(PageOrientationLandscape), WithDensity(DensityCompact)}},
		{"gallery detailed", []Option{WithLayoutMode(LayoutGallery), WithDensity(DensityDetailed)}},
		{"lanes and summaries", []Option{WithLaneGrouping(true), WithSummaries(true, true), WithRepeatHeader(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New().WithOption(tt.opts...)
			items := sampleShots(60)

			p, err := e.Plan(items)
			require.NoError(t, err)

			data, err := e.PDFBytes(context.Background(), items)
			require.NoError(t, err)

			pages, err := CountPages(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, p.TotalPages(), pages)
		})
	}
}

func TestLongSummaryPageCount(t *testing.T) {
	shots := make([]Shot, 90)
	for i := range shots {
		shots[i] = Shot{
			ID:     fmt.Sprintf("shot-%d", i),
			Name:   fmt.Sprintf("Look %d", i+1),
			Lane:   fmt.Sprintf("Set %d", i%55),
			Talent: []TalentRef{{Name: fmt.Sprintf("Model %d", i)}, {Name: "Ana"}},
		}
	}
	items := FromShots(shots)

	for _, o := range []PageOrientation{PageOrientationPortrait, PageOrientationLandscape} {
		t.Run(string(o), func(t *testing.T) {
			e := New().WithOption(WithSummaries(true, true), WithPageOrientation(o))
			p, err := e.Plan(items)
			require.NoError(t, err)
			require.Greater(t, len(p.Summary), 1)

			data, err := e.PDFBytes(context.Background(), items)
			require.NoError(t, err)
			pages, err := CountPages(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, p.TotalPages(), pages)
		})
	}
}

func TestBreakStrategy(t *testing.T) {
	e := New().WithOption(WithPageBreakStrategy(BreakByGender), WithVerifyPageCount(true))

	p, err := e.Plan(samplePulls())
	require.NoError(t, err)
	assert.Equal(t, "Pull Sheet", p.Config.Title)
	assert.Equal(t, []int{2}, p.Breaks.BreakIndices)
	assert.Equal(t, "3", p.Items[1].ID)

	data, err := e.PDFBytes(context.Background(), samplePulls())
	require.NoError(t, err)
	pages, err := CountPages(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestNoItems(t *testing.T) {
	e := New().WithOption(WithFilter(Filter{Lanes: []string{"Nowhere"}}))

	var buf bytes.Buffer
	err := e.WritePDF(context.Background(), sampleShots(3), &buf)
	assert.ErrorIs(t, err, ErrNoItems)
	assert.Zero(t, buf.Len())

	assert.ErrorIs(t, e.WriteCSV(sampleShots(3), &buf), ErrNoItems)
	assert.ErrorIs(t, e.WritePreview(nil, &buf), ErrNoItems)
}

func TestStrictImages(t *testing.T) {
	shots := []Shot{{ID: "a", Number: "1", Reference: &ImageRef{Path: "missing.jpg"}}}
	e := New().WithOption(WithBaseDir(t.TempDir()), WithStrictImages(true))

	_, err := e.PDFBytes(context.Background(), FromShots(shots))
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "render pdf", genErr.Op)
	assert.ErrorContains(t, genErr.Unwrap(), "missing.jpg")

	_, err = e.WithOption(WithStrictImages(false)).PDFBytes(context.Background(), FromShots(shots))
	assert.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().PDFBytes(ctx, sampleShots(5))
	assert.ErrorIs(t, err, context.Canceled)
	var genErr *GenerationError
	assert.False(t, errors.As(err, &genErr))
}

func TestGenerationError(t *testing.T) {
	inner := errors.New("disk full")
	err := &GenerationError{Op: "write pdf", Err: inner}
	assert.Equal(t, "write pdf: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestWritePDFFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "shots.pdf")
	require.NoError(t, New().WritePDFFile(context.Background(), sampleShots(4), out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	pages, err := CountPages(f)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestWriteCSVAndPreview(t *testing.T) {
	e := New().WithOption(WithSectionPreset("minimal"), WithImages(false))

	var csvBuf bytes.Buffer
	require.NoError(t, e.WriteCSV(sampleShots(2), &csvBuf))
	assert.Equal(t, "Shot\r\n1 - Look 1\r\n2 - Look 2\r\n", csvBuf.String())

	var htmlBuf bytes.Buffer
	require.NoError(t, e.WritePreview(sampleShots(2), &htmlBuf))
	assert.True(t, strings.HasPrefix(htmlBuf.String(), "<!DOCTYPE html>"))
	assert.Contains(t, htmlBuf.String(), "Page 1 of 1")
}

func TestOptionsAreCopied(t *testing.T) {
	base := New().WithOption(WithField("notes", false), WithResourcePath("/a"))
	derived := base.WithOption(WithField("type", true), WithResourcePath("/b"))

	assert.Equal(t, map[string]bool{"notes": false}, base.Options().Fields)
	assert.Equal(t, []string{"/a"}, base.Options().ResourcePaths)
	assert.Equal(t, map[string]bool{"notes": false, "type": true}, derived.Options().Fields)
	assert.Equal(t, []string{"/a", "/b"}, derived.Options().ResourcePaths)
}

func TestLoadItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulls.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind": "pull", "items": [{"id": "x", "familyName": "Tee"}]}`), 0o644))

	items, err := LoadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tee", items[0].Title)

	_, err = LoadItems(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
