package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/plan"
)

func TestRender(t *testing.T) {
	items := []item.ExportableItem{
		item.FromShot(item.Shot{ID: "a", Number: "1", Name: "Hero", Notes: `Say "hi", smile`}),
		item.FromShot(item.Shot{ID: "b", Number: "2", Location: "Pier 4", Talent: []item.TalentRef{{Name: "Ana"}, {Name: "Ben"}}}),
	}

	p, err := plan.Build(items, plan.Config{Density: "standard"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p))

	want := "Shot,Date,Location,Talent,Products,Notes\r\n" +
		"1 - Hero,,,,,\"Say \"\"hi\"\", smile\"\r\n" +
		"2,,Pier 4,\"Ana, Ben\",,\r\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderImageReference(t *testing.T) {
	items := []item.ExportableItem{
		item.FromShot(item.Shot{ID: "a", Number: "1", Reference: &item.ImageRef{Path: "refs/a.jpg"}}),
	}
	p, err := plan.Build(items, plan.Config{IncludeImages: true, SectionPreset: "minimal"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p))
	assert.Equal(t, "Shot,Image\r\n1,refs/a.jpg\r\n", buf.String())
}
