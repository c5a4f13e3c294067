package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/shotpdf/internal/item"
)

func ids(secs []Section) []ID {
	out := make([]ID, len(secs))
	for i, s := range secs {
		out[i] = s.ID
	}
	return out
}

func TestDefaultShotSections(t *testing.T) {
	visible := ShotCatalog.VisibleSections(nil)
	assert.Equal(t, []ID{ShotCombined, Image, Date, Location, Talent, Products, Notes}, ids(visible))

	combined := visible[0]
	assert.True(t, combined.IsCombined())
	assert.True(t, combined.Required)
	assert.Equal(t, "Shot", combined.Label)
	assert.Equal(t, 3.0, combined.Flex)
	assert.Equal(t, []ID{ShotNumber, ShotName}, combined.Members)
}

func TestDefaultPullSections(t *testing.T) {
	visible := PullCatalog.VisibleSections(nil)
	require.NotEmpty(t, visible)
	assert.Equal(t, ProductCombined, visible[0].ID)
	assert.Equal(t, 3.5, visible[0].Flex)
	assert.NotContains(t, ids(visible), StyleNumber)
	assert.Contains(t, ids(visible), Quantity)
}

func TestCombinedValue(t *testing.T) {
	it := item.ExportableItem{Number: "12", Title: "Hero look"}
	visible := ShotCatalog.VisibleSections(nil)
	assert.Equal(t, "12 - Hero look", visible[0].Value(it))
	assert.Equal(t, []string{item.FieldShotNumber, item.FieldShotName}, visible[0].Fields())

	hidden := ShotCatalog.Toggle(nil, ShotName)
	combined := ShotCatalog.VisibleSections(hidden)[0]
	assert.Equal(t, ShotCombined, combined.ID)
	assert.Equal(t, []ID{ShotNumber}, combined.Members)
	assert.Equal(t, 3.0, combined.Flex)
	assert.Equal(t, "12", combined.Value(it))

	assert.Equal(t, "12", combined.Value(item.ExportableItem{Number: "12", Title: "  "}))
}

func TestToggle(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		defaults := ShotCatalog.Defaults()
		once := ShotCatalog.Toggle(defaults, Type)
		assert.True(t, once[Type].Visible)
		assert.Equal(t, defaults, ShotCatalog.Toggle(once, Type))
	})

	t.Run("required section stays visible", func(t *testing.T) {
		st := ShotCatalog.Toggle(nil, ShotNumber)
		assert.True(t, st[ShotNumber].Visible)
		assert.Equal(t, ShotCatalog.Defaults(), st)
	})

	t.Run("combined hides optional members", func(t *testing.T) {
		st := ShotCatalog.Toggle(nil, ShotCombined)
		assert.True(t, st[ShotNumber].Visible)
		assert.False(t, st[ShotName].Visible)
	})

	t.Run("combined round trip", func(t *testing.T) {
		for _, tc := range []struct {
			catalog  *Catalog
			combined ID
			optional ID
		}{
			{ShotCatalog, ShotCombined, ShotName},
			{PullCatalog, ProductCombined, StyleNumber},
		} {
			defaults := tc.catalog.Defaults()
			once := tc.catalog.Toggle(defaults, tc.combined)
			assert.False(t, once[tc.optional].Visible)
			assert.Equal(t, defaults, tc.catalog.Toggle(once, tc.combined))
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := ShotCatalog.Defaults()
		_ = ShotCatalog.Toggle(in, Notes)
		assert.True(t, in[Notes].Visible)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Equal(t, ShotCatalog.Defaults(), ShotCatalog.Toggle(nil, "bogus"))
	})
}

func TestSetFlex(t *testing.T) {
	tests := []struct {
		name string
		flex float64
		want float64
	}{
		{"in range", 2.5, 2.5},
		{"clamped high", 10, MaxFlex},
		{"clamped low", 0.1, MinFlex},
		{"zero ignored", 0, 3},
		{"negative ignored", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ShotCatalog.SetFlex(nil, Notes, tt.flex)
			assert.Equal(t, tt.want, st[Notes].Flex)
		})
	}

	t.Run("combined scales members", func(t *testing.T) {
		st := ShotCatalog.SetFlex(nil, ShotCombined, 6)
		assert.InDelta(t, 2, st[ShotNumber].Flex, 1e-9)
		assert.InDelta(t, 4, st[ShotName].Flex, 1e-9)
		assert.InDelta(t, 6, ShotCatalog.VisibleSections(st)[0].Flex, 1e-9)
	})
}

func TestMove(t *testing.T) {
	st := ShotCatalog.Move(nil, Notes, 0)
	visible := ShotCatalog.VisibleSections(st)
	assert.Equal(t, []ID{Notes, ShotCombined, Image, Date, Location, Talent, Products}, ids(visible))
	assert.Equal(t, 1, st[ShotNumber].Order)
	assert.Equal(t, 2, st[ShotName].Order)

	back := ShotCatalog.Move(st, Notes, 100)
	assert.Equal(t, Notes, ids(ShotCatalog.VisibleSections(back))[6])

	assert.Equal(t, ShotCatalog.Defaults(), ShotCatalog.Move(nil, "bogus", 0))
}

func TestApplyPreset(t *testing.T) {
	st := ShotCatalog.ApplyPreset(nil, PresetMinimal)
	assert.Equal(t, []ID{ShotCombined, Image}, ids(ShotCatalog.VisibleSections(st)))

	st = ShotCatalog.ApplyPreset(nil, " FULL ")
	assert.True(t, st[Type].Visible)
	assert.True(t, st[Lane].Visible)

	assert.Equal(t, ShotCatalog.Defaults(), ShotCatalog.ApplyPreset(nil, "nope"))
	assert.Equal(t, []string{PresetFull, PresetMinimal, PresetStandard}, ShotCatalog.PresetNames())
}

func TestApplyFields(t *testing.T) {
	st := ShotCatalog.ApplyFields(nil, map[string]bool{
		"type":       true,
		"notes":      false,
		"shotnumber": false,
		"unknown":    true,
	})
	assert.True(t, st[Type].Visible)
	assert.False(t, st[Notes].Visible)
	assert.True(t, st[ShotNumber].Visible)
	assert.NotContains(t, st, ID("unknown"))
}

func TestLookup(t *testing.T) {
	for _, key := range []string{"shotNumber", "shotnumber", "SHOTNUMBER", " shotNumber "} {
		d, ok := ShotCatalog.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, ShotNumber, d.ID)
	}
	_, ok := ShotCatalog.Lookup("category")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	st := ShotCatalog.Normalize(States{
		"notes":      {Visible: false, Order: 9, Flex: 0},
		"shotnumber": {Visible: false, Order: 0, Flex: 1},
		"bogus":      {Visible: true},
		ShotCombined: {Visible: false},
	})
	assert.Equal(t, 3.0, st[Notes].Flex)
	assert.False(t, st[Notes].Visible)
	assert.True(t, st[ShotNumber].Visible)
	assert.NotContains(t, st, ID("bogus"))
	assert.NotContains(t, st, ShotCombined)
	assert.Len(t, st, len(ShotCatalog.Defaults()))
}

func TestColumnWidths(t *testing.T) {
	visible := ShotCatalog.VisibleSections(nil)
	widths := ColumnWidths(visible, 540)
	require.Len(t, widths, len(visible))

	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	assert.InDelta(t, 540, sum, 1e-9)
	assert.InDelta(t, 540*3/13.5, widths[0], 1e-9)

	assert.Equal(t, []float64{0}, ColumnWidths([]Section{{Flex: 0}}, 100))
}

func TestFlexShare(t *testing.T) {
	visible := ShotCatalog.VisibleSections(nil)
	assert.InDelta(t, 3/13.5, FlexShare(visible, Notes), 1e-9)
	assert.InDelta(t, 3/13.5, FlexShare(visible, ShotName), 1e-9)
	assert.Zero(t, FlexShare(visible, Type))
}

func TestFieldKeys(t *testing.T) {
	st := ShotCatalog.ApplyPreset(nil, PresetMinimal)
	assert.Equal(t,
		[]string{item.FieldShotNumber, item.FieldShotName, item.FieldImage},
		FieldKeys(ShotCatalog.VisibleSections(st)),
	)
}

func TestCatalogFor(t *testing.T) {
	assert.Same(t, PullCatalog, CatalogFor(item.KindPull))
	assert.Same(t, ShotCatalog, CatalogFor(item.KindShot))
}
