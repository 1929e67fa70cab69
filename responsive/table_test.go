package responsive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deviceprofile/unit"
)

func fixed(dp float64) SizeSpec { return SizeSpec{FixedDp: dp} }
func remainder(f float64) SizeSpec { return SizeSpec{OfRemainder: f} }
func available(f float64) SizeSpec { return SizeSpec{OfAvailable: f} }
func matchWorkspace() SizeSpec { return SizeSpec{MatchWorkspace: true} }

func TestSelectFirstMatch(t *testing.T) {
	table := Table{
		{Bounds: Bounds{MaxAspectRatio: 1.5}, CellSize: fixed(10)},
		{Bounds: Bounds{MaxAspectRatio: 2.0, MinAvailableDp: 600}, CellSize: fixed(20)},
		{Bounds: Bounds{MaxAspectRatio: 2.0}, CellSize: fixed(30)},
		{Bounds: Bounds{}, CellSize: fixed(40)},
	}

	tests := []struct {
		name      string
		aspect    float64
		available float64
		wantIdx   int
	}{
		{"square screen takes first", 1.2, 100, 0},
		{"boundary is inclusive", 1.5, 100, 0},
		{"tall with space", 1.8, 700, 1},
		{"tall without space", 1.8, 500, 2},
		{"very tall hits catch-all", 2.4, 900, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, idx, fallback := table.Select(tt.aspect, tt.available)
			assert.Equal(t, tt.wantIdx, idx)
			assert.False(t, fallback)
		})
	}
}

func TestSelectFirstMatchIgnoresLaterBetterFits(t *testing.T) {
	// A later entry with a tighter bound still loses to an earlier match.
	table := Table{
		{Bounds: Bounds{MaxAspectRatio: 3}, CellSize: fixed(1)},
		{Bounds: Bounds{MaxAspectRatio: 1.6}, CellSize: fixed(2)},
	}
	spec, idx, _ := table.Select(1.5, 0)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1.0, spec.CellSize.FixedDp)
}

func TestSelectFallsBackToLastEntry(t *testing.T) {
	table := Table{
		{Bounds: Bounds{MaxAspectRatio: 1.2}, CellSize: fixed(10)},
		{Bounds: Bounds{MaxAspectRatio: 1.6, MinAvailableDp: 800}, CellSize: fixed(20)},
	}

	spec, idx, fallback := table.Select(2.2, 400)
	assert.True(t, fallback)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 20.0, spec.CellSize.FixedDp)

	c := table.Resolve(unit.NewMetric(2), 2.2, 800, 4, nil)
	assert.True(t, c.Fallback)
	assert.Equal(t, 40, c.CellSizePx)
}

func TestSelectIsDeterministic(t *testing.T) {
	table := Table{
		{Bounds: Bounds{MaxAspectRatio: 1.5}},
		{Bounds: Bounds{MaxAspectRatio: 2.1}},
		{Bounds: Bounds{}},
	}
	queries := []float64{2.5, 1.1, 1.9, 2.5, 1.9, 1.1}
	first := map[float64]int{}
	for _, q := range queries {
		_, idx, _ := table.Select(q, 0)
		if prev, ok := first[q]; ok {
			assert.Equal(t, prev, idx, "query %v", q)
		}
		first[q] = idx
	}
}

func TestResolveRemainderCell(t *testing.T) {
	table := Table{{
		StartPadding: fixed(16),
		EndPadding:   fixed(16),
		Gutter:       fixed(8),
		CellSize:     remainder(1),
	}}
	c := table.Resolve(unit.NewMetric(2), 2, 1000, 4, nil)

	assert.Equal(t, 32, c.StartPaddingPx)
	assert.Equal(t, 32, c.EndPaddingPx)
	assert.Equal(t, 16, c.GutterPx)
	assert.Equal(t, 222, c.CellSizePx)
	assert.LessOrEqual(t, c.UsedPx(), 1000)
	assert.False(t, c.Fallback)
}

func TestResolveRemainderPaddingAndGutter(t *testing.T) {
	m := unit.NewMetric(2)

	padded := Table{{
		StartPadding: remainder(0.5),
		EndPadding:   remainder(0.5),
		CellSize:     fixed(100),
	}}
	c := padded.Resolve(m, 2, 1000, 4, nil)
	assert.Equal(t, 200, c.CellSizePx)
	assert.Equal(t, 100, c.StartPaddingPx)
	assert.Equal(t, 100, c.EndPaddingPx)

	guttered := Table{{Gutter: remainder(1), CellSize: fixed(100)}}
	c = guttered.Resolve(m, 2, 1000, 3, nil)
	assert.Equal(t, 200, c.GutterPx)
	assert.Equal(t, 1000, c.UsedPx())

	single := guttered.Resolve(m, 2, 1000, 1, nil)
	assert.Equal(t, 0, single.GutterPx)
}

func TestResolveOfAvailableAndCap(t *testing.T) {
	table := Table{{
		StartPadding: available(0.05),
		EndPadding:   SizeSpec{OfAvailable: 0.5, MaxDp: 10},
		CellSize:     remainder(1),
	}}
	c := table.Resolve(unit.NewMetric(2), 2, 1000, 2, nil)
	assert.Equal(t, 50, c.StartPaddingPx)
	assert.Equal(t, 20, c.EndPaddingPx, "capped at 10dp")
	assert.Equal(t, 465, c.CellSizePx)
}

func TestResolveMatchWorkspace(t *testing.T) {
	m := unit.NewMetric(1)
	workspace := Calculated{StartPaddingPx: 24, EndPaddingPx: 24, GutterPx: 16, CellSizePx: 120, Cells: 4}
	folder := Table{{
		StartPadding: fixed(12),
		EndPadding:   fixed(12),
		Gutter:       matchWorkspace(),
		CellSize:     matchWorkspace(),
	}}

	c := folder.Resolve(m, 2, 600, 3, &workspace)
	assert.Equal(t, 16, c.GutterPx)
	assert.Equal(t, 120, c.CellSizePx)

	// Without a reference the cell takes the whole remainder.
	c = folder.Resolve(m, 2, 600, 3, nil)
	assert.Equal(t, 0, c.GutterPx)
	assert.Equal(t, 192, c.CellSizePx)
}

func TestSizeSpecValidate(t *testing.T) {
	assert.NoError(t, SizeSpec{}.Validate())
	assert.NoError(t, fixed(8).Validate())
	assert.ErrorIs(t, SizeSpec{FixedDp: 8, OfRemainder: 1}.Validate(), ErrInvalidTable)
	assert.ErrorIs(t, SizeSpec{OfAvailable: 1.5}.Validate(), ErrInvalidTable)
	assert.ErrorIs(t, SizeSpec{FixedDp: -1}.Validate(), ErrInvalidTable)

	bad := Spec{StartPadding: remainder(1), CellSize: remainder(1)}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTable)
}

func TestValidateRejectsNonFiniteValues(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		err  error
	}{
		{"NaN fixed", fixed(nan).Validate()},
		{"infinite fixed", fixed(inf).Validate()},
		{"NaN remainder", remainder(nan).Validate()},
		{"infinite available", available(inf).Validate()},
		{"negative infinite cap", SizeSpec{FixedDp: 8, MaxDp: math.Inf(-1)}.Validate()},
		{"NaN bounds", Spec{Bounds: Bounds{MinAvailableDp: nan}, CellSize: remainder(1)}.Validate()},
		{"infinite aspect ratio", Bounds{MaxAspectRatio: inf}.Validate()},
		{"NaN cell icon", CellSpec{IconSizeDp: nan}.Validate()},
		{"infinite cell text", CellSpec{IconSizeDp: 48, IconTextSizeSp: inf}.Validate()},
		{"negative cell padding", CellSpec{IconSizeDp: 48, IconDrawablePaddingDp: -1}.Validate()},
		{"NaN hotseat space", HotseatSpec{QsbSpaceDp: nan}.Validate()},
		{"negative hotseat padding", HotseatSpec{EdgePaddingDp: -4}.Validate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrInvalidTable)
		})
	}

	tables := &Tables{
		WorkspaceWidth: Table{{CellSize: remainder(1)}},
		Hotseat:        HotseatTable{{QsbSpaceDp: inf}},
	}
	assert.ErrorIs(t, tables.Validate(true, false), ErrInvalidTable)
	tables.Hotseat = nil
	tables.Cell = CellTable{{IconSizeDp: nan}}
	assert.ErrorIs(t, tables.Validate(true, false), ErrInvalidTable)
}

func TestTablesValidate(t *testing.T) {
	var none *Tables
	assert.NoError(t, none.Validate(false, false))
	assert.ErrorIs(t, none.Validate(true, false), ErrInvalidTable)

	tables := &Tables{
		WorkspaceWidth: Table{{CellSize: remainder(1)}},
	}
	require.NoError(t, tables.Validate(true, false))
	assert.ErrorIs(t, tables.Validate(true, true), ErrInvalidTable, "height table missing")

	tables.WorkspaceHeight = Table{{CellSize: remainder(1)}}
	assert.ErrorIs(t, tables.Validate(true, true), ErrInvalidTable, "cell table missing")

	tables.Cell = CellTable{{IconSizeDp: 48}}
	assert.NoError(t, tables.Validate(true, true))

	tables.FolderWidth = Table{{Gutter: SizeSpec{OfAvailable: 2}}}
	assert.ErrorIs(t, tables.Validate(true, true), ErrInvalidTable)
}

func TestCellAndHotseatTables(t *testing.T) {
	cells := CellTable{
		{Bounds: Bounds{MinAvailableDp: 96}, IconSizeDp: 60, IconTextSizeSp: 14, IconDrawablePaddingDp: 8, MaxLineCount: 2},
		{Bounds: Bounds{MinAvailableDp: 72}, IconSizeDp: 52, IconTextSizeSp: 12, IconDrawablePaddingDp: 6},
		{Bounds: Bounds{MinAvailableDp: 0}, IconSizeDp: 44, IconTextSizeSp: 11, IconDrawablePaddingDp: 4},
	}
	spec, fallback := cells.Select(2, 80)
	assert.False(t, fallback)
	assert.Equal(t, 52.0, spec.IconSizeDp)

	content := spec.Content(unit.NewMetric(2))
	assert.Equal(t, CellContent{IconSizePx: 104, IconDrawablePaddingPx: 12, IconTextSizePx: 24, MaxLineCount: 1}, content)

	hotseat := HotseatTable{
		{Bounds: Bounds{MinAvailableDp: 800}, QsbSpaceDp: 24, EdgePaddingDp: 32},
		{Bounds: Bounds{MinAvailableDp: 600}, QsbSpaceDp: 16, EdgePaddingDp: 24},
	}
	hs, fallback := hotseat.Select(2, 500)
	assert.True(t, fallback)
	assert.Equal(t, 16.0, hs.QsbSpaceDp)

	_, fallback = HotseatTable{}.Select(2, 500)
	assert.True(t, fallback)
}
