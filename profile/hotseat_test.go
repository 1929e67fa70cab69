package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
)

func phases(trace []DockStep) []string {
	out := make([]string, len(trace))
	for i, s := range trace {
		out[i] = s.Phase
	}
	return out
}

func TestDockFitKeepsEveryIcon(t *testing.T) {
	f := dockFit{
		iconPx: 165, cellPx: 187, cellBorderPx: 22,
		maxPx: 1036, span: 5, spanStep: 1, icons: 5,
		minBorderPx: 22, maxBorderPx: 198,
	}
	r := f.run()
	assert.Equal(t, 5, r.span)
	assert.Equal(t, 5, r.icons)
	assert.Equal(t, 1023, r.targetPx)
	assert.Equal(t, 49, r.borderPx)
	assert.Equal(t, []string{PhaseStart}, phases(r.trace))

	f.extraBorder = 1
	assert.Equal(t, 39, f.run().borderPx, "a reserved border takes a share")
}

func TestDockFitInlineSearchBox(t *testing.T) {
	f := dockFit{
		iconPx: 120, cellPx: 120, cellBorderPx: 8,
		maxPx: 624, span: 6, spanStep: 1, icons: 6,
		minBorderPx: 16, maxBorderPx: 96,
		inline: true, qsbPx: 200, qsbMinPx: 160, qsbSpacePx: 16,
	}
	r := f.run()

	assert.Equal(t, 3, r.span)
	assert.Equal(t, 3, r.icons)
	assert.Equal(t, 448, r.targetPx)
	assert.Equal(t, 44, r.borderPx)
	assert.Equal(t, 160, r.qsbPx)
	assert.Equal(t, f.maxPx, r.targetPx+f.qsbSpacePx+r.qsbPx, "icons and search box fill the row")

	assert.Equal(t, []string{
		PhaseStart, PhaseSpan, PhaseSpan, PhaseSpan,
		PhaseQsb, PhaseRemove, PhaseRemove, PhaseRemove,
	}, phases(r.trace))
	assert.Equal(t, DockStep{Phase: PhaseStart, ColumnSpan: 6, Icons: 6, QsbWidthPx: 200, TargetWidthPx: 760, BorderSpacePx: 8}, r.trace[0])
	assert.Equal(t, 376, r.trace[3].TargetWidthPx)
	assert.Equal(t, DockStep{Phase: PhaseQsb, ColumnSpan: 3, Icons: 6, QsbWidthPx: 160, TargetWidthPx: 448}, r.trace[4])
	assert.Equal(t, 44, r.trace[7].BorderSpacePx)
}

func TestDockFitSqueeze(t *testing.T) {
	f := dockFit{
		iconPx: 100, cellPx: 150, cellBorderPx: 10,
		maxPx: 140, span: 1, spanStep: 1, icons: 1,
		minBorderPx: 8,
	}
	r := f.run()
	assert.Equal(t, []string{PhaseStart, PhaseSqueeze}, phases(r.trace))
	assert.Equal(t, 140, r.targetPx)
	assert.Equal(t, 1, r.icons)
	assert.Zero(t, r.borderPx)
}

func TestDockFitIsBounded(t *testing.T) {
	for _, maxPx := range []int{0, 1, 50, 300, 900, 5000} {
		for _, step := range []int{1, 2} {
			f := dockFit{
				iconPx: 90, cellPx: 100, cellBorderPx: 12,
				maxPx: maxPx, span: 8, spanStep: step, icons: 7,
				minBorderPx: 20, maxBorderPx: 60,
				inline: true, qsbPx: 300, qsbMinPx: 120, qsbSpacePx: 10,
			}
			r := f.run()

			loops := 0
			for _, s := range r.trace {
				if s.Phase == PhaseSpan || s.Phase == PhaseRemove {
					loops++
				}
			}
			assert.LessOrEqual(t, loops, f.span/step+f.icons-1, "max %d step %d", maxPx, step)
			assert.GreaterOrEqual(t, r.icons, 1)
			assert.GreaterOrEqual(t, r.span, 1)
			assert.GreaterOrEqual(t, r.qsbPx, f.qsbMinPx)
			assert.LessOrEqual(t, r.qsbPx, f.qsbPx)
			assert.LessOrEqual(t, r.borderPx, f.maxBorderPx)
		}
	}
}

func TestBorderFor(t *testing.T) {
	f := dockFit{iconPx: 10, maxBorderPx: 20}
	assert.Equal(t, 0, f.borderFor(100, 1), "no gaps")
	assert.Equal(t, 0, f.borderFor(30, 4), "no free space")
	assert.Equal(t, 5, f.borderFor(40, 3))
	assert.Equal(t, 20, f.borderFor(200, 3), "capped")

	f.maxBorderPx = 0
	assert.Equal(t, 85, f.borderFor(200, 3))
}

// crowdedGrid has more dock icons than a small phone can show next to an
// inline search box.
func crowdedGrid() *grid.Spec {
	d := grid.Dimensions{
		Rows:                    5,
		Columns:                 6,
		IconSizeDp:              60,
		IconTextSizeSp:          14,
		IconDrawablePaddingDp:   8,
		BorderSpaceDp:           grid.Point{X: 8, Y: 16},
		HorizontalMarginDp:      8,
		TopPaddingDp:            24,
		HotseatSideMarginDp:     24,
		HotseatBarTopSpaceDp:    16,
		HotseatBarBottomSpaceDp: 24,
		HotseatQsbHeightDp:      48,
		HotseatQsbSpaceDp:       8,
		HotseatMinQsbWidthDp:    80,
		HotseatMinIconSpaceDp:   8,
		HotseatMaxIconSpaceDp:   48,
		InlineQsb:               true,
	}
	return &grid.Spec{
		Name:                  "crowded",
		Default:               &d,
		MinLabelSizeSp:        8,
		PageIndicatorHeightDp: 24,
	}
}

func TestCrowdedDockDropsIcons(t *testing.T) {
	p, err := New(Inputs{
		Metrics: testMetrics(t, "small-phone"),
		Grid:    crowdedGrid(),
		Flags:   flags.Static{flags.InlineQsbOnHandheld: true},
	})
	require.NoError(t, err)
	checkFits(t, p)

	ws := p.Workspace
	assert.Equal(t, 92, ws.IconSizePx)
	assert.Equal(t, 104, ws.CellWidthPx)
	assert.Equal(t, 12, ws.BorderSpace.X)

	hs := p.Hotseat
	assert.True(t, hs.Inline)
	assert.Equal(t, 200, hs.BarSizePx)
	assert.Equal(t, 3, hs.ColumnSpan)
	assert.Equal(t, 3, hs.ShownIconCount)
	assert.Equal(t, 30, hs.BorderSpacePx)
	assert.Equal(t, 160, hs.QsbWidthPx)
	assert.Equal(t, 336, hs.WidthPx)

	assert.True(t, p.Degradation.DockSpanReduced)
	assert.True(t, p.Degradation.DockIconsRemoved)
	assert.False(t, p.Degradation.QsbShrunk)
	assert.False(t, p.Degradation.QsbMovedBelow)
	assert.Len(t, p.DockTrace, 7)
}

func TestNarrowWindowMovesSearchBoxBelow(t *testing.T) {
	tests := []struct {
		name    string
		metrics device.ScreenMetrics
		grid    *grid.Spec
		barPx   int
	}{
		{
			name:    "handheld",
			metrics: device.ScreenMetrics{WidthPx: 300, HeightPx: 1520, Density: 2},
			grid:    crowdedGrid(),
			barPx:   32 + 120 + 16 + 96 + 48,
		},
		{
			name:    "tablet",
			metrics: device.ScreenMetrics{WidthPx: 700, HeightPx: 560, Density: 2, Orientation: device.Landscape, Tablet: true},
			grid:    testGrid(t, "tablet"),
			barPx:   48 + 128 + 64 + 112 + 64,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(Inputs{
				Metrics: tt.metrics,
				Grid:    tt.grid,
				Flags:   flags.Static{flags.InlineQsbOnHandheld: true},
			})
			require.NoError(t, err)
			checkFits(t, p)

			hs := p.Hotseat
			assert.False(t, hs.Inline)
			assert.True(t, p.Degradation.QsbMovedBelow)
			assert.Equal(t, tt.barPx, hs.BarSizePx)
			assert.LessOrEqual(t, hs.QsbWidthPx, tt.metrics.WidthPx)
			assert.LessOrEqual(t, hs.WidthPx, tt.metrics.WidthPx)
			for _, step := range p.DockTrace {
				assert.Zero(t, step.QsbWidthPx, step.String())
			}
		})
	}
}

func TestInlineSearchBoxNeedsFlagOnHandheld(t *testing.T) {
	p, err := New(Inputs{Metrics: testMetrics(t, "small-phone"), Grid: crowdedGrid()})
	require.NoError(t, err)
	checkFits(t, p)
	assert.False(t, p.Hotseat.Inline)
	assert.Equal(t, 32+120+16+96+48, p.Hotseat.BarSizePx)
}

func TestVerticalDock(t *testing.T) {
	p := build(t, "phone-landscape", "5x6")
	checkFits(t, p)

	hs := p.Hotseat
	assert.True(t, hs.Vertical)
	assert.False(t, hs.Inline)
	assert.Equal(t, 132+44+66, hs.BarSizePx)
	assert.Equal(t, 44, p.Workspace.Padding.Left)
	assert.Equal(t, 132+hs.BarSizePx, p.Workspace.Padding.Right)
	assert.Equal(t, 6, p.DockTrace[0].ColumnSpan, "a vertical dock spans the rows")

	seascape := p.Metrics
	seascape.Rotation = 270
	seascape.Insets = device.Insets{Top: 66, Left: 132}
	s, err := p.Variant(Overrides{Metrics: &seascape})
	require.NoError(t, err)
	checkFits(t, s)
	assert.Equal(t, 132+hs.BarSizePx, s.Workspace.Padding.Left)
	assert.Equal(t, 44, s.Workspace.Padding.Right)
}

func TestNavButtonsReserveBorder(t *testing.T) {
	base := build(t, "phone", "5x6")
	nav, err := base.Variant(Overrides{Flags: flags.Static{flags.NavButtonsInDock: true}})
	require.NoError(t, err)
	assert.Equal(t, 49, base.Hotseat.BorderSpacePx)
	assert.Equal(t, 39, nav.Hotseat.BorderSpacePx)
	assert.Equal(t, 5, nav.Hotseat.ShownIconCount)
}

func TestDockStepString(t *testing.T) {
	s := DockStep{Phase: PhaseQsb, ColumnSpan: 3, Icons: 6, QsbWidthPx: 160, TargetWidthPx: 448}
	assert.Equal(t, "qsb span=3 icons=6 qsb=160 target=448 border=0", s.String())
}
