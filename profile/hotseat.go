package profile

import (
	"fmt"

	"deviceprofile/flags"
	"deviceprofile/log"
)

// Dock fit phases, in the order they run.
const (
	PhaseStart   = "start"
	PhaseSpan    = "span"
	PhaseSqueeze = "squeeze"
	PhaseQsb     = "qsb"
	PhaseRemove  = "remove"
)

// DockStep is one iteration of the dock fit.
type DockStep struct {
	Phase         string `json:"phase"`
	ColumnSpan    int    `json:"column_span"`
	Icons         int    `json:"icons"`
	QsbWidthPx    int    `json:"qsb_width_px"`
	TargetWidthPx int    `json:"target_width_px"`
	BorderSpacePx int    `json:"border_space_px"`
}

func (s DockStep) String() string {
	return fmt.Sprintf("%s span=%d icons=%d qsb=%d target=%d border=%d",
		s.Phase, s.ColumnSpan, s.Icons, s.QsbWidthPx, s.TargetWidthPx, s.BorderSpacePx)
}

// dockFit is the input of the dock shrink loop along one axis.
type dockFit struct {
	iconPx int
	// cellPx and cellBorderPx are the workspace cell geometry the dock
	// borrows its span from.
	cellPx       int
	cellBorderPx int
	// maxPx is the longest the dock row may be, search box included.
	maxPx    int
	span     int
	spanStep int
	icons    int

	minBorderPx int
	// maxBorderPx caps the border. Zero means no cap.
	maxBorderPx int
	extraBorder int

	inline     bool
	qsbPx      int
	qsbMinPx   int
	qsbSpacePx int
}

// dockResult is the outcome of the dock shrink loop.
type dockResult struct {
	span     int
	icons    int
	targetPx int
	borderPx int
	qsbPx    int
	trace    []DockStep
}

func (f dockFit) spanPx(span int) int {
	return spanSize(f.cellPx, f.cellBorderPx, span)
}

// borderFor spreads what the icons leave of target over the gaps between
// them. It is 0 when there are no gaps.
func (f dockFit) borderFor(target, icons int) int {
	gaps := icons - 1 + f.extraBorder
	if gaps <= 0 {
		return 0
	}
	free := target - icons*f.iconPx
	if free <= 0 {
		return 0
	}
	border := free / gaps
	if f.maxBorderPx > 0 {
		border = min(border, f.maxBorderPx)
	}
	return border
}

// run shrinks the dock until its icons are separated by at least the
// minimum border. The span is reduced first, then the icon area is
// squeezed into the row, then an inline search box gives up width down to
// its minimum, and finally icons are removed one at a time. Span and icon
// count only ever decrease and at least one icon remains, so the loop runs
// at most span/step + icons iterations.
func (f dockFit) run() dockResult {
	span := max(f.span, 1)
	step := max(f.spanStep, 1)
	icons := max(f.icons, 1)
	qsb := 0
	if f.inline {
		qsb = f.qsbPx
	}
	room := func() int {
		if !f.inline {
			return max(f.maxPx, 0)
		}
		return max(f.maxPx-qsb-f.qsbSpacePx, 0)
	}

	var r dockResult
	record := func(phase string, target, border int) {
		r.trace = append(r.trace, DockStep{
			Phase:         phase,
			ColumnSpan:    span,
			Icons:         icons,
			QsbWidthPx:    qsb,
			TargetWidthPx: target,
			BorderSpacePx: border,
		})
	}

	target := f.spanPx(span)
	record(PhaseStart, target, f.borderFor(target, icons))

	for f.spanPx(span) > room() && span > 1 {
		span = max(span-step, 1)
		target = f.spanPx(span)
		record(PhaseSpan, target, f.borderFor(target, icons))
	}

	if target > room() {
		target = room()
		record(PhaseSqueeze, target, f.borderFor(target, icons))
	}
	border := f.borderFor(target, icons)

	if f.inline && border < f.minBorderPx && qsb > f.qsbMinPx {
		need := icons*f.iconPx + f.minBorderPx*(icons-1+f.extraBorder)
		qsb = max(f.qsbMinPx, min(qsb, f.maxPx-f.qsbSpacePx-need))
		target = min(max(target, need), room())
		border = f.borderFor(target, icons)
		record(PhaseQsb, target, border)
	}

	for border < f.minBorderPx && icons > 1 {
		icons--
		border = f.borderFor(target, icons)
		record(PhaseRemove, target, border)
	}

	r.span, r.icons, r.targetPx, r.borderPx, r.qsbPx = span, icons, target, border, qsb
	return r
}

// resolveDockBand sizes the band the dock reserves. It only depends on the
// requested icon size, so it runs before the workspace is fitted.
func (b *builder) resolveDockBand() {
	d := b.dims
	m := b.m
	hs := &b.p.Hotseat

	hs.Vertical = b.metrics.IsVerticalBarLayout()
	if b.in.Preferences.HideDock {
		hs.Hidden = true
		return
	}

	icon := max(m.Dp(d.IconSizeDp), 1)
	hs.CellHeightPx, hs.IconSizePx = icon, icon
	hs.SideMarginPx = m.Dp(d.HotseatSideMarginDp)
	topSpace := m.Dp(d.HotseatBarTopSpaceDp)
	bottomSpace := m.Dp(d.HotseatBarBottomSpaceDp)
	qsbSpace := m.Dp(d.HotseatQsbSpaceDp)
	if b.responsiveHeight && len(b.tables.Hotseat) > 0 {
		e, fallback := b.tables.Hotseat.Select(b.aspect, m.ToDp(b.windowH))
		if fallback {
			b.fallback("hotseat")
		}
		qsbSpace = m.Dp(e.QsbSpaceDp)
		bottomSpace = m.Dp(e.EdgePaddingDp)
	}

	if hs.Vertical {
		hs.BarSizePx = icon + topSpace + bottomSpace
		return
	}

	hs.QsbHeightPx = m.Dp(d.HotseatQsbHeightDp)
	if hs.QsbHeightPx > 0 {
		hs.QsbSpacePx = qsbSpace
		hs.Inline = d.InlineQsb && (b.metrics.Tablet || flags.Get(b.in.Flags, flags.InlineQsbOnHandheld))
		// An inline search box needs room for its minimum width and one icon.
		if row := b.windowW - 2*hs.SideMarginPx; hs.Inline && row < m.Dp(d.HotseatMinQsbWidthDp)+hs.QsbSpacePx+icon {
			hs.Inline = false
			b.p.Degradation.QsbMovedBelow = true
			log.LayoutTrace("grid %s: %dpx dock row too narrow for an inline search box", b.spec.Name, row)
		}
	}
	switch {
	case hs.QsbHeightPx == 0:
		hs.BarSizePx = topSpace + icon + bottomSpace
	case hs.Inline:
		hs.BarSizePx = topSpace + max(icon, hs.QsbHeightPx) + bottomSpace
	default:
		hs.BarSizePx = topSpace + icon + hs.QsbSpacePx + hs.QsbHeightPx + bottomSpace
	}
}

// resolveDock fits the dock row against the fitted workspace.
func (b *builder) resolveDock() {
	hs := &b.p.Hotseat
	if hs.Hidden {
		return
	}
	d := b.dims
	m := b.m
	ws := b.p.Workspace
	hs.IconSizePx = ws.IconSizePx

	f := dockFit{
		iconPx:      ws.IconSizePx,
		span:        d.HotseatColumnSpan,
		spanStep:    1,
		icons:       d.HotseatIconCount,
		minBorderPx: m.Dp(d.HotseatMinIconSpaceDp),
		maxBorderPx: m.Dp(d.HotseatMaxIconSpaceDp),
	}
	if flags.Get(b.in.Flags, flags.NavButtonsInDock) {
		f.extraBorder = 1
	}

	if hs.Vertical {
		in := b.metrics.Insets
		f.cellPx, f.cellBorderPx = ws.CellHeightPx, ws.BorderSpace.Y
		f.span = ws.Rows
		f.maxPx = max(b.windowH-in.Top-in.Bottom-2*hs.SideMarginPx, 0)
	} else {
		f.cellPx, f.cellBorderPx = ws.CellWidthPx, ws.BorderSpace.X
		f.maxPx = max(b.windowW-2*hs.SideMarginPx, 0)
		if b.metrics.MultiPanel {
			f.span *= 2
			f.spanStep = 2
		}
		f.span = min(f.span, ws.TotalColumns())
		if hs.Inline {
			f.inline = true
			f.qsbMinPx = m.Dp(d.HotseatMinQsbWidthDp)
			f.qsbSpacePx = hs.QsbSpacePx
			rowPx := min(ws.UsedWidthPx(), f.maxPx)
			f.qsbPx = max(f.qsbMinPx, rowPx-f.spanPx(f.span)-f.qsbSpacePx)
		}
	}

	r := f.run()
	hs.ColumnSpan = r.span
	hs.ShownIconCount = r.icons
	hs.WidthPx = r.targetPx
	hs.BorderSpacePx = r.borderPx
	switch {
	case hs.Inline:
		hs.QsbWidthPx = r.qsbPx
	case hs.QsbHeightPx > 0:
		hs.QsbWidthPx = min(ws.UsedWidthPx(), f.maxPx)
	}
	b.p.DockTrace = r.trace

	deg := &b.p.Degradation
	deg.DockSpanReduced = r.span < max(f.span, 1)
	deg.DockIconsRemoved = r.icons < max(f.icons, 1)
	deg.QsbShrunk = f.inline && r.qsbPx < f.qsbPx
	if deg.DockSpanReduced || deg.DockIconsRemoved || deg.QsbShrunk {
		log.LayoutTrace("grid %s: dock fit to %d icons over %d columns in %d iterations",
			b.spec.Name, r.icons, r.span, len(r.trace))
	}
}
