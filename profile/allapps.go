package profile

import (
	"deviceprofile/flags"
	"deviceprofile/responsive"
	"deviceprofile/unit"
)

// resolveAllApps derives the app list from the fitted workspace. Sizes
// follow the workspace icon scale; responsive tables override them when the
// grid declares any.
func (b *builder) resolveAllApps() {
	d := b.dims
	m := b.m
	ws := b.p.Workspace
	in := b.metrics.Insets
	aa := &b.p.AllApps
	scale := b.p.IconScale

	cols := max(d.AllAppsColumns, 1)
	aa.Columns = cols

	content := responsive.CellContent{
		IconSizePx:            max(unit.ScalePx(m.Dp(d.AllAppsIconSizeDp), scale), 1),
		IconDrawablePaddingPx: ws.IconDrawablePaddingPx,
		IconTextSizePx:        unit.ScalePx(m.Sp(d.AllAppsIconTextSizeSp*b.in.Preferences.textMultiplier()), scale),
		MaxLineCount:          1,
	}
	if flags.Get(b.in.Flags, flags.TwoLineAllAppsText) {
		content.MaxLineCount = 2
	}
	border := Point{
		X: unit.ScalePx(m.Dp(d.AllAppsBorderSpaceDp.X), scale),
		Y: unit.ScalePx(m.Dp(d.AllAppsBorderSpaceDp.Y), scale),
	}
	pad := Rect{
		Left:   absorb(b.margin.Left, in.Left),
		Top:    max(in.Top, 0),
		Right:  absorb(b.margin.Right, in.Right),
		Bottom: max(in.Bottom, 0),
	}

	var cellW int
	if b.responsiveWidth && len(b.tables.AllAppsWidth) > 0 {
		c := b.tables.AllAppsWidth.Resolve(m, b.aspect, b.windowW, cols, b.workspaceX)
		if c.Fallback {
			b.fallback("all_apps_width")
		}
		pad.Left, pad.Right = absorb(c.StartPaddingPx, in.Left), absorb(c.EndPaddingPx, in.Right)
		border.X = c.GutterPx
		cellW = c.CellSizePx
	} else {
		cellW = max((b.windowW-pad.Horizontal()-border.X*(cols-1))/cols, 0)
	}
	cellW, border.X, _ = fitAxis(cellW, border.X, cols, b.windowW-pad.Horizontal())

	var cellH int
	switch {
	case b.responsiveHeight && len(b.tables.AllAppsHeight) > 0:
		c := b.tables.AllAppsHeight.Resolve(m, b.aspect, b.windowH-pad.Vertical(), ws.Rows, b.workspaceY)
		if c.Fallback {
			b.fallback("all_apps_height")
		}
		cellH = c.CellSizePx
		border.Y = c.GutterPx
	case d.AllAppsCellHeightDp > 0:
		cellH = unit.ScalePx(m.Dp(d.AllAppsCellHeightDp), scale)
	default:
		cellH = content.Height()
	}
	if content.Height() > cellH {
		content.ResizeToFitCellHeight(cellH, b.steps)
	}

	aa.CellWidthPx, aa.CellHeightPx = cellW, cellH
	aa.IconSizePx = content.IconSizePx
	aa.IconTextSizePx = content.IconTextSizePx
	aa.IconDrawablePaddingPx = content.IconDrawablePaddingPx
	aa.MaxLineCount = content.MaxLineCount
	aa.BorderSpace = border
	aa.Padding = pad
}
