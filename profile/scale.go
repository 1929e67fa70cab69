package profile

import (
	"deviceprofile/log"
	"deviceprofile/responsive"
	"deviceprofile/unit"
)

// minScale is the scale used when there is no space at all.
const minScale = 1.0 / 64

// fitScale returns the factor that shrinks used into area, capped at 1.
func fitScale(used, area int) float64 {
	if used <= area {
		return 1
	}
	if area <= 0 {
		return minScale
	}
	return max(float64(area)/float64(used), minScale)
}

// fitAxis makes n cells and their borders fit into area. Borders are only
// reduced when they alone exceed the area. It reports whether anything
// changed.
func fitAxis(cell, border, n, area int) (int, int, bool) {
	area = max(area, 0)
	if n <= 0 || spanSize(cell, border, n) <= area {
		return cell, border, false
	}
	gaps := n - 1
	if gaps > 0 && border*gaps > area {
		border = area / gaps
	}
	cell = max((area-border*gaps)/n, 0)
	return cell, border, true
}

// resolveWorkspace runs the scale-to-fit pass for the workspace grid.
func (b *builder) resolveWorkspace() {
	d := b.dims
	m := b.m
	ws := &b.p.Workspace

	ws.Rows, ws.Columns, ws.Panels = d.Rows, d.Columns, 1
	if b.metrics.MultiPanel {
		ws.Panels = 2
	}
	ws.PageIndicatorHeightPx = max(m.Dp(b.spec.PageIndicatorHeightDp*b.in.Preferences.indicatorMultiplier()), 0)
	cols, rows := ws.TotalColumns(), ws.Rows
	textMult := b.in.Preferences.textMultiplier()

	content := responsive.CellContent{
		IconSizePx:            max(m.Dp(d.IconSizeDp), 1),
		IconDrawablePaddingPx: m.Dp(d.IconDrawablePaddingDp),
		IconTextSizePx:        m.Sp(d.IconTextSizeSp * textMult),
		MaxLineCount:          1,
	}
	border := Point{X: m.Dp(d.BorderSpaceDp.X), Y: m.Dp(d.BorderSpaceDp.Y)}
	margin := Rect{
		Left:  m.Dp(d.HorizontalMarginDp),
		Top:   m.Dp(d.TopPaddingDp),
		Right: m.Dp(d.HorizontalMarginDp),
	}

	bandW, bandH := b.bands()
	if b.responsiveWidth {
		c := b.tables.WorkspaceWidth.Resolve(m, b.aspect, b.windowW-bandW, cols, nil)
		if c.Fallback {
			b.fallback("workspace_width")
		}
		b.workspaceX = &c
		margin.Left, margin.Right = c.StartPaddingPx, c.EndPaddingPx
		border.X = c.GutterPx
	}
	if b.responsiveHeight {
		c := b.tables.WorkspaceHeight.Resolve(m, b.aspect, b.windowH-bandH, rows, nil)
		if c.Fallback {
			b.fallback("workspace_height")
		}
		b.workspaceY = &c
		margin.Top, margin.Bottom = c.StartPaddingPx, c.EndPaddingPx
		border.Y = c.GutterPx
	}

	b.margin = margin
	ws.Padding = b.composePadding(margin)
	areaW := max(b.windowW-ws.Padding.Horizontal(), 0)
	areaH := max(b.windowH-ws.Padding.Vertical(), 0)
	ws.ContentWidthPx, ws.ContentHeightPx = areaW, areaH

	var cellW, cellH int
	switch {
	case b.responsiveWidth:
		cellW = b.workspaceX.CellSizePx
	case b.scalable:
		cellW = m.Dp(d.MinCellSizeDp.X)
	default:
		cellW = content.IconSizePx + content.IconDrawablePaddingPx
	}
	switch {
	case b.responsiveHeight:
		cellH = b.workspaceY.CellSizePx
		content = b.cellContent(cellH, textMult)
	case b.scalable:
		cellH = m.Dp(d.MinCellSizeDp.Y)
	default:
		cellH = content.Height()
	}
	desired := content

	scaleX, scaleY := 1.0, 1.0
	if !b.responsiveWidth {
		scaleX = fitScale(spanSize(cellW, border.X, cols), areaW)
	}
	if !b.responsiveHeight {
		scaleY = fitScale(spanSize(cellH, border.Y, rows), areaH)
	}
	if scale := min(scaleX, scaleY, 1); scale < 1 {
		log.LayoutTrace("grid %s: scaling workspace by %.4f", b.spec.Name, scale)
		content.IconSizePx = max(unit.ScalePx(content.IconSizePx, scale), 1)
		content.IconTextSizePx = unit.ScalePx(content.IconTextSizePx, scale)
		content.IconDrawablePaddingPx = unit.ScalePx(content.IconDrawablePaddingPx, scale)
		if b.responsiveHeight {
			content.IconSizePx = b.snapIcon(content.IconSizePx)
		}
		if !b.responsiveWidth {
			border.X = unit.ScalePx(border.X, scale)
			if b.scalable {
				cellW = unit.ScalePx(cellW, scale)
			} else {
				// Fixed cells fill the width the scaled borders leave.
				cellW = content.IconSizePx + content.IconDrawablePaddingPx
				if cols > 0 {
					cellW = max(cellW, (areaW-border.X*(cols-1))/cols)
				}
			}
		}
		if !b.responsiveHeight {
			border.Y = unit.ScalePx(border.Y, scale)
			if b.scalable {
				cellH = unit.ScalePx(cellH, scale)
			} else {
				cellH = content.Height()
			}
		}
	}

	// A single correction pass absorbs rounding and degenerate grids.
	var fixedX, fixedY bool
	cellW, border.X, fixedX = fitAxis(cellW, border.X, cols, areaW)
	cellH, border.Y, fixedY = fitAxis(cellH, border.Y, rows, areaH)
	if fixedX || fixedY {
		log.LayoutTrace("grid %s: corrected cells to %dx%d in %dx%d", b.spec.Name, cellW, cellH, areaW, areaH)
	}

	beforeResize := content
	if content.Height() > cellH {
		if content.ResizeToFitCellHeight(cellH, b.steps) > cellH {
			b.p.Degradation.ContentOverflow = true
		}
	}
	if content.IconSizePx > cellW {
		b.p.Degradation.ContentOverflow = true
	}

	ws.CellWidthPx, ws.CellHeightPx = cellW, cellH
	ws.BorderSpace = border
	ws.IconSizePx = content.IconSizePx
	ws.IconTextSizePx = content.IconTextSizePx
	ws.IconDrawablePaddingPx = content.IconDrawablePaddingPx
	ws.MaxLineCount = content.MaxLineCount

	b.p.IconScale = min(float64(content.IconSizePx)/float64(max(desired.IconSizePx, 1)), 1)
	deg := &b.p.Degradation
	deg.IconsScaled = content.IconSizePx < desired.IconSizePx
	deg.LabelsHidden = desired.IconTextSizePx > 0 && content.IconTextSizePx == 0
	deg.DrawablePaddingReduced = content.IconDrawablePaddingPx < beforeResize.IconDrawablePaddingPx
}

// cellContent looks up the content for a responsive cell height.
func (b *builder) cellContent(cellH int, textMult float64) responsive.CellContent {
	entry, fallback := b.tables.Cell.Select(b.aspect, b.m.ToDp(cellH))
	if fallback {
		b.fallback("cell")
	}
	content := entry.Content(b.m)
	content.IconSizePx = b.snapIcon(max(content.IconSizePx, 1))
	content.IconTextSizePx = b.m.Sp(entry.IconTextSizeSp * textMult)
	return content
}

// snapIcon snaps an icon down to a permitted size without growing it.
func (b *builder) snapIcon(px int) int {
	return max(min(b.steps.SnapDown(px), px), 1)
}
