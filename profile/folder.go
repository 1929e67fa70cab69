package profile

import "deviceprofile/unit"

const (
	folderCellPaddingDp       = 8
	folderFooterHeightDp      = 56
	folderContentPaddingTopDp = 16
	folderMinLabelSizeSp      = 16
)

// resolveFolder derives the folder overlay from the fitted workspace. A
// fixed or scalable folder is scaled down as a whole to fit the workspace
// content area; a responsive folder takes its sizes from the folder tables
// and is never scaled.
func (b *builder) resolveFolder() {
	d := b.dims
	m := b.m
	ws := b.p.Workspace
	f := &b.p.Folder

	cols, rows := max(d.FolderColumns, 1), max(d.FolderRows, 1)
	f.Rows, f.Columns = rows, cols
	f.Scale = 1

	icon := ws.IconSizePx
	label := max(m.SpScaled(folderMinLabelSizeSp, b.p.IconScale), ws.IconTextSizePx)
	cellPad := m.Dp(folderCellPaddingDp)
	border := ws.BorderSpace
	footer := m.Dp(folderFooterHeightDp)
	top := m.Dp(folderContentPaddingTopDp)

	var cellW, cellH int
	if b.scalable {
		cellW, cellH = ws.CellWidthPx, ws.CellHeightPx
	} else {
		cellW = icon + 2*cellPad
		cellH = icon + 2*cellPad + unit.TextHeight(label, 1)
	}
	startPad, endPad := 0, 0

	respW := b.responsiveWidth && len(b.tables.FolderWidth) > 0
	respH := b.responsiveHeight && len(b.tables.FolderHeight) > 0
	if respW {
		c := b.tables.FolderWidth.Resolve(m, b.aspect, ws.ContentWidthPx, cols, b.workspaceX)
		if c.Fallback {
			b.fallback("folder_width")
		}
		cellW, border.X = c.CellSizePx, c.GutterPx
		startPad, endPad = c.StartPaddingPx, c.EndPaddingPx
	}
	if respH {
		c := b.tables.FolderHeight.Resolve(m, b.aspect, ws.ContentHeightPx, rows, b.workspaceY)
		if c.Fallback {
			b.fallback("folder_height")
		}
		cellH, border.Y = c.CellSizePx, c.GutterPx
		top, footer = c.StartPaddingPx, c.EndPaddingPx
	}

	if !respW && !respH {
		width := spanSize(cellW, border.X, cols)
		height := top + spanSize(cellH, border.Y, rows) + footer
		scale := min(fitScale(width, ws.ContentWidthPx), fitScale(height, ws.ContentHeightPx))
		if scale < 1 {
			b.p.Degradation.FolderScaled = true
			icon = max(unit.ScalePx(icon, scale), 1)
			label = unit.ScalePx(label, scale)
			cellW, cellH = unit.ScalePx(cellW, scale), unit.ScalePx(cellH, scale)
			border = Point{X: unit.ScalePx(border.X, scale), Y: unit.ScalePx(border.Y, scale)}
			footer, top = unit.ScalePx(footer, scale), unit.ScalePx(top, scale)
			f.Scale = scale
		}
	}

	cellW, border.X, _ = fitAxis(cellW, border.X, cols, ws.ContentWidthPx-startPad-endPad)
	cellH, border.Y, _ = fitAxis(cellH, border.Y, rows, ws.ContentHeightPx-top-footer)

	f.CellWidthPx, f.CellHeightPx = cellW, cellH
	f.IconSizePx = max(min(icon, cellW, cellH), 1)
	f.LabelTextSizePx = label
	f.BorderSpace = border
	f.FooterHeightPx = footer
	f.ContentPaddingTopPx = top
	f.WidthPx = startPad + spanSize(cellW, border.X, cols) + endPad
	f.HeightPx = top + spanSize(cellH, border.Y, rows) + footer
}
