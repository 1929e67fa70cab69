package profile

// absorb composes a declared margin with the device inset on the same edge.
// The inset eats into the margin; any inset beyond the margin passes
// through. The result is never negative.
func absorb(margin, inset int) int {
	margin, inset = max(margin, 0), max(inset, 0)
	return inset + max(0, margin-inset)
}

// composePadding layers the declared margins, the device insets, the dock
// band and the page indicator, in that order.
func (b *builder) composePadding(margin Rect) Rect {
	in := b.metrics.Insets
	pad := Rect{
		Left:   absorb(margin.Left, in.Left),
		Top:    absorb(margin.Top, in.Top),
		Right:  absorb(margin.Right, in.Right),
		Bottom: absorb(margin.Bottom, in.Bottom),
	}

	hs := b.p.Hotseat
	switch {
	case hs.Hidden:
	case hs.Vertical && b.metrics.IsSeascape():
		pad.Left += hs.BarSizePx
	case hs.Vertical:
		pad.Right += hs.BarSizePx
	default:
		pad.Bottom += hs.BarSizePx
	}
	pad.Bottom += b.p.Workspace.PageIndicatorHeightPx
	return pad
}

// bands returns the space the dock and page indicator take along each axis
// before any margin or inset is applied.
func (b *builder) bands() (width, height int) {
	hs := b.p.Hotseat
	height = b.p.Workspace.PageIndicatorHeightPx
	if hs.Hidden {
		return 0, height
	}
	if hs.Vertical {
		return hs.BarSizePx, height
	}
	return 0, height + hs.BarSizePx
}
