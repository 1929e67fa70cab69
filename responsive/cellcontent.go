package responsive

import "deviceprofile/unit"

// CellContent is the icon and label placed in a cell. It is a working value
// that ResizeToFitCellHeight shrinks in place.
type CellContent struct {
	IconSizePx            int
	IconDrawablePaddingPx int
	IconTextSizePx        int
	MaxLineCount          int
}

// Height is the vertical space the content takes.
func (c CellContent) Height() int {
	return c.IconSizePx + c.IconDrawablePaddingPx + unit.TextHeight(c.IconTextSizePx, c.MaxLineCount)
}

// ResizeToFitCellHeight shrinks the content until it fits cellHeight or
// nothing is left to shrink, and returns the final content height. Steps are
// applied in order:
//  1. drop to a single label line
//  2. reduce the drawable padding
//  3. reduce label and icon size together, down to the minimum label size
//  4. hide the label
//  5. reduce the icon down to the smallest step
//
// Every loop moves an integer strictly towards its floor, so the call always
// terminates. The result may still exceed cellHeight.
func (c *CellContent) ResizeToFitCellHeight(cellHeight int, steps IconSizeSteps) int {
	h := c.Height()

	if h > cellHeight && c.MaxLineCount > 1 {
		c.MaxLineCount = 1
		h = c.Height()
	}

	if h > cellHeight {
		c.IconDrawablePaddingPx = max(0, c.IconDrawablePaddingPx-(h-cellHeight))
		h = c.Height()
	}

	for c.IconTextSizePx > steps.MinLabelSize() && h > cellHeight {
		c.IconTextSizePx = max(steps.MinLabelSize(), c.IconTextSizePx-1)
		if c.IconSizePx > steps.Min() {
			c.IconSizePx = steps.NextLower(c.IconSizePx)
		}
		h = c.Height()
	}

	if h > cellHeight && c.IconTextSizePx > 0 {
		c.IconTextSizePx = 0
		h = c.Height()
	}

	for c.IconSizePx > steps.Min() && h > cellHeight {
		c.IconSizePx = steps.NextLower(c.IconSizePx)
		h = c.Height()
	}

	return h
}
