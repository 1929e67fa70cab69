package responsive

import (
	"sort"

	"deviceprofile/unit"
)

// IconSizeSteps is the ordered set of icon sizes a shrinking icon may take.
type IconSizeSteps struct {
	steps      []int
	minLabelPx int
}

// NewIconSizeSteps converts a list of dp sizes into pixel steps. Duplicate
// and non-positive sizes are dropped.
func NewIconSizeSteps(m unit.Metric, stepsDp []float64, minLabelSp float64) IconSizeSteps {
	seen := make(map[int]bool, len(stepsDp))
	steps := make([]int, 0, len(stepsDp))
	for _, dp := range stepsDp {
		px := m.Dp(dp)
		if px <= 0 || seen[px] {
			continue
		}
		seen[px] = true
		steps = append(steps, px)
	}
	sort.Ints(steps)
	return IconSizeSteps{steps: steps, minLabelPx: max(m.Sp(minLabelSp), 0)}
}

// Min is the smallest permitted icon size.
func (s IconSizeSteps) Min() int {
	if len(s.steps) == 0 {
		return 1
	}
	return s.steps[0]
}

// MinLabelSize is the smallest text size a label shrinks to before it is
// hidden.
func (s IconSizeSteps) MinLabelSize() int {
	return s.minLabelPx
}

// Steps returns a copy of the pixel steps in ascending order.
func (s IconSizeSteps) Steps() []int {
	return append([]int(nil), s.steps...)
}

// NextLower returns the largest step strictly below px. It never returns
// less than Min.
func (s IconSizeSteps) NextLower(px int) int {
	if len(s.steps) == 0 {
		return max(px-1, 1)
	}
	i := sort.SearchInts(s.steps, px)
	if i == 0 {
		return s.steps[0]
	}
	return s.steps[i-1]
}

// SnapDown returns the largest step not above px, or Min when px is below
// every step.
func (s IconSizeSteps) SnapDown(px int) int {
	if len(s.steps) == 0 {
		return max(px, 1)
	}
	i := sort.SearchInts(s.steps, px+1)
	if i == 0 {
		return s.steps[0]
	}
	return s.steps[i-1]
}
