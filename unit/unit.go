// Package unit converts device independent sizes to pixels.
//
// Dp is the unit for layout sizes, Sp the unit for text sizes. Pixels (px) are
// device dependent and only used for derived values.
package unit

import "math"

// Metric converts dp and sp values to device pixels. The zero value is a
// 1-to-1 scale.
type Metric struct {
	// PxPerDp is the number of device pixels per dp (the display density).
	PxPerDp float64
	// PxPerSp is the number of device pixels per sp.
	PxPerSp float64
}

// NewMetric returns a Metric for the given density, with sp equal to dp.
func NewMetric(density float64) Metric {
	return Metric{PxPerDp: density, PxPerSp: density}
}

func (m Metric) dpScale() float64 {
	if m.PxPerDp == 0 {
		return 1
	}
	return m.PxPerDp
}

func (m Metric) spScale() float64 {
	if m.PxPerSp == 0 {
		return 1
	}
	return m.PxPerSp
}

// Dp converts v to pixels, rounded to the nearest integer.
func (m Metric) Dp(v float64) int {
	return int(math.Round(m.dpScale() * v))
}

// DpScaled converts v to pixels with an extra scale factor applied before
// rounding down.
func (m Metric) DpScaled(v, scale float64) int {
	return int(math.Floor(m.dpScale() * v * scale))
}

// Sp converts v to pixels, rounded to the nearest integer.
func (m Metric) Sp(v float64) int {
	return int(math.Round(m.spScale() * v))
}

// SpScaled converts v to pixels with an extra scale factor applied before
// rounding down.
func (m Metric) SpScaled(v, scale float64) int {
	return int(math.Floor(m.spScale() * v * scale))
}

// ToDp converts pixels back to dp.
func (m Metric) ToDp(px int) float64 {
	return float64(px) / m.dpScale()
}

// TextHeight returns the pixel height of lines of text at sizePx. A line is
// 1.2x the text size, rounded up.
func TextHeight(sizePx, lines int) int {
	if sizePx <= 0 || lines <= 0 {
		return 0
	}
	return (sizePx*6 + 4) / 5 * lines
}

// ScalePx scales a pixel value, rounding down and never going negative.
func ScalePx(px int, scale float64) int {
	if px <= 0 {
		return 0
	}
	return int(math.Floor(float64(px) * scale))
}

// Finite reports whether every value is a real number, neither NaN nor
// infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
