// Package device describes the screen a layout profile is built for.
package device

import (
	"errors"
	"fmt"

	"deviceprofile/unit"
)

// ErrInvalidMetrics is returned when screen metrics cannot describe a real
// display.
var ErrInvalidMetrics = errors.New("invalid screen metrics")

// Orientation of the display.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "portrait", "":
		*o = Portrait
	case "landscape":
		*o = Landscape
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}
	return nil
}

// Insets are the system-reserved areas along each edge, in pixels.
type Insets struct {
	Left   int `yaml:"left" json:"left"`
	Top    int `yaml:"top" json:"top"`
	Right  int `yaml:"right" json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// ScreenMetrics is the raw display description a profile is computed from.
// It is a plain value; the engine never retains or mutates it.
type ScreenMetrics struct {
	WidthPx  int `yaml:"width_px" json:"width_px"`
	HeightPx int `yaml:"height_px" json:"height_px"`

	// AvailableWidthPx and AvailableHeightPx describe the window the layout
	// lives in. Zero means the full screen.
	AvailableWidthPx  int `yaml:"available_width_px" json:"available_width_px"`
	AvailableHeightPx int `yaml:"available_height_px" json:"available_height_px"`

	// Density is the number of pixels per dp.
	Density     float64     `yaml:"density" json:"density"`
	Orientation Orientation `yaml:"orientation" json:"orientation"`
	Insets      Insets      `yaml:"insets" json:"insets"`

	MultiPanel bool `yaml:"multi_panel" json:"multi_panel"`
	Tablet     bool `yaml:"tablet" json:"tablet"`

	// Rotation is the display rotation in degrees (0, 90, 180, 270).
	Rotation int `yaml:"rotation" json:"rotation"`
}

// Validate reports whether the metrics describe a usable display.
func (m ScreenMetrics) Validate() error {
	if m.WidthPx <= 0 || m.HeightPx <= 0 {
		return fmt.Errorf("%w: screen size %dx%d must be positive", ErrInvalidMetrics, m.WidthPx, m.HeightPx)
	}
	if !(m.Density > 0) || !unit.Finite(m.Density) {
		return fmt.Errorf("%w: density %v must be positive and finite", ErrInvalidMetrics, m.Density)
	}
	if m.AvailableWidthPx < 0 || m.AvailableHeightPx < 0 {
		return fmt.Errorf("%w: available size %dx%d is negative", ErrInvalidMetrics, m.AvailableWidthPx, m.AvailableHeightPx)
	}
	if m.AvailableWidthPx > m.WidthPx || m.AvailableHeightPx > m.HeightPx {
		return fmt.Errorf("%w: available size %dx%d exceeds screen %dx%d", ErrInvalidMetrics,
			m.AvailableWidthPx, m.AvailableHeightPx, m.WidthPx, m.HeightPx)
	}
	in := m.Insets
	if in.Left < 0 || in.Top < 0 || in.Right < 0 || in.Bottom < 0 {
		return fmt.Errorf("%w: negative inset %+v", ErrInvalidMetrics, in)
	}
	switch m.Rotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("%w: rotation %d is not a multiple of 90", ErrInvalidMetrics, m.Rotation)
	}
	return nil
}

// AvailableWidth returns the window width, defaulting to the screen width.
func (m ScreenMetrics) AvailableWidth() int {
	if m.AvailableWidthPx == 0 {
		return m.WidthPx
	}
	return m.AvailableWidthPx
}

// AvailableHeight returns the window height, defaulting to the screen height.
func (m ScreenMetrics) AvailableHeight() int {
	if m.AvailableHeightPx == 0 {
		return m.HeightPx
	}
	return m.AvailableHeightPx
}

// AspectRatio is the long edge divided by the short edge of the window.
func (m ScreenMetrics) AspectRatio() float64 {
	w, h := m.AvailableWidth(), m.AvailableHeight()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(max(w, h)) / float64(min(w, h))
}

// IsLandscape reports whether the display is in landscape orientation.
func (m ScreenMetrics) IsLandscape() bool {
	return m.Orientation == Landscape
}

// IsVerticalBarLayout reports whether the dock runs along a side edge. This
// happens on handheld devices in landscape.
func (m ScreenMetrics) IsVerticalBarLayout() bool {
	return m.IsLandscape() && !m.Tablet
}

// IsSeascape reports whether the device is in reverse landscape, which moves
// a vertical dock bar to the left edge.
func (m ScreenMetrics) IsSeascape() bool {
	return m.IsVerticalBarLayout() && m.Rotation == 270
}

// WithWindow returns a copy of the metrics for a window of the given size
// inside the same display. Orientation follows the window shape.
func (m ScreenMetrics) WithWindow(widthPx, heightPx int) ScreenMetrics {
	out := m
	out.WidthPx = widthPx
	out.HeightPx = heightPx
	out.AvailableWidthPx = 0
	out.AvailableHeightPx = 0
	if widthPx > heightPx {
		out.Orientation = Landscape
	} else {
		out.Orientation = Portrait
	}
	return out
}
