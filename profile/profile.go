// Package profile resolves screen metrics and a grid spec into the pixel
// geometry of every home screen region.
//
// A build runs in a fixed order: the dock band is sized first, then the
// workspace margins and cells are fitted into what is left, then the dock
// row is fitted horizontally, and finally the app list and folders are
// derived from the resolved workspace. Every loop is bounded by a small
// integer domain, so New always returns.
//
// New is a pure function of its Inputs. Profiles are immutable once built;
// use Variant to derive a profile from changed inputs.
package profile

import (
	"errors"
	"fmt"
	"time"

	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
	"deviceprofile/log"
	"deviceprofile/responsive"
	"deviceprofile/unit"
)

// ErrInvalidPreferences is returned for preference multipliers that are
// negative or not finite.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Preferences are user level scalars applied on top of the grid.
type Preferences struct {
	// HideDock removes the dock and its reserved band.
	HideDock bool `json:"hide_dock" yaml:"hide_dock"`
	// TextSizeMultiplier scales label sizes. Zero means 1.
	TextSizeMultiplier float64 `json:"text_size_multiplier" yaml:"text_size_multiplier"`
	// PageIndicatorHeightMultiplier scales the page indicator. Zero means 1.
	PageIndicatorHeightMultiplier float64 `json:"page_indicator_height_multiplier" yaml:"page_indicator_height_multiplier"`
}

// Validate checks the multipliers. Zero is allowed and means 1.
func (p Preferences) Validate() error {
	for _, v := range []struct {
		name string
		mult float64
	}{
		{"text size", p.TextSizeMultiplier},
		{"page indicator height", p.PageIndicatorHeightMultiplier},
	} {
		if !unit.Finite(v.mult) || v.mult < 0 {
			return fmt.Errorf("%w: %s multiplier %v must be zero or positive", ErrInvalidPreferences, v.name, v.mult)
		}
	}
	return nil
}

func (p Preferences) textMultiplier() float64 {
	if p.TextSizeMultiplier <= 0 {
		return 1
	}
	return p.TextSizeMultiplier
}

func (p Preferences) indicatorMultiplier() float64 {
	if p.PageIndicatorHeightMultiplier <= 0 {
		return 1
	}
	return p.PageIndicatorHeightMultiplier
}

// Inputs is everything a build depends on.
type Inputs struct {
	Metrics     device.ScreenMetrics
	Grid        *grid.Spec
	Preferences Preferences
	// Flags answers toggle queries. Nil means defaults.
	Flags flags.Provider
}

// Mode is how the workspace cells were sized.
type Mode int

const (
	ModeFixed Mode = iota
	ModeScalable
	ModeResponsive
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeScalable:
		return "scalable"
	case ModeResponsive:
		return "responsive"
	default:
		return "unknown"
	}
}

// Point is a pair of pixel values.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect holds a pixel value per edge.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Horizontal is the sum of the left and right edges.
func (r Rect) Horizontal() int { return r.Left + r.Right }

// Vertical is the sum of the top and bottom edges.
func (r Rect) Vertical() int { return r.Top + r.Bottom }

// Workspace is the resolved home screen grid.
type Workspace struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
	// Panels is 2 on multi-panel devices. Cells span every panel.
	Panels int `json:"panels"`

	CellWidthPx           int   `json:"cell_width_px"`
	CellHeightPx          int   `json:"cell_height_px"`
	IconSizePx            int   `json:"icon_size_px"`
	IconTextSizePx        int   `json:"icon_text_size_px"`
	IconDrawablePaddingPx int   `json:"icon_drawable_padding_px"`
	MaxLineCount          int   `json:"max_line_count"`
	BorderSpace           Point `json:"border_space"`
	Padding               Rect  `json:"padding"`
	PageIndicatorHeightPx int   `json:"page_indicator_height_px"`

	// ContentWidthPx and ContentHeightPx are the window less Padding.
	ContentWidthPx  int `json:"content_width_px"`
	ContentHeightPx int `json:"content_height_px"`
}

// TotalColumns is the number of columns across every panel.
func (w Workspace) TotalColumns() int {
	return w.Columns * max(w.Panels, 1)
}

// UsedWidthPx is the width taken by cells and the borders between them.
func (w Workspace) UsedWidthPx() int {
	return spanSize(w.CellWidthPx, w.BorderSpace.X, w.TotalColumns())
}

// UsedHeightPx is the height taken by cells and the borders between them.
func (w Workspace) UsedHeightPx() int {
	return spanSize(w.CellHeightPx, w.BorderSpace.Y, w.Rows)
}

// Hotseat is the resolved dock.
type Hotseat struct {
	// BarSizePx is the band reserved for the dock: its height, or its width
	// when Vertical.
	BarSizePx      int  `json:"bar_size_px"`
	CellHeightPx   int  `json:"cell_height_px"`
	IconSizePx     int  `json:"icon_size_px"`
	BorderSpacePx  int  `json:"border_space_px"`
	ShownIconCount int  `json:"shown_icon_count"`
	ColumnSpan     int  `json:"column_span"`
	WidthPx        int  `json:"width_px"`
	SideMarginPx   int  `json:"side_margin_px"`
	QsbWidthPx     int  `json:"qsb_width_px"`
	QsbSpacePx     int  `json:"qsb_space_px"`
	QsbHeightPx    int  `json:"qsb_height_px"`
	Inline         bool `json:"inline"`
	Vertical       bool `json:"vertical"`
	Hidden         bool `json:"hidden"`
}

// AllApps is the resolved app list.
type AllApps struct {
	Columns               int   `json:"columns"`
	CellWidthPx           int   `json:"cell_width_px"`
	CellHeightPx          int   `json:"cell_height_px"`
	IconSizePx            int   `json:"icon_size_px"`
	IconTextSizePx        int   `json:"icon_text_size_px"`
	IconDrawablePaddingPx int   `json:"icon_drawable_padding_px"`
	MaxLineCount          int   `json:"max_line_count"`
	BorderSpace           Point `json:"border_space"`
	Padding               Rect  `json:"padding"`
}

// Folder is the resolved folder overlay.
type Folder struct {
	Rows                int     `json:"rows"`
	Columns             int     `json:"columns"`
	CellWidthPx         int     `json:"cell_width_px"`
	CellHeightPx        int     `json:"cell_height_px"`
	IconSizePx          int     `json:"icon_size_px"`
	LabelTextSizePx     int     `json:"label_text_size_px"`
	BorderSpace         Point   `json:"border_space"`
	FooterHeightPx      int     `json:"footer_height_px"`
	ContentPaddingTopPx int     `json:"content_padding_top_px"`
	WidthPx             int     `json:"width_px"`
	HeightPx            int     `json:"height_px"`
	Scale               float64 `json:"scale"`
}

// Profile is a fully resolved layout.
type Profile struct {
	GridName   string               `json:"grid"`
	Breakpoint grid.Breakpoint      `json:"-"`
	Mode       Mode                 `json:"-"`
	Metrics    device.ScreenMetrics `json:"metrics"`
	// IconScale is the workspace icon size relative to the requested size.
	IconScale   float64     `json:"icon_scale"`
	Workspace   Workspace   `json:"workspace"`
	Hotseat     Hotseat     `json:"hotseat"`
	AllApps     AllApps     `json:"all_apps"`
	Folder      Folder      `json:"folder"`
	Degradation Degradation `json:"degradation"`
	// DockTrace records every iteration of the dock fit.
	DockTrace []DockStep `json:"dock_trace"`

	inputs Inputs
}

// Inputs returns a copy of the inputs the profile was built from.
func (p *Profile) Inputs() Inputs {
	in := p.inputs
	in.Grid = in.Grid.Clone()
	return in
}

// New builds a profile. It fails only on malformed input: a nil or invalid
// grid, or invalid metrics. Everything else degrades.
func New(in Inputs) (*Profile, error) {
	if in.Grid == nil {
		return nil, fmt.Errorf("failed to build profile: %w", grid.ErrNilSpec)
	}
	if err := in.Metrics.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}
	if err := in.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}
	if err := in.Preferences.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}
	in.Grid = in.Grid.Clone()

	start := time.Now()
	p := newBuilder(in).build()
	log.GetProfiler().RecordBuild(time.Since(start))

	if p.Degradation.IsDegraded() {
		log.Debug("profile %s on %dx%d degraded: %s", p.GridName,
			p.Metrics.AvailableWidth(), p.Metrics.AvailableHeight(), p.Degradation)
	}
	return p, nil
}

// MustNew is like New but panics on malformed input.
func MustNew(in Inputs) *Profile {
	p, err := New(in)
	if err != nil {
		panic(err)
	}
	return p
}

// builder carries the state of one build.
type builder struct {
	in      Inputs
	metrics device.ScreenMetrics
	spec    *grid.Spec
	dims    grid.Dimensions
	m       unit.Metric
	steps   responsive.IconSizeSteps
	tables  responsive.Tables
	aspect  float64
	windowW int
	windowH int

	responsiveWidth  bool
	responsiveHeight bool
	scalable         bool

	// margin is the declared workspace margin before insets and bands.
	margin Rect
	// Resolved workspace axes, kept as match references for the app list
	// and folder tables.
	workspaceX *responsive.Calculated
	workspaceY *responsive.Calculated

	p *Profile
}

func newBuilder(in Inputs) *builder {
	spec := in.Grid
	metrics := in.Metrics
	bp := grid.BreakpointFor(metrics.IsLandscape(), metrics.MultiPanel)
	m := unit.NewMetric(metrics.Density)

	stepsDp := spec.IconSizeStepsDp
	if len(stepsDp) == 0 {
		stepsDp = grid.DefaultIconSizeStepsDp
	}

	b := &builder{
		in:      in,
		metrics: metrics,
		spec:    spec,
		dims:    spec.For(bp),
		m:       m,
		steps:   responsive.NewIconSizeSteps(m, stepsDp, spec.MinLabelSizeSp),
		aspect:  metrics.AspectRatio(),
		windowW: metrics.AvailableWidth(),
		windowH: metrics.AvailableHeight(),
		p: &Profile{
			GridName:   spec.Name,
			Breakpoint: bp,
			Metrics:    metrics,
			inputs:     in,
		},
	}
	if spec.Responsive != nil && flags.Get(in.Flags, flags.ResponsiveGrid) {
		b.tables = *spec.Responsive
		b.responsiveWidth = spec.ResponsiveWidth
		b.responsiveHeight = spec.ResponsiveHeight
	}
	b.scalable = spec.Scalable && flags.Get(in.Flags, flags.ScalableGrid)

	switch {
	case b.responsiveWidth || b.responsiveHeight:
		b.p.Mode = ModeResponsive
	case b.scalable:
		b.p.Mode = ModeScalable
	default:
		b.p.Mode = ModeFixed
	}
	return b
}

func (b *builder) build() *Profile {
	prof := log.GetProfiler()

	done := prof.StartStage("dock-band")
	b.resolveDockBand()
	done()

	done = prof.StartStage("workspace")
	b.resolveWorkspace()
	done()

	done = prof.StartStage("dock")
	b.resolveDock()
	done()

	done = prof.StartStage("all-apps")
	b.resolveAllApps()
	done()

	done = prof.StartStage("folder")
	b.resolveFolder()
	done()

	return b.p
}

// fallback records that a table had no matching entry.
func (b *builder) fallback(table string) {
	b.p.Degradation.TableFallbacks = append(b.p.Degradation.TableFallbacks, table)
	log.Debug("grid %s: no %s entry matches aspect %.3f, using the last entry", b.spec.Name, table, b.aspect)
}

// spanSize is the length of n cells of size cell separated by border.
func spanSize(cell, border, n int) int {
	if n <= 0 {
		return 0
	}
	return cell*n + border*(n-1)
}
