// Package grid holds the declarative grid specification a profile is built
// from: per-breakpoint row, column and size tables, plus optional responsive
// tables.
package grid

import (
	"errors"
	"fmt"

	"deviceprofile/responsive"
	"deviceprofile/unit"
)

var (
	// ErrNilSpec is returned when no grid spec is supplied.
	ErrNilSpec = errors.New("grid spec is nil")
	// ErrInvalidSpec is returned for grid specs that cannot be laid out.
	ErrInvalidSpec = errors.New("invalid grid spec")
)

// Breakpoint selects the dimensions entry for a device posture.
type Breakpoint int

const (
	BreakpointDefault Breakpoint = iota
	BreakpointLandscape
	BreakpointTwoPanelPortrait
	BreakpointTwoPanelLandscape
)

// String returns the string representation of the breakpoint.
func (b Breakpoint) String() string {
	switch b {
	case BreakpointDefault:
		return "default"
	case BreakpointLandscape:
		return "landscape"
	case BreakpointTwoPanelPortrait:
		return "two-panel-portrait"
	case BreakpointTwoPanelLandscape:
		return "two-panel-landscape"
	default:
		return "unknown"
	}
}

// BreakpointFor picks the breakpoint for an orientation and panel count.
func BreakpointFor(landscape, multiPanel bool) Breakpoint {
	switch {
	case multiPanel && landscape:
		return BreakpointTwoPanelLandscape
	case multiPanel:
		return BreakpointTwoPanelPortrait
	case landscape:
		return BreakpointLandscape
	default:
		return BreakpointDefault
	}
}

// Point is a pair of dp values.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Dimensions is the grid description for one breakpoint. Sizes are in dp,
// text sizes in sp.
type Dimensions struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`

	IconSizeDp            float64 `yaml:"icon_size_dp"`
	IconTextSizeSp        float64 `yaml:"icon_text_size_sp"`
	IconDrawablePaddingDp float64 `yaml:"icon_drawable_padding_dp"`
	BorderSpaceDp         Point   `yaml:"border_space_dp"`
	// MinCellSizeDp is the cell size used by scalable grids.
	MinCellSizeDp      Point   `yaml:"min_cell_size_dp"`
	HorizontalMarginDp float64 `yaml:"horizontal_margin_dp"`
	TopPaddingDp       float64 `yaml:"top_padding_dp"`

	HotseatIconCount int `yaml:"hotseat_icon_count"`
	// HotseatColumnSpan is the number of workspace columns the dock spans.
	// Zero means all of them.
	HotseatColumnSpan       int     `yaml:"hotseat_column_span"`
	HotseatSideMarginDp     float64 `yaml:"hotseat_side_margin_dp"`
	HotseatBarTopSpaceDp    float64 `yaml:"hotseat_bar_top_space_dp"`
	HotseatBarBottomSpaceDp float64 `yaml:"hotseat_bar_bottom_space_dp"`
	// HotseatQsbHeightDp is the search box height. Zero means no search box.
	HotseatQsbHeightDp    float64 `yaml:"hotseat_qsb_height_dp"`
	HotseatQsbSpaceDp     float64 `yaml:"hotseat_qsb_space_dp"`
	HotseatMinQsbWidthDp  float64 `yaml:"hotseat_min_qsb_width_dp"`
	HotseatMinIconSpaceDp float64 `yaml:"hotseat_min_icon_space_dp"`
	// HotseatMaxIconSpaceDp caps the dock border space. Zero means no cap.
	HotseatMaxIconSpaceDp float64 `yaml:"hotseat_max_icon_space_dp"`
	InlineQsb             bool    `yaml:"inline_qsb"`

	AllAppsColumns        int     `yaml:"all_apps_columns"`
	AllAppsIconSizeDp     float64 `yaml:"all_apps_icon_size_dp"`
	AllAppsIconTextSizeSp float64 `yaml:"all_apps_icon_text_size_sp"`
	AllAppsBorderSpaceDp  Point   `yaml:"all_apps_border_space_dp"`
	// AllAppsCellHeightDp fixes the app list row height. Zero derives it from
	// the content.
	AllAppsCellHeightDp float64 `yaml:"all_apps_cell_height_dp"`

	FolderRows    int `yaml:"folder_rows"`
	FolderColumns int `yaml:"folder_columns"`
}

// withDefaults fills the fields whose zero value has no useful meaning.
func (d Dimensions) withDefaults() Dimensions {
	if d.HotseatIconCount == 0 {
		d.HotseatIconCount = d.Columns
	}
	if d.HotseatColumnSpan == 0 {
		d.HotseatColumnSpan = d.Columns
	}
	if d.AllAppsColumns == 0 {
		d.AllAppsColumns = d.Columns
	}
	if d.AllAppsIconSizeDp == 0 {
		d.AllAppsIconSizeDp = d.IconSizeDp
	}
	if d.AllAppsIconTextSizeSp == 0 {
		d.AllAppsIconTextSizeSp = d.IconTextSizeSp
	}
	if d.FolderRows == 0 {
		d.FolderRows = 3
	}
	if d.FolderColumns == 0 {
		d.FolderColumns = 3
	}
	return d
}

// sizes returns every dp and sp value of the entry.
func (d Dimensions) sizes() []float64 {
	return []float64{
		d.IconSizeDp, d.IconTextSizeSp, d.IconDrawablePaddingDp,
		d.BorderSpaceDp.X, d.BorderSpaceDp.Y, d.MinCellSizeDp.X, d.MinCellSizeDp.Y,
		d.HorizontalMarginDp, d.TopPaddingDp,
		d.HotseatSideMarginDp, d.HotseatBarTopSpaceDp, d.HotseatBarBottomSpaceDp,
		d.HotseatQsbHeightDp, d.HotseatQsbSpaceDp, d.HotseatMinQsbWidthDp,
		d.HotseatMinIconSpaceDp, d.HotseatMaxIconSpaceDp,
		d.AllAppsIconSizeDp, d.AllAppsIconTextSizeSp,
		d.AllAppsBorderSpaceDp.X, d.AllAppsBorderSpaceDp.Y, d.AllAppsCellHeightDp,
	}
}

func (d Dimensions) validate(scalable bool) error {
	switch {
	case !unit.Finite(d.sizes()...):
		return fmt.Errorf("%w: sizes must be finite", ErrInvalidSpec)
	case d.Rows <= 0 || d.Columns <= 0:
		return fmt.Errorf("%w: grid %dx%d must have rows and columns", ErrInvalidSpec, d.Columns, d.Rows)
	case d.IconSizeDp <= 0:
		return fmt.Errorf("%w: icon size %vdp must be positive", ErrInvalidSpec, d.IconSizeDp)
	case d.IconTextSizeSp < 0 || d.IconDrawablePaddingDp < 0:
		return fmt.Errorf("%w: text size and drawable padding cannot be negative", ErrInvalidSpec)
	case d.BorderSpaceDp.X < 0 || d.BorderSpaceDp.Y < 0:
		return fmt.Errorf("%w: border space cannot be negative", ErrInvalidSpec)
	case d.HotseatIconCount < 0 || d.HotseatColumnSpan < 0:
		return fmt.Errorf("%w: hotseat counts cannot be negative", ErrInvalidSpec)
	case d.HotseatMinIconSpaceDp < 0 || d.HotseatMaxIconSpaceDp < 0 || d.HotseatMinQsbWidthDp < 0:
		return fmt.Errorf("%w: hotseat spacing cannot be negative", ErrInvalidSpec)
	case d.HotseatMaxIconSpaceDp > 0 && d.HotseatMaxIconSpaceDp < d.HotseatMinIconSpaceDp:
		return fmt.Errorf("%w: hotseat max icon space below min icon space", ErrInvalidSpec)
	case d.AllAppsColumns < 0 || d.FolderRows < 0 || d.FolderColumns < 0:
		return fmt.Errorf("%w: all apps and folder counts cannot be negative", ErrInvalidSpec)
	case scalable && (d.MinCellSizeDp.X <= 0 || d.MinCellSizeDp.Y <= 0):
		return fmt.Errorf("%w: scalable grid needs a min cell size", ErrInvalidSpec)
	}
	return nil
}

// Spec is a complete grid specification.
type Spec struct {
	Name string `yaml:"name"`

	Default           *Dimensions `yaml:"default"`
	Landscape         *Dimensions `yaml:"landscape,omitempty"`
	TwoPanelPortrait  *Dimensions `yaml:"two_panel_portrait,omitempty"`
	TwoPanelLandscape *Dimensions `yaml:"two_panel_landscape,omitempty"`

	// Scalable sizes cells from MinCellSizeDp and scales them continuously.
	Scalable bool `yaml:"scalable"`
	// ResponsiveWidth and ResponsiveHeight switch an axis to the responsive
	// tables.
	ResponsiveWidth  bool               `yaml:"responsive_width"`
	ResponsiveHeight bool               `yaml:"responsive_height"`
	Responsive       *responsive.Tables `yaml:"responsive,omitempty"`

	IconSizeStepsDp       []float64 `yaml:"icon_size_steps_dp"`
	MinLabelSizeSp        float64   `yaml:"min_label_size_sp"`
	PageIndicatorHeightDp float64   `yaml:"page_indicator_height_dp"`
}

// Validate checks that the spec can be laid out. A nil spec is an error.
func (s *Spec) Validate() error {
	if s == nil {
		return ErrNilSpec
	}
	if s.Default == nil {
		return fmt.Errorf("%w: grid %q has no default dimensions", ErrInvalidSpec, s.Name)
	}
	for _, bp := range []Breakpoint{BreakpointDefault, BreakpointLandscape, BreakpointTwoPanelPortrait, BreakpointTwoPanelLandscape} {
		d := s.entry(bp)
		if d == nil {
			continue
		}
		if err := d.validate(s.Scalable); err != nil {
			return fmt.Errorf("grid %q %s: %w", s.Name, bp, err)
		}
	}
	if err := s.Responsive.Validate(s.ResponsiveWidth, s.ResponsiveHeight); err != nil {
		return fmt.Errorf("grid %q: %w: %w", s.Name, ErrInvalidSpec, err)
	}
	if !unit.Finite(s.MinLabelSizeSp, s.PageIndicatorHeightDp) {
		return fmt.Errorf("%w: grid %q has non-finite sizes", ErrInvalidSpec, s.Name)
	}
	if s.MinLabelSizeSp < 0 || s.PageIndicatorHeightDp < 0 {
		return fmt.Errorf("%w: grid %q has negative sizes", ErrInvalidSpec, s.Name)
	}
	for _, dp := range s.IconSizeStepsDp {
		if !(dp > 0) || !unit.Finite(dp) {
			return fmt.Errorf("%w: grid %q icon size step %vdp", ErrInvalidSpec, s.Name, dp)
		}
	}
	return nil
}

func (s *Spec) entry(bp Breakpoint) *Dimensions {
	switch bp {
	case BreakpointLandscape:
		return s.Landscape
	case BreakpointTwoPanelPortrait:
		return s.TwoPanelPortrait
	case BreakpointTwoPanelLandscape:
		return s.TwoPanelLandscape
	default:
		return s.Default
	}
}

// For returns the dimensions of a breakpoint, falling back to the default
// entry when the breakpoint is not declared.
func (s *Spec) For(bp Breakpoint) Dimensions {
	d := s.entry(bp)
	if d == nil {
		d = s.Default
	}
	return d.withDefaults()
}

// Clone returns a deep copy of the spec.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	out := *s
	for _, p := range []**Dimensions{&out.Default, &out.Landscape, &out.TwoPanelPortrait, &out.TwoPanelLandscape} {
		if *p != nil {
			d := **p
			*p = &d
		}
	}
	out.IconSizeStepsDp = append([]float64(nil), s.IconSizeStepsDp...)
	if s.Responsive != nil {
		t := *s.Responsive
		t.WorkspaceWidth = append(responsive.Table(nil), t.WorkspaceWidth...)
		t.WorkspaceHeight = append(responsive.Table(nil), t.WorkspaceHeight...)
		t.AllAppsWidth = append(responsive.Table(nil), t.AllAppsWidth...)
		t.AllAppsHeight = append(responsive.Table(nil), t.AllAppsHeight...)
		t.FolderWidth = append(responsive.Table(nil), t.FolderWidth...)
		t.FolderHeight = append(responsive.Table(nil), t.FolderHeight...)
		t.Hotseat = append(responsive.HotseatTable(nil), t.Hotseat...)
		t.Cell = append(responsive.CellTable(nil), t.Cell...)
		out.Responsive = &t
	}
	return &out
}
