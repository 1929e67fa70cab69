// Package responsive resolves breakpoint tables keyed by aspect ratio and
// available space.
//
// Every table is an ordered list. Selection is first-match: the first entry
// whose bounds admit the query wins, so tables are written from the most to
// the least restrictive entry. When nothing matches, the last entry acts as
// the catch-all default and the result is flagged as a fallback.
package responsive

import (
	"errors"
	"fmt"
	"math"

	"deviceprofile/unit"
)

// ErrInvalidTable is returned for tables that cannot be resolved.
var ErrInvalidTable = errors.New("invalid responsive table")

// Bounds are the thresholds an entry declares.
type Bounds struct {
	// MaxAspectRatio is the largest aspect ratio the entry applies to. Zero
	// means no limit.
	MaxAspectRatio float64 `yaml:"max_aspect_ratio,omitempty" json:"max_aspect_ratio,omitempty"`
	// MinAvailableDp is the smallest available space, in dp, the entry
	// applies to.
	MinAvailableDp float64 `yaml:"min_available_dp,omitempty" json:"min_available_dp,omitempty"`
}

// Matches reports whether a query falls inside the bounds.
func (b Bounds) Matches(aspectRatio, availableDp float64) bool {
	if b.MaxAspectRatio > 0 && aspectRatio > b.MaxAspectRatio {
		return false
	}
	return availableDp >= b.MinAvailableDp
}

// Validate checks that the thresholds are real numbers.
func (b Bounds) Validate() error {
	if !unit.Finite(b.MaxAspectRatio, b.MinAvailableDp) {
		return fmt.Errorf("%w: bounds %+v are not finite", ErrInvalidTable, b)
	}
	return nil
}

func (b Bounds) bounds() Bounds { return b }

type bounded interface {
	bounds() Bounds
}

// selectFirst returns the index of the first entry matching the query, or
// the last index with fallback set when none does. It returns -1 for an
// empty list.
func selectFirst[E bounded](entries []E, aspectRatio, availableDp float64) (idx int, fallback bool) {
	for i, e := range entries {
		if e.bounds().Matches(aspectRatio, availableDp) {
			return i, false
		}
	}
	return len(entries) - 1, true
}

type sizeKind int

const (
	kindFixed sizeKind = iota
	kindAvailable
	kindRemainder
	kindMatchWorkspace
)

// SizeSpec describes one dimension of an entry. At most one of the fields
// may be set; an empty SizeSpec is a fixed size of zero.
type SizeSpec struct {
	FixedDp        float64 `yaml:"fixed_dp,omitempty" json:"fixed_dp,omitempty"`
	OfAvailable    float64 `yaml:"of_available,omitempty" json:"of_available,omitempty"`
	OfRemainder    float64 `yaml:"of_remainder,omitempty" json:"of_remainder,omitempty"`
	MatchWorkspace bool    `yaml:"match_workspace,omitempty" json:"match_workspace,omitempty"`
	// MaxDp caps the resolved value. Zero means no cap.
	MaxDp float64 `yaml:"max_dp,omitempty" json:"max_dp,omitempty"`
}

func (s SizeSpec) kind() sizeKind {
	switch {
	case s.OfAvailable > 0:
		return kindAvailable
	case s.OfRemainder > 0:
		return kindRemainder
	case s.MatchWorkspace:
		return kindMatchWorkspace
	default:
		return kindFixed
	}
}

// Validate checks that a single sizing mode is used.
func (s SizeSpec) Validate() error {
	set := 0
	if s.FixedDp != 0 {
		set++
	}
	if s.OfAvailable != 0 {
		set++
	}
	if s.OfRemainder != 0 {
		set++
	}
	if s.MatchWorkspace {
		set++
	}
	if !unit.Finite(s.FixedDp, s.OfAvailable, s.OfRemainder, s.MaxDp) {
		return fmt.Errorf("%w: size spec %+v is not finite", ErrInvalidTable, s)
	}
	if set > 1 {
		return fmt.Errorf("%w: size spec %+v mixes sizing modes", ErrInvalidTable, s)
	}
	if s.FixedDp < 0 || s.MaxDp < 0 {
		return fmt.Errorf("%w: size spec %+v is negative", ErrInvalidTable, s)
	}
	if s.OfAvailable < 0 || s.OfAvailable > 1 || s.OfRemainder < 0 || s.OfRemainder > 1 {
		return fmt.Errorf("%w: size spec %+v fraction outside [0,1]", ErrInvalidTable, s)
	}
	return nil
}

func (s SizeSpec) capPx(m unit.Metric, px int) int {
	if s.MaxDp > 0 {
		px = min(px, m.Dp(s.MaxDp))
	}
	return max(px, 0)
}

// Spec is one row of a workspace, all-apps or folder table.
type Spec struct {
	Bounds       `yaml:",inline"`
	StartPadding SizeSpec `yaml:"start_padding" json:"start_padding"`
	EndPadding   SizeSpec `yaml:"end_padding" json:"end_padding"`
	Gutter       SizeSpec `yaml:"gutter" json:"gutter"`
	CellSize     SizeSpec `yaml:"cell_size" json:"cell_size"`
}

// Validate checks every dimension of the entry.
func (s Spec) Validate() error {
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	for _, sz := range []SizeSpec{s.StartPadding, s.EndPadding, s.Gutter, s.CellSize} {
		if err := sz.Validate(); err != nil {
			return err
		}
	}
	if s.CellSize.kind() == kindRemainder {
		for _, sz := range []SizeSpec{s.StartPadding, s.EndPadding, s.Gutter} {
			if sz.kind() == kindRemainder {
				return fmt.Errorf("%w: cell size and padding both take the remainder", ErrInvalidTable)
			}
		}
	}
	return nil
}

// Calculated is a table entry resolved to pixels along one axis.
type Calculated struct {
	AvailableSpacePx int
	Cells            int
	StartPaddingPx   int
	EndPaddingPx     int
	GutterPx         int
	CellSizePx       int
	// Index is the position of the selected entry in its table.
	Index int
	// Fallback is set when no entry matched and the last one was used.
	Fallback bool
}

// UsedPx is the space taken by padding, cells and gutters.
func (c Calculated) UsedPx() int {
	return c.StartPaddingPx + c.EndPaddingPx + c.CellSizePx*c.Cells + c.GutterPx*max(c.Cells-1, 0)
}

// Table is an ordered list of entries for one axis of one region.
type Table []Spec

// Validate checks that the table is usable.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidTable)
	}
	for i, s := range t {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// Select returns the entry for a query and whether it was a fallback.
func (t Table) Select(aspectRatio, availableDp float64) (Spec, int, bool) {
	idx, fallback := selectFirst([]Spec(t), aspectRatio, availableDp)
	if idx < 0 {
		return Spec{}, idx, true
	}
	return t[idx], idx, fallback
}

// Resolve selects an entry for the available space and converts it to
// pixels for the given number of cells. ref supplies the values for
// dimensions declared as MatchWorkspace; when it is nil those dimensions
// behave like a full share of the remainder.
func (t Table) Resolve(m unit.Metric, aspectRatio float64, availablePx, cells int, ref *Calculated) Calculated {
	cells = max(cells, 1)
	availablePx = max(availablePx, 0)
	spec, idx, fallback := t.Select(aspectRatio, m.ToDp(availablePx))

	out := Calculated{
		AvailableSpacePx: availablePx,
		Cells:            cells,
		Index:            idx,
		Fallback:         fallback,
	}

	refValue := func(field func(Calculated) int) (int, bool) {
		if ref == nil {
			return 0, false
		}
		return field(*ref), true
	}

	// First pass: everything that does not depend on the remainder.
	type dim struct {
		size     SizeSpec
		dst      *int
		ref      func(Calculated) int
		deferred bool
		share    float64
	}
	dims := []*dim{
		{size: spec.StartPadding, dst: &out.StartPaddingPx, ref: func(c Calculated) int { return c.StartPaddingPx }},
		{size: spec.EndPadding, dst: &out.EndPaddingPx, ref: func(c Calculated) int { return c.EndPaddingPx }},
		{size: spec.Gutter, dst: &out.GutterPx, ref: func(c Calculated) int { return c.GutterPx }},
		{size: spec.CellSize, dst: &out.CellSizePx, ref: func(c Calculated) int { return c.CellSizePx }},
	}
	cellDim := dims[3]
	for _, d := range dims {
		switch d.size.kind() {
		case kindFixed:
			*d.dst = d.size.capPx(m, m.Dp(d.size.FixedDp))
		case kindAvailable:
			*d.dst = d.size.capPx(m, int(math.Floor(float64(availablePx)*d.size.OfAvailable)))
		case kindMatchWorkspace:
			if v, ok := refValue(d.ref); ok {
				*d.dst = d.size.capPx(m, v)
			} else if d == cellDim {
				d.deferred, d.share = true, 1
			}
		case kindRemainder:
			d.deferred, d.share = true, d.size.OfRemainder
		}
	}

	gutters := max(cells-1, 0)
	if cellDim.deferred {
		space := availablePx - out.StartPaddingPx - out.EndPaddingPx - out.GutterPx*gutters
		out.CellSizePx = cellDim.size.capPx(m, int(math.Floor(float64(max(space, 0))*cellDim.share/float64(cells))))
	}

	remainder := max(availablePx-out.UsedPx(), 0)
	for _, d := range dims[:3] {
		if !d.deferred {
			continue
		}
		v := float64(remainder) * d.share
		if d.dst == &out.GutterPx {
			if gutters == 0 {
				*d.dst = 0
				continue
			}
			v /= float64(gutters)
		}
		*d.dst = d.size.capPx(m, int(math.Floor(v)))
	}
	return out
}

// CellSpec is one row of a cell table: the content to place in a cell of at
// least MinAvailableDp height.
type CellSpec struct {
	Bounds                `yaml:",inline"`
	IconSizeDp            float64 `yaml:"icon_size_dp" json:"icon_size_dp"`
	IconTextSizeSp        float64 `yaml:"icon_text_size_sp" json:"icon_text_size_sp"`
	IconDrawablePaddingDp float64 `yaml:"icon_drawable_padding_dp" json:"icon_drawable_padding_dp"`
	MaxLineCount          int     `yaml:"max_line_count,omitempty" json:"max_line_count,omitempty"`
}

// CellTable is an ordered list of cell content entries.
type CellTable []CellSpec

// Select returns the entry for a cell of the given height.
func (t CellTable) Select(aspectRatio, cellHeightDp float64) (CellSpec, bool) {
	idx, fallback := selectFirst([]CellSpec(t), aspectRatio, cellHeightDp)
	if idx < 0 {
		return CellSpec{}, true
	}
	return t[idx], fallback
}

// Validate checks that the sizes are finite and not negative.
func (s CellSpec) Validate() error {
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	if !unit.Finite(s.IconSizeDp, s.IconTextSizeSp, s.IconDrawablePaddingDp) {
		return fmt.Errorf("%w: cell entry %+v is not finite", ErrInvalidTable, s)
	}
	if s.IconSizeDp < 0 || s.IconTextSizeSp < 0 || s.IconDrawablePaddingDp < 0 || s.MaxLineCount < 0 {
		return fmt.Errorf("%w: cell entry %+v is negative", ErrInvalidTable, s)
	}
	return nil
}

// Content converts the entry to a pixel working record.
func (s CellSpec) Content(m unit.Metric) CellContent {
	return CellContent{
		IconSizePx:            m.Dp(s.IconSizeDp),
		IconDrawablePaddingPx: m.Dp(s.IconDrawablePaddingDp),
		IconTextSizePx:        m.Sp(s.IconTextSizeSp),
		MaxLineCount:          max(s.MaxLineCount, 1),
	}
}

// HotseatSpec is one row of a hotseat table.
type HotseatSpec struct {
	Bounds        `yaml:",inline"`
	QsbSpaceDp    float64 `yaml:"qsb_space_dp" json:"qsb_space_dp"`
	EdgePaddingDp float64 `yaml:"edge_padding_dp" json:"edge_padding_dp"`
}

// Validate checks that the sizes are finite and not negative.
func (s HotseatSpec) Validate() error {
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	if !unit.Finite(s.QsbSpaceDp, s.EdgePaddingDp) {
		return fmt.Errorf("%w: hotseat entry %+v is not finite", ErrInvalidTable, s)
	}
	if s.QsbSpaceDp < 0 || s.EdgePaddingDp < 0 {
		return fmt.Errorf("%w: hotseat entry %+v is negative", ErrInvalidTable, s)
	}
	return nil
}

// HotseatTable is an ordered list of hotseat entries keyed by available
// height.
type HotseatTable []HotseatSpec

// Select returns the entry for the available height.
func (t HotseatTable) Select(aspectRatio, availableDp float64) (HotseatSpec, bool) {
	idx, fallback := selectFirst([]HotseatSpec(t), aspectRatio, availableDp)
	if idx < 0 {
		return HotseatSpec{}, true
	}
	return t[idx], fallback
}
