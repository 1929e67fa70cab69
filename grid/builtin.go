package grid

import "deviceprofile/responsive"

// DefaultIconSizeStepsDp are the icon sizes a shrinking icon snaps to when a
// grid does not declare its own.
var DefaultIconSizeStepsDp = []float64{28, 32, 36, 40, 44, 48, 52, 56, 60, 64, 68, 72}

const (
	defaultMinLabelSizeSp        = 8
	defaultPageIndicatorHeightDp = 24
)

func phoneDimensions(rows, columns int, iconDp float64) Dimensions {
	return Dimensions{
		Rows:                    rows,
		Columns:                 columns,
		IconSizeDp:              iconDp,
		IconTextSizeSp:          14,
		IconDrawablePaddingDp:   8,
		BorderSpaceDp:           Point{X: 8, Y: 16},
		HorizontalMarginDp:      8,
		TopPaddingDp:            24,
		HotseatIconCount:        columns,
		HotseatSideMarginDp:     8,
		HotseatBarTopSpaceDp:    16,
		HotseatBarBottomSpaceDp: 24,
		HotseatQsbHeightDp:      48,
		HotseatQsbSpaceDp:       16,
		HotseatMinQsbWidthDp:    160,
		HotseatMinIconSpaceDp:   8,
		HotseatMaxIconSpaceDp:   72,
		AllAppsBorderSpaceDp:    Point{X: 8, Y: 16},
		FolderRows:              3,
		FolderColumns:           3,
	}
}

func phoneLandscape(d Dimensions) *Dimensions {
	d.IconSizeDp = 48
	d.IconTextSizeSp = 12
	d.IconDrawablePaddingDp = 4
	d.BorderSpaceDp = Point{X: 16, Y: 4}
	d.HorizontalMarginDp = 16
	d.TopPaddingDp = 8
	return &d
}

func newPhoneGrid(name string, rows, columns int, iconDp float64) *Spec {
	d := phoneDimensions(rows, columns, iconDp)
	return &Spec{
		Name:                  name,
		Default:               &d,
		Landscape:             phoneLandscape(d),
		IconSizeStepsDp:       append([]float64(nil), DefaultIconSizeStepsDp...),
		MinLabelSizeSp:        defaultMinLabelSizeSp,
		PageIndicatorHeightDp: defaultPageIndicatorHeightDp,
	}
}

func newTabletGrid() *Spec {
	d := Dimensions{
		Rows:                    5,
		Columns:                 6,
		IconSizeDp:              64,
		IconTextSizeSp:          14,
		IconDrawablePaddingDp:   8,
		BorderSpaceDp:           Point{X: 32, Y: 16},
		MinCellSizeDp:           Point{X: 120, Y: 104},
		HorizontalMarginDp:      32,
		TopPaddingDp:            32,
		HotseatIconCount:        6,
		HotseatColumnSpan:       4,
		HotseatSideMarginDp:     48,
		HotseatBarTopSpaceDp:    24,
		HotseatBarBottomSpaceDp: 32,
		HotseatQsbHeightDp:      56,
		HotseatQsbSpaceDp:       32,
		HotseatMinQsbWidthDp:    240,
		HotseatMinIconSpaceDp:   16,
		HotseatMaxIconSpaceDp:   96,
		InlineQsb:               true,
		AllAppsColumns:          6,
		AllAppsBorderSpaceDp:    Point{X: 16, Y: 24},
		AllAppsCellHeightDp:     112,
		FolderRows:              3,
		FolderColumns:           4,
	}
	portrait := d
	portrait.Rows, portrait.Columns = 6, 5
	portrait.HotseatIconCount = 5
	portrait.HotseatColumnSpan = 0
	portrait.InlineQsb = false

	twoPanel := d
	twoPanel.Columns = 4
	twoPanel.HotseatColumnSpan = 3
	twoPanel.HotseatIconCount = 8

	twoPanelPortrait := twoPanel
	twoPanelPortrait.Rows = 5

	return &Spec{
		Name:                  "tablet",
		Default:               &portrait,
		Landscape:             &d,
		TwoPanelPortrait:      &twoPanelPortrait,
		TwoPanelLandscape:     &twoPanel,
		Scalable:              true,
		IconSizeStepsDp:       append([]float64(nil), DefaultIconSizeStepsDp...),
		MinLabelSizeSp:        defaultMinLabelSizeSp,
		PageIndicatorHeightDp: defaultPageIndicatorHeightDp,
	}
}

func newResponsiveGrid() *Spec {
	s := newPhoneGrid("responsive", 5, 4, 60)
	s.Name = "responsive"
	s.ResponsiveWidth = true
	s.ResponsiveHeight = true
	s.Responsive = &responsive.Tables{
		WorkspaceWidth: responsive.Table{
			{
				Bounds:       responsive.Bounds{MaxAspectRatio: 1.5},
				StartPadding: responsive.SizeSpec{FixedDp: 32},
				EndPadding:   responsive.SizeSpec{FixedDp: 32},
				Gutter:       responsive.SizeSpec{FixedDp: 24},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
			{
				Bounds:       responsive.Bounds{MinAvailableDp: 400},
				StartPadding: responsive.SizeSpec{FixedDp: 22},
				EndPadding:   responsive.SizeSpec{FixedDp: 22},
				Gutter:       responsive.SizeSpec{FixedDp: 16},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
			{
				StartPadding: responsive.SizeSpec{FixedDp: 12},
				EndPadding:   responsive.SizeSpec{FixedDp: 12},
				Gutter:       responsive.SizeSpec{FixedDp: 8},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
		},
		WorkspaceHeight: responsive.Table{
			{
				Bounds:       responsive.Bounds{MinAvailableDp: 600},
				StartPadding: responsive.SizeSpec{FixedDp: 48},
				EndPadding:   responsive.SizeSpec{FixedDp: 24},
				Gutter:       responsive.SizeSpec{FixedDp: 24},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
			{
				StartPadding: responsive.SizeSpec{FixedDp: 24},
				EndPadding:   responsive.SizeSpec{FixedDp: 8},
				Gutter:       responsive.SizeSpec{FixedDp: 8},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
		},
		AllAppsWidth: responsive.Table{
			{
				StartPadding: responsive.SizeSpec{MatchWorkspace: true},
				EndPadding:   responsive.SizeSpec{MatchWorkspace: true},
				Gutter:       responsive.SizeSpec{MatchWorkspace: true},
				CellSize:     responsive.SizeSpec{OfRemainder: 1},
			},
		},
		AllAppsHeight: responsive.Table{
			{
				Gutter:   responsive.SizeSpec{FixedDp: 16},
				CellSize: responsive.SizeSpec{FixedDp: 104},
			},
		},
		FolderWidth: responsive.Table{
			{
				StartPadding: responsive.SizeSpec{FixedDp: 16},
				EndPadding:   responsive.SizeSpec{FixedDp: 16},
				Gutter:       responsive.SizeSpec{FixedDp: 16},
				CellSize:     responsive.SizeSpec{MatchWorkspace: true},
			},
		},
		FolderHeight: responsive.Table{
			{
				StartPadding: responsive.SizeSpec{FixedDp: 16},
				EndPadding:   responsive.SizeSpec{FixedDp: 64},
				Gutter:       responsive.SizeSpec{FixedDp: 16},
				CellSize:     responsive.SizeSpec{MatchWorkspace: true},
			},
		},
		Hotseat: responsive.HotseatTable{
			{Bounds: responsive.Bounds{MinAvailableDp: 700}, QsbSpaceDp: 24, EdgePaddingDp: 32},
			{QsbSpaceDp: 12, EdgePaddingDp: 16},
		},
		Cell: responsive.CellTable{
			{Bounds: responsive.Bounds{MinAvailableDp: 110}, IconSizeDp: 60, IconTextSizeSp: 14, IconDrawablePaddingDp: 8, MaxLineCount: 2},
			{Bounds: responsive.Bounds{MinAvailableDp: 90}, IconSizeDp: 56, IconTextSizeSp: 14, IconDrawablePaddingDp: 8},
			{Bounds: responsive.Bounds{MinAvailableDp: 72}, IconSizeDp: 48, IconTextSizeSp: 12, IconDrawablePaddingDp: 6},
			{IconSizeDp: 40, IconTextSizeSp: 11, IconDrawablePaddingDp: 4},
		},
	}
	return s
}

// Builtin returns fresh copies of the builtin grids.
func Builtin() []*Spec {
	return []*Spec{
		newPhoneGrid("5x6", 6, 5, 60),
		newPhoneGrid("4x5", 5, 4, 56),
		newTabletGrid(),
		newResponsiveGrid(),
	}
}

// Lookup finds a grid by name.
func Lookup(specs []*Spec, name string) (*Spec, bool) {
	for _, s := range specs {
		if s != nil && s.Name == name {
			return s, true
		}
	}
	return nil, false
}
