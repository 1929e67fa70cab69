package inspect

import (
	"fmt"
	"strings"
	"time"

	"deviceprofile/device"
	"deviceprofile/grid"
	"deviceprofile/profile"
)

// Snapshot is a resolved profile at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Window describes the window the profile was built for.
	Window WindowInfo `json:"window"`

	// Profile holds the build summary.
	Profile ProfileInfo `json:"profile"`

	// Regions is the root of the region tree.
	Regions *Node `json:"regions"`

	// Breakpoints lists every grid breakpoint and which one is in use.
	Breakpoints []BreakpointInfo `json:"breakpoints"`

	// DockTrace is every iteration of the dock fit.
	DockTrace []profile.DockStep `json:"dock_trace"`
}

// WindowInfo contains the window metrics.
type WindowInfo struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Density     float64       `json:"density"`
	Orientation string        `json:"orientation"`
	Insets      device.Insets `json:"insets"`
}

// ProfileInfo contains profile-level values.
type ProfileInfo struct {
	Grid        string   `json:"grid"`
	Mode        string   `json:"mode"`
	Breakpoint  string   `json:"breakpoint"`
	IconScale   float64  `json:"icon_scale"`
	Degradation []string `json:"degradation"`
}

// BreakpointInfo contains information about a grid breakpoint.
type BreakpointInfo struct {
	// Name is the breakpoint name.
	Name string `json:"name"`

	// Declared is false when the grid falls back to its default entry.
	Declared bool `json:"declared"`

	// Active indicates if this breakpoint was used for the build.
	Active bool `json:"active"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// FromProfile returns a snapshot of p with its region tree.
func FromProfile(p *profile.Profile) *Snapshot {
	return NewSnapshot().WithProfile(p).WithRegions(Regions(p))
}

// WithProfile sets window, profile and breakpoint info from p.
func (s *Snapshot) WithProfile(p *profile.Profile) *Snapshot {
	m := p.Metrics
	s.Window = WindowInfo{
		Width:       m.AvailableWidth(),
		Height:      m.AvailableHeight(),
		Density:     m.Density,
		Orientation: m.Orientation.String(),
		Insets:      m.Insets,
	}
	s.Profile = ProfileInfo{
		Grid:        p.GridName,
		Mode:        p.Mode.String(),
		Breakpoint:  p.Breakpoint.String(),
		IconScale:   p.IconScale,
		Degradation: p.Degradation.Reasons(),
	}
	s.DockTrace = p.DockTrace

	spec := p.Inputs().Grid
	s.Breakpoints = []BreakpointInfo{
		{Name: grid.BreakpointDefault.String(), Declared: spec.Default != nil},
		{Name: grid.BreakpointLandscape.String(), Declared: spec.Landscape != nil},
		{Name: grid.BreakpointTwoPanelPortrait.String(), Declared: spec.TwoPanelPortrait != nil},
		{Name: grid.BreakpointTwoPanelLandscape.String(), Declared: spec.TwoPanelLandscape != nil},
	}
	for i := range s.Breakpoints {
		s.Breakpoints[i].Active = s.Breakpoints[i].Name == p.Breakpoint.String()
	}
	return s
}

// WithRegions sets the region tree root.
func (s *Snapshot) WithRegions(root *Node) *Snapshot {
	s.Regions = root
	return s
}

// Regions lays the resolved regions of p out in window pixels.
func Regions(p *profile.Profile) *Node {
	w, h := p.Metrics.AvailableWidth(), p.Metrics.AvailableHeight()
	root := NewNode("Window").WithBounds(0, 0, w, h)
	root.AddChild(workspaceNode(p))
	root.AddChild(pageIndicatorNode(p))
	root.AddChild(hotseatNode(p))
	root.AddChild(allAppsNode(p))
	root.AddChild(folderNode(p))
	return root
}

func workspaceNode(p *profile.Profile) *Node {
	ws := p.Workspace
	n := NewNode("Workspace").
		WithBounds(ws.Padding.Left, ws.Padding.Top, ws.ContentWidthPx, ws.ContentHeightPx).
		WithState("rows", ws.Rows).
		WithState("columns", ws.TotalColumns()).
		WithState("icon_size", ws.IconSizePx)
	for row := 0; row < ws.Rows; row++ {
		for col := 0; col < ws.TotalColumns(); col++ {
			x := ws.Padding.Left + col*(ws.CellWidthPx+ws.BorderSpace.X)
			y := ws.Padding.Top + row*(ws.CellHeightPx+ws.BorderSpace.Y)
			n.AddChild(NewNode("Cell").
				WithID(fmt.Sprintf("%d,%d", col, row)).
				WithBounds(x, y, ws.CellWidthPx, ws.CellHeightPx))
		}
	}
	return n
}

// pageIndicatorNode sits directly above the dock band.
func pageIndicatorNode(p *profile.Profile) *Node {
	ws := p.Workspace
	h := p.Metrics.AvailableHeight()
	n := NewNode("PageIndicator").
		WithBounds(ws.Padding.Left, h-ws.Padding.Bottom, ws.ContentWidthPx, ws.PageIndicatorHeightPx)
	if ws.PageIndicatorHeightPx == 0 {
		n.Hide()
	}
	return n
}

func hotseatNode(p *profile.Profile) *Node {
	hs := p.Hotseat
	n := NewNode("Hotseat").
		WithState("icons", hs.ShownIconCount).
		WithState("column_span", hs.ColumnSpan).
		WithState("border_space", hs.BorderSpacePx)
	if hs.Hidden {
		return n.Hide()
	}

	w, h := p.Metrics.AvailableWidth(), p.Metrics.AvailableHeight()
	in := p.Metrics.Insets
	step := hs.IconSizePx + hs.BorderSpacePx

	if hs.Vertical {
		x := w - in.Right - hs.BarSizePx
		if p.Metrics.IsSeascape() {
			x = in.Left
		}
		y := in.Top + hs.SideMarginPx
		n.WithBounds(x, y, hs.BarSizePx, hs.WidthPx).WithState("vertical", true)
		for i := 0; i < hs.ShownIconCount; i++ {
			n.AddChild(NewNode("Icon").WithID(fmt.Sprint(i)).
				WithBounds(x, y+i*step, hs.IconSizePx, hs.IconSizePx))
		}
		return n
	}

	bandTop := h - p.Workspace.Padding.Bottom + p.Workspace.PageIndicatorHeightPx
	row := hs.WidthPx
	if hs.Inline {
		row += hs.QsbSpacePx + hs.QsbWidthPx
	}
	x := (w - row) / 2
	n.WithBounds(x, bandTop, row, hs.BarSizePx)

	iconsX := x
	switch {
	case hs.Inline:
		n.AddChild(NewNode("Qsb").WithBounds(x, bandTop, hs.QsbWidthPx, hs.QsbHeightPx))
		iconsX += hs.QsbWidthPx + hs.QsbSpacePx
	case hs.QsbHeightPx > 0:
		qy := bandTop + hs.CellHeightPx + hs.QsbSpacePx
		n.AddChild(NewNode("Qsb").WithBounds((w-hs.QsbWidthPx)/2, qy, hs.QsbWidthPx, hs.QsbHeightPx))
	}
	for i := 0; i < hs.ShownIconCount; i++ {
		n.AddChild(NewNode("Icon").WithID(fmt.Sprint(i)).
			WithBounds(iconsX+i*step, bandTop, hs.IconSizePx, hs.IconSizePx))
	}
	return n
}

func allAppsNode(p *profile.Profile) *Node {
	aa := p.AllApps
	w, h := p.Metrics.AvailableWidth(), p.Metrics.AvailableHeight()
	return NewNode("AllApps").
		WithBounds(aa.Padding.Left, aa.Padding.Top, max(w-aa.Padding.Horizontal(), 0), max(h-aa.Padding.Vertical(), 0)).
		WithState("columns", aa.Columns).
		WithState("cell_width", aa.CellWidthPx).
		WithState("cell_height", aa.CellHeightPx).
		WithState("icon_size", aa.IconSizePx).
		WithState("max_line_count", aa.MaxLineCount)
}

// folderNode centers the open folder in the workspace content area.
func folderNode(p *profile.Profile) *Node {
	ws, f := p.Workspace, p.Folder
	x := ws.Padding.Left + (ws.ContentWidthPx-f.WidthPx)/2
	y := ws.Padding.Top + (ws.ContentHeightPx-f.HeightPx)/2
	return NewNode("Folder").
		WithBounds(x, y, f.WidthPx, f.HeightPx).
		WithState("rows", f.Rows).
		WithState("columns", f.Columns).
		WithState("scale", f.Scale)
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== Layout Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Window: %dx%d @%.2f %s\n", s.Window.Width, s.Window.Height, s.Window.Density, s.Window.Orientation))
	b.WriteString(fmt.Sprintf("Grid: %s (%s)\n", s.Profile.Grid, s.Profile.Mode))
	b.WriteString(fmt.Sprintf("Icon scale: %.4f\n", s.Profile.IconScale))
	if len(s.Profile.Degradation) > 0 {
		b.WriteString(fmt.Sprintf("Degraded: %s\n", strings.Join(s.Profile.Degradation, ", ")))
	}

	b.WriteString("\n--- Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		declared := ""
		if !bp.Declared {
			declared = " (default entry)"
		}
		b.WriteString(fmt.Sprintf("  %s %s%s\n", status, bp.Name, declared))
	}

	if len(s.DockTrace) > 0 {
		b.WriteString("\n--- Dock Fit ---\n")
		for _, step := range s.DockTrace {
			b.WriteString(fmt.Sprintf("  %-7s span=%d icons=%d qsb=%d target=%d border=%d\n",
				step.Phase, step.ColumnSpan, step.Icons, step.QsbWidthPx, step.TargetWidthPx, step.BorderSpacePx))
		}
	}

	if s.Regions != nil {
		b.WriteString("\n--- Regions ---\n")
		writeNodeText(&b, s.Regions, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	// Cells are summarized by their parent.
	if node.Type == "Cell" {
		return
	}
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%d,%d %dx%d)", node.Bounds.X, node.Bounds.Y, node.Bounds.Width, node.Bounds.Height))
	if !node.Visible {
		b.WriteString(" HIDDEN")
	}
	if cells := node.Count("Cell"); cells > 0 {
		b.WriteString(fmt.Sprintf(" cells=%d", cells))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
