package profile

import "strings"

// Degradation reports every way a build fell short of the grid it was asked
// for. A zero Degradation means the grid was honored exactly.
type Degradation struct {
	// IconsScaled is set when workspace icons are smaller than requested.
	IconsScaled bool `json:"icons_scaled"`
	// LabelsHidden is set when labels were shrunk to nothing.
	LabelsHidden bool `json:"labels_hidden"`
	// DrawablePaddingReduced is set when the icon to label gap was cut to
	// fit the cell.
	DrawablePaddingReduced bool `json:"drawable_padding_reduced"`
	DockSpanReduced        bool `json:"dock_span_reduced"`
	DockIconsRemoved       bool `json:"dock_icons_removed"`
	QsbShrunk              bool `json:"qsb_shrunk"`
	// QsbMovedBelow is set when the row was too narrow for an inline search
	// box and it was placed below the icons instead.
	QsbMovedBelow bool `json:"qsb_moved_below"`
	// ContentOverflow is set when the cell content still exceeds the cell
	// after the correction pass.
	ContentOverflow bool `json:"content_overflow"`
	FolderScaled    bool `json:"folder_scaled"`
	// TableFallbacks lists the responsive tables, in lookup order, that had
	// no matching entry and fell back to their last one.
	TableFallbacks []string `json:"table_fallbacks,omitempty"`
}

// IsDegraded reports whether anything was given up.
func (d Degradation) IsDegraded() bool {
	return len(d.Reasons()) > 0
}

// Reasons names every degradation, in a fixed order.
func (d Degradation) Reasons() []string {
	var out []string
	for _, r := range []struct {
		set  bool
		name string
	}{
		{d.IconsScaled, "icons_scaled"},
		{d.LabelsHidden, "labels_hidden"},
		{d.DrawablePaddingReduced, "drawable_padding_reduced"},
		{d.DockSpanReduced, "dock_span_reduced"},
		{d.DockIconsRemoved, "dock_icons_removed"},
		{d.QsbShrunk, "qsb_shrunk"},
		{d.QsbMovedBelow, "qsb_moved_below"},
		{d.ContentOverflow, "content_overflow"},
		{d.FolderScaled, "folder_scaled"},
	} {
		if r.set {
			out = append(out, r.name)
		}
	}
	for _, table := range d.TableFallbacks {
		out = append(out, "fallback:"+table)
	}
	return out
}

// String returns the string representation of the degradation.
func (d Degradation) String() string {
	reasons := d.Reasons()
	if len(reasons) == 0 {
		return "none"
	}
	return strings.Join(reasons, ",")
}
