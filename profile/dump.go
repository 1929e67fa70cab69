package profile

import (
	"fmt"
	"io"
	"strconv"

	"deviceprofile/unit"
)

// Field is one resolved value of a profile.
type Field struct {
	Name string
	// Px is set for pixel dimensions.
	Px int
	// Dp is Px converted back to density independent units.
	Dp        float64
	Dimension bool
	// Value is the printed form of non-dimension fields.
	Value string
}

// Text is the printed form of the field value.
func (f Field) Text() string {
	if f.Dimension {
		return fmt.Sprintf("%dpx (%sdp)", f.Px, strconv.FormatFloat(f.Dp, 'f', 1, 64))
	}
	return f.Value
}

type fieldList struct {
	m      unit.Metric
	fields []Field
}

func (l *fieldList) px(name string, v int) {
	l.fields = append(l.fields, Field{Name: name, Px: v, Dp: l.m.ToDp(v), Dimension: true})
}

func (l *fieldList) num(name string, v int) {
	l.value(name, strconv.Itoa(v))
}

func (l *fieldList) flag(name string, v bool) {
	l.value(name, strconv.FormatBool(v))
}

func (l *fieldList) ratio(name string, v float64) {
	l.value(name, strconv.FormatFloat(v, 'f', 4, 64))
}

func (l *fieldList) value(name, v string) {
	l.fields = append(l.fields, Field{Name: name, Value: v})
}

func (l *fieldList) rect(prefix string, r Rect) {
	l.px(prefix+"_left", r.Left)
	l.px(prefix+"_top", r.Top)
	l.px(prefix+"_right", r.Right)
	l.px(prefix+"_bottom", r.Bottom)
}

func (l *fieldList) point(prefix string, p Point) {
	l.px(prefix+"_x", p.X)
	l.px(prefix+"_y", p.Y)
}

// Fields returns every resolved value in dump order.
func (p *Profile) Fields() []Field {
	l := &fieldList{m: unit.NewMetric(p.Metrics.Density)}

	l.value("grid", p.GridName)
	l.value("mode", p.Mode.String())
	l.value("breakpoint", p.Breakpoint.String())
	l.ratio("density", p.Metrics.Density)
	l.px("window_width", p.Metrics.AvailableWidth())
	l.px("window_height", p.Metrics.AvailableHeight())
	l.ratio("aspect_ratio", p.Metrics.AspectRatio())
	l.ratio("icon_scale", p.IconScale)

	ws := p.Workspace
	l.num("workspace_rows", ws.Rows)
	l.num("workspace_columns", ws.Columns)
	l.num("workspace_panels", ws.Panels)
	l.px("workspace_cell_width", ws.CellWidthPx)
	l.px("workspace_cell_height", ws.CellHeightPx)
	l.px("workspace_icon_size", ws.IconSizePx)
	l.px("workspace_icon_text_size", ws.IconTextSizePx)
	l.px("workspace_icon_drawable_padding", ws.IconDrawablePaddingPx)
	l.num("workspace_max_line_count", ws.MaxLineCount)
	l.point("workspace_border_space", ws.BorderSpace)
	l.rect("workspace_padding", ws.Padding)
	l.px("workspace_page_indicator_height", ws.PageIndicatorHeightPx)
	l.px("workspace_content_width", ws.ContentWidthPx)
	l.px("workspace_content_height", ws.ContentHeightPx)

	hs := p.Hotseat
	l.flag("hotseat_hidden", hs.Hidden)
	l.flag("hotseat_vertical", hs.Vertical)
	l.flag("hotseat_inline_qsb", hs.Inline)
	l.px("hotseat_bar_size", hs.BarSizePx)
	l.px("hotseat_cell_height", hs.CellHeightPx)
	l.px("hotseat_icon_size", hs.IconSizePx)
	l.px("hotseat_border_space", hs.BorderSpacePx)
	l.num("hotseat_shown_icon_count", hs.ShownIconCount)
	l.num("hotseat_column_span", hs.ColumnSpan)
	l.px("hotseat_width", hs.WidthPx)
	l.px("hotseat_side_margin", hs.SideMarginPx)
	l.px("hotseat_qsb_width", hs.QsbWidthPx)
	l.px("hotseat_qsb_space", hs.QsbSpacePx)
	l.px("hotseat_qsb_height", hs.QsbHeightPx)

	aa := p.AllApps
	l.num("all_apps_columns", aa.Columns)
	l.px("all_apps_cell_width", aa.CellWidthPx)
	l.px("all_apps_cell_height", aa.CellHeightPx)
	l.px("all_apps_icon_size", aa.IconSizePx)
	l.px("all_apps_icon_text_size", aa.IconTextSizePx)
	l.px("all_apps_icon_drawable_padding", aa.IconDrawablePaddingPx)
	l.num("all_apps_max_line_count", aa.MaxLineCount)
	l.point("all_apps_border_space", aa.BorderSpace)
	l.rect("all_apps_padding", aa.Padding)

	f := p.Folder
	l.num("folder_rows", f.Rows)
	l.num("folder_columns", f.Columns)
	l.px("folder_cell_width", f.CellWidthPx)
	l.px("folder_cell_height", f.CellHeightPx)
	l.px("folder_icon_size", f.IconSizePx)
	l.px("folder_label_text_size", f.LabelTextSizePx)
	l.point("folder_border_space", f.BorderSpace)
	l.px("folder_footer_height", f.FooterHeightPx)
	l.px("folder_content_padding_top", f.ContentPaddingTopPx)
	l.px("folder_width", f.WidthPx)
	l.px("folder_height", f.HeightPx)
	l.ratio("folder_scale", f.Scale)

	l.value("degradation", p.Degradation.String())
	return l.fields
}

// Dump writes every resolved value as a "name: value" line.
func (p *Profile) Dump(w io.Writer) error {
	for _, f := range p.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Name, f.Text()); err != nil {
			return err
		}
	}
	return nil
}
