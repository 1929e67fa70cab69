// Package ui renders profiles for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deviceprofile/profile"
)

// sections groups dump fields by name prefix, in dump order.
var sections = []struct {
	title  string
	prefix string
}{
	{"workspace", "workspace_"},
	{"hotseat", "hotseat_"},
	{"all apps", "all_apps_"},
	{"folder", "folder_"},
}

func sectionOf(name string) string {
	for _, s := range sections {
		if strings.HasPrefix(name, s.prefix) {
			return s.title
		}
	}
	return "profile"
}

// RenderDump renders the fields of p grouped by region. Every field stays
// on its own "name: value" line so the output parses like a plain dump once
// styling is stripped. Section headers start with "#".
func RenderDump(p *profile.Profile) string {
	fields := p.Fields()
	nameWidth := 0
	for _, f := range fields {
		nameWidth = max(nameWidth, lipgloss.Width(f.Name)+1)
	}
	nameStyle := TextStyles.Name.Width(nameWidth + 1)

	var b strings.Builder
	current := ""
	for _, f := range fields {
		if s := sectionOf(f.Name); s != current {
			if current != "" {
				b.WriteString("\n")
			}
			b.WriteString(TextStyles.Header.Render("# "+s) + "\n")
			current = s
		}
		b.WriteString(nameStyle.Render(f.Name+":") + renderValue(p, f) + "\n")
	}
	return b.String()
}

func renderValue(p *profile.Profile, f profile.Field) string {
	switch {
	case f.Name == "degradation":
		return StatusOf(p, nil).Style().Render(f.Text())
	case f.Dimension:
		px, dp, _ := strings.Cut(f.Text(), " ")
		return TextStyles.Value.Render(px) + " " + TextStyles.Unit.Render(dp)
	default:
		return TextStyles.Value.Render(f.Text())
	}
}

// RenderTrace renders the dock fit iterations of p, one per line.
func RenderTrace(p *profile.Profile) string {
	var b strings.Builder
	b.WriteString(TextStyles.Header.Render("# dock fit") + "\n")
	for i, s := range p.DockTrace {
		b.WriteString(TextStyles.Unit.Render(fmt.Sprintf("%2d ", i)))
		b.WriteString(TextStyles.Value.Render(fmt.Sprintf("%-7s", s.Phase)))
		b.WriteString(fmt.Sprintf(" span=%d icons=%d qsb=%d target=%d border=%d\n",
			s.ColumnSpan, s.Icons, s.QsbWidthPx, s.TargetWidthPx, s.BorderSpacePx))
	}
	return b.String()
}
