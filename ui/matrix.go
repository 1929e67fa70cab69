package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deviceprofile/profile"
)

// MatrixRow is one device and grid combination of a matrix build.
type MatrixRow struct {
	Device  string
	Profile *profile.Profile
	// Err is set when the build failed; Profile is nil then.
	Err error
}

var matrixHeader = []string{"device", "grid", "mode", "icon", "scale", "dock", "status"}

func matrixCells(r MatrixRow) []string {
	if r.Err != nil {
		return []string{r.Device, "", "", "", "", "", StatusFailed.Icon() + " " + r.Err.Error()}
	}
	p := r.Profile
	return []string{
		r.Device,
		p.GridName,
		p.Mode.String(),
		fmt.Sprintf("%dpx", p.Workspace.IconSizePx),
		fmt.Sprintf("%.3f", p.IconScale),
		fmt.Sprintf("%d/%d", p.Hotseat.ShownIconCount, p.Hotseat.ColumnSpan),
		StatusOf(p, nil).Icon() + " " + p.Degradation.String(),
	}
}

// RenderMatrix renders rows as an aligned table.
func RenderMatrix(rows []MatrixRow) string {
	widths := make([]int, len(matrixHeader))
	table := [][]string{matrixHeader}
	for _, r := range rows {
		table = append(table, matrixCells(r))
	}
	for _, cells := range table {
		for i, c := range cells {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	for i, cells := range table {
		for j, c := range cells {
			style := TextStyles.Value
			switch {
			case i == 0:
				style = TextStyles.Header
			case j == len(cells)-1:
				style = StatusOf(rows[i-1].Profile, rows[i-1].Err).Style()
			}
			cell := style.Width(widths[j]).Render(c)
			if j == len(cells)-1 {
				cell = style.Render(c)
			}
			b.WriteString(cell)
			if j < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
