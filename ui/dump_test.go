package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deviceprofile/device"
	"deviceprofile/grid"
	"deviceprofile/profile"
	"deviceprofile/testing/dumptest"
)

func buildProfile(t *testing.T, preset, gridName string) *profile.Profile {
	t.Helper()
	d, ok := device.Lookup(device.Presets(), preset)
	require.True(t, ok)
	s, ok := grid.Lookup(grid.Builtin(), gridName)
	require.True(t, ok)
	p, err := profile.New(profile.Inputs{Metrics: d.Metrics, Grid: s})
	require.NoError(t, err)
	return p
}

func TestRenderDumpParsesLikePlainDump(t *testing.T) {
	for _, tc := range []struct{ preset, grid string }{
		{"phone", "5x6"},
		{"phone-split", "5x6"},
		{"foldable", "tablet"},
	} {
		t.Run(tc.preset+"/"+tc.grid, func(t *testing.T) {
			p := buildProfile(t, tc.preset, tc.grid)

			var plain strings.Builder
			require.NoError(t, p.Dump(&plain))
			want := dumptest.MustParse(t, plain.String())
			got := dumptest.MustParse(t, RenderDump(p))

			assert.Equal(t, want.Names(), got.Names())
			assert.Empty(t, dumptest.Diff(want, got))
		})
	}
}

func TestRenderDumpSections(t *testing.T) {
	out := dumptest.StripANSI(RenderDump(buildProfile(t, "phone", "5x6")))
	for _, header := range []string{"# profile", "# workspace", "# hotseat", "# all apps", "# folder"} {
		assert.Contains(t, out, header+"\n")
	}
	assert.Less(t, strings.Index(out, "# workspace"), strings.Index(out, "# hotseat"))
}

func TestRenderTrace(t *testing.T) {
	p := buildProfile(t, "foldable", "tablet")
	out := dumptest.StripANSI(RenderTrace(p))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "# dock fit", lines[0])
	assert.Len(t, lines, len(p.DockTrace)+1)
	assert.Contains(t, lines[1], "start")
}

func TestRenderMatrix(t *testing.T) {
	rows := []MatrixRow{
		{Device: "phone", Profile: buildProfile(t, "phone", "5x6")},
		{Device: "phone-split", Profile: buildProfile(t, "phone-split", "5x6")},
		{Device: "broken", Err: errors.New("invalid screen metrics")},
	}
	out := dumptest.StripANSI(RenderMatrix(rows))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "device"))
	assert.Contains(t, lines[1], "none")
	assert.Contains(t, lines[2], "icons_scaled")
	assert.Contains(t, lines[3], "invalid screen metrics")

	// Columns line up.
	col := strings.Index(lines[0], "grid")
	assert.Equal(t, "5x6", lines[1][col:col+3])
	assert.Equal(t, "5x6", lines[2][col:col+3])
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusOK, StatusOf(buildProfile(t, "phone", "5x6"), nil))
	assert.Equal(t, StatusDegraded, StatusOf(buildProfile(t, "phone-split", "5x6"), nil))
	assert.Equal(t, StatusFailed, StatusOf(nil, errors.New("boom")))

	assert.Equal(t, "! icons_scaled", dumptest.StripANSI(StatusDegraded.Render("icons_scaled")))
}
