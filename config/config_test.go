package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deviceprofile/flags"
	"deviceprofile/grid"
	"deviceprofile/profile"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return filepath.Join(home, ".deviceprofile")
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := setHome(t)

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err, "default config is written on first load")
}

func TestSaveAndLoadConfig(t *testing.T) {
	setHome(t)

	cfg := DefaultConfig()
	cfg.DefaultGrid = "4x5"
	cfg.Preferences.TextSizeMultiplier = 1.25
	cfg.Flags = map[string]bool{flags.TwoLineAllAppsText: true}
	require.NoError(t, SaveConfig(cfg))

	loaded := LoadConfig()
	assert.Equal(t, cfg, loaded)
	assert.True(t, flags.Get(loaded.FlagProvider(), flags.TwoLineAllAppsText))
	assert.True(t, flags.Get(loaded.FlagProvider(), flags.ResponsiveGrid), "unset flags keep defaults")
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := setHome(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"default_grid": "tablet"}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, "tablet", cfg.DefaultGrid)
	assert.Equal(t, defaultDevice, cfg.DefaultDevice)
}

func TestLoadConfigCorrupt(t *testing.T) {
	dir := setHome(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644))

	assert.Equal(t, DefaultConfig(), LoadConfig())

	backups, err := filepath.Glob(filepath.Join(dir, ConfigFileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Flags = map[string]bool{"no_such_flag": true}
	assert.ErrorContains(t, cfg.Validate(), "no_such_flag")

	cfg = DefaultConfig()
	cfg.Preferences.PageIndicatorHeightMultiplier = -1
	assert.ErrorIs(t, cfg.Validate(), profile.ErrInvalidPreferences)

	cfg = DefaultConfig()
	cfg.Preferences.TextSizeMultiplier = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), profile.ErrInvalidPreferences)
}

func TestGridsAndDevicesFromFiles(t *testing.T) {
	dir := t.TempDir()
	gridFile := filepath.Join(dir, "grids.yaml")
	require.NoError(t, os.WriteFile(gridFile, []byte(`grids:
  - name: 5x6
    default: {rows: 7, columns: 5, icon_size_dp: 48}
  - name: tiny
    default: {rows: 3, columns: 3, icon_size_dp: 40}
`), 0644))
	devicesFile := filepath.Join(dir, "devices.yaml")
	require.NoError(t, os.WriteFile(devicesFile, []byte(`devices:
  - name: phone
    metrics: {width_px: 1080, height_px: 2340, density: 2.625}
  - name: watch
    metrics: {width_px: 450, height_px: 450, density: 2}
`), 0644))

	cfg := DefaultConfig()
	cfg.GridFile = gridFile
	cfg.DevicesFile = devicesFile

	grids, err := cfg.Grids()
	require.NoError(t, err)
	assert.Len(t, grids, len(grid.Builtin())+1)
	s, ok := grid.Lookup(grids, "5x6")
	require.True(t, ok)
	assert.Equal(t, 7, s.Default.Rows)

	devices, err := cfg.Devices()
	require.NoError(t, err)
	var names []string
	for _, d := range devices {
		names = append(names, d.Name)
		if d.Name == "phone" {
			assert.Equal(t, 2340, d.Metrics.HeightPx)
		}
	}
	assert.Contains(t, names, "watch")

	cfg.GridFile = filepath.Join(dir, "missing.yaml")
	_, err = cfg.Grids()
	assert.Error(t, err)
}

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	lock := NewFileLock(path)

	require.NoError(t, lock.Lock())
	assert.Error(t, lock.Lock(), "lock is not reentrant")
	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock(), "unlocking twice is a no-op")

	require.NoError(t, lock.RLock())
	other := NewFileLock(path)
	require.NoError(t, other.RLock(), "shared locks coexist")
	require.NoError(t, other.Unlock())
	require.NoError(t, lock.Unlock())
}
