// Package inspect renders a resolved profile as a tree of regions with
// window bounds, for debugging and for tools that cannot read the dump.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// EnvInspect turns on snapshot files for every build the CLI runs.
	EnvInspect = "DP_INSPECT"
	// EnvInspectDir overrides the directory snapshot files go to.
	EnvInspectDir = "DP_INSPECT_DIR"
)

var (
	enabled     bool
	enabledOnce sync.Once
	inspectDir  string
)

// IsEnabled returns true if DP_INSPECT=1 is set.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		enabled = os.Getenv(EnvInspect) == "1"
		inspectDir = os.Getenv(EnvInspectDir)
		if inspectDir == "" {
			inspectDir = os.TempDir()
		}
	})
	return enabled
}

// Dir returns the directory WriteSnapshot writes to, or "" when inspection
// is off.
func Dir() string {
	if !IsEnabled() {
		return ""
	}
	return inspectDir
}

// SnapshotPath returns the file name of s inside dir. Grid and window size
// are part of the name, so the builds of a matrix get one file each.
func SnapshotPath(dir string, s *Snapshot) string {
	name := fmt.Sprintf("deviceprofile-%s-%dx%d.json",
		fileSafe(s.Profile.Grid), s.Window.Width, s.Window.Height)
	return filepath.Join(dir, name)
}

func fileSafe(s string) string {
	if s == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

// WriteSnapshot writes s to the inspection directory when inspection is
// enabled.
func WriteSnapshot(s *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(s, SnapshotPath(inspectDir, s))
}

// WriteSnapshotToPath writes s as indented JSON. An existing file is
// replaced atomically.
func WriteSnapshotToPath(s *Snapshot, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".inspect-*.json")
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
