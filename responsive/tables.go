package responsive

import "fmt"

// Tables groups the responsive tables of a grid, one per region and axis.
type Tables struct {
	WorkspaceWidth  Table        `yaml:"workspace_width"`
	WorkspaceHeight Table        `yaml:"workspace_height"`
	AllAppsWidth    Table        `yaml:"all_apps_width,omitempty"`
	AllAppsHeight   Table        `yaml:"all_apps_height,omitempty"`
	FolderWidth     Table        `yaml:"folder_width,omitempty"`
	FolderHeight    Table        `yaml:"folder_height,omitempty"`
	Hotseat         HotseatTable `yaml:"hotseat,omitempty"`
	Cell            CellTable    `yaml:"cell,omitempty"`
}

// Validate checks the tables the engine requires for the enabled axes.
// Optional tables are only checked when present.
func (t *Tables) Validate(width, height bool) error {
	if t == nil {
		if width || height {
			return fmt.Errorf("%w: responsive axes enabled without tables", ErrInvalidTable)
		}
		return nil
	}
	required := []struct {
		name    string
		table   Table
		enabled bool
	}{
		{"workspace_width", t.WorkspaceWidth, width},
		{"workspace_height", t.WorkspaceHeight, height},
	}
	for _, r := range required {
		if !r.enabled {
			continue
		}
		if err := r.table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}
	optional := []struct {
		name  string
		table Table
	}{
		{"all_apps_width", t.AllAppsWidth},
		{"all_apps_height", t.AllAppsHeight},
		{"folder_width", t.FolderWidth},
		{"folder_height", t.FolderHeight},
	}
	for _, o := range optional {
		if len(o.table) == 0 {
			continue
		}
		if err := o.table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
	}
	for i, c := range t.Cell {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("cell entry %d: %w", i, err)
		}
	}
	for i, h := range t.Hotseat {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("hotseat entry %d: %w", i, err)
		}
	}
	if height && len(t.Cell) == 0 {
		return fmt.Errorf("%w: cell table is required with a responsive height", ErrInvalidTable)
	}
	return nil
}
