// Package flags exposes named boolean toggles to the layout engine.
//
// The engine only sees a Provider; where values come from (a static table,
// a config file, remote config) is up to the caller.
package flags

import "sort"

// Known toggle names.
const (
	// InlineQsbOnHandheld enables the alternate dock layout with an inline
	// search box on handheld devices.
	InlineQsbOnHandheld = "inline_qsb_on_handheld"
	// TwoLineAllAppsText allows two-line labels in the app list.
	TwoLineAllAppsText = "two_line_all_apps_text"
	// ResponsiveGrid enables responsive tables for grids that declare them.
	ResponsiveGrid = "responsive_grid"
	// NavButtonsInDock reserves a border next to navigation buttons that
	// share the dock row.
	NavButtonsInDock = "nav_buttons_in_dock"
	// ScalableGrid enables continuous cell sizing for grids that declare it.
	ScalableGrid = "scalable_grid"
)

var defaults = map[string]bool{
	InlineQsbOnHandheld: false,
	TwoLineAllAppsText:  false,
	ResponsiveGrid:      true,
	NavButtonsInDock:    false,
	ScalableGrid:        true,
}

// Provider answers toggle queries.
type Provider interface {
	Get(name string) bool
}

// Default returns the default value of a toggle. Unknown toggles are off.
func Default(name string) bool {
	return defaults[name]
}

// Names returns every known toggle name in sorted order.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static is a Provider backed by a map. Toggles missing from the map take
// their default value.
type Static map[string]bool

// Get implements Provider.
func (s Static) Get(name string) bool {
	if v, ok := s[name]; ok {
		return v
	}
	return Default(name)
}

// Func adapts a function to a Provider.
type Func func(name string) bool

// Get implements Provider.
func (f Func) Get(name string) bool {
	return f(name)
}

// Get queries p, falling back to defaults when p is nil.
func Get(p Provider, name string) bool {
	if p == nil {
		return Default(name)
	}
	return p.Get(name)
}

// Snapshot resolves every known toggle against p.
func Snapshot(p Provider) map[string]bool {
	out := make(map[string]bool, len(defaults))
	for name := range defaults {
		out[name] = Get(p, name)
	}
	return out
}
