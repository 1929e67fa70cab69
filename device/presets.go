package device

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named set of screen metrics.
type Preset struct {
	Name    string        `yaml:"name" json:"name"`
	Metrics ScreenMetrics `yaml:"metrics" json:"metrics"`
}

// builtinPresets covers the device classes the engine distinguishes.
var builtinPresets = []Preset{
	{
		Name: "phone",
		Metrics: ScreenMetrics{
			WidthPx: 1080, HeightPx: 2400, Density: 2.75,
			Insets: Insets{Top: 66, Bottom: 44},
		},
	},
	{
		Name: "phone-landscape",
		Metrics: ScreenMetrics{
			WidthPx: 2400, HeightPx: 1080, Density: 2.75,
			Orientation: Landscape, Rotation: 90,
			Insets: Insets{Top: 66, Right: 132},
		},
	},
	{
		Name: "phone-split",
		Metrics: ScreenMetrics{
			WidthPx: 1080, HeightPx: 1200, Density: 2.75,
		},
	},
	{
		Name: "small-phone",
		Metrics: ScreenMetrics{
			WidthPx: 720, HeightPx: 1520, Density: 2,
			Insets: Insets{Top: 48, Bottom: 32},
		},
	},
	{
		Name: "tablet",
		Metrics: ScreenMetrics{
			WidthPx: 2560, HeightPx: 1600, Density: 2,
			Orientation: Landscape, Tablet: true,
			Insets: Insets{Top: 48, Bottom: 96},
		},
	},
	{
		Name: "foldable",
		Metrics: ScreenMetrics{
			WidthPx: 2208, HeightPx: 1840, Density: 2.625,
			Orientation: Landscape, Tablet: true, MultiPanel: true,
			Insets: Insets{Top: 63, Bottom: 126},
		},
	},
}

// Presets returns the builtin device presets, sorted by name.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	copy(out, builtinPresets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a preset by name in the given list.
func Lookup(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

type presetFile struct {
	Devices []Preset `yaml:"devices"`
}

// LoadPresets reads device presets from a YAML document of the form
//
//	devices:
//	  - name: phone
//	    metrics: {width_px: 1080, height_px: 2400, density: 2.75}
func LoadPresets(r io.Reader) ([]Preset, error) {
	var f presetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}
	for _, p := range f.Devices {
		if p.Name == "" {
			return nil, fmt.Errorf("device preset without a name")
		}
		if err := p.Metrics.Validate(); err != nil {
			return nil, fmt.Errorf("device %q: %w", p.Name, err)
		}
	}
	return f.Devices, nil
}

// LoadPresetsFile reads device presets from a YAML file.
func LoadPresetsFile(path string) ([]Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open devices file: %w", err)
	}
	defer f.Close()
	return LoadPresets(f)
}
