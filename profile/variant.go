package profile

import (
	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
)

// Overrides replaces parts of the inputs of a profile. Nil fields keep the
// original value.
type Overrides struct {
	Metrics     *device.ScreenMetrics
	Grid        *grid.Spec
	Preferences *Preferences
	Flags       flags.Provider
}

// Variant builds a new profile from the inputs of p with o applied. p is
// left untouched.
func (p *Profile) Variant(o Overrides) (*Profile, error) {
	in := p.Inputs()
	if o.Metrics != nil {
		in.Metrics = *o.Metrics
	}
	if o.Grid != nil {
		in.Grid = o.Grid
	}
	if o.Preferences != nil {
		in.Preferences = *o.Preferences
	}
	if o.Flags != nil {
		in.Flags = o.Flags
	}
	return New(in)
}

// MultiWindowVariant builds the profile of a split screen window of the
// given size. Density and device class are kept.
func (p *Profile) MultiWindowVariant(widthPx, heightPx int) (*Profile, error) {
	metrics := p.Metrics.WithWindow(widthPx, heightPx)
	return p.Variant(Overrides{Metrics: &metrics})
}
