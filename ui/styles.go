package ui

import (
	"github.com/charmbracelet/lipgloss"

	"deviceprofile/profile"
)

// Palette. Every color has a light and a dark variant; status is also
// carried by an icon so it reads without color.
var (
	colorOK       = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorDegraded = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorFailed   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	colorHeader = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	colorValue  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	colorName   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	colorUnit   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// Status is the outcome of one build.
type Status int

const (
	StatusOK Status = iota
	StatusDegraded
	StatusFailed
)

// StatusOf classifies a build result.
func StatusOf(p *profile.Profile, err error) Status {
	switch {
	case err != nil || p == nil:
		return StatusFailed
	case p.Degradation.IsDegraded():
		return StatusDegraded
	default:
		return StatusOK
	}
}

// Icon returns the shape that marks the status.
func (s Status) Icon() string {
	switch s {
	case StatusDegraded:
		return "!"
	case StatusFailed:
		return "×"
	default:
		return "+"
	}
}

// Style returns the text style of the status.
func (s Status) Style() lipgloss.Style {
	switch s {
	case StatusDegraded:
		return lipgloss.NewStyle().Foreground(colorDegraded)
	case StatusFailed:
		return lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorOK)
	}
}

// Render renders text in the status style, prefixed with its icon.
func (s Status) Render(text string) string {
	return s.Style().Render(s.Icon() + " " + text)
}

// TextStyles are the styles of dump and table text.
var TextStyles = struct {
	Header lipgloss.Style
	Value  lipgloss.Style
	Name   lipgloss.Style
	Unit   lipgloss.Style
}{
	Header: lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
	Value:  lipgloss.NewStyle().Foreground(colorValue),
	Name:   lipgloss.NewStyle().Foreground(colorName),
	Unit:   lipgloss.NewStyle().Foreground(colorUnit),
}
