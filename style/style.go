// Package style composes the lipgloss styles used for CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mediactl/mediactl/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored is a style with the given foreground and background. Empty colors are left unset.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer that paints text with c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate returns a renderer that cuts text at width cells.
func Truncate(width int) func(string) string {
	return func(s string) string { return New().MaxWidth(width).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded banner.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Tag returns a renderer for a padded label.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// Status renders a playback status label in its color.
func Status(status string) string {
	switch status {
	case "playing":
		return Tag(color.Black, color.Green)(status)
	case "paused":
		return Tag(color.Black, color.Yellow)(status)
	case "released":
		return Tag(color.White, color.Red)(status)
	default:
		return Tag(color.Black, color.Cyan)(status)
	}
}
