package styles

import (
	"codecity/internal/highlight"

	"github.com/charmbracelet/lipgloss"
)

// Swatch renders a two cell colour sample.
func Swatch(color string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

// Paint returns the style an item is drawn with.
func Paint(color string, strategy highlight.RenderStrategy) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	switch strategy {
	case highlight.RenderBorder:
		s = s.Underline(true)
	case highlight.RenderGlow:
		s = s.Bold(true)
	}
	return s
}
