package styles

import (
	"codecity/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the core UI styles
type Palette struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Pane       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Directory  lipgloss.Style
}

// Theme is the palette in use. SetTheme replaces it.
var Theme = NewPalette("default")

// NewPalette builds the styles for a named config theme.
func NewPalette(name string) Palette {
	c := config.GetTheme(name)
	return Palette{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c["primary"])).
			MarginBottom(1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c["border"])).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c["emphasis"])).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c["info"])),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c["error"])),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c["success"])),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true),
	}
}

// SetTheme switches every component to the named theme.
func SetTheme(name string) {
	Theme = NewPalette(name)
}
