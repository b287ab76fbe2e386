package views

import (
	"strings"

	"codecity/internal/tui/common"
	"codecity/internal/tui/components"
	"codecity/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the mode bar and layer list side by side above the
// painted entity tree, the status bar and the key help.
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render("codecity · " + m.Scope()))
	sb.WriteString("\n")

	modes := styles.Theme.Pane.Render(components.RenderModeBar(m.Modes()))
	layers := styles.Theme.Pane.Render(
		components.NewLayerList(m.Layers(), m.LayerCursor(), m.Focus() == common.FocusLayers).View())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modes, layers))
	sb.WriteString("\n")

	tree := components.NewEntityTree(m.Entities(), m.Paint, m.EntityCursor(), m.Focus() == common.FocusEntities, m.Height())
	sb.WriteString(styles.Theme.Pane.Render(tree.View()))
	sb.WriteString("\n")

	sb.WriteString(RenderHover(m))
	if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}
	sb.WriteString("\n" + m.HelpView())

	return styles.Theme.App.Render(sb.String())
}

// RenderHover describes the entity under the cursor and every layer that
// holds it, topmost first.
func RenderHover(m common.ModelReader) string {
	e, layers, ok := m.Hovered()
	if !ok {
		return ""
	}
	var s strings.Builder
	s.WriteString(styles.Theme.Selected.Render(e.Path))
	for _, l := range layers {
		name := l.Name
		if !l.Enabled {
			name += " (off)"
		}
		s.WriteString("  " + styles.Swatch(l.Color) + " " + styles.Theme.Help.Render(name))
	}
	return s.String()
}
