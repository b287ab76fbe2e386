package components

import (
	"strings"

	"codecity/internal/tui/common"
	"codecity/internal/tui/styles"
)

// RenderModeBar lists every mode with its number key. Unavailable modes are
// dimmed and the active one is marked.
func RenderModeBar(rows []common.ModeRow) string {
	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render("Modes"))
	s.WriteString("\n")
	for _, row := range rows {
		marker := "  "
		style := styles.Theme.Unselected
		switch {
		case row.Active:
			marker = "● "
			style = styles.Theme.Selected
		case row.Available:
			style = styles.Theme.Help
		}
		s.WriteString(marker + style.Render(row.Key+" "+row.Descriptor.Name) + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
