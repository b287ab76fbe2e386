package components

import (
	"fmt"
	"strings"

	"codecity/internal/highlight"
	"codecity/internal/tui/styles"

	"github.com/dustin/go-humanize"
)

// LayerList renders the active layer set, one row per layer.
type LayerList struct {
	layers  []highlight.Layer
	cursor  int
	focused bool
}

func NewLayerList(layers []highlight.Layer, cursor int, focused bool) *LayerList {
	return &LayerList{layers: layers, cursor: cursor, focused: focused}
}

func (ll *LayerList) View() string {
	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render("Layers"))
	s.WriteString("\n")

	if len(ll.layers) == 0 {
		s.WriteString(styles.Theme.Unselected.Render("No layers"))
		return s.String()
	}

	for i, l := range ll.layers {
		cursor := " "
		if ll.focused && i == ll.cursor {
			cursor = ">"
		}
		check := "[x]"
		style := styles.Theme.Selected
		if !l.Enabled {
			check = "[ ]"
			style = styles.Theme.Unselected
		}
		tag := ""
		if l.Category == highlight.CategoryAnnotation {
			tag = " (agent)"
		}
		fmt.Fprintf(&s, "%s %s %s %s %s\n",
			cursor,
			check,
			styles.Swatch(l.Color),
			style.Render(l.Name+tag),
			styles.Theme.Help.Render(fmt.Sprintf("p%d · %s items", l.Priority, humanize.Comma(int64(len(l.Items))))))
	}
	return strings.TrimRight(s.String(), "\n")
}
