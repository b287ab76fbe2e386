package components

import (
	"path"
	"strings"

	"codecity/internal/highlight"
	"codecity/internal/tui/styles"
)

// EntityTree renders the scanned entities indented by depth, each painted
// with the colour of its topmost enabled layer.
type EntityTree struct {
	entities []highlight.Entity
	paint    func(string) (highlight.Layer, bool)
	cursor   int
	focused  bool
	height   int
}

func NewEntityTree(entities []highlight.Entity, paint func(string) (highlight.Layer, bool), cursor int, focused bool, height int) *EntityTree {
	if height < 1 {
		height = 1
	}
	return &EntityTree{entities: entities, paint: paint, cursor: cursor, focused: focused, height: height}
}

// window returns the visible index range keeping the cursor on screen.
func (t *EntityTree) window() (int, int) {
	n := len(t.entities)
	if n <= t.height {
		return 0, n
	}
	start := t.cursor - t.height/2
	if start < 0 {
		start = 0
	}
	if start+t.height > n {
		start = n - t.height
	}
	return start, start + t.height
}

func (t *EntityTree) View() string {
	if len(t.entities) == 0 {
		return styles.Theme.Unselected.Render("No files found")
	}

	var s strings.Builder
	start, end := t.window()
	for i := start; i < end; i++ {
		e := t.entities[i]
		depth := strings.Count(e.Path, "/")
		name := path.Base(e.Path)
		if e.IsDirectory {
			name += "/"
		}

		style := styles.Theme.Unselected
		if e.IsDirectory {
			style = styles.Theme.Directory
		}
		if l, ok := t.paint(e.Path); ok {
			style = styles.Paint(l.Color, strategyFor(l, e.Path))
		}

		cursor := "  "
		if t.focused && i == t.cursor {
			cursor = "> "
		}
		s.WriteString(cursor + strings.Repeat("  ", depth) + style.Render(name) + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

func strategyFor(l highlight.Layer, p string) highlight.RenderStrategy {
	for _, it := range l.Items {
		if it.Path == p {
			return it.RenderStrategy
		}
	}
	return highlight.RenderFill
}
