package common

import "codecity/internal/highlight"

// Focus is the pane that receives cursor movement.
type Focus int

const (
	FocusEntities Focus = iota
	FocusLayers
)

// ModeRow is one entry of the mode bar.
type ModeRow struct {
	Descriptor highlight.Descriptor
	Key        string // number key selecting the mode
	Available  bool
	Active     bool
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Scope() string
	Modes() []ModeRow
	Layers() []highlight.Layer
	Entities() []highlight.Entity
	// Paint returns the topmost enabled layer containing path.
	Paint(path string) (highlight.Layer, bool)
	// Hovered returns the entity under the cursor and the layers holding it.
	Hovered() (highlight.Entity, []highlight.Layer, bool)
	EntityCursor() int
	LayerCursor() int
	Focus() Focus
	Height() int
	StatusView() string
	HelpView() string
}
