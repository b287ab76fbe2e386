// Package highlight computes the coloured overlay layers drawn on top of a
// repository's file tree. A layer groups entities (files and directories)
// under a name, a colour and a priority; the active colour mode decides
// which builder produces the base layers, and externally supplied annotation
// layers are always drawn above them.
//
// Everything in this package is synchronous and total: missing or malformed
// metric data degrades to "no data" buckets instead of errors.
package highlight

// ItemType tells the renderer whether an item references a building (file)
// or a district (directory).
type ItemType string

const (
	ItemFile      ItemType = "file"
	ItemDirectory ItemType = "directory"
)

// RenderStrategy describes how a layer paints its items.
type RenderStrategy string

const (
	RenderFill   RenderStrategy = "fill"
	RenderBorder RenderStrategy = "border"
	RenderGlow   RenderStrategy = "glow"
)

// Category is the typed discriminant of a layer. It is set when the layer is
// built so consumers never have to pattern-match ids.
type Category string

const (
	CategoryFileType   Category = "fileType"
	CategoryGit        Category = "git"
	CategoryQuality    Category = "quality"
	CategoryAnnotation Category = "annotation"
)

// Priorities. Higher values paint above lower ones.
const (
	PriorityFileTypePrimary   = 10
	PriorityFileTypeSecondary = 11
	PriorityQualityNoData     = 40
	PriorityQuality           = 50
	PriorityGitUntracked      = 80
	PriorityGitUnstaged       = 90
	PriorityGitStaged         = 100
	PriorityGitDeleted        = 110

	// PriorityAnnotation is forced on every annotation layer and exceeds
	// every mode layer priority.
	PriorityAnnotation = 150
)

// Item is one entity reference inside a layer.
type Item struct {
	Path           string         `json:"path" yaml:"path"`
	Type           ItemType       `json:"type" yaml:"type"`
	RenderStrategy RenderStrategy `json:"renderStrategy" yaml:"renderStrategy"`
}

// Layer is the atomic visual unit handed to the renderer.
type Layer struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Color    string   `json:"color" yaml:"color"`
	Priority int      `json:"priority" yaml:"priority"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Category Category `json:"category" yaml:"category"`
	Items    []Item   `json:"items" yaml:"items"`
}

// Contains reports whether the layer references path.
func (l Layer) Contains(path string) bool {
	for _, it := range l.Items {
		if it.Path == path {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no item storage with l.
func (l Layer) Clone() Layer {
	c := l
	if l.Items != nil {
		c.Items = make([]Item, len(l.Items))
		copy(c.Items, l.Items)
	}
	return c
}

func cloneLayers(layers []Layer) []Layer {
	if layers == nil {
		return nil
	}
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

// IsModeLayer reports whether the layer was produced by a colour mode
// builder rather than supplied as an annotation.
func (l Layer) IsModeLayer() bool {
	return l.Category != CategoryAnnotation
}
