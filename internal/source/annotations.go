package source

import (
	"strings"

	"codecity/internal/errors"
	"codecity/internal/highlight"
)

type annotationItem struct {
	Path           string `yaml:"path"`
	Type           string `yaml:"type"`
	RenderStrategy string `yaml:"renderStrategy"`
}

type annotationDoc struct {
	ID      string           `yaml:"id"`
	Name    string           `yaml:"name"`
	Color   string           `yaml:"color"`
	Enabled *bool            `yaml:"enabled"`
	Items   []annotationItem `yaml:"items"`
}

// defaultAnnotationColor is used for feed entries without a valid colour.
const defaultAnnotationColor = "#a855f7"

// LoadAnnotations reads the agent highlight feed: a YAML or JSON(C) list of
// layers. Missing fields get defaults (enabled, glow, file items); entries
// without an id are rejected. A missing file yields no layers.
func LoadAnnotations(path string) ([]highlight.Layer, error) {
	var docs []annotationDoc
	found, err := readDocument(path, &docs)
	if err != nil || !found {
		return nil, err
	}

	layers := make([]highlight.Layer, 0, len(docs))
	for i, d := range docs {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, errors.NewInvalidInputError("annotation layer without id", nil).
				WithContext("source", path).
				WithContext("index", i)
		}
		l := highlight.Layer{
			ID:       id,
			Name:     d.Name,
			Color:    d.Color,
			Enabled:  d.Enabled == nil || *d.Enabled,
			Category: highlight.CategoryAnnotation,
			Priority: highlight.PriorityAnnotation,
		}
		if l.Name == "" {
			l.Name = id
		}
		if !highlight.ValidColor(l.Color) {
			l.Color = defaultAnnotationColor
		}
		for _, it := range d.Items {
			if it.Path == "" {
				continue
			}
			item := highlight.Item{
				Path:           it.Path,
				Type:           highlight.ItemFile,
				RenderStrategy: highlight.RenderGlow,
			}
			if highlight.ItemType(it.Type) == highlight.ItemDirectory {
				item.Type = highlight.ItemDirectory
			}
			switch rs := highlight.RenderStrategy(it.RenderStrategy); rs {
			case highlight.RenderFill, highlight.RenderBorder, highlight.RenderGlow:
				item.RenderStrategy = rs
			}
			l.Items = append(l.Items, item)
		}
		layers = append(layers, l)
	}
	return layers, nil
}
