package highlight

import "fmt"

// FileTypeOptions tunes the file-type builder.
type FileTypeOptions struct {
	// Secondary also emits an accent layer per extension.
	Secondary bool
	Palette   Palette
}

// BuildFileTypeLayers groups file entities by extension. Layers appear in
// the order their extension is first seen.
func BuildFileTypeLayers(entities []Entity, opts FileTypeOptions) []Layer {
	var order []string
	members := make(map[string][]string)
	for _, e := range entities {
		ext := e.Ext()
		if ext == "" {
			continue
		}
		if _, seen := members[ext]; !seen {
			order = append(order, ext)
		}
		members[ext] = append(members[ext], e.Path)
	}

	layers := make([]Layer, 0, len(order)*2)
	for _, ext := range order {
		paths := members[ext]
		layers = append(layers, Layer{
			ID:       fmt.Sprintf("ext-%s-primary", ext),
			Name:     "." + ext,
			Color:    opts.Palette.Primary(ext),
			Priority: PriorityFileTypePrimary,
			Enabled:  true,
			Category: CategoryFileType,
			Items:    fileItems(paths, RenderFill),
		})
		if opts.Secondary {
			layers = append(layers, Layer{
				ID:       fmt.Sprintf("ext-%s-secondary", ext),
				Name:     "." + ext + " (accent)",
				Color:    opts.Palette.Secondary(ext),
				Priority: PriorityFileTypeSecondary,
				Enabled:  true,
				Category: CategoryFileType,
				Items:    fileItems(paths, RenderBorder),
			})
		}
	}
	return layers
}

func fileItems(paths []string, strategy RenderStrategy) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Path: p, Type: ItemFile, RenderStrategy: strategy}
	}
	return items
}
