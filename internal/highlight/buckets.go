package highlight

// bucket is one classification group of a quality builder.
type bucket struct {
	key      string
	name     string
	color    string
	priority int
}

// partition assigns each file entity to exactly one bucket via classify and
// emits one layer per non-empty bucket, in bucket order. classify returns
// an index into buckets.
func partition(prefix string, buckets []bucket, entities []Entity, classify func(path string) int) []Layer {
	members := make([][]string, len(buckets))
	for _, e := range entities {
		if e.IsDirectory {
			continue
		}
		i := classify(e.Path)
		members[i] = append(members[i], e.Path)
	}

	var layers []Layer
	for i, b := range buckets {
		if len(members[i]) == 0 {
			continue
		}
		layers = append(layers, Layer{
			ID:       prefix + "-" + b.key,
			Name:     b.name,
			Color:    b.color,
			Priority: b.priority,
			Enabled:  true,
			Category: CategoryQuality,
			Items:    fileItems(members[i], RenderFill),
		})
	}
	return layers
}
