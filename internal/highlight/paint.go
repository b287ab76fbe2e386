package highlight

import "sort"

// DrawOrder returns the enabled layers sorted the way a renderer paints
// them: ascending priority, set order kept among equal priorities.
func DrawOrder(layers []Layer) []Layer {
	var out []Layer
	for _, l := range layers {
		if l.Enabled {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Paint returns, for every referenced path, the layer that ends up on top.
func Paint(layers []Layer) map[string]Layer {
	top := make(map[string]Layer)
	for _, l := range DrawOrder(layers) {
		for _, it := range l.Items {
			top[it.Path] = l
		}
	}
	return top
}

// Membership returns every layer referencing path, topmost first. Disabled
// layers are included so callers can show them greyed out.
func Membership(layers []Layer, path string) []Layer {
	var out []Layer
	for _, l := range layers {
		if l.Contains(path) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}
