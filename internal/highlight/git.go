package highlight

// gitCategory is one git status layer definition.
type gitCategory struct {
	key      string
	name     string
	color    string
	priority int
	paths    func(GitStatus) []string
}

// gitPrecedence lists categories from strongest to weakest claim on a path.
var gitPrecedence = []gitCategory{
	{key: "staged", name: "Staged", color: ColorGreen, priority: PriorityGitStaged, paths: func(g GitStatus) []string { return g.Staged }},
	{key: "deleted", name: "Deleted", color: ColorRed, priority: PriorityGitDeleted, paths: func(g GitStatus) []string { return g.Deleted }},
	{key: "unstaged", name: "Unstaged", color: ColorYellow, priority: PriorityGitUnstaged, paths: func(g GitStatus) []string { return g.Unstaged }},
	{key: "untracked", name: "Untracked", color: ColorGray, priority: PriorityGitUntracked, paths: func(g GitStatus) []string { return g.Untracked }},
}

// gitDisplayOrder is the order layers are emitted in.
var gitDisplayOrder = []string{"staged", "unstaged", "untracked", "deleted"}

// GitLayerID returns the layer id used for a git category key.
func GitLayerID(key string) string {
	return "git-highlight-" + key
}

// BuildGitLayers emits one layer per git category holding at least one path
// that names a known entity. Unknown paths are dropped. A path claimed by
// several categories stays only in the one with the highest precedence.
func BuildGitLayers(entities []Entity, status GitStatus) []Layer {
	idx := indexEntities(entities)
	claimed := make(map[string]bool)
	byKey := make(map[string]Layer, len(gitPrecedence))

	for _, cat := range gitPrecedence {
		var items []Item
		for _, p := range cat.paths(status) {
			e, ok := idx[p]
			if !ok || claimed[p] {
				continue
			}
			claimed[p] = true
			items = append(items, Item{Path: p, Type: e.itemType(), RenderStrategy: RenderFill})
		}
		if len(items) == 0 {
			continue
		}
		byKey[cat.key] = Layer{
			ID:       GitLayerID(cat.key),
			Name:     cat.name,
			Color:    cat.color,
			Priority: cat.priority,
			Enabled:  true,
			Category: CategoryGit,
			Items:    items,
		}
	}

	var layers []Layer
	for _, key := range gitDisplayOrder {
		if l, ok := byKey[key]; ok {
			layers = append(layers, l)
		}
	}
	return layers
}
