package highlight

// Inputs is everything the composer derives a layer set from.
type Inputs struct {
	Mode        ModeID
	Entities    []Entity
	Git         GitStatus
	HasGit      bool
	Quality     QualityData
	Annotations []Layer
	FileTypes   FileTypeOptions
}

// Availability returns the mode predicate inputs. Git data only counts when
// it holds at least one path.
func (in Inputs) Availability() Availability {
	return Availability{
		HasGitData: in.HasGit && !in.Git.Empty(),
		Quality:    in.Quality,
	}
}

// ComposeResult is a composed layer set and the mode actually used.
type ComposeResult struct {
	Mode   ModeID
	Layers []Layer
}

// BuildModeLayers runs the builder for mode and nothing else.
func BuildModeLayers(mode ModeID, in Inputs) []Layer {
	switch {
	case mode == ModeGit:
		return BuildGitLayers(in.Entities, in.Git)
	case mode == ModeCoverage:
		return BuildCoverageLayers(in.Entities, in.Quality.Coverage)
	case IsIssueMode(mode):
		return BuildIssueLayers(mode, in.Entities, in.Quality.Issues[mode])
	default:
		return BuildFileTypeLayers(in.Entities, in.FileTypes)
	}
}

// Compose resolves the mode, builds its layers and appends the annotation
// layers. Annotation layers get PriorityAnnotation; any whose id collides
// with a layer already in the set is dropped.
func Compose(in Inputs) ComposeResult {
	mode := Resolve(in.Mode, in.Availability())
	layers := BuildModeLayers(mode, in)

	seen := make(map[string]bool, len(layers)+len(in.Annotations))
	for _, l := range layers {
		seen[l.ID] = true
	}
	for _, a := range in.Annotations {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		l := a.Clone()
		l.Priority = PriorityAnnotation
		l.Category = CategoryAnnotation
		layers = append(layers, l)
	}
	return ComposeResult{Mode: mode, Layers: layers}
}
