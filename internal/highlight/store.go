package highlight

// State is the lifecycle state of a Store.
type State int

const (
	StateEmpty State = iota
	StatePopulated
)

func (s State) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "empty"
}

// Store holds the current layer set and the user's toggles. It recomputes
// mode layers whenever the mode or an input changes; toggles only flip the
// enabled flag. A Store is not safe for concurrent use.
type Store struct {
	scope  string
	in     Inputs
	state  State
	active ModeID
	layers []Layer

	// Manual enabled overrides, keyed by layer id. Mode overrides are
	// dropped when the mode changes; annotation overrides are not.
	modeOverrides       map[string]bool
	annotationOverrides map[string]bool
}

// NewStore returns an empty store that will start in mode.
func NewStore(mode ModeID, fileTypes FileTypeOptions) *Store {
	s := &Store{}
	s.in.Mode = mode
	s.in.FileTypes = fileTypes
	s.clear()
	return s
}

func (s *Store) clear() {
	mode, ft := s.in.Mode, s.in.FileTypes
	s.in = Inputs{Mode: mode, FileTypes: ft}
	s.state = StateEmpty
	s.active = ModeFileTypes
	s.layers = nil
	s.modeOverrides = make(map[string]bool)
	s.annotationOverrides = make(map[string]bool)
}

// Scope returns the scope the store currently holds data for.
func (s *Store) Scope() string { return s.scope }

// SetScope resets the store when scope differs from the current one.
func (s *Store) SetScope(scope string) {
	if scope == s.scope {
		return
	}
	s.Reset()
	s.scope = scope
}

// SetInputs replaces every data input at once, keeping the selected mode
// and file-type options.
func (s *Store) SetInputs(in Inputs) {
	in.Mode = s.in.Mode
	in.FileTypes = s.in.FileTypes
	in.Annotations = cloneLayers(in.Annotations)
	s.in = in
	s.pruneAnnotationOverrides()
	s.recompute()
}

// SetEntities replaces the entity set.
func (s *Store) SetEntities(entities []Entity) {
	s.in.Entities = entities
	s.recompute()
}

// SetGitStatus replaces the git data. ok=false marks git data as absent.
func (s *Store) SetGitStatus(status GitStatus, ok bool) {
	s.in.Git = status
	s.in.HasGit = ok
	s.recompute()
}

// SetQuality replaces every quality dataset.
func (s *Store) SetQuality(q QualityData) {
	s.in.Quality = q
	s.recompute()
}

// SetAnnotationLayers replaces the annotation feed. Toggles of ids that are
// still present are kept.
func (s *Store) SetAnnotationLayers(layers []Layer) {
	s.in.Annotations = cloneLayers(layers)
	s.pruneAnnotationOverrides()
	s.recompute()
}

func (s *Store) pruneAnnotationOverrides() {
	keep := make(map[string]bool, len(s.in.Annotations))
	for _, l := range s.in.Annotations {
		keep[l.ID] = true
	}
	for id := range s.annotationOverrides {
		if !keep[id] {
			delete(s.annotationOverrides, id)
		}
	}
}

// SetActiveMode selects a mode and recomputes. Mode-layer toggles are reset.
func (s *Store) SetActiveMode(id ModeID) {
	s.in.Mode = id
	s.modeOverrides = make(map[string]bool)
	s.recompute()
}

// ToggleLayer flips the enabled flag of a layer. Unknown ids are ignored.
func (s *Store) ToggleLayer(id string) {
	for i := range s.layers {
		l := &s.layers[i]
		if l.ID != id {
			continue
		}
		l.Enabled = !l.Enabled
		if l.Category == CategoryAnnotation {
			s.annotationOverrides[id] = l.Enabled
		} else {
			s.modeOverrides[id] = l.Enabled
		}
		return
	}
}

// ClearAnnotationLayers removes every annotation layer.
func (s *Store) ClearAnnotationLayers() {
	s.in.Annotations = nil
	s.annotationOverrides = make(map[string]bool)
	kept := s.layers[:0]
	for _, l := range s.layers {
		if l.Category != CategoryAnnotation {
			kept = append(kept, l)
		}
	}
	s.layers = kept
}

// Reset empties the store. Used when the visualised scope changes.
func (s *Store) Reset() {
	s.scope = ""
	s.clear()
}

// recompute rebuilds the layer set from the inputs. While the requested mode
// has no data the layers are built for file types; the request is kept so
// the mode returns once its data does.
func (s *Store) recompute() {
	res := Compose(s.in)
	if res.Mode != s.active {
		s.modeOverrides = make(map[string]bool)
	}
	for i := range res.Layers {
		l := &res.Layers[i]
		overrides := s.modeOverrides
		if l.Category == CategoryAnnotation {
			overrides = s.annotationOverrides
		}
		if enabled, ok := overrides[l.ID]; ok {
			l.Enabled = enabled
		}
	}
	s.active = res.Mode
	s.layers = res.Layers
	s.state = StatePopulated
}

// State reports whether the store holds a computed layer set.
func (s *Store) State() State { return s.state }

// ActiveMode returns the mode the current layer set was built with.
func (s *Store) ActiveMode() ModeID { return s.active }

// RequestedMode returns the mode last selected, which differs from
// ActiveMode while that mode has no data.
func (s *Store) RequestedMode() ModeID { return s.in.Mode }

// ActiveLayerSet returns a copy of the current layers, mode layers first.
func (s *Store) ActiveLayerSet() []Layer { return cloneLayers(s.layers) }

// Layer returns a copy of the layer with id.
func (s *Store) Layer(id string) (Layer, bool) {
	for _, l := range s.layers {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return Layer{}, false
}

// AvailableModes returns the modes selectable with the current data.
func (s *Store) AvailableModes() []Descriptor {
	return AvailableModes(s.in.Availability())
}

// Entities returns the entity set the layers were built from.
func (s *Store) Entities() []Entity {
	out := make([]Entity, len(s.in.Entities))
	copy(out, s.in.Entities)
	return out
}
