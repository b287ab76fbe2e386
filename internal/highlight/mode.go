package highlight

// ModeID identifies a colour mode.
type ModeID string

const (
	ModeFileTypes  ModeID = "fileTypes"
	ModeGit        ModeID = "git"
	ModeCoverage   ModeID = "coverage"
	ModeESLint     ModeID = "eslint"
	ModeTypeScript ModeID = "typescript"
	ModePrettier   ModeID = "prettier"
	ModeKnip       ModeID = "knip"
	ModeAlexandria ModeID = "alexandria"
)

// Descriptor describes a selectable colour mode.
type Descriptor struct {
	ID          ModeID `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// Quality is true for modes backed by a QualityData dataset.
	Quality bool `json:"quality" yaml:"quality"`
}

var registry = []Descriptor{
	{ID: ModeFileTypes, Name: "File Types", Description: "Color buildings by file extension"},
	{ID: ModeGit, Name: "Git Status", Description: "Highlight staged, unstaged, untracked and deleted files"},
	{ID: ModeCoverage, Name: "Test Coverage", Description: "Color files by line coverage percentage", Quality: true},
	{ID: ModeESLint, Name: "Linting", Description: "Color files by lint issue count", Quality: true},
	{ID: ModeTypeScript, Name: "Type Checking", Description: "Color files by type-check error count", Quality: true},
	{ID: ModePrettier, Name: "Formatting", Description: "Color files by formatting issue count", Quality: true},
	{ID: ModeKnip, Name: "Dead Code", Description: "Color files by unused export and dependency count", Quality: true},
	{ID: ModeAlexandria, Name: "Documentation", Description: "Color files by documentation issue count", Quality: true},
}

// issueModes are the quality modes bucketed by issue count.
var issueModes = []ModeID{ModeESLint, ModeTypeScript, ModePrettier, ModeKnip, ModeAlexandria}

// ListModes returns every mode in display order.
func ListModes() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// IssueModes returns the quality modes that share the issue-count builder.
func IssueModes() []ModeID {
	out := make([]ModeID, len(issueModes))
	copy(out, issueModes)
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id ModeID) (Descriptor, bool) {
	for _, d := range registry {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ParseMode converts user input into a known mode id.
func ParseMode(s string) (ModeID, bool) {
	d, ok := Lookup(ModeID(s))
	return d.ID, ok
}

// IsIssueMode reports whether id is bucketed by issue count.
func IsIssueMode(id ModeID) bool {
	for _, m := range issueModes {
		if m == id {
			return true
		}
	}
	return false
}

// Availability is the data the mode predicate looks at.
type Availability struct {
	HasGitData bool
	Quality    QualityData
}

// IsAvailable reports whether id can currently be selected.
func IsAvailable(id ModeID, a Availability) bool {
	d, ok := Lookup(id)
	if !ok {
		return false
	}
	switch {
	case d.ID == ModeFileTypes:
		return true
	case d.ID == ModeGit:
		return a.HasGitData
	case d.Quality:
		return a.Quality.Has(d.ID)
	}
	return false
}

// AvailableModes returns the selectable modes in registry order.
func AvailableModes(a Availability) []Descriptor {
	var out []Descriptor
	for _, d := range registry {
		if IsAvailable(d.ID, a) {
			out = append(out, d)
		}
	}
	return out
}

// Resolve returns id when it is available and ModeFileTypes otherwise.
func Resolve(id ModeID, a Availability) ModeID {
	if IsAvailable(id, a) {
		return id
	}
	return ModeFileTypes
}
