package highlight

// IssueRecord is the per-file result of a lint-like tool. IssueCount is the
// bucketing key and need not equal the sum of the other counters.
type IssueRecord struct {
	IssueCount   int `json:"issueCount" yaml:"issueCount"`
	ErrorCount   int `json:"errorCount" yaml:"errorCount"`
	WarningCount int `json:"warningCount" yaml:"warningCount"`
	InfoCount    int `json:"infoCount" yaml:"infoCount"`
	HintCount    int `json:"hintCount" yaml:"hintCount"`
}

// QualityData holds every code-quality dataset keyed by entity path. A nil
// map means the dataset is absent.
type QualityData struct {
	// Coverage maps a file path to a percentage in [0, 100].
	Coverage map[string]float64
	// Issues maps an issue mode (eslint, typescript, ...) to its per-file
	// records.
	Issues map[ModeID]map[string]IssueRecord
}

// Has reports whether the dataset behind a quality mode is present and
// non-empty.
func (q QualityData) Has(mode ModeID) bool {
	if mode == ModeCoverage {
		return len(q.Coverage) > 0
	}
	return len(q.Issues[mode]) > 0
}

// Merge overlays other on q and returns the result. Entries in other win.
func (q QualityData) Merge(other QualityData) QualityData {
	out := QualityData{}
	if q.Coverage != nil || other.Coverage != nil {
		out.Coverage = make(map[string]float64, len(q.Coverage)+len(other.Coverage))
		for k, v := range q.Coverage {
			out.Coverage[k] = v
		}
		for k, v := range other.Coverage {
			out.Coverage[k] = v
		}
	}
	if q.Issues != nil || other.Issues != nil {
		out.Issues = make(map[ModeID]map[string]IssueRecord)
		for _, src := range []map[ModeID]map[string]IssueRecord{q.Issues, other.Issues} {
			for mode, records := range src {
				dst := out.Issues[mode]
				if dst == nil {
					dst = make(map[string]IssueRecord, len(records))
					out.Issues[mode] = dst
				}
				for path, rec := range records {
					dst[path] = rec
				}
			}
		}
	}
	return out
}

// GitStatus partitions changed paths into the four git categories. A path
// should appear in one category only; when it appears in several the git
// builder applies staged > deleted > unstaged > untracked.
type GitStatus struct {
	Staged    []string `json:"staged" yaml:"staged"`
	Unstaged  []string `json:"unstaged" yaml:"unstaged"`
	Untracked []string `json:"untracked" yaml:"untracked"`
	Deleted   []string `json:"deleted" yaml:"deleted"`
}

// Empty reports whether no category holds a path.
func (g GitStatus) Empty() bool {
	return len(g.Staged) == 0 && len(g.Unstaged) == 0 && len(g.Untracked) == 0 && len(g.Deleted) == 0
}
