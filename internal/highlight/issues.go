package highlight

const (
	issueClean = iota
	issueMinor
	issueModerate
	issueSignificant
	issueSevere
	issueNoData
)

var issueBuckets = func() []bucket {
	scale := severityScale(5)
	return []bucket{
		issueClean:       {key: "clean", name: "Clean (0 issues)", color: scale[0], priority: PriorityQuality},
		issueMinor:       {key: "minor", name: "Minor (1-3 issues)", color: scale[1], priority: PriorityQuality},
		issueModerate:    {key: "moderate", name: "Moderate (4-10 issues)", color: scale[2], priority: PriorityQuality},
		issueSignificant: {key: "significant", name: "Significant (11-25 issues)", color: scale[3], priority: PriorityQuality},
		issueSevere:      {key: "severe", name: "Severe (>25 issues)", color: scale[4], priority: PriorityQuality},
		issueNoData:      {key: "nodata", name: "No data", color: ColorGray, priority: PriorityQualityNoData},
	}
}()

func classifyIssues(rec IssueRecord, ok bool) int {
	if !ok || rec.IssueCount < 0 {
		return issueNoData
	}
	switch n := rec.IssueCount; {
	case n == 0:
		return issueClean
	case n <= 3:
		return issueMinor
	case n <= 10:
		return issueModerate
	case n <= 25:
		return issueSignificant
	default:
		return issueSevere
	}
}

// BuildIssueLayers buckets file entities by issue count. The mode id is the
// layer id prefix, e.g. "eslint-clean".
func BuildIssueLayers(mode ModeID, entities []Entity, records map[string]IssueRecord) []Layer {
	return partition(string(mode), issueBuckets, entities, func(path string) int {
		rec, ok := records[path]
		return classifyIssues(rec, ok)
	})
}
