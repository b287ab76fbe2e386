package highlight

import "math"

const (
	coverageHigh = iota
	coverageMedium
	coverageLow
	coverageVeryLow
	coverageZero
	coverageNoData
)

var coverageBuckets = []bucket{
	coverageHigh:    {key: "high", name: "High coverage (80-100%)", color: ColorGreen, priority: PriorityQuality},
	coverageMedium:  {key: "medium", name: "Medium coverage (50-79%)", color: ColorYellow, priority: PriorityQuality},
	coverageLow:     {key: "low", name: "Low coverage (20-49%)", color: ColorOrange, priority: PriorityQuality},
	coverageVeryLow: {key: "veryLow", name: "Very low coverage (<20%)", color: ColorRed, priority: PriorityQuality},
	coverageZero:    {key: "zero", name: "No coverage (0%)", color: ColorDarkRed, priority: PriorityQuality},
	coverageNoData:  {key: "nodata", name: "No coverage data", color: ColorGray, priority: PriorityQualityNoData},
}

// classifyCoverage maps a percentage to its bucket. Values are clamped to
// [0, 100]; NaN counts as missing.
func classifyCoverage(pct float64, ok bool) int {
	if !ok || math.IsNaN(pct) {
		return coverageNoData
	}
	pct = math.Max(0, math.Min(100, pct))
	switch {
	case pct >= 80:
		return coverageHigh
	case pct >= 50:
		return coverageMedium
	case pct >= 20:
		return coverageLow
	case pct > 0:
		return coverageVeryLow
	default:
		return coverageZero
	}
}

// BuildCoverageLayers buckets file entities by coverage percentage.
func BuildCoverageLayers(entities []Entity, coverage map[string]float64) []Layer {
	return partition(string(ModeCoverage), coverageBuckets, entities, func(path string) int {
		pct, ok := coverage[path]
		return classifyCoverage(pct, ok)
	})
}
