package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"codecity/internal/errors"
	"codecity/internal/highlight"
	"codecity/internal/log"
)

// readDocument reads a YAML, JSON or JSONC file and decodes it into v.
// JSON(C) input is reduced to plain JSON first, which yaml.v3 accepts.
// found is false when the file does not exist.
func readDocument(path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewSourceError("cannot read source", path, errors.SourceUnavailable, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return true, errors.NewSourceError("cannot parse source", path, errors.SourceParseFailed, err)
	}
	return true, nil
}

// LoadQuality reads a quality report. The document holds a "coverage" map
// of path to percentage and, per issue mode, a map of path to issue record:
//
//	coverage:
//	  src/a.ts: 91.5
//	eslint:
//	  src/a.ts: {issueCount: 2, warningCount: 2}
//
// A missing file yields empty data. Null or malformed entries are skipped so
// their paths land in the no-data bucket; the rest of the report is kept.
func LoadQuality(path string) (highlight.QualityData, error) {
	var doc map[string]yaml.Node
	found, err := readDocument(path, &doc)
	if err != nil || !found {
		return highlight.QualityData{}, err
	}

	var q highlight.QualityData
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := doc[key]
		logger := log.LogWithFields(log.F("source", path), log.F("section", key))

		if key == string(highlight.ModeCoverage) {
			cov := make(map[string]float64)
			decodeEntries(&node, logger, func(p string, entry *yaml.Node) error {
				var pct float64
				if err := entry.Decode(&pct); err != nil {
					return err
				}
				cov[p] = pct
				return nil
			})
			q.Coverage = cov
			continue
		}

		mode, ok := highlight.ParseMode(key)
		if !ok || !highlight.IsIssueMode(mode) {
			logger.Debug("Ignoring unknown quality section")
			continue
		}
		records := make(map[string]highlight.IssueRecord)
		decodeEntries(&node, logger, func(p string, entry *yaml.Node) error {
			var rec highlight.IssueRecord
			if err := entry.Decode(&rec); err != nil {
				return err
			}
			records[p] = rec
			return nil
		})
		if q.Issues == nil {
			q.Issues = make(map[highlight.ModeID]map[string]highlight.IssueRecord)
		}
		q.Issues[mode] = records
	}
	return q, nil
}

// decodeEntries calls decode for every path entry of a section mapping.
// Null entries and entries decode rejects are logged and skipped. A section
// that is not a mapping contributes nothing.
func decodeEntries(section *yaml.Node, logger *log.Logger, decode func(path string, entry *yaml.Node) error) {
	if section.Kind != yaml.MappingNode {
		if section.Tag != "!!null" {
			logger.Debug("Ignoring quality section that is not a mapping")
		}
		return
	}
	for i := 0; i+1 < len(section.Content); i += 2 {
		key, entry := section.Content[i], section.Content[i+1]
		if entry.Kind == yaml.ScalarNode && entry.Tag == "!!null" {
			logger.With(log.F("path", key.Value)).Debug("Skipping null quality entry")
			continue
		}
		if err := decode(key.Value, entry); err != nil {
			logger.With(log.F("path", key.Value), log.F("error", err.Error())).Debug("Skipping malformed quality entry")
		}
	}
}

// LoadQualityFiles loads and merges reports in order; later files win for
// the same path and dataset.
func LoadQualityFiles(paths []string) (highlight.QualityData, []error) {
	var (
		merged highlight.QualityData
		errs   []error
	)
	for _, p := range paths {
		q, err := LoadQuality(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		merged = merged.Merge(q)
	}
	return merged, errs
}
