package highlight

import (
	"path/filepath"
	"strings"
)

// Entity is a file or directory of the visualised tree, identified by its
// path. Entities are owned by the host; this package only reads them.
type Entity struct {
	Path        string `json:"path" yaml:"path"`
	IsDirectory bool   `json:"isDirectory" yaml:"isDirectory"`
	// Extension overrides the extension derived from Path. No leading dot.
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// Ext returns the lower-cased extension of a file entity without the dot,
// or "" for directories and extension-less files.
func (e Entity) Ext() string {
	if e.IsDirectory {
		return ""
	}
	if e.Extension != "" {
		return strings.ToLower(strings.TrimPrefix(e.Extension, "."))
	}
	ext := filepath.Ext(e.Path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func (e Entity) itemType() ItemType {
	if e.IsDirectory {
		return ItemDirectory
	}
	return ItemFile
}

// entityIndex maps paths to entities for git path resolution.
type entityIndex map[string]Entity

func indexEntities(entities []Entity) entityIndex {
	idx := make(entityIndex, len(entities))
	for _, e := range entities {
		idx[e.Path] = e
	}
	return idx
}
