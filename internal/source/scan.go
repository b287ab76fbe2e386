// Package source loads the data the highlight engine consumes from a local
// repository: the file tree, git status, quality reports and the agent
// annotation feed.
package source

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"codecity/internal/errors"
	"codecity/internal/highlight"
)

// ScanOptions controls which entries ScanTree reports.
type ScanOptions struct {
	IncludeHidden bool
	// Ignore patterns are matched against slash separated paths relative to
	// the scanned root. A matching directory is skipped with its contents.
	Ignore []glob.Glob
}

func (o ScanOptions) ignored(rel string) bool {
	for _, g := range o.Ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// ScanTree walks root and returns every file and directory below it. Each
// directory lists its subdirectories before its files, both sorted by name,
// and a directory is followed directly by its contents.
func ScanTree(ctx context.Context, root string, opts ScanOptions) ([]highlight.Entity, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("scan root not found", root, errors.FileNotFound, err)
		}
		if os.IsPermission(err) {
			return nil, errors.NewFileError("scan root not readable", root, errors.FileAccessDenied, err)
		}
		return nil, errors.NewFileError("cannot stat scan root", root, errors.FileOperationFailed, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("scan root is not a directory", root, errors.InvalidPath, nil)
	}

	var out []highlight.Entity
	if err := scanDir(ctx, root, "", opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanDir(ctx context.Context, abs, rel string, opts ScanOptions, out *[]highlight.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsPermission(err) {
			// Unreadable subdirectories are reported but not descended into.
			if rel != "" {
				return nil
			}
			return errors.NewFileError("cannot read directory", abs, errors.FileAccessDenied, err)
		}
		return errors.NewFileError("cannot read directory", abs, errors.FileOperationFailed, err)
	}

	// Sort entries: directories first, then by name
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		if name == ".git" {
			continue
		}
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		childRel := name
		if rel != "" {
			childRel = path.Join(rel, name)
		}
		if opts.ignored(childRel) {
			continue
		}

		if entry.IsDir() {
			*out = append(*out, highlight.Entity{Path: childRel, IsDirectory: true})
			if err := scanDir(ctx, filepath.Join(abs, name), childRel, opts, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, highlight.Entity{Path: childRel})
	}
	return nil
}
