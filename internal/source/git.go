package source

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"codecity/internal/errors"
	"codecity/internal/highlight"
	"codecity/internal/log"
)

// Repository runs git commands against one working tree via "git -C".
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting dir.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes git with args and returns stdout. Stderr is included in the
// error on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", errors.Wrapf(err, "git %s in %s (stderr: %s)",
			strings.Join(args, " "), r.dir, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// prefix returns the path of the directory relative to the top of its work
// tree ("" at the top, "sub/dir/" below it). Outside a work tree the error
// matches ErrNotGitRepo.
func (r *Repository) prefix(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--is-inside-work-tree", "--show-prefix")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.NewSourceError("git executable not found", "git", errors.GitCommandFailed, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", errors.NewSourceError("not a git work tree", "git", errors.SourceUnavailable, err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "true" {
		return "", errors.ErrNotGitRepo
	}
	if len(lines) > 1 {
		return strings.TrimSpace(lines[1]), nil
	}
	return "", nil
}

// Status returns the working tree status with paths relative to the
// repository directory. ok is false, with a nil error, when the directory is
// not inside a git work tree.
func (r *Repository) Status(ctx context.Context) (highlight.GitStatus, bool, error) {
	prefix, err := r.prefix(ctx)
	if errors.Is(err, errors.ErrNotGitRepo) {
		log.LogWithError(err).With(log.F("dir", r.dir)).Debug("No git work tree")
		return highlight.GitStatus{}, false, nil
	}
	if err != nil {
		return highlight.GitStatus{}, false, err
	}

	out, err := r.Run(ctx, "status", "--porcelain=v1", "--untracked-files=all")
	if err != nil {
		return highlight.GitStatus{}, false, errors.NewSourceError("git status failed", "git", errors.GitCommandFailed, err)
	}

	status := ParsePorcelain(out)
	if prefix != "" {
		status = trimPrefix(status, prefix)
	}
	return status, true, nil
}

// GitStatus loads the status of the work tree containing dir.
func GitStatus(ctx context.Context, dir string) (highlight.GitStatus, bool, error) {
	return NewRepository(dir).Status(ctx)
}

// ParsePorcelain parses "git status --porcelain=v1" output. The index column
// feeds staged, the worktree column feeds unstaged, a D in either column
// marks the path deleted and "??" marks it untracked. A path can appear in
// more than one category. Renames and copies report the new path.
func ParsePorcelain(out string) highlight.GitStatus {
	var (
		status highlight.GitStatus
		seen   = map[string]map[string]bool{}
	)
	add := func(category string, list *[]string, p string) {
		if seen[category] == nil {
			seen[category] = map[string]bool{}
		}
		if seen[category][p] {
			return
		}
		seen[category][p] = true
		*list = append(*list, p)
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		p := line[3:]
		if i := strings.Index(p, " -> "); i >= 0 {
			p = p[i+len(" -> "):]
		}
		p = unquotePath(p)
		if p == "" {
			continue
		}

		switch {
		case x == '?' && y == '?':
			add("untracked", &status.Untracked, p)
			continue
		case x == '!' && y == '!':
			continue
		}

		switch x {
		case ' ', '?':
		case 'D':
			add("deleted", &status.Deleted, p)
		default:
			add("staged", &status.Staged, p)
		}
		switch y {
		case ' ', '?':
		case 'D':
			add("deleted", &status.Deleted, p)
		default:
			add("unstaged", &status.Unstaged, p)
		}
	}
	return status
}

// unquotePath undoes git's C-style quoting of unusual file names.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// trimPrefix rebases repository-relative paths onto a subdirectory, dropping
// paths outside it.
func trimPrefix(status highlight.GitStatus, prefix string) highlight.GitStatus {
	rebase := func(paths []string) []string {
		var out []string
		for _, p := range paths {
			if rel, ok := strings.CutPrefix(p, prefix); ok && rel != "" {
				out = append(out, rel)
			}
		}
		return out
	}
	return highlight.GitStatus{
		Staged:    rebase(status.Staged),
		Unstaged:  rebase(status.Unstaged),
		Untracked: rebase(status.Untracked),
		Deleted:   rebase(status.Deleted),
	}
}
