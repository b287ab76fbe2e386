package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codecity/internal/config"
	"codecity/internal/errors"
	"codecity/internal/highlight"
	"codecity/internal/log"
)

// Snapshot is one consistent read of every data source for a repository.
type Snapshot struct {
	Scope       string
	Entities    []highlight.Entity
	Git         highlight.GitStatus
	HasGit      bool
	Quality     highlight.QualityData
	Annotations []highlight.Layer
}

// Inputs converts the snapshot into composer inputs for mode.
func (s Snapshot) Inputs(mode highlight.ModeID, fileTypes highlight.FileTypeOptions) highlight.Inputs {
	return highlight.Inputs{
		Mode:        mode,
		Entities:    s.Entities,
		Git:         s.Git,
		HasGit:      s.HasGit,
		Quality:     s.Quality,
		Annotations: s.Annotations,
		FileTypes:   fileTypes,
	}
}

// Apply pushes the snapshot into store. The scope is set first so a
// snapshot of another repository starts from an empty store.
func (s Snapshot) Apply(store *highlight.Store) {
	store.SetScope(s.Scope)
	store.SetInputs(highlight.Inputs{
		Entities:    s.Entities,
		Git:         s.Git,
		HasGit:      s.HasGit,
		Quality:     s.Quality,
		Annotations: s.Annotations,
	})
}

// Provider loads snapshots of one repository.
type Provider struct {
	Root            string
	Scan            ScanOptions
	Git             bool
	QualityPaths    []string
	AnnotationsPath string
}

// NewProvider builds a provider for root from the configuration. Relative
// source paths are resolved against root.
func NewProvider(root string, cfg *config.Config) (*Provider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.NewFileError("invalid repository path", root, errors.InvalidPath, err)
	}
	ignore, err := config.CompileIgnore(cfg.Scan.Ignore)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		Root: abs,
		Scan: ScanOptions{IncludeHidden: cfg.Scan.IncludeHidden, Ignore: ignore},
		Git:  cfg.Sources.Git,
	}
	for _, q := range cfg.Sources.Quality {
		p.QualityPaths = append(p.QualityPaths, p.resolve(q))
	}
	if cfg.Sources.Annotations != "" {
		p.AnnotationsPath = p.resolve(cfg.Sources.Annotations)
	}
	return p, nil
}

func (p *Provider) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// Load reads every source concurrently. A failing tree scan fails the load;
// the other sources degrade to empty data with a warning.
func (p *Provider) Load(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	snap := Snapshot{Scope: p.Root}
	loadID := log.F("load_id", uuid.NewString())
	logger := log.LogWithFields(log.F("scope", p.Root), loadID)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		entities, err := ScanTree(groupCtx, p.Root, p.Scan)
		if err != nil {
			return err
		}
		snap.Entities = entities
		return nil
	})

	if p.Git {
		group.Go(func() error {
			status, ok, err := GitStatus(groupCtx, p.Root)
			if err != nil {
				// Cancellation is not a git failure; let the group report it.
				if !errors.IsSourceError(err) {
					return err
				}
				log.LogWithError(err).With(loadID).Warn("Git status unavailable")
				return nil
			}
			snap.Git, snap.HasGit = status, ok
			return nil
		})
	}

	group.Go(func() error {
		q, errs := LoadQualityFiles(p.QualityPaths)
		for _, err := range errs {
			log.LogWithError(err).With(loadID).Warn("Skipping quality report")
		}
		snap.Quality = q
		return nil
	})

	if p.AnnotationsPath != "" {
		group.Go(func() error {
			layers, err := LoadAnnotations(p.AnnotationsPath)
			if err != nil {
				log.LogWithError(err).With(loadID).Warn("Skipping annotation feed")
				return nil
			}
			snap.Annotations = layers
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Snapshot{}, err
	}

	logger.With(
		log.F("entities", len(snap.Entities)),
		log.F("git", snap.HasGit),
		log.F("annotations", len(snap.Annotations)),
		log.F("duration", time.Since(start).String()),
	).Debug("Loaded snapshot")
	return snap, nil
}
