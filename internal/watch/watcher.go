package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"codecity/internal/errors"
	"codecity/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Change is a file system event below a watched tree.
type Change struct {
	Path      string // absolute path
	Rel       string // slash separated path relative to the tree root
	Op        fsnotify.Op
	Timestamp time.Time
}

type tree struct {
	root   string
	ignore []glob.Glob
}

// Watcher monitors repository trees for changes using fsnotify
type Watcher struct {
	// Directories being watched
	directories []string

	trees []tree

	// Channel that delivers changes
	events chan Change

	// Channel to signal stop; done is closed when the event loop exits
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state, trees and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
	stopped bool
}

// New creates a new watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		directories: []string{},
		events:      make(chan Change, 64),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddTree watches root and every directory below it that is not matched by
// ignore. The .git directory is never watched.
func (w *Watcher) AddTree(root string, ignore []glob.Glob) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.NewFileError("invalid directory", root, errors.InvalidPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("directory not found", abs, errors.FileNotFound, err)
		}
		return errors.NewFileError("error accessing directory", abs, errors.FileAccessDenied, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", abs, errors.InvalidPath, nil)
	}

	t := tree{root: abs, ignore: ignore}
	w.mutex.Lock()
	w.trees = append(w.trees, t)
	w.mutex.Unlock()

	return w.addRecursive(t, abs)
}

func (w *Watcher) addRecursive(t tree, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Directories can vanish between the event and the walk.
			if path != dir {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != t.root && skip(t, path) {
			return filepath.SkipDir
		}
		return w.addDirectory(path)
	})
}

func skip(t tree, path string) bool {
	if filepath.Base(path) == ".git" {
		return true
	}
	rel, ok := relTo(t.root, path)
	if !ok {
		return true
	}
	for _, g := range t.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func relTo(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// addDirectory adds a single directory to the fsnotify watcher
func (w *Watcher) addDirectory(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}

	w.mutex.Lock()
	// Check if already present to avoid duplicates in the list (fsnotify handles duplicates itself)
	found := false
	for _, existingDir := range w.directories {
		if existingDir == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// treeFor returns the tree containing path.
func (w *Watcher) treeFor(path string) (tree, string, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	for _, t := range w.trees {
		if rel, ok := relTo(t.root, path); ok && rel != "." {
			return t, rel, true
		}
	}
	return tree{}, "", false
}

// Events returns the channel that delivers changes. It is closed by Stop.
func (w *Watcher) Events() <-chan Change {
	return w.events
}

// Start begins the watching process
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher already stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.mutex.Unlock()

	go w.loop(w.stopChan, w.done)

	log.Info("Watcher started.")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				log.Debug("fsWatcher.Events channel closed")
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				log.Debug("fsWatcher.Errors channel closed")
				return
			}
			log.LogWithFields(log.F("error", err.Error())).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	t, rel, ok := w.treeFor(event.Name)
	if !ok || skip(t, event.Name) {
		return
	}

	// New directories join the watch set together with their contents.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(t, event.Name); err != nil {
				log.LogWithFields(log.F("directory", event.Name), log.F("error", err.Error())).Warn("Cannot watch new directory")
			}
		}
	}

	change := Change{
		Path:      event.Name,
		Rel:       rel,
		Op:        event.Op,
		Timestamp: time.Now(),
	}

	// Send event non-blockingly to avoid goroutine getting stuck if channel full
	select {
	case w.events <- change:
	default:
		log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
	}
}

// Stop halts the watching process and closes the Events channel. A stopped
// watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	stop, done := w.stopChan, w.done
	w.mutex.Unlock()

	if wasRunning {
		close(stop)
		<-done
	} else {
		close(w.events)
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err.Error())).Error("Error closing fsnotify watcher")
	}
	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the list of directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
