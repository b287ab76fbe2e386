package watch

import (
	"context"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"codecity/internal/errors"
	"codecity/internal/log"
	"codecity/internal/source"
)

// Loader produces a fresh snapshot of the watched repository.
type Loader interface {
	Load(ctx context.Context) (source.Snapshot, error)
}

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running          bool      // Whether the daemon is currently active
	WatchDirectories []string  // Directories being watched
	LastActivity     time.Time // Time of the last change batch
	Reloads          int       // Snapshots loaded since start
}

// Daemon reloads a repository snapshot after every debounced burst of
// changes and hands the result to a callback.
type Daemon struct {
	root     string
	ignore   []glob.Glob
	loader   Loader
	debounce time.Duration

	watcher *Watcher
	cancel  context.CancelFunc
	done    chan struct{}

	// Statistics
	reloads      int
	lastActivity time.Time

	// Callback for each reload
	callback func(source.Snapshot, []Change, error)

	// Lock for modifications
	mutex sync.RWMutex

	// Whether the daemon is running
	running bool
}

// NewDaemon creates a reloader for the tree at root.
func NewDaemon(root string, ignore []glob.Glob, loader Loader, debounce time.Duration) *Daemon {
	return &Daemon{
		root:     root,
		ignore:   ignore,
		loader:   loader,
		debounce: debounce,
	}
}

// SetCallback sets the function called after each reload. It runs on the
// daemon goroutine; reloads never overlap.
func (d *Daemon) SetCallback(cb func(source.Snapshot, []Change, error)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = cb
}

// Start initiates the daemon process
func (d *Daemon) Start(ctx context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.running {
		return errors.New("daemon is already running")
	}

	watcher, err := New()
	if err != nil {
		return err
	}
	if err := watcher.AddTree(d.root, d.ignore); err != nil {
		watcher.Stop()
		return errors.Wrap(err, "error adding watch directory")
	}
	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return errors.Wrap(err, "error starting watcher")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.watcher = watcher
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	go d.processEvents(runCtx, Debounce(runCtx, watcher.Events(), d.debounce))

	log.LogWithFields(log.F("root", d.root), log.F("debounce", d.debounce.String())).Info("Live reload started")
	return nil
}

// Stop halts the daemon process and waits for a running reload to finish.
func (d *Daemon) Stop() {
	d.mutex.Lock()
	if !d.running {
		d.mutex.Unlock()
		return
	}
	d.running = false
	cancel, done, watcher := d.cancel, d.done, d.watcher
	d.mutex.Unlock()

	cancel()
	watcher.Stop()
	<-done
}

// Status returns the current status of the daemon
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	status := DaemonStatus{
		Running:      d.running,
		LastActivity: d.lastActivity,
		Reloads:      d.reloads,
	}
	if d.watcher != nil {
		status.WatchDirectories = d.watcher.Directories()
	}
	return status
}

// processEvents reloads once per change batch
func (d *Daemon) processEvents(ctx context.Context, batches <-chan []Change) {
	defer close(d.done)

	for batch := range batches {
		d.mutex.Lock()
		d.lastActivity = batch[len(batch)-1].Timestamp
		d.mutex.Unlock()

		log.LogWithFields(log.F("changes", len(batch)), log.F("first", batch[0].Rel)).Debug("Reloading after changes")
		snap, err := d.loader.Load(ctx)
		if ctx.Err() != nil {
			return
		}

		d.mutex.Lock()
		if err == nil {
			d.reloads++
		}
		cb := d.callback
		d.mutex.Unlock()

		if err != nil {
			log.LogWithError(err).Warn("Reload failed")
		}
		if cb != nil {
			cb(snap, batch, err)
		}
	}
}
