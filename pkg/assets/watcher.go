// Package assets watches mesh files on disk and reloads them into a running
// scene.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/gleam/pkg/core"
	"github.com/taigrr/gleam/pkg/models"
	"github.com/taigrr/gleam/pkg/scene"
)

// Reload is the result of re-reading one mesh source.
type Reload struct {
	Source string
	Mesh   *models.Mesh
	Err    error
}

// Watcher reloads mesh files when they change. Loading happens on the
// watcher goroutine; results are delivered on Reloads for the frame loop
// to install between ticks.
type Watcher struct {
	fs      *fsnotify.Watcher
	load    func(path string) (*models.Mesh, error)
	reloads chan Reload

	mu      sync.Mutex
	sources map[string]string // absolute path -> source key
	dirs    map[string]bool
}

// NewWatcher creates a watcher that reads meshes with load, or models.Load
// when load is nil.
func NewWatcher(load func(path string) (*models.Mesh, error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if load == nil {
		load = models.Load
	}
	return &Watcher{
		fs:      fw,
		load:    load,
		reloads: make(chan Reload, 8),
		sources: make(map[string]string),
		dirs:    make(map[string]bool),
	}, nil
}

// Add watches the file behind a mesh source. Primitive sources are not
// files and are ignored. The containing directory is watched so that
// editors that replace files on save are still seen.
func (w *Watcher) Add(source string) error {
	if slices.Contains(models.PrimitiveNames(), source) {
		return nil
	}
	path, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("watch %s: %w", source, err)
	}
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.sources[path] = source
	return nil
}

// WatchScene adds the mesh source of every object in sc.
func (w *Watcher) WatchScene(sc *scene.Scene) error {
	var errs []error
	for _, obj := range sc.Objects() {
		if err := w.Add(obj.Source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reloads delivers reload results. It is closed when Run returns.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops watching without running. Run closes the watcher itself
// on return.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run processes file events until ctx is done, then releases the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.reloads)
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, source, ok := w.lookup(ev.Name)
			if !ok {
				continue
			}
			core.LogDebug("mesh source %s changed", source)
			mesh, err := w.load(path)
			select {
			case w.reloads <- Reload{Source: source, Mesh: mesh, Err: err}:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			core.LogWarn("mesh watcher: %v", err)
		}
	}
}

func (w *Watcher) lookup(name string) (path, source string, ok bool) {
	path, err := filepath.Abs(name)
	if err != nil {
		return "", "", false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	source, ok = w.sources[path]
	return path, source, ok
}

// Apply installs a successful reload on every object loaded from the same
// source and returns how many were updated. Failed reloads keep the
// current mesh.
func Apply(sc *scene.Scene, r Reload) int {
	if r.Err != nil {
		core.LogWarn("reload %s: %v", r.Source, r.Err)
		return 0
	}
	objs := sc.ObjectsBySource(r.Source)
	for _, obj := range objs {
		obj.SetMesh(r.Mesh)
	}
	core.LogInfo("reloaded %s into %d object(s)", r.Source, len(objs))
	return len(objs)
}
