package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/delegen/delegen/internal/utils"
)

// debounceWindow batches editor write bursts into one regeneration
const debounceWindow = 250 * time.Millisecond

// Watcher keeps a generator running, regenerating whenever a watched Go
// source file changes. Generated files are ignored so emission does not
// retrigger the watch.
type Watcher struct {
	generator   *Generator
	scanner     *DirectoryScanner
	diagnostics *utils.DiagnosticSystem
}

// NewWatcher creates a watcher driving the given generator
func NewWatcher(generator *Generator, diagnostics *utils.DiagnosticSystem) *Watcher {
	return &Watcher{
		generator:   generator,
		scanner:     NewDirectoryScanner(),
		diagnostics: diagnostics,
	}
}

// Watch runs one generation round and then blocks, regenerating on changes,
// until the stop channel closes. A failing round keeps the watch alive; the
// next change gets another chance.
func (w *Watcher) Watch(config Config, stop <-chan struct{}) error {
	if err := w.generator.Run(config); err != nil {
		w.diagnostics.Warn("initial generation failed, watching for fixes")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	directories, err := w.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	for _, dir := range directories {
		if err := watcher.Add(dir); err != nil {
			w.diagnostics.Warn("cannot watch %s: %v", dir, err)
		}
	}
	w.diagnostics.Info("watching %d directories", len(directories))

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-stop:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.diagnostics.Verbose("change detected: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := w.generator.Run(config); err != nil {
				w.diagnostics.Warn("regeneration failed, still watching")
			} else {
				w.diagnostics.Success("regenerated")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.diagnostics.Warn("watch error: %v", err)
		}
	}
}

// relevant filters events down to meaningful Go source changes
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".go") {
		return false
	}
	// Emitted files would otherwise retrigger generation forever
	if strings.HasPrefix(name, "autogen_") {
		return false
	}
	return true
}
