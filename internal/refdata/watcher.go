package refdata

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay batches the burst of fs events an editor or atomic
// rename produces into a single reload.
const debounceDelay = 200 * time.Millisecond

// Watcher reloads the reference tables when the files in an external
// data directory change. A successful reload hands the new catalog to
// the swap callback; a failed reload keeps the previous catalog live
// and only logs the error.
type Watcher struct {
	dir    string
	logger zerolog.Logger
	onSwap func(*Catalog)

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the given data directory. onSwap is
// called from the watcher goroutine with every successfully reloaded
// catalog.
func NewWatcher(dir string, logger zerolog.Logger, onSwap func(*Catalog)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:    dir,
		logger: logger,
		onSwap: onSwap,
		fsw:    fsw,
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
	w.logger.Info().Str("dir", w.dir).Msg("watching reference data directory")
}

// Stop ends watching and waits for the goroutine to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn().Err(err).Msg("closing fs watcher")
	}
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isTableEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("fs watcher error")
		case <-timerC:
			w.reload()
		}
	}
}

func isTableEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	return strings.EqualFold(name, ModelBenchmarksFile) || strings.EqualFold(name, InfrastructureFile)
}

func (w *Watcher) reload() {
	catalog, err := LoadDir(w.dir, w.logger)
	if err != nil {
		// Previous catalog stays live; reload failures are not fatal.
		w.logger.Error().Err(err).Str("dir", w.dir).Msg("reference data reload failed, keeping previous catalog")
		return
	}
	w.onSwap(catalog)
	w.logger.Info().Int("models", catalog.ModelCount()).Msg("reference data reloaded")
}
