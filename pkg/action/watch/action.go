// Package watch regenerates macro output whenever a descriptor file changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/cmmoran/macrogen/pkg/action/generate"
	"github.com/cmmoran/macrogen/pkg/host"
)

const DefaultDebounce = 300 * time.Millisecond

// Callback receives the outcome of every regeneration.
type Callback func(*generate.Report, error)

type Watcher struct {
	cfg      *generate.Config
	watcher  *fsnotify.Watcher
	debounce time.Duration
	callback Callback

	mu    sync.Mutex
	timer *time.Timer
	genMu sync.Mutex
}

// New watches every descriptor path of cfg. Directories are watched for
// descriptor files created or written inside them.
func New(cfg *generate.Config, debounce time.Duration, cb Callback) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	for _, p := range cfg.Descriptors {
		target := p
		// editors replace files on save; watch the parent to survive renames
		if fi, statErr := os.Stat(p); statErr == nil && !fi.IsDir() {
			target = filepath.Dir(p)
		}
		if err = fw.Add(target); err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "watch %s", target)
		}
	}
	return &Watcher{cfg: cfg, watcher: fw, debounce: debounce, callback: cb}, nil
}

// Run generates once, then again after each change, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.regenerate(ctx)

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("descriptor changed", "file", event.Name, "op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("descriptor watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !host.IsDescriptor(event.Name) {
		return false
	}
	// never react to our own output
	out, _ := filepath.Abs(w.cfg.OutPath())
	name, _ := filepath.Abs(event.Name)
	return out != name
}

// schedule debounces bursts of events into one regeneration.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.regenerate(ctx) })
}

func (w *Watcher) regenerate(ctx context.Context) {
	w.genMu.Lock()
	defer w.genMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c := *w.cfg
	c.Targets = append([]generate.Target(nil), w.cfg.Targets...)
	report, err := generate.Generate(ctx, &c)
	if err != nil {
		slog.Error("regeneration failed", "error", err)
	}
	if w.callback != nil {
		w.callback(report, err)
	}
}
