// Package watcher signals changes to template definition files, debounced so
// an editor save or a bulk copy results in a single catalog reload.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	dir        string
	extensions map[string]bool
	debounce   time.Duration
	logger     *zap.Logger
	onChange   chan struct{}
	done       chan struct{}
	stopped    chan struct{}
	started    atomic.Bool
	stopOnce   sync.Once
	stopErr    error
}

type Config struct {
	Dir         string
	Extensions  []string
	DebounceDur time.Duration
}

func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		Extensions:  []string{".yaml", ".yml", ".json"},
		DebounceDur: 500 * time.Millisecond,
	}
}

func New(cfg Config, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	return &Watcher{
		fsWatcher:  fsw,
		dir:        cfg.Dir,
		extensions: exts,
		debounce:   cfg.DebounceDur,
		logger:     logger,
		onChange:   make(chan struct{}, 1),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}, nil
}

// Start watches the directory tree and returns a channel that receives a
// signal after each burst of relevant changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.addTree(w.dir); err != nil {
		return nil, err
	}

	w.started.Store(true)
	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and waits for its goroutine to exit. It is safe
// to call more than once, and without a successful Start.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
		if w.started.Load() {
			<-w.stopped
		}
	})
	return w.stopErr
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	var (
		timer   *time.Timer
		pending bool
	)

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-fire:
			if pending {
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("template watcher error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(event.Name))]
}
