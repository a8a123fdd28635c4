package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"glossary-backend/application/services"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// StaticLimits provides fixed page limits when no limits file is configured.
type StaticLimits struct {
	Default int
	Max     int
}

// PageLimits implements services.LimitsProvider
func (s StaticLimits) PageLimits() services.PageLimits {
	return services.PageLimits{Default: s.Default, Max: s.Max}
}

// limitsFile is the shape of the watched JSON limits file.
type limitsFile struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

// LimitsWatcher watches a JSON limits file and exposes the current page
// limits, so page sizes can be tuned at runtime without a restart.
type LimitsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu      sync.RWMutex
	current services.PageLimits

	stopCh chan struct{}
}

// NewLimitsWatcher loads the initial limits from path and prepares a file
// watcher. Call Start to begin watching and Stop on shutdown.
func NewLimitsWatcher(path string, logger *zap.Logger) (*LimitsWatcher, error) {
	limits, err := loadLimitsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial limits: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch limits file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations).
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Failed to watch limits directory", zap.Error(err))
	}

	return &LimitsWatcher{
		path:    path,
		watcher: watcher,
		logger:  logger,
		current: limits,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for limits file changes
func (w *LimitsWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Limits watcher started", zap.String("path", w.path))
}

// Stop stops watching for limits file changes
func (w *LimitsWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Limits watcher stopped")
}

// PageLimits implements services.LimitsProvider
func (w *LimitsWatcher) PageLimits() services.PageLimits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *LimitsWatcher) watchLoop() {
	var debounce *time.Timer

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Debounce to avoid multiple reloads for one save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Limits watcher error", zap.Error(err))
		}
	}
}

func (w *LimitsWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// reload re-reads the limits file; a broken file keeps the previous limits.
func (w *LimitsWatcher) reload() {
	limits, err := loadLimitsFromFile(w.path)
	if err != nil {
		w.logger.Warn("Failed to reload limits file, keeping previous limits",
			zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = limits
	w.mu.Unlock()

	w.logger.Info("Page limits reloaded",
		zap.Int("default", limits.Default),
		zap.Int("max", limits.Max),
	)
}

func loadLimitsFromFile(path string) (services.PageLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.PageLimits{}, err
	}

	var lf limitsFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return services.PageLimits{}, err
	}
	if lf.DefaultPageSize < 1 {
		return services.PageLimits{}, fmt.Errorf("default_page_size must be at least 1, got %d", lf.DefaultPageSize)
	}
	if lf.MaxPageSize < lf.DefaultPageSize {
		return services.PageLimits{}, fmt.Errorf("max_page_size (%d) must not be below default_page_size (%d)",
			lf.MaxPageSize, lf.DefaultPageSize)
	}

	return services.PageLimits{Default: lf.DefaultPageSize, Max: lf.MaxPageSize}, nil
}
