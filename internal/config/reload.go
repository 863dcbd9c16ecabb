// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	xlog "github.com/ishanbagchi/sitecfg/internal/log"
	"github.com/ishanbagchi/sitecfg/internal/metrics"
	"github.com/rs/zerolog"
)

const defaultDebounce = 500 * time.Millisecond

// Holder holds the process-wide descriptor with atomic reloading capability.
// A failed reload never replaces the current descriptor.
type Holder struct {
	mu      sync.RWMutex
	current *Descriptor
	loader  *Loader
	logger  zerolog.Logger

	// serializes Reload
	reloadRun sync.Mutex

	// Reload notifications
	reloadMu        sync.RWMutex
	reloadListeners []chan<- *Descriptor

	watchMu  sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce time.Duration
}

// NewHolder creates a holder with an initial descriptor. loader may be nil
// when the descriptor did not come from a file; Reload then fails.
func NewHolder(initial *Descriptor, loader *Loader) *Holder {
	return &Holder{
		current:  initial,
		loader:   loader,
		logger:   xlog.WithComponent("config"),
		debounce: defaultDebounce,
	}
}

// Get returns the current descriptor.
func (h *Holder) Get() *Descriptor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload loads and validates the file again and swaps the descriptor in.
// On failure the old descriptor stays current and the error is returned.
func (h *Holder) Reload(ctx context.Context) error {
	if h.loader == nil {
		return errors.New("reload: holder has no loader")
	}
	h.reloadRun.Lock()
	defer h.reloadRun.Unlock()

	ctx = xlog.ContextWithCorrelationID(ctx, uuid.NewString())
	logger := xlog.WithContext(ctx, h.logger)
	logger.Info().Str(xlog.FieldEvent, "config.reload_start").Str(xlog.FieldPath, h.loader.Path()).Msg("reloading configuration")

	next, err := h.loader.Load()
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, ErrConfiguration) {
			result = metrics.ResultInvalid
		}
		metrics.RecordReload(result)
		logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "config.reload_failed").
			Msg("keeping previous configuration")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	old := h.current
	h.current = next
	h.mu.Unlock()

	metrics.RecordReload(metrics.ResultSuccess)
	summary := Diff(old, next)
	if summary.Empty() {
		logger.Info().Str(xlog.FieldEvent, "config.reload_unchanged").Msg("configuration unchanged")
		return nil
	}

	h.notifyListeners(logger, next)
	for _, c := range summary.Changes {
		logger.Info().
			Str(xlog.FieldEvent, "config.changed").
			Interface("old", c.Old).
			Interface("new", c.New).
			Msgf("config changed: %s", c.Key)
	}
	logger.Info().
		Str(xlog.FieldEvent, "config.reload_success").
		Strs(xlog.FieldChanged, summary.ChangedFields).
		Bool("rebuild_required", summary.RebuildRequired).
		Msg("configuration reloaded successfully")
	return nil
}

// StartWatcher reloads the descriptor whenever the config file changes. The
// parent directory is watched so editors that replace the file by rename are
// picked up. The watcher runs until ctx is cancelled or Stop is called.
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.loader == nil || h.loader.Path() == "" {
		h.logger.Info().
			Str(xlog.FieldEvent, "config.watcher_disabled").
			Msg("config file watcher disabled (no config file)")
		return nil
	}

	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.cancel != nil {
		return errors.New("watcher already started")
	}

	target, err := filepath.Abs(h.loader.Path())
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.logger.Info().
		Str(xlog.FieldEvent, "config.watcher_started").
		Str(xlog.FieldPath, target).
		Msg("watching config file for changes")

	h.wg.Add(1)
	go h.watchLoop(ctx, watcher, target)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer h.wg.Done()
	defer func() { _ = watcher.Close() }()

	var debounceTimer *time.Timer
	stopTimer := func() {
		// A stopped timer never runs its callback, so release its slot here.
		if debounceTimer != nil && debounceTimer.Stop() {
			h.wg.Done()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			h.logger.Info().Str(xlog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				stopTimer()
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			h.logger.Debug().
				Str(xlog.FieldEvent, "config.file_changed").
				Str("op", event.Op.String()).
				Msg("config file changed")

			stopTimer()
			h.wg.Add(1)
			debounceTimer = time.AfterFunc(h.debounce, func() {
				defer h.wg.Done()
				if ctx.Err() != nil {
					return
				}
				if err := h.Reload(ctx); err != nil {
					h.logger.Error().
						Err(err).
						Str(xlog.FieldEvent, "config.auto_reload_failed").
						Msg("automatic config reload failed")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				stopTimer()
				return
			}
			h.logger.Error().
				Err(err).
				Str(xlog.FieldEvent, "config.watcher_error").
				Msg("config watcher error")
		}
	}
}

// Stop stops the watcher and waits for any in-flight reload.
func (h *Holder) Stop() {
	h.watchMu.Lock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.watchMu.Unlock()
	h.wg.Wait()
}

// RegisterListener registers a channel that receives the new descriptor after
// every reload that changed something. Sends never block; the caller owns
// the channel.
func (h *Holder) RegisterListener(ch chan<- *Descriptor) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.reloadListeners = append(h.reloadListeners, ch)
}

func (h *Holder) notifyListeners(logger zerolog.Logger, d *Descriptor) {
	h.reloadMu.RLock()
	defer h.reloadMu.RUnlock()

	for _, ch := range h.reloadListeners {
		select {
		case ch <- d:
		default:
			logger.Warn().
				Str(xlog.FieldEvent, "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}
