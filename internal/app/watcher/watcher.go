package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"screenlog/internal/app/errors"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

// Watcher reports changes to individual files such as the configuration file
type Watcher interface {
	Watch(onChange func(paths []string), paths ...string) error
	Close()
}

// target is one Watch registration; files in a directory are watched through the directory
// so that editors replacing the file by rename are still observed
type target struct {
	dirs      map[string]struct{}
	matcher   Matcher
	debouncer Debouncer
}

type manager struct {
	fsWatcher *fsnotify.Watcher
	targets   []*target
	dirs      map[string]int
	log       logger.Logger
	mu        sync.RWMutex
	closed    bool
}

// NewWatcher creates a Watcher backed by fsnotify
func NewWatcher(log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := &manager{
		fsWatcher: fsw,
		dirs:      make(map[string]int),
		log:       log.WithComponent("WATCHER"),
	}

	go m.processEvents()

	return m, nil
}

// Watch calls onChange with the changed paths after writes to any of paths settle
func (m *manager) Watch(onChange func(paths []string), paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.ErrWatcherClosed
	}

	t := &target{dirs: make(map[string]struct{})}
	names := make([]string, 0, len(paths))

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve '%s': %w", path, err)
		}

		t.dirs[filepath.Dir(abs)] = struct{}{}
		names = append(names, filepath.Base(abs))
	}

	matcher, err := NewFileMatcher(names...)
	if err != nil {
		return err
	}

	t.matcher = matcher

	for dir := range t.dirs {
		if m.dirs[dir] == 0 {
			if err := m.fsWatcher.Add(dir); err != nil {
				m.log.Warn().Err(err).Msgf("Failed to watch directory: %s", dir)
				continue
			}
		}

		m.dirs[dir]++
	}

	t.debouncer = NewDebouncer(config.WatchDebounce, func(changed []string) {
		if m.isClosed() {
			return
		}

		m.log.Info().Msgf("Detected changes in %v", changed)
		onChange(changed)
	})

	m.targets = append(m.targets, t)
	m.log.Info().Msgf("Watching %v", paths)

	return nil
}

// Close stops every registration and releases the fsnotify watcher
func (m *manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.closed = true

	for _, t := range m.targets {
		t.debouncer.Stop()
	}

	m.targets = nil

	if err := m.fsWatcher.Close(); err != nil {
		m.log.Warn().Err(err).Msg("Failed to close watcher")
	}
}

func (m *manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closed
}

func (m *manager) processEvents() {
	for {
		select {
		case event, ok := <-m.fsWatcher.Events:
			if !ok {
				return
			}

			m.handleEvent(event)
		case err, ok := <-m.fsWatcher.Errors:
			if !ok {
				return
			}

			m.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (m *manager) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	dir := filepath.Dir(event.Name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.targets {
		if _, ok := t.dirs[dir]; !ok {
			continue
		}

		if t.matcher.Match(event.Name) {
			t.debouncer.Trigger(event.Name)
		}
	}
}

// isRelevantEvent ignores chmod-only events
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
