// Package killswitch turns feature areas off without a deploy.
//
// Flags live in a YAML file:
//
//	flags:
//	  downloads: false
//
// A flag that is not listed is enabled. Watch reloads the file whenever it changes.
package killswitch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Flags map[string]bool `yaml:"flags"`
}

// Switch holds the current flag values
type Switch struct {
	mu     sync.RWMutex
	flags  map[string]bool
	path   string
	logger *logrus.Logger
}

// New creates a switch with fixed flag values and no backing file
func New(flags map[string]bool) *Switch {
	copied := make(map[string]bool, len(flags))
	for name, enabled := range flags {
		copied[name] = enabled
	}
	return &Switch{flags: copied, logger: logrus.StandardLogger()}
}

// Load reads flags from path. An empty path yields a switch with every flag enabled.
func Load(path string, logger *logrus.Logger) (*Switch, error) {
	s := New(nil)
	s.path = path
	if logger != nil {
		s.logger = logger
	}
	if path == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// IsEnabled reports whether the named feature is on
func (s *Switch) IsEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enabled, ok := s.flags[name]
	return !ok || enabled
}

// Set overrides a single flag in memory until the next reload
func (s *Switch) Set(name string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[name] = enabled
}

// Reload re-reads the backing file. On error the previous values are kept.
func (s *Switch) Reload() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read killswitch file: %w", err)
	}

	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse killswitch file %s: %w", s.path, err)
	}
	if parsed.Flags == nil {
		parsed.Flags = make(map[string]bool)
	}

	s.mu.Lock()
	s.flags = parsed.Flags
	s.mu.Unlock()

	s.logger.WithField("flags", parsed.Flags).Info("Killswitch flags loaded")
	return nil
}

// Watch reloads the file on every write until ctx is cancelled. The parent directory is
// watched so that editors replacing the file atomically are picked up too.
func (s *Switch) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create killswitch watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch killswitch directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		defer observability.RecoverPanic(s.logger, "killswitch watcher")

		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(); err != nil {
					s.logger.WithError(err).Warn("Keeping previous killswitch flags")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.WithError(err).Error("Killswitch watcher error")
			}
		}
	}()

	return nil
}
