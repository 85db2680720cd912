// hotreload.go: dynamic non-structural configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
	"github.com/agilira/plug"
)

// HotConfig watches a configuration file for runtime knobs a live
// PlugMap can safely pick up without being rebuilt: the log level. A
// change to the table's initial size is
// structural — it would require rebuilding every bin — so it is never
// applied here; it is only logged as declined.
type HotConfig[K comparable] struct {
	mu       sync.RWMutex
	logLevel string
	logger   plug.Logger
	watcher  *argus.Watcher

	// tableSize is the InitialTableSize the map was actually built with,
	// used only to detect and decline would-be structural changes.
	tableSize int

	// OnReload is called after a non-structural change is applied. It
	// must be fast and non-blocking.
	OnReload func(oldLevel, newLevel string)
}

// HotConfigOptions configures hot reload behavior for a PlugMap.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// TableSize is the InitialTableSize the map was actually built
	// with, so a requested change to it can be detected and declined.
	TableSize int

	// Logger receives diagnostics, including declined structural
	// changes. If nil, NoOpLogger is used.
	Logger plug.Logger

	// OnReload is called after a non-structural change is applied.
	OnReload func(oldLevel, newLevel string)
}

// NewHotConfig starts watching opts.ConfigPath for changes.
//
// Supported configuration keys:
//   - plugmap.log_level (string): passed through to OnReload
//   - plugmap.initial_table_size (int): compared against the map's
//     actual table size; any difference is logged as declined, never
//     applied
func NewHotConfig[K comparable](opts HotConfigOptions) (*HotConfig[K], error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = plug.NoOpLogger{}
	}

	hc := &HotConfig[K]{
		logger:    opts.Logger,
		tableSize: opts.TableSize,
		OnReload:  opts.OnReload,
	}

	argusConfig := argus.Config{PollInterval: opts.PollInterval}
	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig[K]) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig[K]) Stop() error {
	return hc.watcher.Stop()
}

// LogLevel returns the current log level (thread-safe).
func (hc *HotConfig[K]) LogLevel() string {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.logLevel
}

func (hc *HotConfig[K]) handleConfigChange(data map[string]interface{}) {
	section, ok := data["plugmap"].(map[string]interface{})
	if !ok {
		section = data
	}

	if requested, ok := parseIntField(section["initial_table_size"]); ok && requested != hc.tableSize {
		hc.logger.Warn("plugmap: declining live table resize",
			"requested", requested, "actual", hc.tableSize)
	}

	newLevel, ok := section["log_level"].(string)
	if !ok {
		return
	}

	hc.mu.Lock()
	oldLevel := hc.logLevel
	hc.logLevel = newLevel
	hc.mu.Unlock()

	if oldLevel == newLevel {
		return
	}

	if hc.OnReload != nil {
		hc.OnReload(oldLevel, newLevel)
	}
}

// parseIntField extracts an int from an interface{} value, accepting
// both int and float64 (YAML/JSON decoders differ on numeric types).
func parseIntField(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
