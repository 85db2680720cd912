// config.go: configuration for PlugMap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import "github.com/agilira/plug"

// DefaultInitialTableSize is the default table size (log2 of bin
// count): 1<<4 = 16 bins, matching the original table's DEFAULT_SIZE.
const DefaultInitialTableSize = defaultSizeLog2

// MaxInitialTableSize is the largest accepted table size (log2 of bin
// count): 1<<32 bins, matching the original table's MAX_SIZE.
const MaxInitialTableSize = maxSizeLog2

// Config holds the construction-time parameters for a PlugMap.
type Config[K comparable] struct {
	// InitialTableSize is the log2 of the number of bins the table
	// starts (and stays — PlugMap does not resize) with. Must be
	// between DefaultInitialTableSize and MaxInitialTableSize.
	// Default: DefaultInitialTableSize.
	InitialTableSize int

	// Hasher computes the bin hash for a key. If nil, a randomly-seeded
	// hash/maphash hasher is used.
	Hasher Hasher[K]

	// Logger is defaulted to NoOpLogger if nil. PlugMap itself does not
	// log through it; HotConfig takes its own Logger via
	// HotConfigOptions.
	Logger plug.Logger

	// Clock provides timestamps for metrics latency recording. If nil,
	// plug.NewSystemTimeProvider() is used.
	Clock plug.TimeProvider

	// Metrics collects PlugMap operation metrics. If nil,
	// NoOpMetricsCollector is used (zero overhead).
	Metrics plug.MetricsCollector
}

// Validate normalizes cfg in place, applying defaults for unset fields.
// It only returns an error for a value that was explicitly set but is
// out of range, never for an unset field.
func (c *Config[K]) Validate() error {
	if c.InitialTableSize == 0 {
		c.InitialTableSize = DefaultInitialTableSize
	} else if c.InitialTableSize < DefaultInitialTableSize || c.InitialTableSize > MaxInitialTableSize {
		return plug.NewErrInvalidTableSize(c.InitialTableSize)
	}

	if c.Logger == nil {
		c.Logger = plug.NoOpLogger{}
	}

	if c.Clock == nil {
		c.Clock = plug.NewSystemTimeProvider()
	}

	if c.Metrics == nil {
		c.Metrics = plug.NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a Config with sensible defaults for key type K.
func DefaultConfig[K comparable]() Config[K] {
	return Config[K]{
		InitialTableSize: DefaultInitialTableSize,
		Logger:           plug.NoOpLogger{},
		Clock:            plug.NewSystemTimeProvider(),
		Metrics:          plug.NoOpMetricsCollector{},
	}
}
