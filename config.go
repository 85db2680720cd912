// config.go: ambient defaults shared across plug and plugmap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package plug

import (
	"sync/atomic"

	"github.com/agilira/go-timecache"
)

// SystemTimeProvider is the default TimeProvider, backed by go-timecache's
// cached clock instead of a raw time.Now() on every call.
type SystemTimeProvider struct{}

// NewSystemTimeProvider returns the default TimeProvider.
func NewSystemTimeProvider() *SystemTimeProvider {
	return &SystemTimeProvider{}
}

func (SystemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}

// defaultMetrics and defaultClock hold the collaborators every Keep
// constructed after a Configure call picks up. They default to
// NoOpMetricsCollector/SystemTimeProvider so a Keep never pays for
// instrumentation unless a caller wires one in.
var (
	defaultMetrics atomic.Pointer[MetricsCollector]
	defaultClock   atomic.Pointer[TimeProvider]
)

// Configure installs the MetricsCollector and TimeProvider that every
// Keep constructed afterward uses to instrument Read/Write/Swap/
// Exchange, mirroring plugmap.Config's Metrics/Clock fields for the
// root package's own cells. A nil argument leaves that collaborator
// unchanged. It only affects Keeps constructed after the call; Keeps
// already holding a trackedAtomic keep their collaborators from
// construction time.
func Configure(metrics MetricsCollector, clock TimeProvider) {
	if metrics != nil {
		defaultMetrics.Store(&metrics)
	}
	if clock != nil {
		defaultClock.Store(&clock)
	}
}

func currentMetrics() MetricsCollector {
	if p := defaultMetrics.Load(); p != nil {
		return *p
	}
	return NoOpMetricsCollector{}
}

func currentClock() TimeProvider {
	if p := defaultClock.Load(); p != nil {
		return *p
	}
	return NewSystemTimeProvider()
}
