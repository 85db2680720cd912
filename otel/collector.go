// collector.go: OpenTelemetry integration for Plug metrics
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/plug"
	"go.opentelemetry.io/otel/metric"
)

// Collector implements plug.MetricsCollector using OpenTelemetry,
// recording Keep and PlugMap operations as histograms and counters
// exportable to any OTEL-compatible backend.
//
// Thread-safety: safe for concurrent use; the underlying OTEL
// instruments are themselves lock-free.
type Collector struct {
	readLatency      metric.Int64Histogram
	writeLatency     metric.Int64Histogram
	exchangeLatency  metric.Int64Histogram
	mapGetLatency    metric.Int64Histogram
	mapInsertLatency metric.Int64Histogram
	mapRemoveLatency metric.Int64Histogram

	exchangeWins   metric.Int64Counter
	exchangeLosses metric.Int64Counter
	mapHits        metric.Int64Counter
	mapMisses      metric.Int64Counter
	mapInsertsNew  metric.Int64Counter
	mapUpdates     metric.Int64Counter
	mapRemovesHit  metric.Int64Counter
	mapRemovesMiss metric.Int64Counter
}

// Options configures a Collector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/plug"
	MeterName string
}

// Option is a functional option for configuring a Collector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing
// metrics from multiple Keep/PlugMap instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewCollector creates a Collector against provider. provider must not
// be nil.
func NewCollector(provider metric.MeterProvider, opts ...Option) (*Collector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/plug"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	c := &Collector{}

	var err error
	if c.readLatency, err = meter.Int64Histogram("plug_read_latency_ns",
		metric.WithDescription("Latency of Keep.Read operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.writeLatency, err = meter.Int64Histogram("plug_write_latency_ns",
		metric.WithDescription("Latency of Keep.Write/Keep.Swap operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.exchangeLatency, err = meter.Int64Histogram("plug_exchange_latency_ns",
		metric.WithDescription("Latency of Keep.Exchange operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.mapGetLatency, err = meter.Int64Histogram("plugmap_get_latency_ns",
		metric.WithDescription("Latency of PlugMap.Get operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.mapInsertLatency, err = meter.Int64Histogram("plugmap_insert_latency_ns",
		metric.WithDescription("Latency of PlugMap.Insert operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.mapRemoveLatency, err = meter.Int64Histogram("plugmap_remove_latency_ns",
		metric.WithDescription("Latency of PlugMap.Remove operations"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}

	if c.exchangeWins, err = meter.Int64Counter("plug_exchange_wins_total",
		metric.WithDescription("Total number of successful Keep.Exchange calls")); err != nil {
		return nil, err
	}
	if c.exchangeLosses, err = meter.Int64Counter("plug_exchange_losses_total",
		metric.WithDescription("Total number of failed (stale current) Keep.Exchange calls")); err != nil {
		return nil, err
	}
	if c.mapHits, err = meter.Int64Counter("plugmap_get_hits_total",
		metric.WithDescription("Total number of PlugMap.Get hits")); err != nil {
		return nil, err
	}
	if c.mapMisses, err = meter.Int64Counter("plugmap_get_misses_total",
		metric.WithDescription("Total number of PlugMap.Get misses")); err != nil {
		return nil, err
	}
	if c.mapInsertsNew, err = meter.Int64Counter("plugmap_inserts_new_total",
		metric.WithDescription("Total number of PlugMap.Insert calls for a fresh key")); err != nil {
		return nil, err
	}
	if c.mapUpdates, err = meter.Int64Counter("plugmap_inserts_updated_total",
		metric.WithDescription("Total number of PlugMap.Insert calls that updated an existing key")); err != nil {
		return nil, err
	}
	if c.mapRemovesHit, err = meter.Int64Counter("plugmap_removes_hit_total",
		metric.WithDescription("Total number of PlugMap.Remove calls that found the key")); err != nil {
		return nil, err
	}
	if c.mapRemovesMiss, err = meter.Int64Counter("plugmap_removes_miss_total",
		metric.WithDescription("Total number of PlugMap.Remove calls that found nothing")); err != nil {
		return nil, err
	}

	return c, nil
}

// RecordRead records a Keep.Read registration.
func (c *Collector) RecordRead(latencyNs int64, walkLength int) {
	c.readLatency.Record(context.Background(), latencyNs)
	_ = walkLength
}

// RecordWrite records a Keep.Write/Keep.Swap.
func (c *Collector) RecordWrite(latencyNs int64) {
	c.writeLatency.Record(context.Background(), latencyNs)
}

// RecordExchange records a Keep.Exchange resolution.
func (c *Collector) RecordExchange(latencyNs int64, won bool) {
	ctx := context.Background()
	c.exchangeLatency.Record(ctx, latencyNs)
	if won {
		c.exchangeWins.Add(ctx, 1)
	} else {
		c.exchangeLosses.Add(ctx, 1)
	}
}

// RecordMapGet records a PlugMap.Get.
func (c *Collector) RecordMapGet(latencyNs int64, hit bool, chainLength int) {
	ctx := context.Background()
	c.mapGetLatency.Record(ctx, latencyNs)
	if hit {
		c.mapHits.Add(ctx, 1)
	} else {
		c.mapMisses.Add(ctx, 1)
	}
	_ = chainLength
}

// RecordMapInsert records a PlugMap.Insert.
func (c *Collector) RecordMapInsert(latencyNs int64, updated bool, chainLength int) {
	ctx := context.Background()
	c.mapInsertLatency.Record(ctx, latencyNs)
	if updated {
		c.mapUpdates.Add(ctx, 1)
	} else {
		c.mapInsertsNew.Add(ctx, 1)
	}
	_ = chainLength
}

// RecordMapRemove records a PlugMap.Remove.
func (c *Collector) RecordMapRemove(latencyNs int64, found bool) {
	ctx := context.Background()
	c.mapRemoveLatency.Record(ctx, latencyNs)
	if found {
		c.mapRemovesHit.Add(ctx, 1)
	} else {
		c.mapRemovesMiss.Add(ctx, 1)
	}
}

var _ plug.MetricsCollector = (*Collector)(nil)
