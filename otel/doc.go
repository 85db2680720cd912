// Package otel provides OpenTelemetry integration for Keep and PlugMap
// metrics.
//
// It implements plug.MetricsCollector using OTEL histograms and
// counters, exportable to any OTEL-compatible backend (Prometheus,
// Jaeger, DataDog, Grafana). This is a separate module so the plug
// core stays free of OTEL dependencies; applications that don't need
// metrics don't pay for them.
//
// # Quick Start
//
//	exporter, _ := prometheus.New()
//	provider := metricsdk.NewMeterProvider(metricsdk.WithReader(exporter))
//
//	collector, _ := otel.NewCollector(provider)
//
//	m, _ := plugmap.NewWithConfig[string, int](plugmap.Config[string]{
//	    Metrics: collector,
//	})
//
// # Metrics exposed
//
// Histograms: plug_read_latency_ns, plug_write_latency_ns,
// plug_exchange_latency_ns, plugmap_get_latency_ns,
// plugmap_insert_latency_ns, plugmap_remove_latency_ns.
//
// Counters: plug_exchange_wins_total, plug_exchange_losses_total,
// plugmap_get_hits_total, plugmap_get_misses_total,
// plugmap_inserts_new_total, plugmap_inserts_updated_total,
// plugmap_removes_hit_total, plugmap_removes_miss_total.
package otel
