package otel

import (
	"context"
	"testing"
	"time"

	"github.com/agilira/plug"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestCollector_Interface(t *testing.T) {
	var _ plug.MetricsCollector = (*Collector)(nil)
}

func newTestCollector(t *testing.T) (*Collector, *metric.ManualReader) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	collector, err := NewCollector(provider)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}
	return collector, reader
}

func TestNewCollector_NilProvider(t *testing.T) {
	collector, err := NewCollector(nil)
	if err == nil {
		t.Fatal("NewCollector(nil) should return an error")
	}
	if collector != nil {
		t.Fatal("NewCollector(nil) should return a nil collector")
	}
}

func TestCollector_RecordRead(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordRead(1000, 1)
	collector.RecordRead(2000, 3)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "plug_read_latency_ns" {
				found = true
				hist, ok := m.Data.(metricdata.Histogram[int64])
				if !ok {
					t.Fatalf("expected Histogram[int64], got %T", m.Data)
				}
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 2 {
					t.Errorf("expected 2 recordings, got %d", total)
				}
			}
		}
	}
	if !found {
		t.Error("plug_read_latency_ns metric not found")
	}
}

func TestCollector_RecordExchange(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordExchange(100, true)
	collector.RecordExchange(200, false)
	collector.RecordExchange(300, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var wins, losses int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "plug_exchange_wins_total":
				sum := m.Data.(metricdata.Sum[int64])
				wins = sum.DataPoints[0].Value
			case "plug_exchange_losses_total":
				sum := m.Data.(metricdata.Sum[int64])
				losses = sum.DataPoints[0].Value
			}
		}
	}

	if wins != 1 {
		t.Errorf("expected 1 win, got %d", wins)
	}
	if losses != 2 {
		t.Errorf("expected 2 losses, got %d", losses)
	}
}

func TestCollector_RecordMapOperations(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordMapGet(100, true, 1)
	collector.RecordMapGet(100, false, 0)
	collector.RecordMapInsert(100, false, 1)
	collector.RecordMapInsert(100, true, 2)
	collector.RecordMapRemove(100, true)
	collector.RecordMapRemove(100, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 {
				counts[m.Name] = sum.DataPoints[0].Value
			}
		}
	}

	want := map[string]int64{
		"plugmap_get_hits_total":        1,
		"plugmap_get_misses_total":      1,
		"plugmap_inserts_new_total":     1,
		"plugmap_inserts_updated_total": 1,
		"plugmap_removes_hit_total":     1,
		"plugmap_removes_miss_total":    1,
	}
	for name, wantVal := range want {
		if counts[name] != wantVal {
			t.Errorf("%s = %d, want %d", name, counts[name], wantVal)
		}
	}
}

func TestCollector_Concurrent(t *testing.T) {
	collector, _ := newTestCollector(t)

	const numGoroutines = 10
	const opsPerGoroutine = 100
	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < opsPerGoroutine; j++ {
				collector.RecordRead(int64(100+id), 1)
				collector.RecordWrite(int64(200 + id))
				collector.RecordExchange(int64(50+id), j%2 == 0)
				collector.RecordMapGet(int64(10+id), j%2 == 0, 1)
			}
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("test timeout - deadlock?")
		}
	}
}

func TestCollector_WithMeterName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewCollector(provider, WithMeterName("custom_plug"))
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.RecordWrite(100)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("no scope metrics")
	}
	if rm.ScopeMetrics[0].Scope.Name != "custom_plug" {
		t.Errorf("expected scope name custom_plug, got %s", rm.ScopeMetrics[0].Scope.Name)
	}
}
