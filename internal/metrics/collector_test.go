package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

type fakeDraftCounter struct {
	n int
}

func (f fakeDraftCounter) CountDrafts() (int, error) {
	return f.n, nil
}

func TestCollectorCollect(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "planweave.db")
	if err := os.WriteFile(dbPath, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("failed to write db file: %v", err)
	}

	m := New()
	c := NewCollector(m, fakeDraftCounter{n: 3}, dbPath, time.Minute)
	c.collect()

	var metric dto.Metric
	if err := m.StorageUsedBytes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 10 {
		t.Errorf("StorageUsedBytes = %f, want 10", metric.Gauge.GetValue())
	}

	if err := m.DraftsCount.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 3 {
		t.Errorf("DraftsCount = %f, want 3", metric.Gauge.GetValue())
	}

	if err := m.Goroutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("Goroutines = %f, want at least 1", metric.Gauge.GetValue())
	}
}

func TestCollectorStartStop(t *testing.T) {
	m := New()
	c := NewCollector(m, nil, "", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	c.Stop()

	var metric dto.Metric
	if err := m.UptimeSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() <= 0 {
		t.Errorf("UptimeSeconds = %f, want positive", metric.Gauge.GetValue())
	}
}
