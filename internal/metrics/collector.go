package metrics

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"
)

// DraftCounter reports how many drafts are stored.
type DraftCounter interface {
	CountDrafts() (int, error)
}

// Collector keeps the system gauges current: uptime, goroutines, the
// size of the database file and the number of stored drafts.
type Collector struct {
	metrics     *Metrics
	drafts      DraftCounter
	storagePath string
	interval    time.Duration
	startTime   time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewCollector creates a new metrics collector
func NewCollector(m *Metrics, drafts DraftCounter, storagePath string, interval time.Duration) *Collector {
	if interval == 0 {
		interval = 10 * time.Second
	}
	return &Collector{
		metrics:     m,
		drafts:      drafts,
		storagePath: storagePath,
		interval:    interval,
		startTime:   time.Now(),
		stopCh:      make(chan struct{}),
	}
}

// Start begins the periodic gauge updates
func (c *Collector) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.loop(ctx)
}

// Stop stops the collector and waits for the loop to exit
func (c *Collector) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

func (c *Collector) loop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.collect()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

func (c *Collector) collect() {
	c.metrics.UptimeSeconds.Set(time.Since(c.startTime).Seconds())
	c.metrics.Goroutines.Set(float64(runtime.NumGoroutine()))

	if c.storagePath != "" {
		if info, err := os.Stat(c.storagePath); err == nil {
			c.metrics.StorageUsedBytes.Set(float64(info.Size()))
		}
	}

	if c.drafts != nil {
		if n, err := c.drafts.CountDrafts(); err == nil {
			c.metrics.DraftsCount.Set(float64(n))
		}
	}
}
