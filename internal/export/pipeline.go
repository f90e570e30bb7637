package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/render"
)

// State of an export request. Each request walks
// Idle → Preparing → Capturing → Writing → Idle, detouring through Failed
// when a step errors.
type State string

const (
	StateIdle      State = "idle"
	StatePreparing State = "preparing"
	StateCapturing State = "capturing"
	StateWriting   State = "writing"
	StateFailed    State = "failed"
)

// DefaultPause separates consecutive exports in a batch. The pause is
// backpressure for the rasterizer and download sink, not an incidental
// delay.
const DefaultPause = 500 * time.Millisecond

// DefaultBackground is the opaque capture background.
const DefaultBackground = "#ffffff"

// Result describes one export attempt.
type Result struct {
	RegionID string
	Filename string
	FailedAt State
	Err      error
	Duration time.Duration
}

// RegionSource resolves region ids to rendered regions.
type RegionSource interface {
	Region(doc plan.Document, regionID string) (render.Region, error)
}

// Config tunes the exporter.
type Config struct {
	Pause      time.Duration
	Background string
}

// Exporter is the section-scoped export pipeline: it resolves a rendered
// region, neutralizes editor chrome, rasterizes the region to PNG and
// hands the file to the sink.
type Exporter struct {
	regions    RegionSource
	rasterizer Rasterizer
	sink       Sink
	pause      time.Duration
	background string
	logger     *slog.Logger

	// onResult, if set, observes every finished attempt (metrics).
	onResult func(Result)
	// onRestore, if set, observes the post-capture cleanup of a region.
	onRestore func(regionID string)

	mu    sync.Mutex
	state State
}

// New builds an exporter.
func New(regions RegionSource, rasterizer Rasterizer, sink Sink, cfg Config, logger *slog.Logger) *Exporter {
	if cfg.Pause <= 0 {
		cfg.Pause = DefaultPause
	}
	if cfg.Background == "" {
		cfg.Background = DefaultBackground
	}
	return &Exporter{
		regions:    regions,
		rasterizer: rasterizer,
		sink:       sink,
		pause:      cfg.Pause,
		background: cfg.Background,
		logger:     logger,
		state:      StateIdle,
	}
}

// SetResultHook registers an observer for finished attempts.
func (e *Exporter) SetResultHook(fn func(Result)) { e.onResult = fn }

// SetRestoreHook registers an observer for region cleanup.
func (e *Exporter) SetRestoreHook(fn func(regionID string)) { e.onRestore = fn }

// State reports the current pipeline state.
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Exporter) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// ExportSection exports one region. The id is either a section id or one
// of the literal structural region ids "header" and "footer". Every
// failure is caught and reported on the result; the pipeline always ends
// the request back at Idle.
func (e *Exporter) ExportSection(ctx context.Context, doc plan.Document, id string) Result {
	start := time.Now()
	regionID := resolveRegionID(id)
	result := Result{RegionID: regionID}

	defer func() {
		result.Duration = time.Since(start)
		e.setState(StateIdle)
		if e.onResult != nil {
			e.onResult(result)
		}
	}()

	e.setState(StatePreparing)
	region, err := e.regions.Region(doc, regionID)
	if err != nil {
		if errors.Is(err, render.ErrRegionNotFound) {
			err = fmt.Errorf("region not found: %s", regionID)
		}
		return e.fail(result, StatePreparing, err)
	}

	prepared := prepareForCapture(region, e.background)
	defer func() {
		// Cleanup runs whether or not the capture succeeded.
		prepared.restore()
		if e.onRestore != nil {
			e.onRestore(regionID)
		}
	}()

	e.setState(StateCapturing)
	png, err := e.rasterizer.Rasterize(ctx, prepared.html, prepared.opts)
	if err != nil {
		return e.fail(result, StateCapturing, err)
	}

	e.setState(StateWriting)
	result.Filename = Filename(region.Title)
	if err := e.sink.Write(result.Filename, png); err != nil {
		return e.fail(result, StateWriting, err)
	}

	e.logger.Info("exported region",
		"region", regionID,
		"file", result.Filename,
		"bytes", len(png),
	)
	return result
}

// ExportAll exports the header, every visible section in document order,
// then the footer. The sequence is strictly sequential with a pause
// between exports; one region's failure is logged and the rest of the
// sequence still runs. Cancelling the context stops the batch between
// regions and returns the results collected so far.
func (e *Exporter) ExportAll(ctx context.Context, doc plan.Document) []Result {
	ids := []string{render.RegionHeader}
	for _, s := range doc.VisibleSections() {
		ids = append(ids, s.ID)
	}
	ids = append(ids, render.RegionFooter)

	results := make([]Result, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			if !sleepCtx(ctx, e.pause) {
				e.logger.Warn("export batch interrupted", "remaining", len(ids)-i)
				return results
			}
		}
		result := e.ExportSection(ctx, doc, id)
		if result.Err != nil {
			e.logger.Error("export failed, continuing batch",
				"region", result.RegionID,
				"step", string(result.FailedAt),
				"error", result.Err,
			)
		}
		results = append(results, result)
	}
	return results
}

func (e *Exporter) fail(result Result, at State, err error) Result {
	e.setState(StateFailed)
	result.FailedAt = at
	result.Err = err
	e.logger.Error("export error", "region", result.RegionID, "step", string(at), "error", err)
	return result
}

func resolveRegionID(id string) string {
	if id == render.RegionHeader || id == render.RegionFooter {
		return id
	}
	if len(id) > len(render.SectionRegionPrefix) && id[:len(render.SectionRegionPrefix)] == render.SectionRegionPrefix {
		return id
	}
	return render.SectionRegionPrefix + id
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
