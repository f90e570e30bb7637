package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planweave/planweave/internal/export"
	"github.com/planweave/planweave/internal/metrics"
	"github.com/planweave/planweave/internal/render"
)

// ExportResult is the wire form of one export attempt.
type ExportResult struct {
	Region   string        `json:"region"`
	Filename string        `json:"filename,omitempty"`
	FailedAt string        `json:"failedAt,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

func toExportResult(r export.Result) ExportResult {
	out := ExportResult{
		Region:   r.RegionID,
		Filename: r.Filename,
		Duration: r.Duration,
	}
	if r.Err != nil {
		out.FailedAt = string(r.FailedAt)
		out.Error = r.Err.Error()
	}
	return out
}

// handleExportRegion handles POST /api/v1/export/{region}
func (s *Server) handleExportRegion(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	result := s.exporter.ExportSection(r.Context(), s.snapshot(), region)
	if result.Err != nil {
		s.sendJSON(w, http.StatusBadGateway, toExportResult(result))
		return
	}
	s.sendJSON(w, http.StatusOK, toExportResult(result))
}

// handleExportAll handles POST /api/v1/export/all. Per-region failures
// are reported in the result list, never as a request failure.
func (s *Server) handleExportAll(w http.ResponseWriter, r *http.Request) {
	metrics.IncExportBatch()

	results := s.exporter.ExportAll(r.Context(), s.snapshot())

	out := make([]ExportResult, 0, len(results))
	for _, res := range results {
		out = append(out, toExportResult(res))
	}
	s.sendJSON(w, http.StatusOK, out)
}

// handlePreviewPage handles GET /api/v1/preview
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	html, err := s.renderer.Page(s.snapshot())
	if err != nil {
		s.logger.Error("failed to render preview", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handlePreviewRegion handles GET /api/v1/preview/{region}
func (s *Server) handlePreviewRegion(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "region")

	region, err := s.renderer.Region(s.snapshot(), regionID)
	if err != nil {
		if errors.Is(err, render.ErrRegionNotFound) {
			s.sendError(w, http.StatusNotFound, "Region not found")
			return
		}
		s.logger.Error("failed to render region", "region", regionID, "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to render region")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(region.HTML))
}
