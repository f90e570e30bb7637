package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestExportRegion(t *testing.T) {
	s, sink := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/v1/export/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result ExportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Filename != "executive-summary.png" {
		t.Errorf("filename = %q, want executive-summary.png", result.Filename)
	}
	if _, ok := sink.files["executive-summary.png"]; !ok {
		t.Error("export did not reach the sink")
	}
}

func TestExportRegionNotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/v1/export/no-such-section", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var result ExportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Error == "" || result.FailedAt != "preparing" {
		t.Errorf("result = %+v", result)
	}
}

func TestExportAll(t *testing.T) {
	s, sink := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/v1/export/all", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var results []ExportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}

	// Header + 6 visible default sections + footer
	if len(results) != 8 {
		t.Fatalf("results = %d, want 8", len(results))
	}
	if results[0].Region != "header" {
		t.Errorf("first region = %q, want header", results[0].Region)
	}
	if results[len(results)-1].Region != "footer" {
		t.Errorf("last region = %q, want footer", results[len(results)-1].Region)
	}
	if len(sink.files) != 8 {
		t.Errorf("files written = %d, want 8", len(sink.files))
	}
}

func TestPreviewPage(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/v1/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Executive Summary") {
		t.Error("page preview missing visible section")
	}
}

func TestPreviewRegion(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/v1/preview/section-glance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="section-glance"`) {
		t.Error("region preview missing section markup")
	}

	rec = doJSON(t, s, "GET", "/api/v1/preview/section-nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
