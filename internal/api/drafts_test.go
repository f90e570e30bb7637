package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/store"
)

func TestDraftLifecycle(t *testing.T) {
	s, _ := newTestServer(t, nil)

	// Empty store
	rec := doJSON(t, s, "GET", "/api/v1/drafts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var drafts []store.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &drafts); err != nil {
		t.Fatalf("decode drafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts = %d, want 0", len(drafts))
	}

	// Save one
	rec = doJSON(t, s, "POST", "/api/v1/drafts", SaveDraftRequest{Name: "week 36"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var draft store.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if draft.ID == "" || draft.Name != "week 36" {
		t.Errorf("draft = %+v", draft)
	}

	// Mutate the working document, then load the draft back
	doJSON(t, s, "PUT", "/api/v1/document/meta", plan.EmailMeta{Title: "Changed"})

	rec = doJSON(t, s, "POST", "/api/v1/drafts/"+draft.ID+"/load", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("load without confirm: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, "POST", "/api/v1/drafts/"+draft.ID+"/load?confirm=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d, want 200", rec.Code)
	}
	resp := decodeDocument(t, rec)
	if resp.Document.EmailMeta.Title != "Weekly Plan" {
		t.Errorf("title after load = %q, want Weekly Plan", resp.Document.EmailMeta.Title)
	}

	// Delete
	rec = doJSON(t, s, "DELETE", "/api/v1/drafts/"+draft.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, "POST", "/api/v1/drafts/"+draft.ID+"/load?confirm=true", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("load deleted draft: status = %d, want 404", rec.Code)
	}
}

func TestDraftExportImport(t *testing.T) {
	s, _ := newTestServer(t, nil)

	// Empty export is an error
	rec := doJSON(t, s, "GET", "/api/v1/drafts/export", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty export status = %d, want 404", rec.Code)
	}

	doJSON(t, s, "POST", "/api/v1/drafts", SaveDraftRequest{Name: "keeper"})

	rec = doJSON(t, s, "GET", "/api/v1/drafts/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "drafts.json") {
		t.Errorf("content disposition = %q", cd)
	}
	exported := rec.Body.Bytes()

	// Import into a fresh server
	s2, _ := newTestServer(t, nil)
	req := httptest.NewRequest("POST", "/api/v1/drafts/import", bytes.NewReader(exported))
	rec = httptest.NewRecorder()
	s2.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, want 200", rec.Code)
	}

	var imported []store.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &imported); err != nil {
		t.Fatalf("decode imported: %v", err)
	}
	if len(imported) != 1 || imported[0].Name != "keeper" {
		t.Errorf("imported = %+v", imported)
	}
}

func TestDraftImportRejectsGarbage(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/drafts/import", strings.NewReader(`{"oops": true}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
