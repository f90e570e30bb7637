package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planweave/planweave/internal/metrics"
	"github.com/planweave/planweave/internal/store"
)

// SaveDraftRequest is the request body for POST /api/v1/drafts
type SaveDraftRequest struct {
	Name string `json:"name"`
}

// handleListDrafts handles GET /api/v1/drafts
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.store.ListDrafts()
	if err != nil {
		s.logger.Error("failed to list drafts", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to list drafts")
		return
	}
	if drafts == nil {
		drafts = []store.Draft{}
	}
	s.sendJSON(w, http.StatusOK, drafts)
}

// handleSaveDraft handles POST /api/v1/drafts. The draft snapshots the
// current working document under the given name.
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		s.sendError(w, http.StatusBadRequest, "name is required")
		return
	}

	draft, err := s.store.SaveDraft(req.Name, s.snapshot())
	if err != nil {
		s.logger.Error("failed to save draft", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to save draft")
		return
	}

	metrics.IncDraftSave()
	s.logger.Info("draft saved", "id", draft.ID, "name", draft.Name)
	s.sendJSON(w, http.StatusCreated, draft)
}

// handleDeleteDraft handles DELETE /api/v1/drafts/{draftID}
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	if err := s.store.DeleteDraft(id); err != nil {
		s.logger.Error("failed to delete draft", "id", id, "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to delete draft")
		return
	}

	metrics.IncDraftDelete()
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadDraft handles POST /api/v1/drafts/{draftID}/load. Loading
// replaces the working document wholesale, so the caller must confirm
// the destructive load with confirm=true.
func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.sendError(w, http.StatusBadRequest, "loading a draft replaces the current document; pass confirm=true")
		return
	}

	id := chi.URLParam(r, "draftID")
	doc, err := s.store.LoadDraft(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendError(w, http.StatusNotFound, "Draft not found")
			return
		}
		s.logger.Error("failed to load draft", "id", id, "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to load draft")
		return
	}

	s.replace(doc, true)

	metrics.IncDraftLoad()
	s.logger.Info("draft loaded", "id", id)
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: true, Document: doc})
}

// handleExportDrafts handles GET /api/v1/drafts/export
func (s *Server) handleExportDrafts(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.ExportDrafts()
	if err != nil {
		if errors.Is(err, store.ErrNoDrafts) {
			s.sendError(w, http.StatusNotFound, "No drafts to export")
			return
		}
		s.logger.Error("failed to export drafts", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to export drafts")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="drafts.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleImportDrafts handles POST /api/v1/drafts/import. A payload that
// does not parse as a draft collection is rejected wholesale.
func (s *Server) handleImportDrafts(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	imported, err := s.store.ImportDrafts(data)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid draft collection")
		return
	}

	s.logger.Info("drafts imported", "count", len(imported))
	s.sendJSON(w, http.StatusOK, imported)
}
