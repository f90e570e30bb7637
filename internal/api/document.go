package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planweave/planweave/internal/plan"
)

// DocumentResponse wraps the working document. Applied reports whether
// the requested mutation changed anything.
type DocumentResponse struct {
	Applied  bool          `json:"applied"`
	Document plan.Document `json:"document"`
}

// ErrorResponse is the error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleGetDocument handles GET /api/v1/document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: true, Document: s.snapshot()})
}

// handleResetDocument handles POST /api/v1/document/reset. The working
// document and its persisted mirror go back to the built-in default;
// drafts are untouched.
func (s *Server) handleResetDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.logger.Error("failed to reset stored state", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Failed to reset document")
		return
	}

	doc := plan.DefaultDocument()
	s.replace(doc, false)

	s.logger.Info("document reset to default")
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: true, Document: doc})
}

// handleSetMeta handles PUT /api/v1/document/meta
func (s *Server) handleSetMeta(w http.ResponseWriter, r *http.Request) {
	var meta plan.EmailMeta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, applied := s.apply("set_meta", func(d plan.Document) (plan.Document, bool) {
		return plan.SetEmailMeta(d, meta), true
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// AddSectionRequest is the request body for POST /api/v1/sections
type AddSectionRequest struct {
	Title string `json:"title"`
	Kind  string `json:"kind,omitempty"`
}

// handleAddSection handles POST /api/v1/sections
func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req AddSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		s.sendError(w, http.StatusBadRequest, "title is required")
		return
	}

	kind := plan.KindCustom
	if req.Kind != "" {
		kind = plan.SectionKind(req.Kind)
	}
	content, ok := contentForKind(kind)
	if !ok {
		s.sendError(w, http.StatusBadRequest, "unknown section kind")
		return
	}

	var section plan.Section
	doc, _ := s.apply("add_section", func(d plan.Document) (plan.Document, bool) {
		var next plan.Document
		next, section = plan.AddSection(d, req.Title, kind, content)
		return next, true
	})

	s.logger.Info("section added", "section", section.ID, "kind", string(kind))
	s.sendJSON(w, http.StatusCreated, DocumentResponse{Applied: true, Document: doc})
}

// handleRemoveSection handles DELETE /api/v1/sections/{id}
func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, applied := s.apply("remove_section", func(d plan.Document) (plan.Document, bool) {
		return plan.RemoveSection(d, id)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handleToggleVisibility handles POST /api/v1/sections/{id}/visibility
func (s *Server) handleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, applied := s.apply("toggle_visibility", func(d plan.Document) (plan.Document, bool) {
		return plan.ToggleSectionVisibility(d, id)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// PatchContentRequest is the request body for content field patches
type PatchContentRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// handlePatchContent handles PATCH /api/v1/sections/{id}/content
func (s *Server) handlePatchContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PatchContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Field == "" {
		s.sendError(w, http.StatusBadRequest, "field is required")
		return
	}

	doc, applied := s.apply("patch_content", func(d plan.Document) (plan.Document, bool) {
		return plan.PatchSectionContent(d, id, req.Field, req.Value)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handlePatchStyles handles PATCH /api/v1/sections/{id}/styles
func (s *Server) handlePatchStyles(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch plan.StylePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, applied := s.apply("patch_styles", func(d plan.Document) (plan.Document, bool) {
		return plan.PatchSectionStyles(d, id, patch)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// ItemRequest addresses an item list inside a section's content.
type ItemRequest struct {
	List  string `json:"list"`
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
}

// handleAddItem handles POST /api/v1/sections/{id}/items
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	factory, ok := itemFactoryFor(req.List)
	if !ok {
		s.sendError(w, http.StatusBadRequest, "unknown item list")
		return
	}

	doc, applied := s.apply("add_item", func(d plan.Document) (plan.Document, bool) {
		return plan.AddListItem(d, id, req.List, factory)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handleUpdateItem handles PATCH /api/v1/sections/{id}/items/{itemID}
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.List == "" || req.Field == "" {
		s.sendError(w, http.StatusBadRequest, "list and field are required")
		return
	}

	doc, applied := s.apply("update_item", func(d plan.Document) (plan.Document, bool) {
		return plan.UpdateListItem(d, id, req.List, itemID, req.Field, req.Value)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handleRemoveItem handles DELETE /api/v1/sections/{id}/items/{itemID}
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	list := r.URL.Query().Get("list")
	if list == "" {
		s.sendError(w, http.StatusBadRequest, "list query parameter is required")
		return
	}

	doc, applied := s.apply("remove_item", func(d plan.Document) (plan.Document, bool) {
		return plan.RemoveListItem(d, id, list, itemID)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// ButtonRequest carries a button label.
type ButtonRequest struct {
	Label string `json:"label"`
}

// handleAddButton handles POST /api/v1/sections/{id}/buttons
func (s *Server) handleAddButton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, applied := s.apply("add_button", func(d plan.Document) (plan.Document, bool) {
		return plan.AddButton(d, id, req.Label)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handleUpdateButton handles PUT /api/v1/sections/{id}/buttons/{index}
func (s *Server) handleUpdateButton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid button index")
		return
	}

	var req ButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, applied := s.apply("update_button", func(d plan.Document) (plan.Document, bool) {
		return plan.UpdateButton(d, id, index, req.Label)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// handleRemoveButton handles DELETE /api/v1/sections/{id}/buttons/{index}
func (s *Server) handleRemoveButton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid button index")
		return
	}

	doc, applied := s.apply("remove_button", func(d plan.Document) (plan.Document, bool) {
		return plan.RemoveButton(d, id, index)
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// ToggleDayRequest flips one day in a schedule holiday set.
type ToggleDayRequest struct {
	Set string `json:"set"` // company or national
	Day int    `json:"day"`
}

// handleToggleDay handles POST /api/v1/sections/{id}/schedule/toggle-day
func (s *Server) handleToggleDay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ToggleDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var field string
	switch req.Set {
	case "company":
		field = "companyHolidays"
	case "national":
		field = "nationalHolidays"
	default:
		s.sendError(w, http.StatusBadRequest, "set must be company or national")
		return
	}

	doc, applied := s.apply("toggle_day", func(d plan.Document) (plan.Document, bool) {
		section, ok := d.Section(id)
		if !ok {
			return d, false
		}
		content, ok := section.Content.(plan.ScheduleContent)
		if !ok {
			return d, false
		}
		days := content.CompanyHolidays
		if req.Set == "national" {
			days = content.NationalHolidays
		}
		return plan.PatchSectionContent(d, id, field, plan.ToggleDay(days, req.Day))
	})
	s.sendJSON(w, http.StatusOK, DocumentResponse{Applied: applied, Document: doc})
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Drafts  int    `json:"drafts"`
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	drafts, _ := s.store.CountDrafts()

	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Uptime:  time.Since(s.startTime).String(),
		Drafts:  drafts,
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: message})
}

// contentForKind returns the empty content variant for a section kind.
func contentForKind(kind plan.SectionKind) (plan.SectionContent, bool) {
	switch kind {
	case plan.KindGlance:
		return plan.GlanceContent{}, true
	case plan.KindSummary:
		return plan.SummaryContent{}, true
	case plan.KindUpdates:
		return plan.UpdatesContent{}, true
	case plan.KindMilestones, plan.KindAdditional:
		return plan.BannerContent{}, true
	case plan.KindSchedule:
		return plan.ScheduleContent{}, true
	case plan.KindOverview:
		return plan.OverviewContent{}, true
	case plan.KindCustom:
		return plan.CustomContent{}, true
	}
	return nil, false
}

// itemFactoryFor maps an item list to its new-item factory.
func itemFactoryFor(list string) (plan.ItemFactory, bool) {
	switch list {
	case "statusCards":
		return plan.NewStatusCard, true
	case "statusItems", "nextItems":
		return plan.NewStatusItem, true
	case "projects":
		return plan.NewProject, true
	}
	return nil, false
}
