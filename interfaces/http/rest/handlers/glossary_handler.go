package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"glossary-backend/application/services"
	"glossary-backend/domain/glossary"
	"glossary-backend/pkg/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GlossaryHandler handles glossary-related HTTP requests
type GlossaryHandler struct {
	service *services.GlossaryService
	logger  *zap.Logger
}

// NewGlossaryHandler creates a new glossary handler
func NewGlossaryHandler(service *services.GlossaryService, logger *zap.Logger) *GlossaryHandler {
	return &GlossaryHandler{service: service, logger: logger}
}

// CreateTermRequest represents the request body for creating a term
type CreateTermRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=100"`
	Definition   string   `json:"definition" validate:"required,min=10,max=2000"`
	Category     string   `json:"category"`
	Examples     []string `json:"examples"`
	RelatedTerms []string `json:"related_terms"`
	Source       string   `json:"source"`
}

// UpdateTermRequest represents the request body for partially updating a
// term. Absent fields leave the stored values untouched.
type UpdateTermRequest struct {
	Title        *string   `json:"title" validate:"omitempty,min=1,max=100"`
	Definition   *string   `json:"definition" validate:"omitempty,min=10,max=2000"`
	Category     *string   `json:"category"`
	Examples     *[]string `json:"examples"`
	RelatedTerms *[]string `json:"related_terms"`
	Source       *string   `json:"source"`
}

// ListTerms handles GET /api/glossary
func (h *GlossaryHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result := h.service.List(skip, limit)
	message := fmt.Sprintf("Retrieved %d of %d terms", len(result.Items), result.Total)
	respondSuccess(w, h.logger, http.StatusOK, message, result)
}

// GetTerm handles GET /api/glossary/{id}
func (h *GlossaryHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.termID(w, r)
	if !ok {
		return
	}

	term, err := h.service.Get(id)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, "Term found", term)
}

// SearchTerms handles GET /api/glossary/search/{keyword}
func (h *GlossaryHandler) SearchTerms(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")

	results := h.service.Search(keyword)
	message := fmt.Sprintf("Found %d terms", len(results))
	respondSuccess(w, h.logger, http.StatusOK, message, results)
}

// CreateTerm handles POST /api/glossary
func (h *GlossaryHandler) CreateTerm(w http.ResponseWriter, r *http.Request) {
	var req CreateTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if violations := validation.ValidateStruct(req); len(violations) > 0 {
		respondError(w, h.logger, http.StatusUnprocessableEntity, "term validation failed", violations)
		return
	}

	term, err := h.service.Create(services.CreateTermInput{
		Title:        req.Title,
		Definition:   req.Definition,
		Category:     req.Category,
		Examples:     req.Examples,
		RelatedTerms: req.RelatedTerms,
		Source:       req.Source,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondSuccess(w, h.logger, http.StatusCreated, "Term created successfully", term)
}

// UpdateTerm handles PUT /api/glossary/{id}
func (h *GlossaryHandler) UpdateTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.termID(w, r)
	if !ok {
		return
	}

	var req UpdateTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if violations := validation.ValidateStruct(req); len(violations) > 0 {
		respondError(w, h.logger, http.StatusUnprocessableEntity, "term validation failed", violations)
		return
	}

	term, err := h.service.Update(id, glossary.TermPatch{
		Title:        req.Title,
		Definition:   req.Definition,
		Category:     req.Category,
		Examples:     req.Examples,
		RelatedTerms: req.RelatedTerms,
		Source:       req.Source,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondSuccess(w, h.logger, http.StatusOK, "Term updated successfully", term)
}

// DeleteTerm handles DELETE /api/glossary/{id}
func (h *GlossaryHandler) DeleteTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.termID(w, r)
	if !ok {
		return
	}

	deletedID, err := h.service.Delete(id)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondSuccess(w, h.logger, http.StatusOK, "Term deleted successfully",
		map[string]int{"deleted_id": deletedID})
}

// Statistics handles GET /api/statistics
func (h *GlossaryHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Statistics()
	respondSuccess(w, h.logger, http.StatusOK, "Glossary statistics", stats)
}

// termID parses the {id} path parameter as a positive integer, responding
// with 400 when it is not one.
func (h *GlossaryHandler) termID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		respondError(w, h.logger, http.StatusBadRequest,
			fmt.Sprintf("Invalid term id %q", raw), nil)
		return 0, false
	}
	return id, true
}
