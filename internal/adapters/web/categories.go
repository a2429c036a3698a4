package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// categoryPayload is the request body for category create and update.
type categoryPayload struct {
	Value string `json:"value"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	result, err := h.svc.ListCategories(r.Context(), tenant)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	var payload categoryPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Value == "" {
		writeError(w, r, "value is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateCategory(r.Context(), tenant, payload.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result.Category)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetCategory(r.Context(), tenant, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload categoryPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Value == "" {
		writeError(w, r, "value is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.UpdateCategory(r.Context(), tenant, id, payload.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), tenant, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
