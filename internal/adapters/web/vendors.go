package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vendor-storage/internal/core"

	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} route parameter. A non-numeric ID can never match a
// stored row, so it reports 404 rather than 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, fmt.Sprintf("no such record: %q", raw), "NOT_FOUND", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	result, err := h.svc.ListVendors(r.Context(), tenant)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Vendors)
}

func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	var vendor core.Vendor
	if !decodeJSON(w, r, &vendor) {
		return
	}
	if vendor.Name == "" || vendor.Code == "" {
		writeError(w, r, "name and code are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateVendor(r.Context(), tenant, &vendor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/tenants/%s/vendors/%d", tenant, result.Vendor.ID))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result.Vendor)
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetVendor(r.Context(), tenant, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(result.Degraded) > 0 {
		w.Header().Set("X-Degraded-Fetches", strings.Join(result.Degraded, ","))
	}
	writeJSON(w, result.Vendor)
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var vendor core.Vendor
	if !decodeJSON(w, r, &vendor) {
		return
	}
	if vendor.Name == "" || vendor.Code == "" {
		writeError(w, r, "name and code are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.UpdateVendor(r.Context(), tenant, id, &vendor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Vendor)
}

func (h *Handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.DeleteVendor(r.Context(), tenant, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Vendor)
}
