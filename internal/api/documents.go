package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealdash/dealdash/internal/crm"
)

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	var (
		docs []crm.Document
		err  error
	)
	if entityID := r.URL.Query().Get("entityId"); entityID != "" {
		docs, err = h.store.DocumentsByEntity(r.Context(), entityID)
	} else {
		docs, err = h.store.Documents(r.Context())
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	var in crm.DocumentCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	d, err := h.store.CreateDocument(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
