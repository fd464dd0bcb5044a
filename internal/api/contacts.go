package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealdash/dealdash/internal/crm"
)

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	var (
		contacts []crm.Contact
		err      error
	)
	entityID := r.URL.Query().Get("entityId")
	entityType := r.URL.Query().Get("entityType")
	if entityID != "" && entityType != "" {
		contacts, err = h.store.ContactsByEntity(r.Context(), entityID, entityType)
	} else {
		contacts, err = h.store.Contacts(r.Context())
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var in crm.ContactCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	c, err := h.store.CreateContact(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
