package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/hierarchy"
)

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	var (
		activities []crm.Activity
		err        error
	)
	if entityID := r.URL.Query().Get("entityId"); entityID != "" {
		activities, err = h.store.ActivitiesByEntity(r.Context(), entityID)
	} else {
		activities, err = h.store.Activities(r.Context())
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	var in crm.ActivityCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	a, err := h.store.CreateActivity(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request) {
	var in crm.ActivityUpdate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	a, err := h.store.UpdateActivity(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteActivity(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// snapshot loads the flat activity list the traversal functions operate on,
// scoped to one entity when entityId is passed.
func (h *Handler) snapshot(r *http.Request) ([]crm.Activity, error) {
	if entityID := r.URL.Query().Get("entityId"); entityID != "" {
		return h.store.ActivitiesByEntity(r.Context(), entityID)
	}
	return h.store.Activities(r.Context())
}

// activityTree returns the nested forest, or the subtree below ?parentId=.
// Unknown ids produce an empty forest, not a 404: absence of structure is a
// valid answer here.
func (h *Handler) activityTree(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	tree := hierarchy.BuildTree(snapshot, r.URL.Query().Get("parentId"))
	if tree == nil {
		tree = []*hierarchy.Node{}
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *Handler) activityDescendants(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hierarchy.Descendants(snapshot, chi.URLParam(r, "id")))
}

func (h *Handler) activityAncestors(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hierarchy.Ancestors(snapshot, chi.URLParam(r, "id")))
}

func (h *Handler) activityDepth(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"depth": hierarchy.Depth(snapshot, chi.URLParam(r, "id"))})
}

func (h *Handler) activityIsAncestorOf(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	result := hierarchy.IsAncestorOf(snapshot, chi.URLParam(r, "id"), chi.URLParam(r, "otherID"))
	writeJSON(w, http.StatusOK, map[string]bool{"isAncestor": result})
}
