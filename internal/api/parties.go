package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealdash/dealdash/internal/crm"
)

func (h *Handler) listBuyingParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.store.BuyingParties(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parties)
}

func (h *Handler) getBuyingParty(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.BuyingParty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) createBuyingParty(w http.ResponseWriter, r *http.Request) {
	var in crm.BuyingPartyCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	p, err := h.store.CreateBuyingParty(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) updateBuyingParty(w http.ResponseWriter, r *http.Request) {
	var in crm.BuyingPartyUpdate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	p, err := h.store.UpdateBuyingParty(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteBuyingParty(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBuyingParty(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) updateBuyingPartyNotes(w http.ResponseWriter, r *http.Request) {
	var in crm.NotesUpdate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	p, err := h.store.UpdateBuyingPartyNotes(r.Context(), chi.URLParam(r, "id"), in.Notes)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// buyingPartyMatches joins each of the party's matches with its deal.
func (h *Handler) buyingPartyMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partyID := chi.URLParam(r, "id")
	if _, err := h.store.BuyingParty(ctx, partyID); err != nil {
		h.storeError(w, r, err)
		return
	}
	matches, err := h.store.BuyingPartyMatches(ctx, partyID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	rows := []crm.PartyMatchRow{}
	for _, m := range matches {
		deal, err := h.store.Deal(ctx, m.DealID)
		if err != nil {
			continue
		}
		rows = append(rows, crm.PartyMatchRow{Match: m, Deal: *deal})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) createMatch(w http.ResponseWriter, r *http.Request) {
	var in crm.MatchCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	m, err := h.store.CreateDealBuyerMatch(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) deleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDealBuyerMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
