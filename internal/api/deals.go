package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/crm"
)

func (h *Handler) listDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.store.Deals(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *Handler) getDeal(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Deal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) createDeal(w http.ResponseWriter, r *http.Request) {
	var in crm.DealCreate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	d, err := h.store.CreateDeal(r.Context(), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) updateDeal(w http.ResponseWriter, r *http.Request) {
	var in crm.DealUpdate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	d, err := h.store.UpdateDeal(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) deleteDeal(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDeal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) updateDealNotes(w http.ResponseWriter, r *http.Request) {
	var in crm.NotesUpdate
	if err := h.decodeValid(r, &in); err != nil {
		badRequest(w, err)
		return
	}
	d, err := h.store.UpdateDealNotes(r.Context(), chi.URLParam(r, "id"), in.Notes)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// dealBuyers assembles the buyer board for a deal: each match joined with its
// buying party and that party's first contact.
func (h *Handler) dealBuyers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealID := chi.URLParam(r, "id")
	if _, err := h.store.Deal(ctx, dealID); err != nil {
		h.storeError(w, r, err)
		return
	}
	matches, err := h.store.DealBuyerMatches(ctx, dealID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	rows := []crm.BuyerRow{}
	for _, m := range matches {
		party, err := h.store.BuyingParty(ctx, m.BuyingPartyID)
		if err != nil {
			// A match pointing at a deleted party is skipped, not fatal.
			h.logger.Warn("match references missing buying party",
				zap.String("matchId", m.ID), zap.String("buyingPartyId", m.BuyingPartyID))
			continue
		}
		row := crm.BuyerRow{Match: m, Party: *party}
		contacts, err := h.store.ContactsByEntity(ctx, party.ID, "buying_party")
		if err == nil && len(contacts) > 0 {
			row.Contact = &contacts[0]
		}
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) dealBuyersWithNDA(w http.ResponseWriter, r *http.Request) {
	parties, err := h.store.BuyersWithSignedNDA(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parties)
}
