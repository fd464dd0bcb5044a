package supabase

import (
	"context"
	"fmt"

	"github.com/dealdash/dealdash/internal/crm"
)

// BuyersWithSignedNDA returns the buying parties that hold a signed NDA
// agreement for the deal.
func (s *Store) BuyersWithSignedNDA(ctx context.Context, dealID string) ([]crm.BuyingParty, error) {
	var agreements []struct {
		BuyingPartyID string `json:"buying_party_id"`
	}
	_, err := s.client.From("agreements").
		Select("buying_party_id", "", false).
		Eq("deal_id", dealID).
		Ilike("type", "nda").
		Ilike("status", "signed").
		ExecuteTo(&agreements)
	if err != nil {
		return nil, fmt.Errorf("list signed NDAs for deal %s: %w", dealID, err)
	}
	if len(agreements) == 0 {
		return []crm.BuyingParty{}, nil
	}

	seen := make(map[string]bool, len(agreements))
	ids := make([]string, 0, len(agreements))
	for _, a := range agreements {
		if !seen[a.BuyingPartyID] {
			seen[a.BuyingPartyID] = true
			ids = append(ids, a.BuyingPartyID)
		}
	}

	var rows []partyRow
	_, err = s.client.From("buying_parties").
		Select("*", "", false).
		In("id", ids).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch NDA parties for deal %s: %w", dealID, err)
	}
	parties := make([]crm.BuyingParty, 0, len(rows))
	for _, r := range rows {
		parties = append(parties, r.toModel())
	}
	return parties, nil
}
