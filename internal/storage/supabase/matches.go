package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) matchesBy(column, id string) ([]crm.DealBuyerMatch, error) {
	var rows []matchRow
	_, err := s.client.From("deal_buyer_matches").
		Select("*", "", false).
		Eq(column, id).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list matches by %s %s: %w", column, id, err)
	}
	matches := make([]crm.DealBuyerMatch, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, r.toModel())
	}
	return matches, nil
}

func (s *Store) DealBuyerMatches(ctx context.Context, dealID string) ([]crm.DealBuyerMatch, error) {
	return s.matchesBy("deal_id", dealID)
}

func (s *Store) BuyingPartyMatches(ctx context.Context, partyID string) ([]crm.DealBuyerMatch, error) {
	return s.matchesBy("buying_party_id", partyID)
}

func (s *Store) CreateDealBuyerMatch(ctx context.Context, in crm.MatchCreate) (*crm.DealBuyerMatch, error) {
	status := in.Status
	if status == "" {
		status = "interested"
	}
	match := crm.DealBuyerMatch{
		ID:                uuid.NewString(),
		DealID:            in.DealID,
		BuyingPartyID:     in.BuyingPartyID,
		TargetAcquisition: in.TargetAcquisition,
		Budget:            in.Budget,
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}
	row := matchRow{
		ID: match.ID, DealID: match.DealID, BuyingPartyID: match.BuyingPartyID,
		TargetAcquisition: match.TargetAcquisition, Budget: match.Budget,
		Status: match.Status, CreatedAt: match.CreatedAt,
	}
	if _, _, err := s.client.From("deal_buyer_matches").
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &match, nil
}

func (s *Store) DeleteDealBuyerMatch(ctx context.Context, id string) error {
	var deleted []matchRow
	_, err := s.client.From("deal_buyer_matches").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}
