package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

const matchColumns = `id, deal_id, buying_party_id, target_acquisition, budget, status, created_at`

func (s *Store) queryMatches(ctx context.Context, where string, arg string) ([]crm.DealBuyerMatch, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+matchColumns+` FROM deal_buyer_matches
		WHERE `+where+` = $1 ORDER BY created_at`, arg)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []crm.DealBuyerMatch{}
	for rows.Next() {
		var m crm.DealBuyerMatch
		if err := rows.Scan(&m.ID, &m.DealID, &m.BuyingPartyID, &m.TargetAcquisition,
			&m.Budget, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *Store) DealBuyerMatches(ctx context.Context, dealID string) ([]crm.DealBuyerMatch, error) {
	return s.queryMatches(ctx, "deal_id", dealID)
}

func (s *Store) BuyingPartyMatches(ctx context.Context, partyID string) ([]crm.DealBuyerMatch, error) {
	return s.queryMatches(ctx, "buying_party_id", partyID)
}

func (s *Store) CreateDealBuyerMatch(ctx context.Context, in crm.MatchCreate) (*crm.DealBuyerMatch, error) {
	status := in.Status
	if status == "" {
		status = "interested"
	}
	m := crm.DealBuyerMatch{
		ID:                uuid.NewString(),
		DealID:            in.DealID,
		BuyingPartyID:     in.BuyingPartyID,
		TargetAcquisition: in.TargetAcquisition,
		Budget:            in.Budget,
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO deal_buyer_matches (id, deal_id, buying_party_id, target_acquisition, budget, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.DealID, m.BuyingPartyID, m.TargetAcquisition, m.Budget, m.Status, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &m, nil
}

func (s *Store) DeleteDealBuyerMatch(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM deal_buyer_matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
