package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) BuyingParties(ctx context.Context) ([]crm.BuyingParty, error) {
	var rows []partyRow
	_, err := s.client.From("buying_parties").
		Select("*", "", false).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list buying parties: %w", err)
	}
	parties := make([]crm.BuyingParty, 0, len(rows))
	for _, r := range rows {
		parties = append(parties, r.toModel())
	}
	return parties, nil
}

func (s *Store) BuyingParty(ctx context.Context, id string) (*crm.BuyingParty, error) {
	var rows []partyRow
	_, err := s.client.From("buying_parties").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get buying party %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	p := rows[0].toModel()
	return &p, nil
}

func (s *Store) CreateBuyingParty(ctx context.Context, in crm.BuyingPartyCreate) (*crm.BuyingParty, error) {
	status := in.Status
	if status == "" {
		status = "evaluating"
	}
	p := crm.BuyingParty{
		ID:                   uuid.NewString(),
		Name:                 in.Name,
		TargetAcquisitionMin: in.TargetAcquisitionMin,
		TargetAcquisitionMax: in.TargetAcquisitionMax,
		BudgetMin:            in.BudgetMin,
		BudgetMax:            in.BudgetMax,
		Timeline:             in.Timeline,
		Status:               status,
		Notes:                in.Notes,
		CreatedAt:            time.Now().UTC(),
	}
	if _, _, err := s.client.From("buying_parties").
		Insert(partyToRow(p), false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create buying party: %w", err)
	}
	return &p, nil
}

func (s *Store) UpdateBuyingParty(ctx context.Context, id string, in crm.BuyingPartyUpdate) (*crm.BuyingParty, error) {
	p, err := s.BuyingParty(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(in)
	if _, _, err := s.client.From("buying_parties").
		Update(partyToRow(*p), "", "").
		Eq("id", id).
		Execute(); err != nil {
		return nil, fmt.Errorf("update buying party %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) DeleteBuyingParty(ctx context.Context, id string) error {
	var deleted []partyRow
	_, err := s.client.From("buying_parties").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete buying party %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateBuyingPartyNotes(ctx context.Context, id, notes string) (*crm.BuyingParty, error) {
	return s.UpdateBuyingParty(ctx, id, crm.BuyingPartyUpdate{Notes: &notes})
}
