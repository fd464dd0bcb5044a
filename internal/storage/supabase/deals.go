package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) Deals(ctx context.Context) ([]crm.Deal, error) {
	var rows []dealRow
	_, err := s.client.From("deals").
		Select("*", "", false).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	deals := make([]crm.Deal, 0, len(rows))
	for _, r := range rows {
		deals = append(deals, r.toModel())
	}
	return deals, nil
}

func (s *Store) Deal(ctx context.Context, id string) (*crm.Deal, error) {
	var rows []dealRow
	_, err := s.client.From("deals").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get deal %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	d := rows[0].toModel()
	return &d, nil
}

func (s *Store) CreateDeal(ctx context.Context, in crm.DealCreate) (*crm.Deal, error) {
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}
	health := 85
	if in.HealthScore != nil {
		health = *in.HealthScore
	}
	d := crm.Deal{
		ID:              uuid.NewString(),
		CompanyName:     in.CompanyName,
		Revenue:         in.Revenue,
		SDE:             in.SDE,
		ValuationMin:    in.ValuationMin,
		ValuationMax:    in.ValuationMax,
		SDEMultiple:     in.SDEMultiple,
		RevenueMultiple: in.RevenueMultiple,
		Commission:      in.Commission,
		Stage:           in.Stage,
		Priority:        priority,
		Description:     in.Description,
		Notes:           in.Notes,
		NextStepDays:    in.NextStepDays,
		Touches:         in.Touches,
		AgeInStage:      in.AgeInStage,
		HealthScore:     health,
		Owner:           in.Owner,
		CreatedAt:       time.Now().UTC(),
	}
	if _, _, err := s.client.From("deals").
		Insert(dealToRow(d), false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create deal: %w", err)
	}
	return &d, nil
}

func (s *Store) UpdateDeal(ctx context.Context, id string, in crm.DealUpdate) (*crm.Deal, error) {
	d, err := s.Deal(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Apply(in)
	if _, _, err := s.client.From("deals").
		Update(dealToRow(*d), "", "").
		Eq("id", id).
		Execute(); err != nil {
		return nil, fmt.Errorf("update deal %s: %w", id, err)
	}
	return d, nil
}

func (s *Store) DeleteDeal(ctx context.Context, id string) error {
	var deleted []dealRow
	_, err := s.client.From("deals").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete deal %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateDealNotes(ctx context.Context, id, notes string) (*crm.Deal, error) {
	return s.UpdateDeal(ctx, id, crm.DealUpdate{Notes: &notes})
}
