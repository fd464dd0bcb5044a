package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

const partyColumns = `id, name, target_acquisition_min, target_acquisition_max,
	budget_min, budget_max, timeline, status, notes, created_at`

func scanParty(row pgx.Row) (*crm.BuyingParty, error) {
	var p crm.BuyingParty
	err := row.Scan(
		&p.ID, &p.Name, &p.TargetAcquisitionMin, &p.TargetAcquisitionMax,
		&p.BudgetMin, &p.BudgetMax, &p.Timeline, &p.Status, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) BuyingParties(ctx context.Context) ([]crm.BuyingParty, error) {
	rows, err := s.db.Query(ctx, `SELECT `+partyColumns+` FROM buying_parties ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list buying parties: %w", err)
	}
	defer rows.Close()

	parties := []crm.BuyingParty{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan buying party: %w", err)
		}
		parties = append(parties, *p)
	}
	return parties, rows.Err()
}

func (s *Store) BuyingParty(ctx context.Context, id string) (*crm.BuyingParty, error) {
	p, err := scanParty(s.db.QueryRow(ctx, `SELECT `+partyColumns+` FROM buying_parties WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get buying party %s: %w", id, err)
	}
	return p, nil
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
	_, err := s.db.Exec(ctx, `
		INSERT INTO buying_parties (id, name, target_acquisition_min, target_acquisition_max,
			budget_min, budget_max, timeline, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.TargetAcquisitionMin, p.TargetAcquisitionMax,
		p.BudgetMin, p.BudgetMax, p.Timeline, p.Status, p.Notes, p.CreatedAt,
	)
	if err != nil {
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

	_, err = s.db.Exec(ctx, `
		UPDATE buying_parties SET name = $2, target_acquisition_min = $3,
			target_acquisition_max = $4, budget_min = $5, budget_max = $6,
			timeline = $7, status = $8, notes = $9
		WHERE id = $1`,
		id, p.Name, p.TargetAcquisitionMin, p.TargetAcquisitionMax,
		p.BudgetMin, p.BudgetMax, p.Timeline, p.Status, p.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("update buying party %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) DeleteBuyingParty(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM buying_parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete buying party %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateBuyingPartyNotes(ctx context.Context, id, notes string) (*crm.BuyingParty, error) {
	tag, err := s.db.Exec(ctx, `UPDATE buying_parties SET notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return nil, fmt.Errorf("update buying party notes %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return s.BuyingParty(ctx, id)
}
