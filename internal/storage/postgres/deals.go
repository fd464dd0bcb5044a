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

const dealColumns = `id, company_name, revenue, sde, valuation_min, valuation_max,
	sde_multiple, revenue_multiple, commission, stage, priority, description,
	notes, next_step_days, touches, age_in_stage, health_score, owner, created_at`

func scanDeal(row pgx.Row) (*crm.Deal, error) {
	var d crm.Deal
	err := row.Scan(
		&d.ID, &d.CompanyName, &d.Revenue, &d.SDE, &d.ValuationMin, &d.ValuationMax,
		&d.SDEMultiple, &d.RevenueMultiple, &d.Commission, &d.Stage, &d.Priority,
		&d.Description, &d.Notes, &d.NextStepDays, &d.Touches, &d.AgeInStage,
		&d.HealthScore, &d.Owner, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) Deals(ctx context.Context) ([]crm.Deal, error) {
	rows, err := s.db.Query(ctx, `SELECT `+dealColumns+` FROM deals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	deals := []crm.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, *d)
	}
	return deals, rows.Err()
}

func (s *Store) Deal(ctx context.Context, id string) (*crm.Deal, error) {
	d, err := scanDeal(s.db.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get deal %s: %w", id, err)
	}
	return d, nil
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
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO deals (id, company_name, revenue, sde, valuation_min, valuation_max,
			sde_multiple, revenue_multiple, commission, stage, priority, description,
			notes, next_step_days, touches, age_in_stage, health_score, owner, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		id, in.CompanyName, in.Revenue, in.SDE, in.ValuationMin, in.ValuationMax,
		in.SDEMultiple, in.RevenueMultiple, in.Commission, in.Stage, priority,
		in.Description, in.Notes, in.NextStepDays, in.Touches, in.AgeInStage,
		health, in.Owner, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("create deal: %w", err)
	}
	return s.Deal(ctx, id)
}

func (s *Store) UpdateDeal(ctx context.Context, id string, in crm.DealUpdate) (*crm.Deal, error) {
	d, err := s.Deal(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Apply(in)

	_, err = s.db.Exec(ctx, `
		UPDATE deals SET company_name = $2, revenue = $3, sde = $4, valuation_min = $5,
			valuation_max = $6, sde_multiple = $7, revenue_multiple = $8, commission = $9,
			stage = $10, priority = $11, description = $12, notes = $13, next_step_days = $14,
			touches = $15, age_in_stage = $16, health_score = $17, owner = $18
		WHERE id = $1`,
		id, d.CompanyName, d.Revenue, d.SDE, d.ValuationMin, d.ValuationMax,
		d.SDEMultiple, d.RevenueMultiple, d.Commission, d.Stage, d.Priority,
		d.Description, d.Notes, d.NextStepDays, d.Touches, d.AgeInStage,
		d.HealthScore, d.Owner,
	)
	if err != nil {
		return nil, fmt.Errorf("update deal %s: %w", id, err)
	}
	return d, nil
}

func (s *Store) DeleteDeal(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateDealNotes(ctx context.Context, id, notes string) (*crm.Deal, error) {
	tag, err := s.db.Exec(ctx, `UPDATE deals SET notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return nil, fmt.Errorf("update deal notes %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return s.Deal(ctx, id)
}
