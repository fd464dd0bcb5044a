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

const activityColumns = `id, deal_id, buying_party_id, parent_activity_id, type, title,
	description, status, assigned_to, due_date, completed_at, created_at`

func scanActivity(row pgx.Row) (*crm.Activity, error) {
	var a crm.Activity
	err := row.Scan(
		&a.ID, &a.DealID, &a.BuyingPartyID, &a.ParentActivityID, &a.Type, &a.Title,
		&a.Description, &a.Status, &a.AssignedTo, &a.DueDate, &a.CompletedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Activities returns the full snapshot ordered by creation time, the order
// the hierarchy engine preserves among siblings.
func (s *Store) Activities(ctx context.Context) ([]crm.Activity, error) {
	rows, err := s.db.Query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []crm.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *Store) ActivitiesByEntity(ctx context.Context, entityID string) ([]crm.Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+activityColumns+` FROM activities
		WHERE deal_id = $1 OR buying_party_id = $1
		ORDER BY created_at`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list activities by entity: %w", err)
	}
	defer rows.Close()

	activities := []crm.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *Store) CreateActivity(ctx context.Context, in crm.ActivityCreate) (*crm.Activity, error) {
	status := in.Status
	if status == "" {
		status = "pending"
	}
	a := crm.Activity{
		ID:               uuid.NewString(),
		DealID:           in.DealID,
		BuyingPartyID:    in.BuyingPartyID,
		ParentActivityID: in.ParentActivityID,
		Type:             in.Type,
		Title:            in.Title,
		Description:      in.Description,
		Status:           status,
		AssignedTo:       in.AssignedTo,
		DueDate:          in.DueDate,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO activities (id, deal_id, buying_party_id, parent_activity_id, type, title,
			description, status, assigned_to, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.DealID, a.BuyingPartyID, a.ParentActivityID, a.Type, a.Title,
		a.Description, a.Status, a.AssignedTo, a.DueDate, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &a, nil
}

func (s *Store) UpdateActivity(ctx context.Context, id string, in crm.ActivityUpdate) (*crm.Activity, error) {
	a, err := scanActivity(s.db.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	a.Apply(in)

	_, err = s.db.Exec(ctx, `
		UPDATE activities SET type = $2, title = $3, description = $4, status = $5,
			assigned_to = $6, parent_activity_id = $7, due_date = $8, completed_at = $9
		WHERE id = $1`,
		id, a.Type, a.Title, a.Description, a.Status, a.AssignedTo,
		a.ParentActivityID, a.DueDate, a.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update activity %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
