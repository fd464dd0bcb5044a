package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) Activities(ctx context.Context) ([]crm.Activity, error) {
	var rows []activityRow
	_, err := s.client.From("activities").
		Select("*", "", false).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	activities := make([]crm.Activity, 0, len(rows))
	for _, r := range rows {
		activities = append(activities, r.toModel())
	}
	return activities, nil
}

func (s *Store) ActivitiesByEntity(ctx context.Context, entityID string) ([]crm.Activity, error) {
	filter, ok := entityFilter(entityID)
	if !ok {
		return []crm.Activity{}, nil
	}
	var rows []activityRow
	_, err := s.client.From("activities").
		Select("*", "", false).
		Or(filter, "").
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list activities for %s: %w", entityID, err)
	}
	activities := make([]crm.Activity, 0, len(rows))
	for _, r := range rows {
		activities = append(activities, r.toModel())
	}
	return activities, nil
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
	if _, _, err := s.client.From("activities").
		Insert(activityToRow(a), false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &a, nil
}

func (s *Store) UpdateActivity(ctx context.Context, id string, in crm.ActivityUpdate) (*crm.Activity, error) {
	var rows []activityRow
	_, err := s.client.From("activities").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	a := rows[0].toModel()
	a.Apply(in)
	if _, _, err := s.client.From("activities").
		Update(activityToRow(a), "", "").
		Eq("id", id).
		Execute(); err != nil {
		return nil, fmt.Errorf("update activity %s: %w", id, err)
	}
	return &a, nil
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	var deleted []activityRow
	_, err := s.client.From("activities").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete activity %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}
