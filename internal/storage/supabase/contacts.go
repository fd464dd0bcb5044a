package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) Contacts(ctx context.Context) ([]crm.Contact, error) {
	var rows []contactRow
	_, err := s.client.From("contacts").
		Select("*", "", false).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	contacts := make([]crm.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, r.toModel())
	}
	return contacts, nil
}

func (s *Store) ContactsByEntity(ctx context.Context, entityID, entityType string) ([]crm.Contact, error) {
	var rows []contactRow
	_, err := s.client.From("contacts").
		Select("*", "", false).
		Eq("entity_id", entityID).
		Eq("entity_type", entityType).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list contacts for %s %s: %w", entityType, entityID, err)
	}
	contacts := make([]crm.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, r.toModel())
	}
	return contacts, nil
}

func (s *Store) CreateContact(ctx context.Context, in crm.ContactCreate) (*crm.Contact, error) {
	c := crm.Contact{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Role:       in.Role,
		Email:      in.Email,
		Phone:      in.Phone,
		EntityID:   in.EntityID,
		EntityType: in.EntityType,
	}
	row := contactRow{
		ID: c.ID, Name: c.Name, Role: c.Role, Email: c.Email, Phone: c.Phone,
		EntityID: c.EntityID, EntityType: c.EntityType,
	}
	if _, _, err := s.client.From("contacts").
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &c, nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	var deleted []contactRow
	_, err := s.client.From("contacts").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}
