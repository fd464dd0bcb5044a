package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

const contactColumns = `id, name, role, email, phone, entity_id, entity_type`

func (s *Store) Contacts(ctx context.Context) ([]crm.Contact, error) {
	rows, err := s.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []crm.Contact{}
	for rows.Next() {
		var c crm.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.Email, &c.Phone, &c.EntityID, &c.EntityType); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *Store) ContactsByEntity(ctx context.Context, entityID, entityType string) ([]crm.Contact, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+contactColumns+` FROM contacts
		WHERE entity_id = $1 AND entity_type = $2
		ORDER BY created_at`, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("list contacts by entity: %w", err)
	}
	defer rows.Close()

	contacts := []crm.Contact{}
	for rows.Next() {
		var c crm.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.Email, &c.Phone, &c.EntityID, &c.EntityType); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
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
	_, err := s.db.Exec(ctx, `
		INSERT INTO contacts (id, name, role, email, phone, entity_id, entity_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		c.ID, c.Name, c.Role, c.Email, c.Phone, c.EntityID, c.EntityType,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &c, nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
