package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) Documents(ctx context.Context) ([]crm.Document, error) {
	var rows []documentRow
	_, err := s.client.From("documents").
		Select("*", "", false).
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs := make([]crm.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.toModel())
	}
	return docs, nil
}

func (s *Store) DocumentsByEntity(ctx context.Context, entityID string) ([]crm.Document, error) {
	filter, ok := entityFilter(entityID)
	if !ok {
		return []crm.Document{}, nil
	}
	var rows []documentRow
	_, err := s.client.From("documents").
		Select("*", "", false).
		Or(filter, "").
		Order("created_at", asc()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list documents for %s: %w", entityID, err)
	}
	docs := make([]crm.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.toModel())
	}
	return docs, nil
}

func (s *Store) CreateDocument(ctx context.Context, in crm.DocumentCreate) (*crm.Document, error) {
	status := in.Status
	if status == "" {
		status = "draft"
	}
	d := crm.Document{
		ID:            uuid.NewString(),
		DealID:        in.DealID,
		BuyingPartyID: in.BuyingPartyID,
		Name:          in.Name,
		Status:        status,
		URL:           in.URL,
		DocType:       in.DocType,
		CreatedAt:     time.Now().UTC(),
	}
	row := documentRow{
		ID: d.ID, DealID: d.DealID, BuyingPartyID: d.BuyingPartyID,
		Name: d.Name, Status: d.Status, URL: d.URL, DocType: d.DocType,
		CreatedAt: d.CreatedAt,
	}
	if _, _, err := s.client.From("documents").
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &d, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	var deleted []documentRow
	_, err := s.client.From("documents").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if len(deleted) == 0 {
		return storage.ErrNotFound
	}
	return nil
}
