package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

const documentColumns = `id, deal_id, buying_party_id, name, status, url, doc_type, created_at`

func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]crm.Document, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []crm.Document{}
	for rows.Next() {
		var d crm.Document
		if err := rows.Scan(&d.ID, &d.DealID, &d.BuyingPartyID, &d.Name, &d.Status,
			&d.URL, &d.DocType, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) Documents(ctx context.Context) ([]crm.Document, error) {
	return s.queryDocuments(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at`)
}

func (s *Store) DocumentsByEntity(ctx context.Context, entityID string) ([]crm.Document, error) {
	return s.queryDocuments(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE deal_id = $1 OR buying_party_id = $1
		ORDER BY created_at`, entityID)
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
	_, err := s.db.Exec(ctx, `
		INSERT INTO documents (id, deal_id, buying_party_id, name, status, url, doc_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.DealID, d.BuyingPartyID, d.Name, d.Status, d.URL, d.DocType, d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &d, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// BuyersWithSignedNDA returns the buying parties holding a signed NDA
// agreement for the deal.
func (s *Store) BuyersWithSignedNDA(ctx context.Context, dealID string) ([]crm.BuyingParty, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT bp.id, bp.name, bp.target_acquisition_min, bp.target_acquisition_max,
			bp.budget_min, bp.budget_max, bp.timeline, bp.status, bp.notes, bp.created_at
		FROM buying_parties bp
		JOIN agreements ag ON ag.buying_party_id = bp.id
		WHERE ag.deal_id = $1 AND LOWER(ag.type) = 'nda' AND LOWER(ag.status) = 'signed'
		ORDER BY bp.created_at`, dealID)
	if err != nil {
		return nil, fmt.Errorf("buyers with signed nda: %w", err)
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
