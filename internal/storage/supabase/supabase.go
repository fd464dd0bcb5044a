// Package supabase is the remote HTTP backend, speaking PostgREST through the
// Supabase client. Row structs mirror the snake_case column names the service
// returns; converting them to the camelCase crm structs is the API/database
// field-name translation the storage layer owns.
package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// Store talks to a Supabase project with the service-role key.
type Store struct {
	client *supa.Client
	logger *zap.Logger
}

// New creates a Store and verifies the project is reachable.
func New(url, serviceRoleKey string, logger *zap.Logger) (*Store, error) {
	client, err := supa.NewClient(url, serviceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase client: %w", err)
	}
	s := &Store{client: client, logger: logger}
	// A cheap probe so a bad URL or key fails at startup, not mid-request.
	if _, _, err := client.From("deals").Select("id", "", false).Limit(1, "").Execute(); err != nil {
		return nil, fmt.Errorf("supabase probe: %w", err)
	}
	logger.Info("Supabase connected")
	return s, nil
}

// asc builds the order options shared by every list query, so the three
// backends return snapshots in the same creation order.
func asc() *postgrest.OrderOpts { return &postgrest.OrderOpts{Ascending: true} }

// entityFilter builds the either-column PostgREST disjunction for an entity
// id. The id goes into the filter string verbatim, so only UUIDs are
// accepted; anything else cannot match a row and reports ok=false.
func entityFilter(entityID string) (string, bool) {
	if _, err := uuid.Parse(entityID); err != nil {
		return "", false
	}
	return fmt.Sprintf("deal_id.eq.%s,buying_party_id.eq.%s", entityID, entityID), true
}
