// Package storage defines the flat-record persistence contract the API layer
// talks to, and provides the in-memory implementation used for development
// and tests. PostgreSQL and Supabase implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/dealdash/dealdash/internal/crm"
)

// ErrNotFound is returned by lookups and mutations targeting an id that does
// not exist in the backend.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Storage is implemented by every backend. All methods are safe for
// concurrent use and honor context cancellation where the backend supports it.
type Storage interface {
	// Deals
	Deals(ctx context.Context) ([]crm.Deal, error)
	Deal(ctx context.Context, id string) (*crm.Deal, error)
	CreateDeal(ctx context.Context, in crm.DealCreate) (*crm.Deal, error)
	UpdateDeal(ctx context.Context, id string, in crm.DealUpdate) (*crm.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
	UpdateDealNotes(ctx context.Context, id, notes string) (*crm.Deal, error)

	// Contacts
	Contacts(ctx context.Context) ([]crm.Contact, error)
	ContactsByEntity(ctx context.Context, entityID, entityType string) ([]crm.Contact, error)
	CreateContact(ctx context.Context, in crm.ContactCreate) (*crm.Contact, error)
	DeleteContact(ctx context.Context, id string) error

	// Buying parties
	BuyingParties(ctx context.Context) ([]crm.BuyingParty, error)
	BuyingParty(ctx context.Context, id string) (*crm.BuyingParty, error)
	CreateBuyingParty(ctx context.Context, in crm.BuyingPartyCreate) (*crm.BuyingParty, error)
	UpdateBuyingParty(ctx context.Context, id string, in crm.BuyingPartyUpdate) (*crm.BuyingParty, error)
	DeleteBuyingParty(ctx context.Context, id string) error
	UpdateBuyingPartyNotes(ctx context.Context, id, notes string) (*crm.BuyingParty, error)

	// Deal-buyer matches
	DealBuyerMatches(ctx context.Context, dealID string) ([]crm.DealBuyerMatch, error)
	BuyingPartyMatches(ctx context.Context, partyID string) ([]crm.DealBuyerMatch, error)
	CreateDealBuyerMatch(ctx context.Context, in crm.MatchCreate) (*crm.DealBuyerMatch, error)
	DeleteDealBuyerMatch(ctx context.Context, id string) error

	// Activities
	Activities(ctx context.Context) ([]crm.Activity, error)
	ActivitiesByEntity(ctx context.Context, entityID string) ([]crm.Activity, error)
	CreateActivity(ctx context.Context, in crm.ActivityCreate) (*crm.Activity, error)
	UpdateActivity(ctx context.Context, id string, in crm.ActivityUpdate) (*crm.Activity, error)
	DeleteActivity(ctx context.Context, id string) error

	// Documents
	Documents(ctx context.Context) ([]crm.Document, error)
	DocumentsByEntity(ctx context.Context, entityID string) ([]crm.Document, error)
	CreateDocument(ctx context.Context, in crm.DocumentCreate) (*crm.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	// Agreements
	BuyersWithSignedNDA(ctx context.Context, dealID string) ([]crm.BuyingParty, error)

	// Users
	CreateUser(ctx context.Context, email, passwordHash string) (*crm.User, error)
	UserByEmail(ctx context.Context, email string) (*crm.User, error)
	UserByID(ctx context.Context, id string) (*crm.User, error)
	UserByResetToken(ctx context.Context, token string) (*crm.User, error)
	SetResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
}
