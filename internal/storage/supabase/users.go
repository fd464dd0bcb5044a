package supabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

func (s *Store) userBy(column, value string) (*crm.User, error) {
	var rows []userRow
	_, err := s.client.From("users").
		Select("*", "", false).
		Eq(column, value).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	u := rows[0].toModel()
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*crm.User, error) {
	// The users table has a unique index on email, but checking first gives a
	// clean sentinel instead of parsing a PostgREST error body.
	if _, err := s.userBy("email", email); err == nil {
		return nil, storage.ErrDuplicateEmail
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	u := crm.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	row := userRow{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
	if _, _, err := s.client.From("users").
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*crm.User, error) {
	return s.userBy("email", email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*crm.User, error) {
	return s.userBy("id", id)
}

func (s *Store) UserByResetToken(ctx context.Context, token string) (*crm.User, error) {
	return s.userBy("reset_token", token)
}

func (s *Store) SetResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	patch := map[string]any{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	}
	var updated []userRow
	_, err := s.client.From("users").
		Update(patch, "representation", "").
		Eq("id", userID).
		ExecuteTo(&updated)
	if err != nil {
		return fmt.Errorf("set reset token for %s: %w", userID, err)
	}
	if len(updated) == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	patch := map[string]any{
		"password_hash":          passwordHash,
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	}
	var updated []userRow
	_, err := s.client.From("users").
		Update(patch, "representation", "").
		Eq("id", userID).
		ExecuteTo(&updated)
	if err != nil {
		return fmt.Errorf("update password for %s: %w", userID, err)
	}
	if len(updated) == 0 {
		return storage.ErrNotFound
	}
	return nil
}
