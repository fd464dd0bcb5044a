// Package auth issues and verifies the API's bearer credentials: bcrypt
// password hashes, HS256 access tokens and one-shot password reset tokens.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/storage"
)

// ResetTokenTTL bounds how long a password reset token stays valid.
const ResetTokenTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidResetToken covers unknown and expired reset tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrInvalidToken is returned for unparsable or expired access tokens.
	ErrInvalidToken = errors.New("invalid access token")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail applies the same format rules the API has always enforced.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email must be non-empty")
	}
	if len(email) > 255 {
		return errors.New("email is too long (max 255 characters)")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	if strings.Count(email, "@") != 1 {
		return errors.New("email must contain exactly one @ symbol")
	}
	local := email[:strings.Index(email, "@")]
	if len(local) > 64 {
		return errors.New("email local part is invalid")
	}
	return nil
}

// Service authenticates users against a storage backend.
type Service struct {
	store    storage.Storage
	secret   []byte
	tokenTTL time.Duration
}

// NewService wires the auth flows to a backend. tokenTTL <= 0 defaults to 24h.
func NewService(store storage.Storage, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{store: store, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register validates the email, hashes the password and creates the user.
// storage.ErrDuplicateEmail passes through for the handler to map to 400.
func (s *Service) Register(ctx context.Context, email, password string) (*crm.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, email, string(hash))
}

// Login checks the credentials and returns the user plus a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*crm.User, string, error) {
	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.IssueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// IssueToken signs an HS256 access token with the user id as subject.
func (s *Service) IssueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses a bearer token and returns the user id it names.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// RequestPasswordReset stores a fresh reset token for the account. A miss on
// the email returns ("", nil) so callers can keep the response uniform and
// not reveal whether the address is registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().UTC().Add(ResetTokenTTL)
	if err := s.store.SetResetToken(ctx, u.ID, &token, &expires); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmPasswordReset rotates the password if the token is known and fresh,
// then clears the token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	u, err := s.store.UserByResetToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if u.ResetTokenExpiresAt != nil && time.Now().UTC().After(*u.ResetTokenExpiresAt) {
		return ErrInvalidResetToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateUserPassword(ctx, u.ID, string(hash))
}

// User loads the account behind a verified token subject.
func (s *Service) User(ctx context.Context, userID string) (*crm.User, error) {
	return s.store.UserByID(ctx, userID)
}
