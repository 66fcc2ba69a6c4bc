// Package account handles sign-up, sign-in and session resolution.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/store"
)

// MinPasswordLength is the shortest password accepted on sign-up.
const MinPasswordLength = 8

// Service issues and checks sessions for stored users.
type Service struct {
	users    store.UserStore
	sessions store.SessionStore
	ttl      time.Duration
}

// New returns a Service whose sessions live for ttl.
func New(users store.UserStore, sessions store.SessionStore, ttl time.Duration) *Service {
	return &Service{users: users, sessions: sessions, ttl: ttl}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Credentials are the sign-up and sign-in inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail returns the bare, lower-cased address of raw. Display
// names are dropped, so "Ann <Ann@Example.com>" becomes "ann@example.com".
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse e-mail address: %w", err)
	}
	return strings.ToLower(addr.Address), nil
}

// validate checks c and returns the normalized e-mail address.
func (c Credentials) validate() (string, error) {
	verr := &domain.ValidationError{}
	email, err := NormalizeEmail(c.Email)
	if err != nil {
		verr.Add("email", "must be a valid e-mail address")
	}
	if len(c.Password) < MinPasswordLength {
		verr.Add("password", "must be at least %d characters", MinPasswordLength)
	}
	return email, verr.OrNil()
}

// SignUp creates a user and opens a session for it. A taken e-mail address
// yields ErrConflict.
func (s *Service) SignUp(ctx context.Context, c Credentials) (*domain.User, *domain.Session, error) {
	email, err := c.validate()
	if err != nil {
		return nil, nil, err
	}
	hash, err := HashPassword(c.Password)
	if err != nil {
		return nil, nil, err
	}
	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, nil, domain.Gateway("create user", err)
	}
	sess, err := s.open(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("user signed up", "user_id", u.ID)
	return u, sess, nil
}

// SignIn checks credentials and opens a session. Unknown addresses and wrong
// passwords both yield ErrUnauthorized.
func (s *Service) SignIn(ctx context.Context, c Credentials) (*domain.User, *domain.Session, error) {
	email, err := NormalizeEmail(c.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	u, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, nil, domain.Gateway("get user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(c.Password)); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	sess, err := s.open(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

func (s *Service) open(ctx context.Context, u *domain.User) (*domain.Session, error) {
	sess, err := s.sessions.Create(ctx, u.ID, s.ttl)
	if err != nil {
		return nil, domain.Gateway("create session", err)
	}
	return sess, nil
}

// Resolve returns the user behind token. Missing and expired sessions yield
// ErrUnauthorized.
func (s *Service) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("no session: %w", domain.ErrUnauthorized)
	}
	u, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("session expired or unknown: %w", domain.ErrUnauthorized)
		}
		return nil, domain.Gateway("resolve session", err)
	}
	return u, nil
}

// SignOut ends the session token. Ending an unknown session is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return domain.Gateway("delete session", err)
	}
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, domain.Gateway("delete expired sessions", err)
	}
	if n > 0 {
		slog.Info("expired sessions removed", "count", n)
	}
	return n, nil
}
