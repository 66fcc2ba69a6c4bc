package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnwards/formbuilder/internal/domain"
)

// UserStore defines persistence of accounts.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns the user and its stored password hash.
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)
}

// SQLiteUserStore implements UserStore backed by SQLite.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// normalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user. A taken e-mail address yields ErrConflict.
func (s *SQLiteUserStore) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	email = normalizeEmail(email)
	ts := now()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		email, passwordHash, ts,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email %q already registered: %w", email, domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &domain.User{
		ID:        strconv.FormatInt(id, 10),
		Email:     email,
		CreatedAt: ts,
	}, nil
}

// Get retrieves a single user by id.
func (s *SQLiteUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	var dbID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&dbID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.ID = strconv.FormatInt(dbID, 10)
	return &u, nil
}

// GetByEmail retrieves a user and its password hash by e-mail address.
func (s *SQLiteUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	var u domain.User
	var dbID int64
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, normalizeEmail(email),
	).Scan(&dbID, &u.Email, &hash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}
	u.ID = strconv.FormatInt(dbID, 10)
	return &u, hash, nil
}
