package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/formbuilder/internal/domain"
)

// SessionStore defines persistence of sign-in sessions.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error)
	// Resolve returns the user owning a live session. Unknown and expired
	// tokens yield ErrNotFound.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SQLiteSessionStore implements SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// Create opens a session for userID valid for ttl.
func (s *SQLiteSessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	created := time.Now()
	sess := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: timestamp(created),
		ExpiresAt: timestamp(created.Add(ttl)),
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sess.Token, userID, sess.CreatedAt, sess.ExpiresAt,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Resolve looks up the user behind a session token.
func (s *SQLiteSessionStore) Resolve(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	var dbID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.created_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = ? AND s.expires_at > ?`,
		token, now(),
	).Scan(&dbID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	u.ID = strconv.FormatInt(dbID, 10)
	return &u, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (s *SQLiteSessionStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every expired session and reports how many went.
func (s *SQLiteSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
