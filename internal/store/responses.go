package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnwards/formbuilder/internal/domain"
)

// ResponseStore defines append-only persistence of form responses.
type ResponseStore interface {
	Insert(ctx context.Context, r *domain.FormResponse) (*domain.FormResponse, error)
	Get(ctx context.Context, id string) (*domain.FormResponse, error)
	List(ctx context.Context, formID string) ([]domain.FormResponse, error)
}

// SQLiteResponseStore implements ResponseStore backed by SQLite.
type SQLiteResponseStore struct {
	db *sql.DB
}

// NewSQLiteResponseStore creates a new SQLiteResponseStore.
func NewSQLiteResponseStore(db *sql.DB) *SQLiteResponseStore {
	return &SQLiteResponseStore{db: db}
}

// Insert stores r under a fresh id and submission timestamp. Every call adds
// a new row; there is no deduplication of repeated submissions.
func (s *SQLiteResponseStore) Insert(ctx context.Context, r *domain.FormResponse) (*domain.FormResponse, error) {
	out := *r
	out.ID = uuid.NewString()
	out.CreatedAt = now()
	if out.ResponseData == nil {
		out.ResponseData = map[string]any{}
	}

	data, err := json.Marshal(out.ResponseData)
	if err != nil {
		return nil, fmt.Errorf("marshal response data: %w", err)
	}
	submitter := sql.NullString{String: out.SubmitterID, Valid: out.SubmitterID != ""}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO form_responses (id, form_id, response_data, submitter_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		out.ID, out.FormID, string(data), submitter, out.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert response: %w", err)
	}
	return &out, nil
}

// Get returns a single response.
func (s *SQLiteResponseStore) Get(ctx context.Context, id string) (*domain.FormResponse, error) {
	r, err := scanResponse(s.db.QueryRowContext(ctx,
		`SELECT id, form_id, response_data, submitter_id, created_at FROM form_responses WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("response %q: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

// List returns the responses of a form in submission order.
func (s *SQLiteResponseStore) List(ctx context.Context, formID string) ([]domain.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, form_id, response_data, submitter_id, created_at
		 FROM form_responses WHERE form_id = ? ORDER BY created_at, rowid`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	responses := []domain.FormResponse{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return responses, nil
}

func scanResponse(row rowScanner) (*domain.FormResponse, error) {
	var r domain.FormResponse
	var data string
	var submitter sql.NullString
	if err := row.Scan(&r.ID, &r.FormID, &data, &submitter, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan response: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &r.ResponseData); err != nil {
		return nil, fmt.Errorf("unmarshal response %s: %w", r.ID, err)
	}
	r.SubmitterID = submitter.String
	return &r, nil
}
