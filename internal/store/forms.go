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

// FormStore defines persistence of form definitions and their ordered fields.
type FormStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Form, error)
	Get(ctx context.Context, id string) (*domain.Form, error)
	Create(ctx context.Context, f *domain.Form) (*domain.Form, error)
	Update(ctx context.Context, id string, f *domain.Form) (*domain.Form, error)
	Delete(ctx context.Context, id string) error
}

// SQLiteFormStore implements FormStore backed by SQLite.
type SQLiteFormStore struct {
	db *sql.DB
}

// NewSQLiteFormStore creates a new SQLiteFormStore.
func NewSQLiteFormStore(db *sql.DB) *SQLiteFormStore {
	return &SQLiteFormStore{db: db}
}

const formColumns = `id, owner_id, title, description, is_published, theme, created_at, updated_at`

// List returns the forms of ownerID, newest first. An empty ownerID lists
// every form.
func (s *SQLiteFormStore) List(ctx context.Context, ownerID string) ([]domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	forms := []domain.Form{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		forms = append(forms, *f)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	_ = rows.Close()

	// Load fields in a separate pass to avoid holding the rows cursor
	// (SQLite MaxOpenConns=1).
	for i := range forms {
		fields, err := loadFields(ctx, s.db, forms[i].ID)
		if err != nil {
			return nil, err
		}
		forms[i].Fields = fields
	}
	return forms, nil
}

// Get returns a single form with its fields in display order.
func (s *SQLiteFormStore) Get(ctx context.Context, id string) (*domain.Form, error) {
	f, err := scanForm(s.db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("form %q: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	fields, err := loadFields(ctx, s.db, f.ID)
	if err != nil {
		return nil, err
	}
	f.Fields = fields
	return f, nil
}

// Create inserts f with a fresh id and timestamps and returns the stored copy.
func (s *SQLiteFormStore) Create(ctx context.Context, f *domain.Form) (*domain.Form, error) {
	out := f.Clone()
	out.ID = uuid.NewString()
	ts := now()
	out.CreatedAt = ts
	out.UpdatedAt = ts
	if out.Fields == nil {
		out.Fields = []domain.FormField{}
	}

	theme, err := json.Marshal(out.Theme)
	if err != nil {
		return nil, fmt.Errorf("marshal theme: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create form: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO forms (id, owner_id, title, description, is_published, theme, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.OwnerID, out.Title, out.Description, out.IsPublished, string(theme), ts, ts,
	); err != nil {
		return nil, fmt.Errorf("insert form: %w", err)
	}

	if err := insertFields(ctx, tx, out.ID, out.Fields); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create form: %w", err)
	}
	return out, nil
}

// Update replaces the stored definition of form id with f (PUT semantics)
// and refreshes updatedAt. Owner and creation time are kept from the stored
// row. There is no version check: the last writer wins.
func (s *SQLiteFormStore) Update(ctx context.Context, id string, f *domain.Form) (*domain.Form, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update form: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := f.Clone()
	out.ID = id
	if out.Fields == nil {
		out.Fields = []domain.FormField{}
	}
	err = tx.QueryRowContext(ctx,
		`SELECT owner_id, created_at FROM forms WHERE id = ?`, id,
	).Scan(&out.OwnerID, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("form %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get form for update: %w", err)
	}
	out.UpdatedAt = now()

	theme, err := json.Marshal(out.Theme)
	if err != nil {
		return nil, fmt.Errorf("marshal theme: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE forms SET title = ?, description = ?, is_published = ?, theme = ?, updated_at = ? WHERE id = ?`,
		out.Title, out.Description, out.IsPublished, string(theme), out.UpdatedAt, id,
	); err != nil {
		return nil, fmt.Errorf("update form: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM form_fields WHERE form_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete fields for update: %w", err)
	}
	if err := insertFields(ctx, tx, id, out.Fields); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update form: %w", err)
	}
	return out, nil
}

// Delete removes a form together with its fields and collected responses.
func (s *SQLiteFormStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete form: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM form_responses WHERE form_id = ?`, id); err != nil {
		return fmt.Errorf("delete form responses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM form_fields WHERE form_id = ?`, id); err != nil {
		return fmt.Errorf("delete form fields: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("form %q: %w", id, domain.ErrNotFound)
	}

	return tx.Commit()
}

func scanForm(row rowScanner) (*domain.Form, error) {
	var f domain.Form
	var theme string
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Title, &f.Description, &f.IsPublished, &theme, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan form: %w", err)
	}
	if err := json.Unmarshal([]byte(theme), &f.Theme); err != nil {
		return nil, fmt.Errorf("unmarshal theme of form %s: %w", f.ID, err)
	}
	return &f, nil
}

// loadFields returns the fields of a form ordered by position.
func loadFields(ctx context.Context, db *sql.DB, formID string) ([]domain.FormField, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, kind, label, placeholder, required, options, validation
		 FROM form_fields WHERE form_id = ? ORDER BY position`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fields := []domain.FormField{}
	for rows.Next() {
		var f domain.FormField
		var kind string
		var options, validation sql.NullString
		if err := rows.Scan(&f.ID, &kind, &f.Label, &f.Placeholder, &f.Required, &options, &validation); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		f.Kind = domain.FieldKind(kind)
		if err := unmarshalNullable(options, &f.Options); err != nil {
			return nil, fmt.Errorf("field %s options: %w", f.ID, err)
		}
		if validation.Valid {
			f.Validation = &domain.Validation{}
			if err := unmarshalNullable(validation, f.Validation); err != nil {
				return nil, fmt.Errorf("field %s validation: %w", f.ID, err)
			}
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return fields, nil
}

// insertFields writes fields in order, recording each index as its position.
func insertFields(ctx context.Context, tx execer, formID string, fields []domain.FormField) error {
	for i := range fields {
		f := &fields[i]
		options, err := marshalNullable(f.Options, f.Options == nil)
		if err != nil {
			return fmt.Errorf("field %s options: %w", f.ID, err)
		}
		validation, err := marshalNullable(f.Validation, f.Validation == nil)
		if err != nil {
			return fmt.Errorf("field %s validation: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO form_fields (form_id, id, position, kind, label, placeholder, required, options, validation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			formID, f.ID, i, string(f.Kind), f.Label, f.Placeholder, f.Required, options, validation,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.Invalid(f.ID, "duplicate field id")
			}
			return fmt.Errorf("insert field %s: %w", f.ID, err)
		}
	}
	return nil
}
