// Package catalog is the owner-scoped service over stored form definitions:
// listing, creating, saving, duplicating and deleting forms, and applying
// editor operations to a stored form.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/editor"
	"github.com/johnwards/formbuilder/internal/store"
)

// Service implements the catalog operations for one persistence gateway.
type Service struct {
	forms     store.FormStore
	responses store.ResponseStore
	timeout   time.Duration
}

// New returns a Service. A positive timeout bounds every gateway call.
func New(forms store.FormStore, responses store.ResponseStore, timeout time.Duration) *Service {
	return &Service{forms: forms, responses: responses, timeout: timeout}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns the forms of owner, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Form, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	forms, err := s.forms.List(ctx, owner)
	if err != nil {
		return nil, domain.Gateway("list forms", err)
	}
	return forms, nil
}

// Get returns form id when it belongs to owner. Forms of other owners are
// reported as not found.
func (s *Service) Get(ctx context.Context, owner, id string) (*domain.Form, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.get(ctx, owner, id)
}

func (s *Service) get(ctx context.Context, owner, id string) (*domain.Form, error) {
	f, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, domain.Gateway("get form", err)
	}
	if f.OwnerID != owner {
		return nil, fmt.Errorf("form %q: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

// Create stores a new form for owner. A nil form creates the default
// untitled form.
func (s *Service) Create(ctx context.Context, owner string, form *domain.Form) (*domain.Form, error) {
	if form == nil {
		form = domain.NewForm(owner)
	} else {
		form = form.Clone()
	}
	form.OwnerID = owner
	if err := editor.Normalize(form); err != nil {
		return nil, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	created, err := s.forms.Create(ctx, form)
	if err != nil {
		return nil, domain.Gateway("create form", err)
	}
	slog.Info("form created", "form_id", created.ID, "owner_id", owner, "fields", len(created.Fields))
	return created, nil
}

// Save replaces the definition of form id with form. The last writer wins.
func (s *Service) Save(ctx context.Context, owner, id string, form *domain.Form) (*domain.Form, error) {
	form = form.Clone()
	if err := editor.Normalize(form); err != nil {
		return nil, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if _, err := s.get(ctx, owner, id); err != nil {
		return nil, err
	}
	return s.update(ctx, id, form)
}

func (s *Service) update(ctx context.Context, id string, form *domain.Form) (*domain.Form, error) {
	saved, err := s.forms.Update(ctx, id, form)
	if err != nil {
		return nil, domain.Gateway("update form", err)
	}
	slog.Info("form saved", "form_id", id, "fields", len(saved.Fields), "published", saved.IsPublished)
	return saved, nil
}

// EditFields loads form id, applies fn to an editor over it and saves the
// result. Nothing is written when fn or normalization fails.
func (s *Service) EditFields(ctx context.Context, owner, id string, fn func(*editor.Editor) error) (*domain.Form, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	form, err := s.get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := fn(editor.New(form)); err != nil {
		return nil, err
	}
	if err := editor.Normalize(form); err != nil {
		return nil, err
	}
	return s.update(ctx, id, form)
}

// Delete removes form id with its fields and responses.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if _, err := s.get(ctx, owner, id); err != nil {
		return err
	}
	if err := s.forms.Delete(ctx, id); err != nil {
		return domain.Gateway("delete form", err)
	}
	slog.Info("form deleted", "form_id", id, "owner_id", owner)
	return nil
}

// Duplicate stores an unpublished copy of form id and returns it.
func (s *Service) Duplicate(ctx context.Context, owner, id string) (*domain.Form, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	src, err := s.get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	cp := src.Duplicate()
	cp.OwnerID = owner

	created, err := s.forms.Create(ctx, cp)
	if err != nil {
		return nil, domain.Gateway("duplicate form", err)
	}
	slog.Info("form duplicated", "form_id", id, "copy_id", created.ID)
	return created, nil
}

// Published returns form id for filling in. Unpublished forms are reported
// as not found.
func (s *Service) Published(ctx context.Context, id string) (*domain.Form, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	f, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, domain.Gateway("get form", err)
	}
	if !f.IsPublished {
		return nil, fmt.Errorf("form %q is not published: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

// Responses returns form id with the responses collected for it, oldest
// first.
func (s *Service) Responses(ctx context.Context, owner, id string) (*domain.Form, []domain.FormResponse, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	f, err := s.get(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.responses.List(ctx, id)
	if err != nil {
		return nil, nil, domain.Gateway("list responses", err)
	}
	return f, list, nil
}
