// Package editor implements the in-memory field list operations used while a
// form is being built. An Editor owns exactly one form; it is not safe for
// concurrent use and expects a single mutator.
package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/johnwards/formbuilder/internal/domain"
)

// defaultOption is the single option given to new select and radio fields.
const defaultOption = "Option 1"

// Editor applies field list operations to a form.
type Editor struct {
	form  *domain.Form
	newID func() string
}

// New returns an Editor that mutates form in place.
func New(form *domain.Form) *Editor {
	return NewWithIDs(form, uuid.NewString)
}

// NewWithIDs is like New but draws field ids from newID.
func NewWithIDs(form *domain.Form, newID func() string) *Editor {
	if form.Fields == nil {
		form.Fields = []domain.FormField{}
	}
	return &Editor{form: form, newID: newID}
}

// Form returns the form being edited.
func (e *Editor) Form() *domain.Form { return e.form }

// Fields returns a copy of the current field sequence.
func (e *Editor) Fields() []domain.FormField {
	out := make([]domain.FormField, len(e.form.Fields))
	for i := range e.form.Fields {
		out[i] = e.form.Fields[i].Clone()
	}
	return out
}

// Add appends a new field of the given kind and returns it.
func (e *Editor) Add(kind domain.FieldKind) (domain.FormField, error) {
	if !kind.Valid() {
		return domain.FormField{}, domain.Invalid("type", "unknown field type %q", kind)
	}

	f := domain.FormField{
		ID:    e.newID(),
		Kind:  kind,
		Label: fmt.Sprintf("New %s field", kind),
	}
	if kind.HasOptions() {
		f.Options = []string{defaultOption}
	}

	e.form.Fields = append(e.form.Fields, f)
	return f.Clone(), nil
}

// Update merges patch into the field with the given id, keeping its
// position. The field is left untouched when the patch is rejected.
func (e *Editor) Update(id string, patch FieldPatch) (domain.FormField, error) {
	i := e.form.FieldIndex(id)
	if i < 0 {
		return domain.FormField{}, fieldNotFound(id)
	}

	next, err := patch.apply(e.form.Fields[i])
	if err != nil {
		return domain.FormField{}, err
	}
	e.form.Fields[i] = next
	return next.Clone(), nil
}

// Remove deletes the field with the given id.
func (e *Editor) Remove(id string) error {
	i := e.form.FieldIndex(id)
	if i < 0 {
		return fieldNotFound(id)
	}
	e.form.Fields = append(e.form.Fields[:i], e.form.Fields[i+1:]...)
	return nil
}

// Reorder moves the field with the given id to position to, shifting the
// fields in between by one. Moving a field onto its own position is a no-op.
func (e *Editor) Reorder(id string, to int) error {
	from := e.form.FieldIndex(id)
	if from < 0 {
		return fieldNotFound(id)
	}
	if to < 0 || to >= len(e.form.Fields) {
		return domain.Invalid("position", "position %d out of range [0, %d)", to, len(e.form.Fields))
	}
	move(e.form.Fields, from, to)
	return nil
}

// MoveOnto moves the active field to the current position of the field it
// was dropped on.
func (e *Editor) MoveOnto(activeID, overID string) error {
	if activeID == overID {
		if e.form.FieldIndex(activeID) < 0 {
			return fieldNotFound(activeID)
		}
		return nil
	}
	to := e.form.FieldIndex(overID)
	if to < 0 {
		return fieldNotFound(overID)
	}
	return e.Reorder(activeID, to)
}

// SetTitle replaces the form title.
func (e *Editor) SetTitle(title string) { e.form.Title = title }

// SetDescription replaces the form description.
func (e *Editor) SetDescription(description string) { e.form.Description = description }

// SetTheme replaces the form theme; blank attributes fall back to defaults.
func (e *Editor) SetTheme(theme domain.FormTheme) { e.form.Theme = theme.WithDefaults() }

// SetPublished toggles whether the form accepts responses.
func (e *Editor) SetPublished(published bool) { e.form.IsPublished = published }

// move relocates s[from] to index to in place.
func move(s []domain.FormField, from, to int) {
	if from == to {
		return
	}
	f := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = f
}

func fieldNotFound(id string) error {
	return fmt.Errorf("field %q: %w", id, domain.ErrNotFound)
}
