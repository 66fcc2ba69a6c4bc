package forms

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/editor"
	"github.com/johnwards/formbuilder/internal/schema"
)

const notFound = "Form not found"

// Handler handles form definition HTTP requests.
type Handler struct {
	forms *catalog.Service
}

// List handles GET /api/forms.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.forms.List(r.Context(), api.UserID(r.Context()))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse[domain.Form]{Results: forms})
}

// Create handles POST /api/forms. An empty body creates the default form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body := domain.NewForm("")
	present, ok := api.DecodeOptionalJSON(w, r, body)
	if !ok {
		return
	}
	if !present {
		body = nil
	}

	f, err := h.forms.Create(r.Context(), api.UserID(r.Context()), body)
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusCreated, f)
}

// Get handles GET /api/forms/{formId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.forms.Get(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, f)
}

// Save handles PUT /api/forms/{formId}, replacing the whole definition.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var body domain.Form
	if !api.DecodeJSON(w, r, &body) {
		return
	}

	f, err := h.forms.Save(r.Context(), api.UserID(r.Context()), r.PathValue("formId"), &body)
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, f)
}

// Delete handles DELETE /api/forms/{formId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.forms.Delete(r.Context(), api.UserID(r.Context()), r.PathValue("formId")); err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate handles POST /api/forms/{formId}/duplicate.
func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	f, err := h.forms.Duplicate(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusCreated, f)
}

// Schema handles GET /api/forms/{formId}/schema.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	f, err := h.forms.Get(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, schema.ResponseSchema(f))
}

// AddField handles POST /api/forms/{formId}/fields.
func (h *Handler) AddField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type domain.FieldKind `json:"type"`
	}
	if !api.DecodeJSON(w, r, &body) {
		return
	}

	var added domain.FormField
	_, err := h.forms.EditFields(r.Context(), api.UserID(r.Context()), r.PathValue("formId"),
		func(ed *editor.Editor) error {
			var err error
			added, err = ed.Add(body.Type)
			return err
		})
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusCreated, added)
}

// UpdateField handles PATCH /api/forms/{formId}/fields/{fieldId}.
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var patch editor.FieldPatch
	if !api.DecodeJSON(w, r, &patch) {
		return
	}

	var updated domain.FormField
	_, err := h.forms.EditFields(r.Context(), api.UserID(r.Context()), r.PathValue("formId"),
		func(ed *editor.Editor) error {
			var err error
			updated, err = ed.Update(r.PathValue("fieldId"), patch)
			return err
		})
	if err != nil {
		api.WriteDomainError(w, r, err, "Form or field not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

// RemoveField handles DELETE /api/forms/{formId}/fields/{fieldId}.
func (h *Handler) RemoveField(w http.ResponseWriter, r *http.Request) {
	_, err := h.forms.EditFields(r.Context(), api.UserID(r.Context()), r.PathValue("formId"),
		func(ed *editor.Editor) error {
			return ed.Remove(r.PathValue("fieldId"))
		})
	if err != nil {
		api.WriteDomainError(w, r, err, "Form or field not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveField handles POST /api/forms/{formId}/fields/{fieldId}/move. The body
// names either the target position or the field to drop onto.
func (h *Handler) MoveField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position *int   `json:"position"`
		OverID   string `json:"overId"`
	}
	if !api.DecodeJSON(w, r, &body) {
		return
	}
	if (body.Position == nil) == (body.OverID == "") {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Exactly one of position or overId is required", api.CorrelationID(r.Context()), nil))
		return
	}

	fieldID := r.PathValue("fieldId")
	f, err := h.forms.EditFields(r.Context(), api.UserID(r.Context()), r.PathValue("formId"),
		func(ed *editor.Editor) error {
			if body.Position != nil {
				return ed.Reorder(fieldID, *body.Position)
			}
			return ed.MoveOnto(fieldID, body.OverID)
		})
	if err != nil {
		api.WriteDomainError(w, r, err, "Form or field not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, f)
}
