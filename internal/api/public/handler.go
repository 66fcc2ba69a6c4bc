package public

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/recorder"
)

const notFound = "Form not found or not published"

// Handler serves published forms to respondents.
type Handler struct {
	forms    *catalog.Service
	recorder *recorder.Recorder
}

// Get handles GET /public/forms/{formId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.forms.Published(r.Context(), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	// Respondents do not see who owns the form.
	f.OwnerID = ""
	api.WriteJSON(w, http.StatusOK, f)
}

// Submit handles POST /public/forms/{formId}/responses. A signed-in
// respondent is recorded as the submitter.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ResponseData map[string]any `json:"responseData"`
	}
	if !api.DecodeJSON(w, r, &body) {
		return
	}

	f, err := h.forms.Published(r.Context(), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}

	resp, err := h.recorder.Submit(r.Context(), f, body.ResponseData, api.UserID(r.Context()))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusCreated, resp)
}
