package forms

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/catalog"
)

// RegisterRoutes adds all form definition endpoints to the given mux. The
// caller is expected to require a signed-in user.
func RegisterRoutes(mux *http.ServeMux, forms *catalog.Service) {
	h := &Handler{forms: forms}

	mux.HandleFunc("GET /api/forms", h.List)
	mux.HandleFunc("POST /api/forms", h.Create)
	mux.HandleFunc("GET /api/forms/{formId}", h.Get)
	mux.HandleFunc("PUT /api/forms/{formId}", h.Save)
	mux.HandleFunc("DELETE /api/forms/{formId}", h.Delete)
	mux.HandleFunc("POST /api/forms/{formId}/duplicate", h.Duplicate)
	mux.HandleFunc("GET /api/forms/{formId}/schema", h.Schema)

	mux.HandleFunc("POST /api/forms/{formId}/fields", h.AddField)
	mux.HandleFunc("PATCH /api/forms/{formId}/fields/{fieldId}", h.UpdateField)
	mux.HandleFunc("DELETE /api/forms/{formId}/fields/{fieldId}", h.RemoveField)
	mux.HandleFunc("POST /api/forms/{formId}/fields/{fieldId}/move", h.MoveField)
}
