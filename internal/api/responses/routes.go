package responses

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/catalog"
)

// RegisterRoutes adds the response viewing endpoints to the given mux. The
// caller is expected to require a signed-in user.
func RegisterRoutes(mux *http.ServeMux, forms *catalog.Service) {
	h := &Handler{forms: forms}

	mux.HandleFunc("GET /api/forms/{formId}/responses", h.List)
	mux.HandleFunc("GET /api/forms/{formId}/responses/table", h.Table)
	mux.HandleFunc("GET /api/forms/{formId}/responses/export", h.Export)
}
