package public

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/recorder"
)

// RegisterRoutes adds the respondent endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, forms *catalog.Service, rec *recorder.Recorder) {
	h := &Handler{forms: forms, recorder: rec}

	mux.HandleFunc("GET /public/forms/{formId}", h.Get)
	mux.HandleFunc("POST /public/forms/{formId}/responses", h.Submit)
}
