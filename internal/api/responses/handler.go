package responses

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/recorder"
)

const notFound = "Form not found"

// Handler serves the responses collected for a form to its owner.
type Handler struct {
	forms *catalog.Service
}

// List handles GET /api/forms/{formId}/responses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.forms.Responses(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse[domain.FormResponse]{Results: list})
}

// Table handles GET /api/forms/{formId}/responses/table.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	f, list, err := h.forms.Responses(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, recorder.Tabulate(f, list))
}

// Export handles GET /api/forms/{formId}/responses/export as a CSV download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	f, list, err := h.forms.Responses(r.Context(), api.UserID(r.Context()), r.PathValue("formId"))
	if err != nil {
		api.WriteDomainError(w, r, err, notFound)
		return
	}
	table := recorder.Tabulate(f, list)

	// Generate CSV in memory.
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	_ = csvWriter.Write(table.Header())
	for _, row := range table.Rows {
		_ = csvWriter.Write(row.Cells)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		api.WriteDomainError(w, r, fmt.Errorf("write csv: %w", err), notFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(f.Title)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write CSV export", "error", err, "form_id", f.ID)
	}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9]+`)

// exportName derives a download file name from a form title.
func exportName(title string) string {
	base := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if base == "" {
		base = "form"
	}
	return base + "-responses.csv"
}
