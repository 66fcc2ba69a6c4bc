package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/database"
	"github.com/johnwards/formbuilder/internal/seed"
	"github.com/johnwards/formbuilder/internal/store"
)

// Handler serves the maintenance API at /_admin/.
type Handler struct {
	store *store.Store
}

// Reset drops all data from all tables and re-runs seeds.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ResetData(r.Context(), h.store); err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("failed to reset: %s", err), api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs seed data without dropping existing data first.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Seed(r.Context(), h.store); err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("failed to seed: %s", err), api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetData clears all data tables and re-seeds.
// Exported for reuse by tests or other callers.
func ResetData(ctx context.Context, st *store.Store) error {
	if err := database.Truncate(ctx, st.DB); err != nil {
		return err
	}
	if err := seed.Seed(ctx, st); err != nil {
		return fmt.Errorf("re-seed: %w", err)
	}
	slog.Warn("all data reset")
	return nil
}
