package admin

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/store"
)

// RegisterRoutes registers all admin API endpoints on the mux, guarded by
// token.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, token string) {
	h := &Handler{store: s}
	guard := api.AdminToken(token)

	mux.Handle("POST /_admin/reset", guard(http.HandlerFunc(h.Reset)))
	mux.Handle("POST /_admin/seed", guard(http.HandlerFunc(h.SeedData)))
}
