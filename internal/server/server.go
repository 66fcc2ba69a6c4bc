// Package server assembles the HTTP handler from the stores, services and
// route packages.
package server

import (
	"fmt"
	"net/http"

	"github.com/johnwards/formbuilder/internal/account"
	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/api/admin"
	"github.com/johnwards/formbuilder/internal/api/auth"
	"github.com/johnwards/formbuilder/internal/api/forms"
	"github.com/johnwards/formbuilder/internal/api/public"
	"github.com/johnwards/formbuilder/internal/api/responses"
	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/config"
	"github.com/johnwards/formbuilder/internal/recorder"
	"github.com/johnwards/formbuilder/internal/store"
)

// Services are the domain services behind the routes.
type Services struct {
	Accounts *account.Service
	Forms    *catalog.Service
	Recorder *recorder.Recorder
}

// NewServices builds the services over st using the timeouts in cfg.
func NewServices(cfg config.Config, st *store.Store) *Services {
	return &Services{
		Accounts: account.New(st.Users, st.Sessions, cfg.SessionTTL),
		Forms:    catalog.New(st.Forms, st.Responses, cfg.GatewayTimeout),
		Recorder: recorder.New(st.Responses, cfg.GatewayTimeout),
	}
}

// New returns the complete HTTP handler.
func New(cfg config.Config, st *store.Store) http.Handler {
	svc := NewServices(cfg, st)
	mux := http.NewServeMux()

	auth.RegisterRoutes(mux, svc.Accounts)
	public.RegisterRoutes(mux, svc.Forms, svc.Recorder)
	admin.RegisterRoutes(mux, st, cfg.AdminToken)

	// Builder and response routes need a signed-in owner.
	owner := http.NewServeMux()
	forms.RegisterRoutes(owner, svc.Forms)
	responses.RegisterRoutes(owner, svc.Forms)
	owner.HandleFunc("/api/", noRoute)
	mux.Handle("/api/", api.RequireUser()(owner))

	mux.HandleFunc("/", noRoute)

	return api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Session(svc.Accounts),
		api.JSONContentType(),
		api.Logging(),
	)
}

// noRoute is the catch-all returning 404 in the error envelope.
func noRoute(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
		fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
		corrID,
	))
}
