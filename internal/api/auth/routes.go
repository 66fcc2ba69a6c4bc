package auth

import (
	"net/http"

	"github.com/johnwards/formbuilder/internal/account"
	"github.com/johnwards/formbuilder/internal/api"
)

// RegisterRoutes adds all authentication endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, accounts *account.Service) {
	h := &Handler{accounts: accounts}
	signedIn := api.RequireUser()

	mux.HandleFunc("GET /auth", h.Index)
	mux.HandleFunc("POST /auth/sign-up", h.SignUp)
	mux.HandleFunc("POST /auth/sign-in", h.SignIn)
	mux.Handle("POST /auth/sign-out", signedIn(http.HandlerFunc(h.SignOut)))
	mux.Handle("GET /auth/session", signedIn(http.HandlerFunc(h.Session)))
}
