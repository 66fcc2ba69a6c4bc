package auth

import (
	"net/http"
	"time"

	"github.com/johnwards/formbuilder/internal/account"
	"github.com/johnwards/formbuilder/internal/api"
	"github.com/johnwards/formbuilder/internal/domain"
)

// Handler handles sign-up, sign-in and session HTTP requests.
type Handler struct {
	accounts *account.Service
}

type sessionResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
}

// Index handles GET /auth, the target of sign-in redirects.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"signUp": "POST /auth/sign-up",
		"signIn": "POST /auth/sign-in",
	})
}

// SignUp handles POST /auth/sign-up.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body account.Credentials
	if !api.DecodeJSON(w, r, &body) {
		return
	}

	u, sess, err := h.accounts.SignUp(r.Context(), body)
	if err != nil {
		api.WriteDomainError(w, r, err, "")
		return
	}
	writeSession(w, http.StatusCreated, u, sess)
}

// SignIn handles POST /auth/sign-in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body account.Credentials
	if !api.DecodeJSON(w, r, &body) {
		return
	}

	u, sess, err := h.accounts.SignIn(r.Context(), body)
	if err != nil {
		api.WriteDomainError(w, r, err, "")
		return
	}
	writeSession(w, http.StatusOK, u, sess)
}

// SignOut handles POST /auth/sign-out.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.SignOut(r.Context(), api.SessionToken(r.Context())); err != nil {
		api.WriteDomainError(w, r, err, "")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	u, _ := api.User(r.Context())
	api.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

func writeSession(w http.ResponseWriter, status int, u *domain.User, sess *domain.Session) {
	cookie := &http.Cookie{
		Name:     api.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if exp, err := time.Parse(time.RFC3339Nano, sess.ExpiresAt); err == nil {
		cookie.Expires = exp
	}
	http.SetCookie(w, cookie)
	api.WriteJSON(w, status, sessionResponse{User: u, Token: sess.Token, ExpiresAt: sess.ExpiresAt})
}
