package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ds9759045455-stack/smart-scheduler/internal/service"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
	"go.uber.org/zap"
)

// AccountService defines the interface for account operations required by
// the auth handlers.
type AccountService interface {
	// Register creates an account; returns service.ErrEmailTaken when the
	// email is already registered.
	Register(ctx context.Context, email, rawPassword string) error
	// Authenticate verifies the credentials and returns the account id;
	// returns service.ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, rawPassword string) (int64, error)
}

// AuthHandler handles the login, registration, and logout routes.
type AuthHandler struct {
	// AccountService performs the underlying account operations.
	AccountService AccountService
	// Sessions issues and destroys session tokens.
	Sessions *session.Manager
	// Log is the structured logger for storage failures.
	Log *zap.Logger
}

// LoginPage renders the login form with any pending flash notices.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, "login.html", page{Flashes: popFlashes(h.Sessions, r)})
}

// Login handles the login form POST. On success it starts a fresh session
// bound to the account and redirects to the dashboard. A failed
// authentication flashes a uniform "Invalid credentials" notice; unknown
// email and wrong password are deliberately indistinguishable.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	accountID, err := h.AccountService.Authenticate(r.Context(), email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		token := requestToken(h.Sessions, w, r)
		h.Sessions.Flash(token, "Invalid credentials")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("authenticate failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Drop the anonymous session, if any, and issue a fresh token bound
	// to the account.
	if cookie, cerr := r.Cookie(session.CookieName); cerr == nil {
		h.Sessions.Destroy(cookie.Value)
	}
	setSessionCookie(w, h.Sessions.Create(accountID))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage renders the registration form with any pending flash notices.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, "register.html", page{Flashes: popFlashes(h.Sessions, r)})
}

// Register handles the registration form POST. A duplicate email flashes
// "Email already exists!" back onto the form; a storage failure is logged
// and reported as an internal error rather than masked as a duplicate.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		token := requestToken(h.Sessions, w, r)
		h.Sessions.Flash(token, "Email and password are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	err := h.AccountService.Register(r.Context(), email, password)
	if errors.Is(err, service.ErrEmailTaken) {
		token := requestToken(h.Sessions, w, r)
		h.Sessions.Flash(token, "Email already exists!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("register failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token := requestToken(h.Sessions, w, r)
	h.Sessions.Flash(token, "Registration successful!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the session, clears the cookie, and redirects to login.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.Sessions.Destroy(cookie.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
