// Package http provides the HTML form handlers and routing for the
// scheduler: login, registration, logout, and the task dashboard.
package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// page carries everything a template can render: drained flash notices and,
// on the dashboard, the account's tasks.
type page struct {
	Flashes []string
	Tasks   []models.Task
}

func render(w http.ResponseWriter, name string, data page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pages.ExecuteTemplate(w, name, data)
}

// setSessionCookie binds token to the browser. HttpOnly keeps it away from
// scripts; SameSite=Lax keeps cross-site requests from carrying it.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// requestToken returns the live session token from the request cookie, or
// creates an anonymous session (setting its cookie) when there is none.
// Flash notices need a session to live on even before login.
func requestToken(sessions *session.Manager, w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if _, ok := sessions.Resolve(cookie.Value); ok {
			return cookie.Value
		}
	}
	token := sessions.Create(0)
	setSessionCookie(w, token)
	return token
}

// popFlashes drains queued notices for the request's session, if any.
func popFlashes(sessions *session.Manager, r *http.Request) []string {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil
	}
	return sessions.PopFlashes(cookie.Value)
}
