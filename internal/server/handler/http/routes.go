package http

import (
	"net/http"

	"github.com/ds9759045455-stack/smart-scheduler/internal/middleware"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the HTTP handler serving the scheduler UI.
//
// Routes:
//
//	GET/POST /, /login            → login form / authenticate
//	GET/POST /register            → registration form / register
//	GET  /logout                  → destroy session
//	GET  /dashboard               → task list           (auth)
//	POST /add_task                → create task         (auth)
//	GET  /toggle_status/{taskID}  → flip task status    (auth)
//	GET  /delete_task/{taskID}    → delete task         (auth)
//
// Protected routes sit behind SessionAuth, which redirects unauthenticated
// requests to /login. Every route is request-logged.
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	sessions *session.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Get("/", authHandler.LoginPage)
	r.Post("/", authHandler.Login)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)

	// Protected group: requires an authenticated session
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.Get("/dashboard", taskHandler.Dashboard)
		r.Post("/add_task", taskHandler.AddTask)
		r.Get("/toggle_status/{taskID}", taskHandler.ToggleStatus)
		r.Get("/delete_task/{taskID}", taskHandler.DeleteTask)
	})

	return r
}
