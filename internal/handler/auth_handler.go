package handler

import (
	"context"
	"errors"
	"net/http"

	"go-cheatsheets-app/internal/data"
	"go-cheatsheets-app/internal/logger"
	"go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/service"
	"go-cheatsheets-app/internal/session"
	"go-cheatsheets-app/internal/view"
)

// Authenticator verifies username/password credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*data.User, error)
}

// AuthHandler serves the login form and manages the session lifecycle.
type AuthHandler struct {
	auth     Authenticator
	sessions session.Manager
	view     *view.View
	log      logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator, sessions session.Manager, v *view.View, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, view: v, log: log}
}

// loginFormHandler renders the login form. Logged-in admins are sent
// straight to the dashboard.
func (h *AuthHandler) loginFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if middleware.GetUserInfo(r.Context()).IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	data := map[string]interface{}{
		"Flash": popFlash(h.sessions, r),
	}
	if err := h.view.Render(w, "login.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render login page", Code: http.StatusInternalServerError}
	}
	return nil
}

// loginHandler checks the submitted credentials and starts a session.
func (h *AuthHandler) loginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			flash(h.sessions, r, "error", "Invalid username or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return nil
		}
		return &middleware.AppError{Error: err, Message: "Login failed", Code: http.StatusInternalServerError}
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Login failed", Code: http.StatusInternalServerError}
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessions.Put(r.Context(), session.KeyUsername, user.Username)
	h.sessions.Put(r.Context(), session.KeyIsAdmin, user.IsAdmin)
	flash(h.sessions, r, "success", "Login successful!")

	next := r.URL.Query().Get("next")
	if next == "" || next[0] != '/' {
		next = "/admin"
	}
	http.Redirect(w, r, next, http.StatusFound)
	return nil
}

// logoutHandler destroys the session and returns to the home page.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Logout failed", Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}
