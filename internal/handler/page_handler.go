package handler

import (
	"net/http"

	"go-cheatsheets-app/internal/logger"
	"go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/service"
	"go-cheatsheets-app/internal/view"

	"github.com/go-chi/chi/v5"
)

// PageHandler serves the public, read-only pages.
type PageHandler struct {
	content service.ContentServicer
	view    *view.View
	log     logger.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(content service.ContentServicer, v *view.View, log logger.Logger) *PageHandler {
	return &PageHandler{
		content: content,
		view:    v,
		log:     log,
	}
}

// homeHandler renders the topics grouped by category.
func (h *PageHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	groups, err := h.content.TopicsByCategory(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topics", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Groups":   groups,
		"UserInfo": middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "home.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render home page", Code: http.StatusInternalServerError}
	}
	return nil
}

// topicHandler renders one published cheatsheet by slug. Drafts are a
// 404 here even though admins can still reach them by id.
func (h *PageHandler) topicHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")

	page, err := h.content.TopicPage(r.Context(), slug)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topic", Code: http.StatusInternalServerError}
	}
	if page == nil {
		return &middleware.AppError{Error: errNotFound(slug), Message: "Topic not found", Code: http.StatusNotFound}
	}

	data := map[string]interface{}{
		"Page":     page,
		"UserInfo": middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "cheatsheet.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render topic", Code: http.StatusInternalServerError}
	}
	return nil
}
