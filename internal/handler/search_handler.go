package handler

import (
	"context"
	"net/http"

	"go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// Searcher runs the content search scan.
type Searcher interface {
	Search(ctx context.Context, query string) ([]service.SearchResult, error)
}

// SearchHandler serves the JSON endpoints backing the search sidebar.
type SearchHandler struct {
	content service.ContentServicer
	search  Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(content service.ContentServicer, search Searcher) *SearchHandler {
	return &SearchHandler{content: content, search: search}
}

// topicsHandler lists all published topics, flattened from the grouped
// home view, for the search sidebar.
func (h *SearchHandler) topicsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	groups, err := h.content.TopicsByCategory(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topics", Code: http.StatusInternalServerError}
	}

	type topicEntry struct {
		ID          int64  `json:"id"`
		Slug        string `json:"slug"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	all := []topicEntry{}
	for _, group := range groups {
		for _, topic := range group.Topics {
			all = append(all, topicEntry{
				ID:          topic.ID,
				Slug:        topic.Slug,
				Title:       topic.Title,
				Description: topic.Description,
				Category:    group.Category.Name,
			})
		}
	}

	if err := writeJSON(w, http.StatusOK, map[string]interface{}{"topics": all}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode topics", Code: http.StatusInternalServerError}
	}
	return nil
}

// topicContentHandler returns the full section/item skeleton of one
// topic, for expanding a sidebar entry.
func (h *SearchHandler) topicContentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid topic id", Code: http.StatusBadRequest}
	}

	page, err := h.content.TopicPageByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topic", Code: http.StatusInternalServerError}
	}
	if page == nil {
		if err := writeJSON(w, http.StatusNotFound, map[string]string{"error": "Topic not found"}); err != nil {
			return &middleware.AppError{Error: err, Message: "Failed to encode error", Code: http.StatusInternalServerError}
		}
		return nil
	}

	type itemEntry struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	type sectionEntry struct {
		ID    int64       `json:"id"`
		Title string      `json:"title"`
		Items []itemEntry `json:"items"`
	}
	sections := []sectionEntry{}
	for _, sv := range page.Sections {
		items := []itemEntry{}
		for _, item := range sv.Items {
			items = append(items, itemEntry{ID: item.ID, Title: item.Title})
		}
		sections = append(sections, sectionEntry{ID: sv.Section.ID, Title: sv.Section.Title, Items: items})
	}

	body := map[string]interface{}{
		"topic": map[string]interface{}{
			"id":          page.Topic.ID,
			"slug":        page.Topic.Slug,
			"title":       page.Topic.Title,
			"description": page.Topic.Description,
		},
		"sections": sections,
	}
	if err := writeJSON(w, http.StatusOK, body); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode topic content", Code: http.StatusInternalServerError}
	}
	return nil
}

// queryHandler runs the substring search across all published content.
func (h *SearchHandler) queryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	results, err := h.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Search failed", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]interface{}{"results": results}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode search results", Code: http.StatusInternalServerError}
	}
	return nil
}
