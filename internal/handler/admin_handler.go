package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go-cheatsheets-app/internal/data"
	"go-cheatsheets-app/internal/logger"
	"go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/service"
	"go-cheatsheets-app/internal/session"
	"go-cheatsheets-app/internal/upload"
	"go-cheatsheets-app/internal/view"

	"github.com/go-chi/chi/v5"
)

const maxLogoUploadBytes = 2 << 20 // 2 MiB

// AdminHandler serves the admin dashboard and all content CRUD.
type AdminHandler struct {
	content  service.ContentServicer
	logos    *upload.LogoStore
	sessions session.Manager
	view     *view.View
	log      logger.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(content service.ContentServicer, logos *upload.LogoStore, sessions session.Manager, v *view.View, log logger.Logger) *AdminHandler {
	return &AdminHandler{content: content, logos: logos, sessions: sessions, view: v, log: log}
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) *middleware.AppError {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["UserInfo"] = middleware.GetUserInfo(r.Context())
	data["Flash"] = popFlash(h.sessions, r)
	if err := h.view.Render(w, name, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}
	return nil
}

// dashboardHandler lists every topic, drafts included.
func (h *AdminHandler) dashboardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	topics, err := h.content.AllTopics(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topics", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin/dashboard.html", map[string]interface{}{"Topics": topics})
}

// --- Categories ---

func (h *AdminHandler) categoriesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.content.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin/categories.html", map[string]interface{}{"Categories": categories})
}

func (h *AdminHandler) newCategoryFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.render(w, r, "admin/edit_category.html", nil)
}

func (h *AdminHandler) createCategoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	name := r.FormValue("name")
	if name == "" {
		flash(h.sessions, r, "error", "Category name is required")
		http.Redirect(w, r, "/admin/category/new", http.StatusFound)
		return nil
	}

	// No explicit display order on the form: append after the last one.
	if _, err := h.content.CreateCategory(r.Context(), name, nil); err != nil {
		h.log.Error(err, "Failed to create category")
		flash(h.sessions, r, "error", "Error creating category. Name might already exist.")
		http.Redirect(w, r, "/admin/category/new", http.StatusFound)
		return nil
	}
	flash(h.sessions, r, "success", "Category created successfully!")
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
	return nil
}

func (h *AdminHandler) editCategoryFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid category id", Code: http.StatusBadRequest}
	}
	category, err := h.content.Category(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load category", Code: http.StatusInternalServerError}
	}
	if category == nil {
		flash(h.sessions, r, "error", "Category not found")
		http.Redirect(w, r, "/admin/categories", http.StatusFound)
		return nil
	}
	return h.render(w, r, "admin/edit_category.html", map[string]interface{}{"Category": category})
}

func (h *AdminHandler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid category id", Code: http.StatusBadRequest}
	}
	category, err := h.content.Category(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load category", Code: http.StatusInternalServerError}
	}
	if category == nil {
		flash(h.sessions, r, "error", "Category not found")
		http.Redirect(w, r, "/admin/categories", http.StatusFound)
		return nil
	}

	name := r.FormValue("name")
	order := category.DisplayOrder
	if raw := r.FormValue("display_order"); raw != "" {
		if parsed, err := parseID(raw); err == nil {
			order = int(parsed)
		}
	}

	if err := h.content.UpdateCategory(r.Context(), id, name, order); err != nil {
		h.log.Error(err, "Failed to update category")
		flash(h.sessions, r, "error", "Error updating category")
	} else {
		flash(h.sessions, r, "success", "Category updated successfully!")
	}
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
	return nil
}

func (h *AdminHandler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid category id", Code: http.StatusBadRequest}
	}

	switch err := h.content.DeleteCategory(r.Context(), id); {
	case errors.Is(err, service.ErrCategoryNotEmpty):
		flash(h.sessions, r, "error", "Cannot delete category that has topics. Move or delete the topics first.")
	case err != nil:
		h.log.Error(err, "Failed to delete category")
		flash(h.sessions, r, "error", "Error deleting category")
	default:
		flash(h.sessions, r, "success", "Category deleted successfully!")
	}
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
	return nil
}

func (h *AdminHandler) reorderCategoriesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		Order []int64 `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid reorder payload", Code: http.StatusBadRequest}
	}
	if err := h.content.ReorderCategories(r.Context(), req.Order); err != nil {
		h.log.Error(err, "Failed to reorder categories")
		return &middleware.AppError{Error: err, Message: "Failed to reorder categories", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// --- Topics ---

func (h *AdminHandler) newTopicFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.content.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin/edit_topic.html", map[string]interface{}{"Categories": categories})
}

func (h *AdminHandler) createTopicHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	topic, appErr := h.topicFromForm(r)
	if appErr != nil {
		return appErr
	}
	if topic.Slug == "" || topic.Title == "" {
		flash(h.sessions, r, "error", "Slug and title are required")
		http.Redirect(w, r, "/admin/topic/new", http.StatusFound)
		return nil
	}
	if topic.CategoryID == 0 {
		flash(h.sessions, r, "error", "Please choose a category. Create one first if none exist.")
		http.Redirect(w, r, "/admin/topic/new", http.StatusFound)
		return nil
	}
	topic.UserID = middleware.GetUserInfo(r.Context()).ID

	id, err := h.content.CreateTopic(r.Context(), topic)
	if err != nil {
		h.log.Error(err, "Failed to create topic")
		flash(h.sessions, r, "error", "Error creating topic. Slug might already exist.")
		http.Redirect(w, r, "/admin/topic/new", http.StatusFound)
		return nil
	}

	if appErr := h.saveUploadedLogo(r, id, nil); appErr != nil {
		return appErr
	}
	flash(h.sessions, r, "success", "Topic created successfully!")
	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

func (h *AdminHandler) editTopicFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid topic id", Code: http.StatusBadRequest}
	}
	topic, err := h.content.Topic(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topic", Code: http.StatusInternalServerError}
	}
	if topic == nil {
		flash(h.sessions, r, "error", "Topic not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	categories, err := h.content.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin/edit_topic.html", map[string]interface{}{"Topic": topic, "Categories": categories})
}

func (h *AdminHandler) updateTopicHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid topic id", Code: http.StatusBadRequest}
	}
	existing, err := h.content.Topic(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topic", Code: http.StatusInternalServerError}
	}
	if existing == nil {
		flash(h.sessions, r, "error", "Topic not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}

	topic, appErr := h.topicFromForm(r)
	if appErr != nil {
		return appErr
	}
	if topic.CategoryID == 0 {
		flash(h.sessions, r, "error", "Please choose a category")
		http.Redirect(w, r, fmt.Sprintf("/admin/topic/%d/edit", id), http.StatusFound)
		return nil
	}
	topic.ID = id
	topic.UserID = existing.UserID

	if err := h.content.UpdateTopic(r.Context(), topic); err != nil {
		h.log.Error(err, "Failed to update topic")
		flash(h.sessions, r, "error", "Error updating topic")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}

	if appErr := h.saveUploadedLogo(r, id, existing.LogoFilename); appErr != nil {
		return appErr
	}
	flash(h.sessions, r, "success", "Topic updated successfully!")
	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

func (h *AdminHandler) deleteTopicHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid topic id", Code: http.StatusBadRequest}
	}
	if err := h.content.DeleteTopic(r.Context(), id); err != nil {
		h.log.Error(err, "Failed to delete topic")
		flash(h.sessions, r, "error", "Error deleting topic")
	} else {
		flash(h.sessions, r, "success", "Topic deleted successfully!")
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

func (h *AdminHandler) reorderTopicsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		CategoryID int64   `json:"category_id"`
		Order      []int64 `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid reorder payload", Code: http.StatusBadRequest}
	}
	if err := h.content.ReorderTopics(r.Context(), req.CategoryID, req.Order); err != nil {
		h.log.Error(err, "Failed to reorder topics")
		return &middleware.AppError{Error: err, Message: "Failed to reorder topics", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// topicFromForm builds a topic from the shared new/edit form fields.
func (h *AdminHandler) topicFromForm(r *http.Request) (*data.Topic, *middleware.AppError) {
	if err := r.ParseMultipartForm(maxLogoUploadBytes); err != nil && err != http.ErrNotMultipart {
		return nil, &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}

	// No silent fallback: a zero id means the form carried no usable
	// category and the caller must reject the submission.
	var categoryID int64
	if raw := r.FormValue("category_id"); raw != "" {
		if parsed, err := parseID(raw); err == nil {
			categoryID = parsed
		}
	}

	topic := &data.Topic{
		Slug:           r.FormValue("slug"),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		CategoryID:     categoryID,
		IsPublished:    r.FormValue("is_published") != "",
		CardColorLight: r.FormValue("card_color_light"),
		CardColorDark:  r.FormValue("card_color_dark"),
	}
	if topic.CardColorLight == "" {
		topic.CardColorLight = "#ffffff"
	}
	if topic.CardColorDark == "" {
		topic.CardColorDark = "#1a1a1a"
	}
	return topic, nil
}

// saveUploadedLogo stores a logo included in the form, replacing any
// previous one. A stored file with a failed metadata save leaves an
// orphan on disk; that gap is inherited and documented, not fixed.
func (h *AdminHandler) saveUploadedLogo(r *http.Request, topicID int64, previous *string) *middleware.AppError {
	if r.MultipartForm == nil {
		return nil
	}
	file, header, err := r.FormFile("logo")
	if err == http.ErrMissingFile {
		return nil
	}
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid logo upload", Code: http.StatusBadRequest}
	}
	defer file.Close()

	filename, err := h.logos.Save(file, header.Filename)
	if err != nil {
		if errors.Is(err, upload.ErrDisallowedType) {
			flash(h.sessions, r, "error", "Logo file type not allowed")
			return nil
		}
		return &middleware.AppError{Error: err, Message: "Failed to store logo", Code: http.StatusInternalServerError}
	}

	if err := h.content.SetTopicLogo(r.Context(), topicID, &filename); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to save logo reference", Code: http.StatusInternalServerError}
	}
	if previous != nil {
		if err := h.logos.Delete(*previous); err != nil {
			h.log.Error(err, "Failed to delete previous logo")
		}
	}
	return nil
}

// --- Sections ---

func (h *AdminHandler) manageSectionsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid topic id", Code: http.StatusBadRequest}
	}
	page, err := h.content.TopicPageByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load topic", Code: http.StatusInternalServerError}
	}
	if page == nil {
		flash(h.sessions, r, "error", "Topic not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	return h.render(w, r, "admin/manage_sections.html", map[string]interface{}{"Page": page})
}

func (h *AdminHandler) createSectionHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		TopicID int64  `json:"topic_id"`
		Title   string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid section payload", Code: http.StatusBadRequest}
	}
	id, err := h.content.CreateSection(r.Context(), req.Title, req.TopicID)
	if err != nil {
		h.log.Error(err, "Failed to create section")
		return &middleware.AppError{Error: err, Message: "Failed to create section", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "section_id": id}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *AdminHandler) updateSectionHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		SectionID    int64  `json:"section_id"`
		Title        string `json:"title"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid section payload", Code: http.StatusBadRequest}
	}
	if err := h.content.UpdateSection(r.Context(), req.SectionID, req.Title, req.DisplayOrder); err != nil {
		h.log.Error(err, "Failed to update section")
		return &middleware.AppError{Error: err, Message: "Failed to update section", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *AdminHandler) deleteSectionHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		SectionID int64 `json:"section_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid section payload", Code: http.StatusBadRequest}
	}
	if err := h.content.DeleteSection(r.Context(), req.SectionID); err != nil {
		h.log.Error(err, "Failed to delete section")
		return &middleware.AppError{Error: err, Message: "Failed to delete section", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *AdminHandler) reorderSectionsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		TopicID int64   `json:"topic_id"`
		Order   []int64 `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid reorder payload", Code: http.StatusBadRequest}
	}
	if err := h.content.ReorderSections(r.Context(), req.TopicID, req.Order); err != nil {
		h.log.Error(err, "Failed to reorder sections")
		return &middleware.AppError{Error: err, Message: "Failed to reorder sections", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// --- Items ---

func (h *AdminHandler) newItemFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	sectionID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid section id", Code: http.StatusBadRequest}
	}
	section, err := h.content.Section(r.Context(), sectionID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load section", Code: http.StatusInternalServerError}
	}
	if section == nil {
		flash(h.sessions, r, "error", "Section not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	return h.render(w, r, "admin/edit_item.html", map[string]interface{}{"Section": section})
}

func (h *AdminHandler) createItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	sectionID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid section id", Code: http.StatusBadRequest}
	}
	section, err := h.content.Section(r.Context(), sectionID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load section", Code: http.StatusInternalServerError}
	}
	if section == nil {
		flash(h.sessions, r, "error", "Section not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}

	item := h.itemFromForm(r)
	item.SectionID = sectionID
	if item.Title == "" {
		flash(h.sessions, r, "error", "Title is required")
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return nil
	}

	if _, err := h.content.CreateItem(r.Context(), item); err != nil {
		h.log.Error(err, "Failed to create item")
		flash(h.sessions, r, "error", "Error creating item")
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return nil
	}
	flash(h.sessions, r, "success", "Item created successfully!")
	http.Redirect(w, r, sectionManageURL(section), http.StatusFound)
	return nil
}

func (h *AdminHandler) editItemFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid item id", Code: http.StatusBadRequest}
	}
	item, err := h.content.Item(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load item", Code: http.StatusInternalServerError}
	}
	if item == nil {
		flash(h.sessions, r, "error", "Item not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	section, err := h.content.Section(r.Context(), item.SectionID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load section", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin/edit_item.html", map[string]interface{}{"Section": section, "Item": item})
}

func (h *AdminHandler) updateItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid item id", Code: http.StatusBadRequest}
	}
	existing, err := h.content.Item(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load item", Code: http.StatusInternalServerError}
	}
	if existing == nil {
		flash(h.sessions, r, "error", "Item not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	section, err := h.content.Section(r.Context(), existing.SectionID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load section", Code: http.StatusInternalServerError}
	}

	item := h.itemFromForm(r)
	item.ID = id
	item.SectionID = existing.SectionID
	item.DisplayOrder = existing.DisplayOrder
	if item.Title == "" {
		flash(h.sessions, r, "error", "Title is required")
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return nil
	}

	if err := h.content.UpdateItem(r.Context(), item); err != nil {
		h.log.Error(err, "Failed to update item")
		flash(h.sessions, r, "error", "Error updating item")
	} else {
		flash(h.sessions, r, "success", "Item updated successfully!")
	}
	http.Redirect(w, r, sectionManageURL(section), http.StatusFound)
	return nil
}

func (h *AdminHandler) deleteItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid item id", Code: http.StatusBadRequest}
	}
	item, err := h.content.Item(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load item", Code: http.StatusInternalServerError}
	}
	if item == nil {
		flash(h.sessions, r, "error", "Item not found")
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	section, err := h.content.Section(r.Context(), item.SectionID)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load section", Code: http.StatusInternalServerError}
	}

	if err := h.content.DeleteItem(r.Context(), id); err != nil {
		h.log.Error(err, "Failed to delete item")
		flash(h.sessions, r, "error", "Error deleting item")
	} else {
		flash(h.sessions, r, "success", "Item deleted successfully!")
	}
	http.Redirect(w, r, sectionManageURL(section), http.StatusFound)
	return nil
}

func (h *AdminHandler) reorderItemsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		SectionID int64   `json:"section_id"`
		Order     []int64 `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid reorder payload", Code: http.StatusBadRequest}
	}
	if err := h.content.ReorderItems(r.Context(), req.SectionID, req.Order); err != nil {
		h.log.Error(err, "Failed to reorder items")
		return &middleware.AppError{Error: err, Message: "Failed to reorder items", Code: http.StatusInternalServerError}
	}
	if err := writeJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *AdminHandler) itemFromForm(r *http.Request) *data.SectionItem {
	item := &data.SectionItem{
		Title:           r.FormValue("title"),
		MarkdownContent: r.FormValue("markdown_content"),
		CardSize:        r.FormValue("card_size"),
		AccentColor:     r.FormValue("accent_color"),
	}
	if item.CardSize == "" {
		item.CardSize = "normal"
	}
	return item
}
