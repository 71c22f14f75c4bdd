package handler

import (
	"net/http"

	appmw "go-cheatsheets-app/internal/middleware"
	"go-cheatsheets-app/internal/session"
	"go-cheatsheets-app/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	pages *PageHandler,
	auth *AuthHandler,
	search *SearchHandler,
	admin *AdminHandler,
	seo *SeoHandler,
	authz func(http.Handler) http.Handler,
	errorMW func(appmw.AppHandler) http.Handler,
	sessions session.Manager,
	logoDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Sessions and authorization wrap everything; the policy table
	// decides which subtree each role may touch.
	r.Use(sessions.LoadAndSave)
	r.Use(authz)

	// Static assets from the embedded filesystem; uploaded logos from disk.
	r.Handle("/static/uploads/logos/*", http.StripPrefix("/static/uploads/logos/",
		http.FileServer(http.Dir(logoDir))))
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	// SEO endpoints
	r.Get("/robots.txt", seo.robotsHandler)
	r.Get("/sitemap.xml", seo.sitemapHandler)

	// Search API
	r.Method(http.MethodGet, "/search/topics", errorMW(search.topicsHandler))
	r.Method(http.MethodGet, "/search/topic/{id}", errorMW(search.topicContentHandler))
	r.Method(http.MethodGet, "/search/query", errorMW(search.queryHandler))

	// Authentication
	r.Method(http.MethodGet, "/login", errorMW(auth.loginFormHandler))
	r.Method(http.MethodPost, "/login", errorMW(auth.loginHandler))
	r.Method(http.MethodGet, "/logout", errorMW(auth.logoutHandler))

	// Admin area; the authorizer only lets the "admin" role in here.
	r.Route("/admin", func(r chi.Router) {
		r.Method(http.MethodGet, "/", errorMW(admin.dashboardHandler))

		r.Method(http.MethodGet, "/categories", errorMW(admin.categoriesHandler))
		r.Method(http.MethodGet, "/category/new", errorMW(admin.newCategoryFormHandler))
		r.Method(http.MethodPost, "/category/new", errorMW(admin.createCategoryHandler))
		r.Method(http.MethodGet, "/category/{id}/edit", errorMW(admin.editCategoryFormHandler))
		r.Method(http.MethodPost, "/category/{id}/edit", errorMW(admin.updateCategoryHandler))
		r.Method(http.MethodGet, "/category/{id}/delete", errorMW(admin.deleteCategoryHandler))
		r.Method(http.MethodPost, "/api/categories/reorder", errorMW(admin.reorderCategoriesHandler))

		r.Method(http.MethodGet, "/topic/new", errorMW(admin.newTopicFormHandler))
		r.Method(http.MethodPost, "/topic/new", errorMW(admin.createTopicHandler))
		r.Method(http.MethodGet, "/topic/{id}/edit", errorMW(admin.editTopicFormHandler))
		r.Method(http.MethodPost, "/topic/{id}/edit", errorMW(admin.updateTopicHandler))
		r.Method(http.MethodGet, "/topic/{id}/delete", errorMW(admin.deleteTopicHandler))
		r.Method(http.MethodGet, "/topic/{id}/sections", errorMW(admin.manageSectionsHandler))
		r.Method(http.MethodPost, "/api/topics/reorder", errorMW(admin.reorderTopicsHandler))

		r.Method(http.MethodPost, "/api/section/new", errorMW(admin.createSectionHandler))
		r.Method(http.MethodPost, "/api/section/update", errorMW(admin.updateSectionHandler))
		r.Method(http.MethodPost, "/api/section/delete", errorMW(admin.deleteSectionHandler))
		r.Method(http.MethodPost, "/api/section/reorder", errorMW(admin.reorderSectionsHandler))

		r.Method(http.MethodGet, "/section/{id}/item/new", errorMW(admin.newItemFormHandler))
		r.Method(http.MethodPost, "/section/{id}/item/new", errorMW(admin.createItemHandler))
		r.Method(http.MethodGet, "/item/{id}/edit", errorMW(admin.editItemFormHandler))
		r.Method(http.MethodPost, "/item/{id}/edit", errorMW(admin.updateItemHandler))
		r.Method(http.MethodGet, "/item/{id}/delete", errorMW(admin.deleteItemHandler))
		r.Method(http.MethodPost, "/api/item/reorder", errorMW(admin.reorderItemsHandler))
	})

	// Public pages; the slug route must come last so it doesn't shadow
	// the fixed routes above.
	r.Method(http.MethodGet, "/", errorMW(pages.homeHandler))
	r.Method(http.MethodGet, "/{slug}", errorMW(pages.topicHandler))

	return r
}
