package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"go-cheatsheets-app/internal/service"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	content service.ContentServicer
	baseURL string
}

// NewSeoHandler creates a new SeoHandler.
func NewSeoHandler(content service.ContentServicer, baseURL string) *SeoHandler {
	return &SeoHandler{content: content, baseURL: baseURL}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml listing
// every published topic.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := h.content.TopicsByCategory(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve topics for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}
	for _, group := range groups {
		for _, topic := range group.Topics {
			sitemap.URLs = append(sitemap.URLs, sitemapURL{
				Loc:     h.baseURL + "/" + topic.Slug,
				LastMod: topic.UpdatedAt.Format(sitemapDateFormat),
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
