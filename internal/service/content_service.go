package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"time"

	"go-cheatsheets-app/internal/data"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrCategoryNotEmpty is returned when a category delete is attempted
// while the category still owns topics. Callers must empty the category
// first; the storage layer enforces no such business rule itself.
var ErrCategoryNotEmpty = errors.New("category still has topics")

// CategoryRepository defines the database operations on categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
	Create(ctx context.Context, name string, displayOrder *int) (int64, error)
	Update(ctx context.Context, id int64, name string, displayOrder int) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

// TopicRepository defines the database operations on topics.
type TopicRepository interface {
	GetAll(ctx context.Context) ([]*data.Topic, error)
	GetAllPublished(ctx context.Context) ([]*data.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*data.Topic, error)
	GetByID(ctx context.Context, id int64) (*data.Topic, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]*data.Topic, error)
	GetPublishedByCategory(ctx context.Context, categoryID int64) ([]*data.Topic, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	Create(ctx context.Context, topic *data.Topic) (int64, error)
	Update(ctx context.Context, topic *data.Topic) error
	SetLogo(ctx context.Context, id int64, filename *string) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, categoryID int64, ids []int64) error
}

// SectionRepository defines the database operations on sections.
type SectionRepository interface {
	GetByTopic(ctx context.Context, topicID int64) ([]*data.Section, error)
	GetByID(ctx context.Context, id int64) (*data.Section, error)
	Create(ctx context.Context, title string, topicID int64) (int64, error)
	Update(ctx context.Context, id int64, title string, displayOrder int) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, topicID int64, ids []int64) error
}

// SectionItemRepository defines the database operations on section items.
type SectionItemRepository interface {
	GetBySection(ctx context.Context, sectionID int64) ([]*data.SectionItem, error)
	GetByID(ctx context.Context, id int64) (*data.SectionItem, error)
	Create(ctx context.Context, item *data.SectionItem) (int64, error)
	Update(ctx context.Context, item *data.SectionItem) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, sectionID int64, ids []int64) error
}

// ViewCache caches serialized read views between writes.
type ViewCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	DeletePrefix(prefix string) error
}

// CategoryTopics pairs a category with its published topics for the
// grouped home view.
type CategoryTopics struct {
	Category *data.Category `json:"category"`
	Topics   []*data.Topic  `json:"topics"`
}

// SectionView is a section with its items attached for rendering.
type SectionView struct {
	Section *data.Section       `json:"section"`
	Items   []*data.SectionItem `json:"items"`
}

// TopicPage is the fully assembled detail view for one topic.
type TopicPage struct {
	Topic    *data.Topic    `json:"topic"`
	Sections []*SectionView `json:"sections"`
}

const (
	cachePrefix   = "views:"
	homeCacheKey  = cachePrefix + "home"
	topicCacheKey = cachePrefix + "topic:"
	viewCacheTTL  = 5 * time.Minute
)

// ContentServicer defines the interface handlers use to read and write
// the content hierarchy.
type ContentServicer interface {
	TopicsByCategory(ctx context.Context) ([]*CategoryTopics, error)
	TopicPage(ctx context.Context, slug string) (*TopicPage, error)
	TopicPageByID(ctx context.Context, id int64) (*TopicPage, error)

	Categories(ctx context.Context) ([]*data.Category, error)
	Category(ctx context.Context, id int64) (*data.Category, error)
	AllTopics(ctx context.Context) ([]*data.Topic, error)
	Topic(ctx context.Context, id int64) (*data.Topic, error)
	Section(ctx context.Context, id int64) (*data.Section, error)
	Item(ctx context.Context, id int64) (*data.SectionItem, error)

	CreateCategory(ctx context.Context, name string, displayOrder *int) (int64, error)
	UpdateCategory(ctx context.Context, id int64, name string, displayOrder int) error
	DeleteCategory(ctx context.Context, id int64) error
	ReorderCategories(ctx context.Context, ids []int64) error

	CreateTopic(ctx context.Context, topic *data.Topic) (int64, error)
	UpdateTopic(ctx context.Context, topic *data.Topic) error
	SetTopicLogo(ctx context.Context, id int64, filename *string) error
	DeleteTopic(ctx context.Context, id int64) error
	ReorderTopics(ctx context.Context, categoryID int64, ids []int64) error

	CreateSection(ctx context.Context, title string, topicID int64) (int64, error)
	UpdateSection(ctx context.Context, id int64, title string, displayOrder int) error
	DeleteSection(ctx context.Context, id int64) error
	ReorderSections(ctx context.Context, topicID int64, ids []int64) error

	CreateItem(ctx context.Context, item *data.SectionItem) (int64, error)
	UpdateItem(ctx context.Context, item *data.SectionItem) error
	DeleteItem(ctx context.Context, id int64) error
	ReorderItems(ctx context.Context, sectionID int64, ids []int64) error
}

// ContentService assembles the hierarchical read views and orchestrates
// admin writes across the four content repositories.
type ContentService struct {
	categories CategoryRepository
	topics     TopicRepository
	sections   SectionRepository
	items      SectionItemRepository
	cache      ViewCache
	markdown   goldmark.Markdown
	sanitizer  *bluemonday.Policy
}

var _ ContentServicer = (*ContentService)(nil)

// NewContentService creates a ContentService with the given dependencies.
func NewContentService(categories CategoryRepository, topics TopicRepository, sections SectionRepository, items SectionItemRepository, cache ViewCache) *ContentService {
	return &ContentService{
		categories: categories,
		topics:     topics,
		sections:   sections,
		items:      items,
		cache:      cache,
		// Raw HTML passes through the renderer; bluemonday strips
		// anything dangerous afterwards.
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		// UGCPolicy allows basic formatting (links, lists, code blocks)
		// while stripping dangerous HTML from rendered markdown.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// TopicsByCategory returns every category in display order, each with
// its published topics ordered by (display_order, title). The assembled
// slice is re-sorted by display order defensively; the per-level SQL
// ordering should already guarantee it.
func (s *ContentService) TopicsByCategory(ctx context.Context) ([]*CategoryTopics, error) {
	if cached, err := s.cache.Get(homeCacheKey); err == nil && cached != nil {
		var groups []*CategoryTopics
		if err := json.Unmarshal(cached, &groups); err == nil {
			return groups, nil
		}
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]*CategoryTopics, 0, len(categories))
	for _, category := range categories {
		topics, err := s.topics.GetPublishedByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, &CategoryTopics{Category: category, Topics: topics})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category.DisplayOrder < groups[j].Category.DisplayOrder
	})

	if encoded, err := json.Marshal(groups); err == nil {
		_ = s.cache.Set(homeCacheKey, encoded, viewCacheTTL)
	}
	return groups, nil
}

// TopicPage assembles the public detail view for a published topic.
// It returns (nil, nil) when the slug is unknown or the topic is a
// draft: drafts 404 for visitors but stay reachable by id for admins.
func (s *ContentService) TopicPage(ctx context.Context, slug string) (*TopicPage, error) {
	if cached, err := s.cache.Get(topicCacheKey + slug); err == nil && cached != nil {
		var page TopicPage
		if err := json.Unmarshal(cached, &page); err == nil {
			return &page, nil
		}
	}

	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, nil
	}

	page, err := s.assembleTopicPage(ctx, topic)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(page); err == nil {
		_ = s.cache.Set(topicCacheKey+slug, encoded, viewCacheTTL)
	}
	return page, nil
}

// TopicPageByID assembles the detail view for any topic regardless of
// publish state. Admin screens use this; it is never cached.
func (s *ContentService) TopicPageByID(ctx context.Context, id int64) (*TopicPage, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, nil
	}
	return s.assembleTopicPage(ctx, topic)
}

func (s *ContentService) assembleTopicPage(ctx context.Context, topic *data.Topic) (*TopicPage, error) {
	sections, err := s.sections.GetByTopic(ctx, topic.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*SectionView, 0, len(sections))
	for _, section := range sections {
		items, err := s.items.GetBySection(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			rendered, err := s.renderMarkdown(item.MarkdownContent)
			if err != nil {
				return nil, err
			}
			item.HTMLContent = rendered
		}
		views = append(views, &SectionView{Section: section, Items: items})
	}

	return &TopicPage{Topic: topic, Sections: views}, nil
}

// renderMarkdown converts markdown to sanitized HTML.
func (s *ContentService) renderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// --- Admin reads ---

// Categories lists every category in display order.
func (s *ContentService) Categories(ctx context.Context) ([]*data.Category, error) {
	return s.categories.GetAll(ctx)
}

// Category fetches one category; (nil, nil) when absent.
func (s *ContentService) Category(ctx context.Context, id int64) (*data.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// AllTopics lists every topic in any publish state, for the dashboard.
func (s *ContentService) AllTopics(ctx context.Context) ([]*data.Topic, error) {
	return s.topics.GetAll(ctx)
}

// Topic fetches one topic in any publish state; (nil, nil) when absent.
func (s *ContentService) Topic(ctx context.Context, id int64) (*data.Topic, error) {
	return s.topics.GetByID(ctx, id)
}

// Section fetches one section; (nil, nil) when absent.
func (s *ContentService) Section(ctx context.Context, id int64) (*data.Section, error) {
	return s.sections.GetByID(ctx, id)
}

// Item fetches one section item; (nil, nil) when absent.
func (s *ContentService) Item(ctx context.Context, id int64) (*data.SectionItem, error) {
	return s.items.GetByID(ctx, id)
}

// --- Category writes ---

// CreateCategory creates a category, appending it when no explicit
// display order is given.
func (s *ContentService) CreateCategory(ctx context.Context, name string, displayOrder *int) (int64, error) {
	id, err := s.categories.Create(ctx, name, displayOrder)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateCategory renames and/or repositions a category.
func (s *ContentService) UpdateCategory(ctx context.Context, id int64, name string, displayOrder int) error {
	if err := s.categories.Update(ctx, id, name, displayOrder); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteCategory deletes a category after verifying it owns no topics.
// The check and the delete are two round-trips; concurrent admin writes
// can race them, and the foreign key on topics is the backstop.
func (s *ContentService) DeleteCategory(ctx context.Context, id int64) error {
	count, err := s.topics.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ReorderCategories rewrites category display orders to the zero-based
// indexes of ids.
func (s *ContentService) ReorderCategories(ctx context.Context, ids []int64) error {
	if err := s.categories.Reorder(ctx, ids); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// --- Topic writes ---

// CreateTopic creates a topic at the end of its category.
func (s *ContentService) CreateTopic(ctx context.Context, topic *data.Topic) (int64, error) {
	id, err := s.topics.Create(ctx, topic)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateTopic rewrites a topic's editable fields.
func (s *ContentService) UpdateTopic(ctx context.Context, topic *data.Topic) error {
	if err := s.topics.Update(ctx, topic); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// SetTopicLogo stores (or clears, with nil) the topic's logo filename.
func (s *ContentService) SetTopicLogo(ctx context.Context, id int64, filename *string) error {
	if err := s.topics.SetLogo(ctx, id, filename); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteTopic deletes a topic and, via cascade, its sections and items.
func (s *ContentService) DeleteTopic(ctx context.Context, id int64) error {
	if err := s.topics.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ReorderTopics rewrites topic display orders within one category.
func (s *ContentService) ReorderTopics(ctx context.Context, categoryID int64, ids []int64) error {
	if err := s.topics.Reorder(ctx, categoryID, ids); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// --- Section writes ---

// CreateSection appends a section to a topic.
func (s *ContentService) CreateSection(ctx context.Context, title string, topicID int64) (int64, error) {
	id, err := s.sections.Create(ctx, title, topicID)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateSection renames and/or repositions a section.
func (s *ContentService) UpdateSection(ctx context.Context, id int64, title string, displayOrder int) error {
	if err := s.sections.Update(ctx, id, title, displayOrder); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteSection deletes a section and, via cascade, its items.
func (s *ContentService) DeleteSection(ctx context.Context, id int64) error {
	if err := s.sections.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ReorderSections rewrites section display orders within one topic.
func (s *ContentService) ReorderSections(ctx context.Context, topicID int64, ids []int64) error {
	if err := s.sections.Reorder(ctx, topicID, ids); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// --- Item writes ---

// CreateItem appends an item to a section.
func (s *ContentService) CreateItem(ctx context.Context, item *data.SectionItem) (int64, error) {
	id, err := s.items.Create(ctx, item)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return id, nil
}

// UpdateItem rewrites an item's fields.
func (s *ContentService) UpdateItem(ctx context.Context, item *data.SectionItem) error {
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteItem deletes an item.
func (s *ContentService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ReorderItems rewrites item display orders within one section.
func (s *ContentService) ReorderItems(ctx context.Context, sectionID int64, ids []int64) error {
	if err := s.items.Reorder(ctx, sectionID, ids); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// invalidate drops every cached read view after a successful write.
func (s *ContentService) invalidate() {
	_ = s.cache.DeletePrefix(cachePrefix)
}
