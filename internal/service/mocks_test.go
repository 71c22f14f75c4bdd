//go:build unit

package service

import (
	"context"
	"strings"
	"time"

	"go-cheatsheets-app/internal/data"
)

// mockCategoryRepository is an in-memory CategoryRepository.
type mockCategoryRepository struct {
	categories   []*data.Category
	errToReturn  error
	deleteCalled bool
	lastReorder  []int64
}

var _ CategoryRepository = (*mockCategoryRepository)(nil)

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]*data.Category, error) {
	return m.categories, m.errToReturn
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, name string, displayOrder *int) (int64, error) {
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	order := len(m.categories)
	if displayOrder != nil {
		order = *displayOrder
	}
	id := int64(len(m.categories) + 1)
	m.categories = append(m.categories, &data.Category{ID: id, Name: name, DisplayOrder: order})
	return id, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, id int64, name string, displayOrder int) error {
	return m.errToReturn
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.errToReturn
}

func (m *mockCategoryRepository) Reorder(ctx context.Context, ids []int64) error {
	m.lastReorder = ids
	return m.errToReturn
}

// mockTopicRepository is an in-memory TopicRepository.
type mockTopicRepository struct {
	topics      []*data.Topic
	counts      map[int64]int
	errToReturn error
}

var _ TopicRepository = (*mockTopicRepository)(nil)

func (m *mockTopicRepository) GetAll(ctx context.Context) ([]*data.Topic, error) {
	return m.topics, m.errToReturn
}

func (m *mockTopicRepository) GetAllPublished(ctx context.Context) ([]*data.Topic, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	published := []*data.Topic{}
	for _, t := range m.topics {
		if t.IsPublished {
			published = append(published, t)
		}
	}
	return published, nil
}

func (m *mockTopicRepository) GetBySlug(ctx context.Context, slug string) (*data.Topic, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, t := range m.topics {
		if t.Slug == slug && t.IsPublished {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTopicRepository) GetByID(ctx context.Context, id int64) (*data.Topic, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, t := range m.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTopicRepository) GetByCategory(ctx context.Context, categoryID int64) ([]*data.Topic, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	topics := []*data.Topic{}
	for _, t := range m.topics {
		if t.CategoryID == categoryID {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

func (m *mockTopicRepository) GetPublishedByCategory(ctx context.Context, categoryID int64) ([]*data.Topic, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	topics := []*data.Topic{}
	for _, t := range m.topics {
		if t.CategoryID == categoryID && t.IsPublished {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

func (m *mockTopicRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	return m.counts[categoryID], nil
}

func (m *mockTopicRepository) Create(ctx context.Context, topic *data.Topic) (int64, error) {
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	topic.ID = int64(len(m.topics) + 1)
	m.topics = append(m.topics, topic)
	return topic.ID, nil
}

func (m *mockTopicRepository) Update(ctx context.Context, topic *data.Topic) error {
	return m.errToReturn
}

func (m *mockTopicRepository) SetLogo(ctx context.Context, id int64, filename *string) error {
	return m.errToReturn
}

func (m *mockTopicRepository) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

func (m *mockTopicRepository) Reorder(ctx context.Context, categoryID int64, ids []int64) error {
	return m.errToReturn
}

// mockSectionRepository serves sections keyed by topic.
type mockSectionRepository struct {
	byTopic     map[int64][]*data.Section
	errToReturn error
}

var _ SectionRepository = (*mockSectionRepository)(nil)

func (m *mockSectionRepository) GetByTopic(ctx context.Context, topicID int64) ([]*data.Section, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.byTopic[topicID], nil
}

func (m *mockSectionRepository) GetByID(ctx context.Context, id int64) (*data.Section, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, sections := range m.byTopic {
		for _, s := range sections {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return nil, nil
}

func (m *mockSectionRepository) Create(ctx context.Context, title string, topicID int64) (int64, error) {
	return 1, m.errToReturn
}

func (m *mockSectionRepository) Update(ctx context.Context, id int64, title string, displayOrder int) error {
	return m.errToReturn
}

func (m *mockSectionRepository) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

func (m *mockSectionRepository) Reorder(ctx context.Context, topicID int64, ids []int64) error {
	return m.errToReturn
}

// mockSectionItemRepository serves items keyed by section.
type mockSectionItemRepository struct {
	bySection   map[int64][]*data.SectionItem
	errToReturn error
}

var _ SectionItemRepository = (*mockSectionItemRepository)(nil)

func (m *mockSectionItemRepository) GetBySection(ctx context.Context, sectionID int64) ([]*data.SectionItem, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.bySection[sectionID], nil
}

func (m *mockSectionItemRepository) GetByID(ctx context.Context, id int64) (*data.SectionItem, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, items := range m.bySection {
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return nil, nil
}

func (m *mockSectionItemRepository) Create(ctx context.Context, item *data.SectionItem) (int64, error) {
	return 1, m.errToReturn
}

func (m *mockSectionItemRepository) Update(ctx context.Context, item *data.SectionItem) error {
	return m.errToReturn
}

func (m *mockSectionItemRepository) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

func (m *mockSectionItemRepository) Reorder(ctx context.Context, sectionID int64, ids []int64) error {
	return m.errToReturn
}

// mockViewCache is an in-memory ViewCache that records invalidations.
type mockViewCache struct {
	store           map[string][]byte
	deletedPrefixes []string
}

var _ ViewCache = (*mockViewCache)(nil)

func newMockViewCache() *mockViewCache {
	return &mockViewCache{store: map[string][]byte{}}
}

func (m *mockViewCache) Get(key string) ([]byte, error) {
	return m.store[key], nil
}

func (m *mockViewCache) Set(key string, value []byte, ttl time.Duration) error {
	m.store[key] = value
	return nil
}

func (m *mockViewCache) DeletePrefix(prefix string) error {
	m.deletedPrefixes = append(m.deletedPrefixes, prefix)
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}
