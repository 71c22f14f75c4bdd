package service

import (
	"context"
	"strings"

	"go-cheatsheets-app/internal/data"
)

// TopicRef is the lightweight topic envelope returned by search.
type TopicRef struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemRef is the lightweight item reference returned by search.
type ItemRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// SectionResult is a section included in a search result.
type SectionResult struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Items []ItemRef `json:"items"`
}

// SearchResult is one topic's contribution to a search response.
// MatchType is "topic" when the topic's own title or description
// matched, and "content" when only descendant sections or items did.
type SearchResult struct {
	Topic     TopicRef        `json:"topic"`
	Sections  []SectionResult `json:"sections"`
	MatchType string          `json:"match_type"`
}

// SearchService scans every published topic's full hierarchy for a
// case-insensitive substring. It is a deliberate linear scan with no
// index and no ranking; result order follows topic iteration order.
type SearchService struct {
	topics   TopicRepository
	sections SectionRepository
	items    SectionItemRepository
}

// NewSearchService creates a SearchService over the content repositories.
func NewSearchService(topics TopicRepository, sections SectionRepository, items SectionItemRepository) *SearchService {
	return &SearchService{topics: topics, sections: sections, items: items}
}

// Search returns every published topic that matches the query, directly
// or through its sections and items.
//
// A topic whose title or description contains the query is returned
// with ALL of its sections and ALL of their items. A topic that does
// not match itself is returned only if some section title matches or
// some item matches on title or content; in that case only the
// qualifying sections are attached, and a non-matching section carries
// only its matching items. Topics with neither are omitted.
//
// The query is trimmed and case-folded; an empty query yields an empty
// result set, not an error.
func (s *SearchService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	results := []SearchResult{}
	if query == "" {
		return results, nil
	}

	topics, err := s.topics.GetAllPublished(ctx)
	if err != nil {
		return nil, err
	}

	for _, topic := range topics {
		topicMatches := strings.Contains(strings.ToLower(topic.Title), query) ||
			strings.Contains(strings.ToLower(topic.Description), query)

		sections, err := s.sections.GetByTopic(ctx, topic.ID)
		if err != nil {
			return nil, err
		}

		matched := make([]SectionResult, 0, len(sections))
		for _, section := range sections {
			items, err := s.items.GetBySection(ctx, section.ID)
			if err != nil {
				return nil, err
			}

			if topicMatches {
				// Full dump: every section with every item.
				matched = append(matched, SectionResult{
					ID:    section.ID,
					Title: section.Title,
					Items: itemRefs(items),
				})
				continue
			}

			sectionMatches := strings.Contains(strings.ToLower(section.Title), query)
			matchingItems := []ItemRef{}
			for _, item := range items {
				if strings.Contains(strings.ToLower(item.Title), query) ||
					strings.Contains(strings.ToLower(item.MarkdownContent), query) {
					matchingItems = append(matchingItems, ItemRef{ID: item.ID, Title: item.Title})
				}
			}

			if sectionMatches || len(matchingItems) > 0 {
				matched = append(matched, SectionResult{
					ID:    section.ID,
					Title: section.Title,
					Items: matchingItems,
				})
			}
		}

		switch {
		case topicMatches:
			results = append(results, SearchResult{
				Topic:     topicRef(topic),
				Sections:  matched,
				MatchType: "topic",
			})
		case len(matched) > 0:
			results = append(results, SearchResult{
				Topic:     topicRef(topic),
				Sections:  matched,
				MatchType: "content",
			})
		}
	}

	return results, nil
}

func topicRef(topic *data.Topic) TopicRef {
	return TopicRef{ID: topic.ID, Slug: topic.Slug, Title: topic.Title, Description: topic.Description}
}

func itemRefs(items []*data.SectionItem) []ItemRef {
	refs := make([]ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, ItemRef{ID: item.ID, Title: item.Title})
	}
	return refs
}
