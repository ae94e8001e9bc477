package response

import (
	"time"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/usecase"
)

// ContentItem is the wire representation of a stored content item.
type ContentItem struct {
	ID               string    `json:"id"`
	TeamID           string    `json:"team_id"`
	UserID           string    `json:"user_id,omitempty"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ContentType      string    `json:"content_type"`
	SourceURL        string    `json:"source_url,omitempty"`
	Author           string    `json:"author,omitempty"`
	WordCount        int       `json:"word_count"`
	ExtractionMethod string    `json:"extraction_method"`
	CreatedAt        time.Time `json:"created_at"`
}

// FromItem converts a stored item into its wire form.
func FromItem(item *entity.ContentItem) ContentItem {
	return ContentItem{
		ID:               item.ID,
		TeamID:           item.TeamID,
		UserID:           item.UserID,
		Title:            item.Title,
		Content:          item.Content,
		ContentType:      item.ContentType,
		SourceURL:        item.SourceURL,
		Author:           item.Author,
		WordCount:        item.WordCount,
		ExtractionMethod: item.ExtractionMethod,
		CreatedAt:        item.CreatedAt,
	}
}

// FromItems converts a slice of stored items, never returning nil so empty
// result sets encode as [] rather than null.
func FromItems(items []*entity.ContentItem) []ContentItem {
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

// ScrapeResponse is the envelope for single-source scrape operations.
type ScrapeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *ContentItem `json:"data,omitempty"`
}

// BulkScrapeResponse aggregates a bulk crawl for the caller: persisted
// items in discovery order plus per-link failures.
type BulkScrapeResponse struct {
	TeamID   string                 `json:"team_id"`
	Items    []ContentItem          `json:"items"`
	Failures []usecase.CrawlFailure `json:"failures,omitempty"`
}

// DocumentScrapeResponse is the envelope for document uploads.
type DocumentScrapeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Items   []ContentItem `json:"items"`
}

// ExternalCrawlResponse carries external crawl results along with the
// child's captured log streams.
type ExternalCrawlResponse struct {
	Results       []entity.ExternalCrawlResult `json:"results"`
	CrawlerStdout string                       `json:"crawler_stdout"`
	CrawlerStderr string                       `json:"crawler_stderr"`
}
