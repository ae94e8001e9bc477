package entity

import (
	"strings"
	"time"
)

// Allowed values for ContentItem.ContentType.
const (
	ContentTypeBlog       = "blog"
	ContentTypeGuide      = "guide"
	ContentTypeArticle    = "article"
	ContentTypePDFSection = "pdf-section"
)

// Extraction methods recorded on stored items.
const (
	MethodPageReader      = "page-reader"
	MethodDocumentParser  = "document-parser"
	MethodExternalCrawler = "external-crawler"
)

// ContentItem mirrors the `content_items` PostgreSQL table schema.
// Items are immutable once stored; a re-scrape creates a new row.
type ContentItem struct {
	ID               string
	TeamID           string
	UserID           string
	Title            string
	Content          string
	ContentType      string
	SourceURL        string
	Author           string
	WordCount        int
	ExtractionMethod string
	CreatedAt        time.Time
}

// ValidContentType reports whether ct is one of the supported content types.
func ValidContentType(ct string) bool {
	switch ct {
	case ContentTypeBlog, ContentTypeGuide, ContentTypeArticle, ContentTypePDFSection:
		return true
	}
	return false
}

// CountWords returns the whitespace-token count used for WordCount.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
