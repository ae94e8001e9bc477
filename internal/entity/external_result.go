package entity

import "time"

// ExternalCrawlResult is one item surfaced by the external crawler child
// process. Category is an open-ended label assigned by the child's link
// classifier and is deliberately not constrained to the ContentItem
// content-type enum.
type ExternalCrawlResult struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	CapturedAt time.Time `json:"captured_at"`
}
