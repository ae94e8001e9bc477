package request

// ScrapeURLRequest is the body of POST /api/scrape-url.
type ScrapeURLRequest struct {
	URL         string `json:"url"`
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// BulkScrapeRequest is the body of POST /api/bulk-scrape. MaxDepth is
// accepted for contract compatibility but discovery never recurses past
// directly-linked pages; IncludeBaseURL defaults to true when omitted.
type BulkScrapeRequest struct {
	URL            string `json:"url"`
	TeamID         string `json:"team_id"`
	UserID         string `json:"user_id,omitempty"`
	MaxDepth       int    `json:"max_depth,omitempty"`
	MaxLinks       int    `json:"max_links,omitempty"`
	IncludeBaseURL *bool  `json:"include_base_url,omitempty"`
}

// StatusCheckRequest is the body of POST /api/status.
type StatusCheckRequest struct {
	ClientName string `json:"client_name"`
}
