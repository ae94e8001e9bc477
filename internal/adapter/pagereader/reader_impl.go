package pagereader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/scraper-service/internal/entity"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPReader reads pages with a plain HTTP fetch and static HTML parsing.
type HTTPReader struct {
	client *http.Client
}

// NewHTTPReader creates a new HTTP page reader with the given fetch timeout.
func NewHTTPReader(timeout time.Duration) *HTTPReader {
	return &HTTPReader{
		client: &http.Client{Timeout: timeout},
	}
}

// Read fetches a URL and extracts its text, metadata and outbound links.
func (r *HTTPReader) Read(ctx context.Context, rawURL string) (*entity.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "html") {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ParseHTML(resp.Request.URL.String(), string(body))
}

// ParseHTML extracts a Page from raw HTML: title, meta author, whitespace
// collapsed body text and the raw outbound hrefs in document order. Link
// resolution and dedup are left to discovery.
func ParseHTML(url, html string) (*entity.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	page := &entity.Page{URL: url}
	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if val, exists := doc.Find("meta[name='author']").Attr("content"); exists {
		page.Author = strings.TrimSpace(val)
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists {
			page.Links = append(page.Links, strings.TrimSpace(href))
		}
	})

	doc.Find("script, style, noscript").Remove()
	page.Text = strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	return page, nil
}
