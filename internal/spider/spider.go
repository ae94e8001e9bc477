package spider

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/internal/usecase"
)

// Spider is the delegated high-throughput crawler: it collects links from a
// seed page, asks the classifier which are worth fetching and extracts the
// survivors. It runs as its own process; the service talks to it only
// through the bridge.
type Spider struct {
	reader     repository.PageReader
	classifier *Classifier
}

// New creates a spider over the given page reader and classifier.
func New(reader repository.PageReader, classifier *Classifier) *Spider {
	return &Spider{reader: reader, classifier: classifier}
}

// Crawl runs one crawl from seedURL and returns the extracted results.
// Per-link failures are logged and skipped; only an unreachable seed fails
// the whole run.
func (s *Spider) Crawl(ctx context.Context, seedURL string, maxLinks int) ([]entity.ExternalCrawlResult, error) {
	seed, err := s.reader.Read(ctx, seedURL)
	if err != nil {
		return nil, err
	}

	links, err := usecase.Discover(seedURL, seed.Links, maxLinks)
	if err != nil {
		return nil, err
	}
	slog.Info("Collected candidate links", "seed", seedURL, "count", len(links))

	results := make([]entity.ExternalCrawlResult, 0, len(links))
	for _, link := range links {
		isArticle := s.classifier.IsArticle(ctx, link)
		slog.Info("Classified link", "url", link, "is_article", isArticle)
		if !isArticle {
			continue
		}

		page, err := s.reader.Read(ctx, link)
		if err != nil {
			slog.Warn("Failed to fetch classified link", "url", link, "error", err)
			continue
		}
		if page.Text == "" {
			slog.Warn("Classified link held no text", "url", link)
			continue
		}

		results = append(results, entity.ExternalCrawlResult{
			URL:        page.URL,
			Title:      page.Title,
			Content:    page.Text,
			Category:   "article",
			CapturedAt: time.Now().UTC(),
		})
	}

	return results, nil
}
