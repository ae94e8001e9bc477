package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/pkg/metrics"
)

// ExternalCrawlRunner delegates large-scale crawling to the external
// crawler process. Results are returned for inspection only and never
// written to the knowledge repository by this path.
type ExternalCrawlRunner interface {
	Run(ctx context.Context, url string, maxLinks int) (*repository.CrawlOutput, error)
}

type externalCrawlUseCase struct {
	crawler repository.ExternalCrawler
}

// NewExternalCrawlRunner creates the external crawl use case.
func NewExternalCrawlRunner(crawler repository.ExternalCrawler) ExternalCrawlRunner {
	return &externalCrawlUseCase{crawler: crawler}
}

func (uc *externalCrawlUseCase) Run(ctx context.Context, url string, maxLinks int) (*repository.CrawlOutput, error) {
	if maxLinks == 0 {
		maxLinks = DefaultMaxLinks
	}
	if maxLinks < 1 || maxLinks > MaxLinksCeiling {
		return nil, ErrInvalidMaxLinks
	}

	output, err := uc.crawler.Run(ctx, url, maxLinks)
	if err != nil {
		var bridgeErr *repository.BridgeError
		if errors.As(err, &bridgeErr) {
			metrics.ExternalCrawlsTotal.WithLabelValues(bridgeErr.Kind).Inc()
		}
		slog.Error("External crawl failed", "url", url, "error", err)
		return nil, err
	}

	metrics.ExternalCrawlsTotal.WithLabelValues("success").Inc()
	metrics.ExtractionsTotal.WithLabelValues(entity.MethodExternalCrawler, "success").Inc()
	slog.Info("External crawl complete", "url", url, "results", len(output.Results))
	return output, nil
}
