package repository

import (
	"context"

	"github.com/user/scraper-service/internal/entity"
)

// CrawlOutput is everything an external crawl run produced: the parsed
// results plus the child's full stdout and stderr streams, returned verbatim
// for observability.
type CrawlOutput struct {
	Results []entity.ExternalCrawlResult
	Stdout  string
	Stderr  string
}

// ExternalCrawler defines the contract for the delegated high-throughput
// crawler. The call blocks until the child process completes, fails or is
// killed on timeout; failures are reported as *BridgeError.
type ExternalCrawler interface {
	Run(ctx context.Context, url string, maxLinks int) (*CrawlOutput, error)
}
