package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrSeedUnreachable aborts a bulk job whose seed page cannot be
	// fetched; no partial result is possible without a seed.
	ErrSeedUnreachable = errors.New("seed page is unreachable")
	// ErrNothingToScrape is returned when a bulk job produced zero items
	// and discovery found zero links.
	ErrNothingToScrape = errors.New("no links discovered and no content extracted")
)

// BulkRequest describes one bulk crawl invocation.
type BulkRequest struct {
	SeedURL     string
	TeamID      string
	UserID      string
	MaxLinks    int // 0 means DefaultMaxLinks
	IncludeBase bool
}

// CrawlFailure records one link that could not be turned into an item.
type CrawlFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// BulkResult aggregates a bulk crawl: successfully persisted items in
// discovery order, plus per-link failures.
type BulkResult struct {
	TeamID   string
	Items    []*entity.ContentItem
	Failures []CrawlFailure
}

// BulkScraper drives link discovery and extraction over a seed page,
// tolerating per-link failure.
type BulkScraper interface {
	BulkScrape(ctx context.Context, req BulkRequest) (*BulkResult, error)
}

type bulkUseCase struct {
	reader        repository.PageReader
	knowledgeRepo repository.KnowledgeRepository
	concurrency   int
}

// NewBulkScraper creates the bulk crawl orchestrator. concurrency bounds the
// extraction fan-out.
func NewBulkScraper(
	reader repository.PageReader,
	knowledgeRepo repository.KnowledgeRepository,
	concurrency int,
) BulkScraper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &bulkUseCase{
		reader:        reader,
		knowledgeRepo: knowledgeRepo,
		concurrency:   concurrency,
	}
}

// slot holds the outcome for one target, indexed by discovery position so
// the aggregate stays in discovery order regardless of completion timing.
type slot struct {
	item    *entity.ContentItem
	failure *CrawlFailure
}

func (uc *bulkUseCase) BulkScrape(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	maxLinks := req.MaxLinks
	if maxLinks == 0 {
		maxLinks = DefaultMaxLinks
	}
	if maxLinks < 1 || maxLinks > MaxLinksCeiling {
		return nil, ErrInvalidMaxLinks
	}

	// The seed is fetched exactly once, and at this point only for its
	// links. A seed with no body text still drives discovery; its text is
	// checked later, when include_base_url turns the seed into an item.
	seedPage, err := uc.reader.Read(ctx, req.SeedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeedUnreachable, err)
	}

	discovered, err := Discover(req.SeedURL, seedPage.Links, maxLinks)
	if err != nil {
		return nil, err
	}
	slog.Info("Link discovery complete", "seed", req.SeedURL, "discovered", len(discovered), "max_links", maxLinks)

	targets := discovered
	if req.IncludeBase {
		targets = append([]string{req.SeedURL}, discovered...)
	}

	slots := make([]slot, len(targets))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			page := seedPage
			if req.IncludeBase && i == 0 {
				if len(page.Text) == 0 {
					slots[i].failure = &CrawlFailure{URL: target, Reason: fmt.Sprintf("%v: %s", repository.ErrEmptyContent, target)}
					return nil
				}
			} else {
				var readErr error
				page, readErr = readPage(gCtx, uc.reader, target)
				if readErr != nil {
					slots[i].failure = &CrawlFailure{URL: target, Reason: readErr.Error()}
					return nil
				}
			}

			item := itemFromPage(page, req.TeamID, req.UserID, entity.ContentTypeBlog)
			if err := uc.knowledgeRepo.Put(gCtx, item); err != nil {
				slog.Warn("Failed to persist bulk item", "url", target, "error", err)
				slots[i].failure = &CrawlFailure{URL: target, Reason: fmt.Sprintf("persistence failed: %v", err)}
				return nil
			}
			metrics.ItemsPersistedTotal.Inc()
			slots[i].item = item
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{TeamID: req.TeamID}
	for _, s := range slots {
		switch {
		case s.item != nil:
			result.Items = append(result.Items, s.item)
		case s.failure != nil:
			result.Failures = append(result.Failures, *s.failure)
		}
	}

	if len(result.Items) == 0 && len(discovered) == 0 {
		return nil, ErrNothingToScrape
	}

	slog.Info("Bulk scrape complete",
		"seed", req.SeedURL,
		"items", len(result.Items),
		"failures", len(result.Failures),
	)
	return result, nil
}
