package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/pkg/metrics"
	"github.com/user/scraper-service/pkg/utils"
)

// MaxDocumentSize is the upstream-declared ceiling on uploaded documents.
const MaxDocumentSize = 50 * 1024 * 1024 // 50MB

// ErrInvalidContentType is returned for a content type outside the supported set.
var ErrInvalidContentType = errors.New("unsupported content type")

// Scraper defines the interface for extracting a single source into
// normalized content items.
type Scraper interface {
	// ScrapeURL reads one web page, normalizes it into a ContentItem and
	// persists it. contentType defaults to "blog" when empty.
	ScrapeURL(ctx context.Context, url, teamID, userID, contentType string) (*entity.ContentItem, error)
	// ScrapeDocument parses an uploaded document into zero or more
	// persisted items, one per extracted section. Zero sections and
	// unparsable documents both yield an empty result, not an error;
	// only oversized input is rejected.
	ScrapeDocument(ctx context.Context, filename string, data []byte, teamID, userID string) ([]*entity.ContentItem, error)
}

type scraperUseCase struct {
	reader        repository.PageReader
	parser        repository.DocumentParser
	knowledgeRepo repository.KnowledgeRepository
}

// NewScraper creates a new Scraper use case.
func NewScraper(
	reader repository.PageReader,
	parser repository.DocumentParser,
	knowledgeRepo repository.KnowledgeRepository,
) Scraper {
	return &scraperUseCase{
		reader:        reader,
		parser:        parser,
		knowledgeRepo: knowledgeRepo,
	}
}

func (uc *scraperUseCase) ScrapeURL(ctx context.Context, url, teamID, userID, contentType string) (*entity.ContentItem, error) {
	if contentType == "" {
		contentType = entity.ContentTypeBlog
	}
	if !entity.ValidContentType(contentType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}

	page, err := readPage(ctx, uc.reader, url)
	if err != nil {
		return nil, err
	}

	item := itemFromPage(page, teamID, userID, contentType)
	if err := uc.knowledgeRepo.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to persist item for %s: %w", url, err)
	}
	metrics.ItemsPersistedTotal.Inc()

	return item, nil
}

func (uc *scraperUseCase) ScrapeDocument(ctx context.Context, filename string, data []byte, teamID, userID string) ([]*entity.ContentItem, error) {
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %d bytes", repository.ErrDocumentTooLarge, len(data))
	}

	startTime := time.Now()
	sections, err := uc.parser.Parse(ctx, filename, data)
	metrics.ExtractionDuration.WithLabelValues(entity.MethodDocumentParser).Observe(time.Since(startTime).Seconds())
	if err != nil {
		// An unparsable document is reported as an empty extraction, not
		// a request failure; only the size cap above rejects outright.
		metrics.ExtractionsTotal.WithLabelValues(entity.MethodDocumentParser, "failure").Inc()
		slog.Warn("Document parsing failed, returning empty result", "filename", filename, "error", err)
		return []*entity.ContentItem{}, nil
	}
	metrics.ExtractionsTotal.WithLabelValues(entity.MethodDocumentParser, "success").Inc()

	if len(sections) == 0 {
		slog.Info("Document yielded no extractable content", "filename", filename)
		return []*entity.ContentItem{}, nil
	}

	items := make([]*entity.ContentItem, 0, len(sections))
	for _, section := range sections {
		item := &entity.ContentItem{
			ID:               uuid.NewString(),
			TeamID:           teamID,
			UserID:           userID,
			Title:            section.Title,
			Content:          section.Content,
			ContentType:      entity.ContentTypePDFSection,
			WordCount:        entity.CountWords(section.Content),
			ExtractionMethod: entity.MethodDocumentParser,
			CreatedAt:        time.Now().UTC(),
		}
		if err := uc.knowledgeRepo.Put(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to persist section %q of %s: %w", section.Title, filename, err)
		}
		metrics.ItemsPersistedTotal.Inc()
		items = append(items, item)
	}

	return items, nil
}

// readPage invokes the page-reading capability with extraction metrics and
// enforces the non-empty content invariant.
func readPage(ctx context.Context, reader repository.PageReader, url string) (*entity.Page, error) {
	startTime := time.Now()
	page, err := reader.Read(ctx, url)
	metrics.ExtractionDuration.WithLabelValues(entity.MethodPageReader).Observe(time.Since(startTime).Seconds())

	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(entity.MethodPageReader, "failure").Inc()
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrPageUnreachable, url, err)
	}
	if len(page.Text) == 0 {
		metrics.ExtractionsTotal.WithLabelValues(entity.MethodPageReader, "failure").Inc()
		return nil, fmt.Errorf("%w: %s", repository.ErrEmptyContent, url)
	}
	metrics.ExtractionsTotal.WithLabelValues(entity.MethodPageReader, "success").Inc()
	return page, nil
}

// itemFromPage normalizes a fetched page into a ContentItem.
func itemFromPage(page *entity.Page, teamID, userID, contentType string) *entity.ContentItem {
	title := page.Title
	if title == "" {
		title = utils.TitleFromURL(page.URL)
	}
	return &entity.ContentItem{
		ID:               uuid.NewString(),
		TeamID:           teamID,
		UserID:           userID,
		Title:            title,
		Content:          page.Text,
		ContentType:      contentType,
		SourceURL:        page.URL,
		Author:           page.Author,
		WordCount:        entity.CountWords(page.Text),
		ExtractionMethod: entity.MethodPageReader,
		CreatedAt:        time.Now().UTC(),
	}
}
