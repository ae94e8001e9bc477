package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/scraper-service/internal/entity"
)

func seedPageWith(links ...string) *entity.Page {
	return &entity.Page{
		URL:   "https://example.com",
		Title: "Seed",
		Text:  "seed body",
		Links: links,
	}
}

func TestBulkScrape_SeedUnreachableAbortsRun(t *testing.T) {
	reader := newFakeReader()
	reader.errs["https://example.com"] = errors.New("dns failure")
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	_, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	assert.ErrorIs(t, err, ErrSeedUnreachable)
}

func TestBulkScrape_RejectsOutOfRangeMaxLinks(t *testing.T) {
	uc := NewBulkScraper(newFakeReader(), newFakeKnowledgeRepo(), 2)

	for _, maxLinks := range []int{-3, MaxLinksCeiling + 1} {
		_, err := uc.BulkScrape(context.Background(), BulkRequest{
			SeedURL:  "https://example.com",
			TeamID:   "team-1",
			MaxLinks: maxLinks,
		})
		assert.ErrorIs(t, err, ErrInvalidMaxLinks, "max_links=%d", maxLinks)
	}
}

func TestBulkScrape_SeedFetchedExactlyOnce(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith("https://example.com/a")
	reader.pages["https://example.com/a"] = &entity.Page{URL: "https://example.com/a", Title: "A", Text: "a body"}
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL:     "https://example.com",
		TeamID:      "team-1",
		IncludeBase: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, reader.readCount("https://example.com"))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Seed", result.Items[0].Title)
	assert.Equal(t, "A", result.Items[1].Title)
}

func TestBulkScrape_ExcludesSeedWhenIncludeBaseFalse(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith("https://example.com/a")
	reader.pages["https://example.com/a"] = &entity.Page{URL: "https://example.com/a", Title: "A", Text: "a body"}
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "A", result.Items[0].Title)
}

func TestBulkScrape_EmptySeedTextStillDrivesDiscovery(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = &entity.Page{
		URL:   "https://example.com",
		Links: []string{"https://example.com/a"},
	}
	reader.pages["https://example.com/a"] = &entity.Page{URL: "https://example.com/a", Title: "A", Text: "a body"}
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "A", result.Items[0].Title)
}

func TestBulkScrape_EmptySeedAsItemIsPerItemFailure(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = &entity.Page{
		URL:   "https://example.com",
		Links: []string{"https://example.com/a"},
	}
	reader.pages["https://example.com/a"] = &entity.Page{URL: "https://example.com/a", Title: "A", Text: "a body"}
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL:     "https://example.com",
		TeamID:      "team-1",
		IncludeBase: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "A", result.Items[0].Title)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://example.com", result.Failures[0].URL)
	assert.Contains(t, result.Failures[0].Reason, "no content")
}

func TestBulkScrape_PerLinkFailureIsIsolated(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith(
		"https://example.com/ok",
		"https://example.com/down",
		"https://example.com/also-ok",
	)
	reader.pages["https://example.com/ok"] = &entity.Page{URL: "https://example.com/ok", Title: "OK", Text: "ok"}
	reader.errs["https://example.com/down"] = errors.New("503")
	reader.pages["https://example.com/also-ok"] = &entity.Page{URL: "https://example.com/also-ok", Title: "Also OK", Text: "ok"}
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 3)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "OK", result.Items[0].Title)
	assert.Equal(t, "Also OK", result.Items[1].Title)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://example.com/down", result.Failures[0].URL)
	assert.NotEmpty(t, result.Failures[0].Reason)
}

func TestBulkScrape_PersistenceFailureBecomesFailureEntry(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith(
		"https://example.com/a",
		"https://example.com/b",
	)
	reader.pages["https://example.com/a"] = &entity.Page{URL: "https://example.com/a", Title: "A", Text: "a"}
	reader.pages["https://example.com/b"] = &entity.Page{URL: "https://example.com/b", Title: "B", Text: "b"}
	repo := newFakeKnowledgeRepo()
	repo.putErr["https://example.com/a"] = errors.New("insert failed")
	uc := NewBulkScraper(reader, repo, 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "B", result.Items[0].Title)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Reason, "persistence failed")
}

func TestBulkScrape_ResultsKeepDiscoveryOrder(t *testing.T) {
	var links []string
	reader := newFakeReader()
	for i := 0; i < 8; i++ {
		url := fmt.Sprintf("https://example.com/p%d", i)
		links = append(links, url)
		reader.pages[url] = &entity.Page{URL: url, Title: fmt.Sprintf("P%d", i), Text: "body"}
	}
	reader.pages["https://example.com"] = seedPageWith(links...)
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 4)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 8)
	for i, item := range result.Items {
		assert.Equal(t, fmt.Sprintf("P%d", i), item.Title)
	}
}

func TestBulkScrape_NothingToAttempt(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith()
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	_, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL: "https://example.com",
		TeamID:  "team-1",
	})
	assert.ErrorIs(t, err, ErrNothingToScrape)
}

func TestBulkScrape_SeedOnlyRunSucceeds(t *testing.T) {
	reader := newFakeReader()
	reader.pages["https://example.com"] = seedPageWith()
	uc := NewBulkScraper(reader, newFakeKnowledgeRepo(), 2)

	result, err := uc.BulkScrape(context.Background(), BulkRequest{
		SeedURL:     "https://example.com",
		TeamID:      "team-1",
		IncludeBase: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Seed", result.Items[0].Title)
}
