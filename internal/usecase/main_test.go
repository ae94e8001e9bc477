package usecase

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

// fakeReader serves canned pages keyed by URL and counts reads per URL.
type fakeReader struct {
	mu    sync.Mutex
	pages map[string]*entity.Page
	errs  map[string]error
	reads map[string]int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		pages: make(map[string]*entity.Page),
		errs:  make(map[string]error),
		reads: make(map[string]int),
	}
}

func (f *fakeReader) Read(ctx context.Context, url string) (*entity.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[url]++
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return nil, errors.New("no such page")
}

func (f *fakeReader) readCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[url]
}

// fakeKnowledgeRepo records puts in memory.
type fakeKnowledgeRepo struct {
	mu     sync.Mutex
	items  []*entity.ContentItem
	putErr map[string]error // keyed by SourceURL
}

func newFakeKnowledgeRepo() *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{putErr: make(map[string]error)}
}

func (f *fakeKnowledgeRepo) Put(ctx context.Context, item *entity.ContentItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.putErr[item.SourceURL]; ok {
		return err
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeKnowledgeRepo) List(ctx context.Context, teamID, userID string) ([]*entity.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, nil
}

func (f *fakeKnowledgeRepo) Delete(ctx context.Context, id, teamID string) error {
	return repository.ErrNotFound
}

func (f *fakeKnowledgeRepo) stored() []*entity.ContentItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.ContentItem(nil), f.items...)
}

// fakeParser returns canned sections or an error.
type fakeParser struct {
	sections []entity.DocumentSection
	err      error
}

func (f *fakeParser) Parse(ctx context.Context, filename string, data []byte) ([]entity.DocumentSection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sections, nil
}
