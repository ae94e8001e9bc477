package chromereader

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/user/scraper-service/internal/adapter/pagereader"
	"github.com/user/scraper-service/internal/entity"
)

// Reader reads pages through a headless browser, for sites that only render
// their content client side. The extracted HTML goes through the same
// parsing as the plain HTTP reader.
type Reader struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

// NewReader creates a new headless-browser page reader.
func NewReader(maxConcurrency int, pageLoadTimeout time.Duration) *Reader {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < maxConcurrency; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &Reader{
		allocatorPool: pool,
		timeout:       pageLoadTimeout,
	}
}

// Read navigates to a URL, waits for the document to render and parses the
// resulting HTML.
func (r *Reader) Read(ctx context.Context, url string) (*entity.Page, error) {
	allocCtx := r.allocatorPool.Get().(context.Context)
	defer r.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, r.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, err
	}

	return pagereader.ParseHTML(url, html)
}
