package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/scraper-service/internal/delivery/http/handler"
	"github.com/user/scraper-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("POST /api/status", h.HandleCreateStatus)
	mux.HandleFunc("GET /api/status", h.HandleListStatus)

	mux.HandleFunc("POST /api/scrape-url", h.HandleScrapeURL)
	mux.HandleFunc("POST /api/bulk-scrape", h.HandleBulkScrape)
	mux.HandleFunc("POST /api/scrape-document", h.HandleScrapeDocument)
	mux.HandleFunc("GET /api/external-crawl", h.HandleExternalCrawl)

	mux.HandleFunc("GET /api/knowledge-base", h.HandleListKnowledge)
	mux.HandleFunc("DELETE /api/knowledge-base/{id}", h.HandleDeleteKnowledge)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
