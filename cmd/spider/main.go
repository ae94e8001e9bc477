package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/user/scraper-service/internal/adapter/pagereader"
	"github.com/user/scraper-service/internal/spider"
	"github.com/user/scraper-service/internal/usecase"
)

// The spider is launched per crawl by the API service. It logs to stderr
// and writes the result array as JSON to the file given with -o, so the
// parent can read results without parsing log streams.
func main() {
	urlFlag := flag.String("url", "", "seed URL to crawl")
	maxLinks := flag.Int("max-links", usecase.DefaultMaxLinks, "maximum number of links to follow")
	outFlag := flag.String("o", "", "path of the JSON results file")
	timeoutFlag := flag.Int("timeout", 110, "overall crawl timeout in seconds")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *urlFlag == "" || *outFlag == "" {
		slog.Error("Both -url and -o are required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutFlag)*time.Second)
	defer cancel()

	reader := pagereader.NewHTTPReader(30 * time.Second)
	classifier := spider.NewClassifier(os.Getenv("CLASSIFIER_URL"))

	results, err := spider.New(reader, classifier).Crawl(ctx, *urlFlag, *maxLinks)
	if err != nil {
		slog.Error("Crawl failed", "url", *urlFlag, "error", err)
		os.Exit(1)
	}

	data, err := json.Marshal(results)
	if err != nil {
		slog.Error("Failed to encode results", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outFlag, data, 0o644); err != nil {
		slog.Error("Failed to write results file", "path", *outFlag, "error", err)
		os.Exit(1)
	}

	slog.Info("Crawl complete", "url", *urlFlag, "results", len(results))
}
