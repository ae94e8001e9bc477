package spiderbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
)

// Bridge manages the lifecycle of the external crawler child process:
// invocation, wall-clock timeout, full output capture and result parsing.
type Bridge struct {
	bin     string
	timeout time.Duration
}

// NewBridge creates a bridge around the given crawler binary.
func NewBridge(bin string, timeout time.Duration) *Bridge {
	return &Bridge{bin: bin, timeout: timeout}
}

// Run spawns the external crawler for one seed URL and blocks until it
// completes, fails or is killed on timeout. The child performs its own link
// discovery, fetching and classification, and writes its result JSON to a
// file the bridge provides; stdout and stderr stay pure log streams and are
// captured verbatim, success or not.
func (b *Bridge) Run(ctx context.Context, url string, maxLinks int) (*repository.CrawlOutput, error) {
	binPath, err := exec.LookPath(b.bin)
	if err != nil {
		return nil, &repository.BridgeError{Kind: repository.BridgeUnavailable, Err: err}
	}

	resultFile, err := os.CreateTemp("", "crawl-results-*.json")
	if err != nil {
		return nil, err
	}
	resultFile.Close()
	defer os.Remove(resultFile.Name())

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binPath,
		"-url", url,
		"-max-links", strconv.Itoa(maxLinks),
		"-o", resultFile.Name(),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Bounds how long Wait blocks on output pipes after the kill signal.
	cmd.WaitDelay = 5 * time.Second

	slog.Info("Starting external crawler", "bin", binPath, "url", url, "max_links", maxLinks)
	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		slog.Error("External crawler timed out, child killed", "url", url, "timeout", b.timeout)
		return nil, &repository.BridgeError{
			Kind:   repository.BridgeTimeout,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    runCtx.Err(),
		}
	}

	if runErr != nil {
		bridgeErr := &repository.BridgeError{
			Kind:   repository.BridgeChildFailed,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    runErr,
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			bridgeErr.ExitCode = exitErr.ExitCode()
		}
		return nil, bridgeErr
	}

	results, err := parseResults(resultFile.Name())
	if err != nil {
		return nil, &repository.BridgeError{
			Kind:   repository.BridgeMalformedOutput,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return &repository.CrawlOutput{
		Results: results,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}, nil
}

func parseResults(path string) ([]entity.ExternalCrawlResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("crawler wrote no result document")
	}

	var results []entity.ExternalCrawlResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}
	return results, nil
}
