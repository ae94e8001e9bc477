package repository

import (
	"errors"
	"fmt"
)

// Extraction failures surfaced by page readers and document parsers.
var (
	ErrPageUnreachable  = errors.New("page could not be fetched")
	ErrEmptyContent     = errors.New("no content could be extracted")
	ErrDocumentTooLarge = errors.New("document exceeds the maximum allowed size")
)

// ErrNotFound is returned by the knowledge repository when no item matches
// both the requested id and the owning team.
var ErrNotFound = errors.New("content item not found")

// Bridge error kinds, distinguishing how an external crawl run failed.
const (
	BridgeTimeout         = "timeout"
	BridgeMalformedOutput = "malformed_output"
	BridgeChildFailed     = "child_failed"
	BridgeUnavailable     = "unavailable"
)

// BridgeError describes a failed external crawler invocation. Stdout and
// Stderr carry the child's captured output even on failure, for diagnosis.
type BridgeError struct {
	Kind     string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *BridgeError) Error() string {
	switch e.Kind {
	case BridgeChildFailed:
		return fmt.Sprintf("external crawler exited with code %d", e.ExitCode)
	case BridgeTimeout:
		return "external crawler timed out"
	case BridgeUnavailable:
		return "external crawler binary not found"
	case BridgeMalformedOutput:
		return "external crawler produced malformed output"
	}
	return "external crawler failed"
}

func (e *BridgeError) Unwrap() error { return e.Err }
