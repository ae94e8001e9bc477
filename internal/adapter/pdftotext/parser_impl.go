package pdftotext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/user/scraper-service/internal/entity"
)

// ErrToolNotFound is returned when the pdftotext binary is not installed.
var ErrToolNotFound = errors.New("pdftotext not found in PATH (install poppler: brew install poppler / apt install poppler-utils)")

// CommandRunner executes an external command and returns its stdout.
// Injected so tests can substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	Available() error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execRunner) Available() error {
	return CheckAvailable()
}

// Parser extracts text from PDF documents by shelling out to pdftotext.
type Parser struct {
	runner CommandRunner
}

// New creates a new PDF parser using the system pdftotext binary.
func New() *Parser {
	return &Parser{runner: execRunner{}}
}

// NewWithRunner creates a parser with an injected command runner.
func NewWithRunner(runner CommandRunner) *Parser {
	return &Parser{runner: runner}
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrToolNotFound
	}
	return nil
}

// Parse converts PDF bytes into titled sections, one per non-empty page
// group. A PDF with no extractable text yields zero sections and no error.
func (p *Parser) Parse(ctx context.Context, filename string, data []byte) ([]entity.DocumentSection, error) {
	if err := p.runner.Available(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	// "-" sends the extracted text to stdout; pages arrive separated by
	// form feeds.
	out, err := p.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	return sectionsFromText(string(out), filename), nil
}

// sectionsFromText splits pdftotext output on form feeds and turns each
// non-empty page into a titled section.
func sectionsFromText(text, filename string) []entity.DocumentSection {
	var sections []entity.DocumentSection
	for _, chunk := range strings.Split(text, "\f") {
		content := strings.TrimSpace(chunk)
		if content == "" {
			continue
		}
		sections = append(sections, entity.DocumentSection{
			Title:   extractTitle(content, filename),
			Content: content,
		})
	}
	return sections
}

// extractTitle picks the first reasonably short non-empty line as the
// section title, falling back to the cleaned filename.
func extractTitle(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 200 {
			continue
		}
		return line
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}
