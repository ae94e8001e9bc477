package repository

import (
	"context"

	"github.com/user/scraper-service/internal/entity"
)

// PageReader defines the contract for the page-reading capability: fetch a
// URL and return its extracted text, metadata and outbound links. Callers
// classify any read failure as ErrPageUnreachable.
type PageReader interface {
	Read(ctx context.Context, url string) (*entity.Page, error)
}

// DocumentParser defines the contract for the document-parsing capability.
// It may return zero, one or many sections; zero sections means the document
// held no extractable content and is not an error.
type DocumentParser interface {
	Parse(ctx context.Context, filename string, data []byte) ([]entity.DocumentSection, error)
}
