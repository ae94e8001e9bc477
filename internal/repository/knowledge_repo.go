package repository

import (
	"context"

	"github.com/user/scraper-service/internal/entity"
)

// KnowledgeRepository defines the interface for the team-scoped durable
// store of content items.
type KnowledgeRepository interface {
	// Put stores a new item. Every call inserts a fresh row; no
	// content-based deduplication happens at this layer.
	Put(ctx context.Context, item *entity.ContentItem) error
	// List retrieves all items for a team, newest first. userID narrows
	// the result to one attributing user when non-empty.
	List(ctx context.Context, teamID, userID string) ([]*entity.ContentItem, error)
	// Delete removes the item matching both id and teamID. It returns
	// ErrNotFound when no such item is owned by the team, even if the id
	// exists under a different team.
	Delete(ctx context.Context, id, teamID string) error
}

// StatusRepository stores client liveness pings.
type StatusRepository interface {
	Save(ctx context.Context, check *entity.StatusCheck) error
	FindAll(ctx context.Context, limit int) ([]*entity.StatusCheck, error)
}
