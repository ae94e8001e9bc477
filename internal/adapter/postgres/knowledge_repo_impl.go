package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
)

// KnowledgeRepoImpl provides a concrete implementation for the
// KnowledgeRepository interface using PostgreSQL.
type KnowledgeRepoImpl struct {
	db *pgxpool.Pool
}

// NewKnowledgeRepo creates a new instance of KnowledgeRepoImpl.
func NewKnowledgeRepo(db *pgxpool.Pool) *KnowledgeRepoImpl {
	return &KnowledgeRepoImpl{db: db}
}

// Put inserts a new content item. Every call is an independent insert keyed
// by the item's freshly assigned id; no content-based dedup happens here.
func (r *KnowledgeRepoImpl) Put(ctx context.Context, item *entity.ContentItem) error {
	query := `
		INSERT INTO content_items (id, team_id, user_id, title, content, content_type, source_url, author, word_count, extraction_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.TeamID,
		item.UserID,
		item.Title,
		item.Content,
		item.ContentType,
		item.SourceURL,
		item.Author,
		item.WordCount,
		item.ExtractionMethod,
		item.CreatedAt,
	)
	return err
}

// List retrieves all items for a team, newest first, optionally narrowed to
// one attributing user.
func (r *KnowledgeRepoImpl) List(ctx context.Context, teamID, userID string) ([]*entity.ContentItem, error) {
	query := `
		SELECT id, team_id, user_id, title, content, content_type, source_url, author, word_count, extraction_method, created_at
		FROM content_items
		WHERE team_id = $1 AND ($2 = '' OR user_id = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, teamID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.ContentItem
	for rows.Next() {
		var item entity.ContentItem
		if err := rows.Scan(
			&item.ID,
			&item.TeamID,
			&item.UserID,
			&item.Title,
			&item.Content,
			&item.ContentType,
			&item.SourceURL,
			&item.Author,
			&item.WordCount,
			&item.ExtractionMethod,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Delete removes the item matching both id and team. Team isolation is
// enforced here: an id owned by a different team reports ErrNotFound.
func (r *KnowledgeRepoImpl) Delete(ctx context.Context, id, teamID string) error {
	query := `DELETE FROM content_items WHERE id = $1 AND team_id = $2;`
	tag, err := r.db.Exec(ctx, query, id, teamID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
