package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/scraper-service/internal/entity"
)

// StatusRepoImpl provides a concrete implementation for the StatusRepository
// interface using PostgreSQL.
type StatusRepoImpl struct {
	db *pgxpool.Pool
}

// NewStatusRepo creates a new instance of StatusRepoImpl.
func NewStatusRepo(db *pgxpool.Pool) *StatusRepoImpl {
	return &StatusRepoImpl{db: db}
}

// Save stores a status check record.
func (r *StatusRepoImpl) Save(ctx context.Context, check *entity.StatusCheck) error {
	query := `INSERT INTO status_checks (id, client_name, created_at) VALUES ($1, $2, $3);`
	_, err := r.db.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp)
	return err
}

// FindAll retrieves up to limit status checks, newest first.
func (r *StatusRepoImpl) FindAll(ctx context.Context, limit int) ([]*entity.StatusCheck, error) {
	query := `
		SELECT id, client_name, created_at
		FROM status_checks
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []*entity.StatusCheck
	for rows.Next() {
		var check entity.StatusCheck
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, err
		}
		checks = append(checks, &check)
	}

	return checks, rows.Err()
}
