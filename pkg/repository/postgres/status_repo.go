package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/atlas/pkg/status"
)

// StatusRepository stores status checks in the status_checks table.
type StatusRepository struct {
	pool *pgxpool.Pool
}

func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

func (r *StatusRepository) Create(ctx context.Context, c status.Check) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO status_checks (id, client_name, created_at)
VALUES ($1, $2, $3)
`, c.ID, c.ClientName, c.Timestamp)
	return err
}

func (r *StatusRepository) List(ctx context.Context, limit, offset int) ([]status.Check, error) {
	if limit <= 0 {
		limit = status.MaxListLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, client_name, created_at
FROM status_checks
ORDER BY created_at
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]status.Check, 0)
	for rows.Next() {
		var c status.Check
		var created time.Time
		if err := rows.Scan(&c.ID, &c.ClientName, &created); err != nil {
			return nil, err
		}
		c.Timestamp = created.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}
